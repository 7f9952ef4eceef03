package report

import (
	"net/http"

	"resto/infras/otel"
	"resto/internal/domains/report/model"
	"resto/internal/domains/report/model/dto"
	"resto/internal/domains/report/service"
	"resto/shared/constant"
	"resto/shared/timezone"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// defaultRangeDays is the window used when the request leaves from empty.
const defaultRangeDays = 7

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/sales", handler.GetSales)
	})
}

// GetSales summarizes paid orders over a date range.
// @Summary Sales report
// @Tags Report
// @Produce json
// @Param from query string false "First day, YYYY-MM-DD (default: six days before to)"
// @Param to query string false "Last day, YYYY-MM-DD (default: today)"
// @Success 200 {object} dto.SalesResponse
// @Failure 400 {object} response.Error
// @Router /v1/reports/sales [get]
// @Security BearerAuth
func (handler *Handler) GetSales(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSales")
	defer scope.End()

	res, err := handler.service.Sales(ctx, SalesRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build sales report")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SalesRequest reads the range from the query string, filling the defaults.
func SalesRequest(r *http.Request) dto.SalesRequest {
	query := r.URL.Query()
	req := dto.SalesRequest{From: query.Get("from"), To: query.Get("to")}

	if req.To == "" {
		req.To = timezone.Now().Format(model.DateLayout)
	}

	if req.From == "" {
		if to, err := timezone.ParseDay(req.To); err == nil {
			req.From = to.AddDate(0, 0, 1-defaultRangeDays).Format(model.DateLayout)
		}
	}

	return req
}
