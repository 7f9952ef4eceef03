package router

import (
	"resto/internal/handlers/auth"
	"resto/internal/handlers/cashier"
	"resto/internal/handlers/category"
	"resto/internal/handlers/menuitem"
	"resto/internal/handlers/order"
	"resto/internal/handlers/report"
	"resto/internal/handlers/table"
	"resto/internal/realtime/ws"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Cashier  cashier.Handler
	Category category.Handler
	MenuItem menuitem.Handler
	Table    table.Handler
	Order    order.Handler
	Report   report.Handler
	Realtime *ws.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Cashier.Router(routerGroup)
		r.DomainHandlers.Category.Router(routerGroup)
		r.DomainHandlers.MenuItem.Router(routerGroup)
		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.Realtime.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
