package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"resto/config"
	"resto/infras/jwt"
	jwtMocks "resto/infras/jwt/mocks"
	"resto/infras/otel/mocks"
	"resto/permissions"
	"resto/shared/constant"
	"resto/transport/http/middleware"
)

const routes = `{"endpoints":[
	{"path":"/v1/orders","method":"POST","skip":true},
	{"path":"/v1/orders/{id}/status","method":"PATCH","permissions":["admin","cashier"]},
	{"path":"/v1/cashiers","method":"GET","permissions":["admin"]}
]}`

func newRouter(t *testing.T, jwtService jwt.JWT) (chi.Router, *string) {
	t.Helper()

	data, err := permissions.Parse([]byte(routes))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	mw := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), data, cfg)

	seen := new(string)
	echo := func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = r.Context().Value(constant.ContextKeyUsername).(string)
		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", echo)
			r.Patch("/{id}/status", echo)
		})
		r.Route("/cashiers", func(r chi.Router) {
			r.Get("/", echo)
		})
	})

	return router, seen
}

func serve(router http.Handler, method, path, token string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestAuth_PublicRouteWithoutToken(t *testing.T) {
	router, seen := newRouter(t, jwtMocks.NewMockJWT(gomock.NewController(t)))

	rec := serve(router, http.MethodPost, "/v1/orders", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, *seen)
}

func TestAuth_PublicRouteRecordsStaff(t *testing.T) {
	jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
	jwtService.EXPECT().ValidateToken("cashier-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "c1", Username: "rina", Role: constant.RoleCashier}, nil)

	router, seen := newRouter(t, jwtService)

	rec := serve(router, http.MethodPost, "/v1/orders", "cashier-token")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "rina", *seen)
}

func TestAuth_ProtectedRoute(t *testing.T) {
	jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
	jwtService.EXPECT().ValidateToken("cashier-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "c1", Username: "rina", Role: constant.RoleCashier}, nil).AnyTimes()
	jwtService.EXPECT().ValidateToken("expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

	router, _ := newRouter(t, jwtService)

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPatch, "/v1/orders/o1/status", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodPatch, "/v1/orders/o1/status", "expired").Code)
	assert.Equal(t, http.StatusNoContent, serve(router, http.MethodPatch, "/v1/orders/o1/status", "cashier-token").Code)
	assert.Equal(t, http.StatusForbidden, serve(router, http.MethodGet, "/v1/cashiers", "cashier-token").Code)
}

func TestAPIKey(t *testing.T) {
	router, seen := newRouter(t, jwtMocks.NewMockJWT(gomock.NewController(t)))

	rec := serve(router, http.MethodGet, "/v1/cashiers", "", constant.RequestHeaderAPIKey, "internal-key")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "internal", *seen)

	rec = serve(router, http.MethodGet, "/v1/cashiers", "", constant.RequestHeaderAPIKey, "wrong")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
