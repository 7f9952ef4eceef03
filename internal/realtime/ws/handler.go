// Package ws exposes the realtime hub over websockets.
package ws

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"resto/config"
	"resto/infras/jwt"
	"resto/internal/realtime/hub"
	"resto/shared/constant"
	"resto/shared/failure"
	"resto/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	queryToken = "token"
	queryName  = "name"
)

type Handler struct {
	hub      *hub.Hub
	jwt      jwt.JWT
	upgrader websocket.Upgrader
	settings settings
}

func New(cfg *config.Config, h *hub.Hub, jwtSvc jwt.JWT) *Handler {
	rt := cfg.Realtime

	pongWait := time.Duration(max(rt.PongWaitSecond, 1)) * time.Second
	allowed := rt.AllowedOrigins

	return &Handler{
		hub: h,
		jwt: jwtSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(allowed),
		},
		settings: settings{
			writeTimeout:    time.Duration(max(rt.WriteTimeoutSecond, 1)) * time.Second,
			pongWait:        pongWait,
			pingPeriod:      pongWait * 9 / 10,
			maxMessageBytes: max(rt.MaxMessageBytes, 512),
			sendBuffer:      max(rt.SendBuffer, 1),
		},
	}
}

func (h *Handler) Router(router chi.Router) {
	router.Get("/ws", h.Serve)
}

// Serve godoc
// @Summary Open a realtime connection
// @Description Upgrades to a websocket. Clients send "subscribe:<topic>" or "unsubscribe:<topic>"
// @Description for tables, menu-items and orders, and may relay table_blocked, table_released,
// @Description bell_request and bill_request envelopes to the tables topic.
// @Tags realtime
// @Param token query string false "staff access token"
// @Param name query string false "display name for anonymous clients"
// @Success 101
// @Failure 401 {object} response.Message
// @Router /v1/ws [get]
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	username, err := h.identify(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")

		return
	}

	client := newClient(conn, h.hub, username, h.settings)
	if err := h.hub.Register(client); err != nil {
		log.Warn().Err(err).Msg("rejecting realtime connection")
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error()))
		_ = conn.Close()

		return
	}

	log.Info().Str("conn", client.ID()).Str("username", username).Msg("realtime client connected")

	client.serve(r.Context())

	log.Info().Str("conn", client.ID()).Str("username", username).Msg("realtime client disconnected")
}

// identify prefers the token subject, then the supplied name, then guest.
func (h *Handler) identify(r *http.Request) (string, error) {
	query := r.URL.Query()

	if token := query.Get(queryToken); token != "" {
		claims, err := h.jwt.ValidateToken(token, jwt.AccessToken)
		if err != nil {
			return "", failure.Unauthorized(err.Error()) //nolint:wrapcheck
		}

		return claims.Username, nil
	}

	if name := strings.TrimSpace(query.Get(queryName)); name != "" {
		return name, nil
	}

	return constant.ContextGuest, nil
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 || slices.Contains(allowed, "*") {
			return true
		}

		return slices.Contains(allowed, origin)
	}
}
