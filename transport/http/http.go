package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"resto/config"
	_ "resto/docs"
	"resto/internal/realtime/hub"
	"resto/shared/constant"
	"resto/transport/http/middleware"
	"resto/transport/http/response"
	"resto/transport/http/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const readHeaderTimeout = 10 * time.Second

type HTTP struct {
	Config   *config.Config
	Router   router.Router
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
	Hub      *hub.Hub

	state   atomic.Int32
	once    sync.Once
	handler http.Handler
	server  *http.Server
}

func New(cfg *config.Config, r router.Router, app middleware.AppMiddleware, authRole middleware.AuthRole, h *hub.Hub) *HTTP {
	return &HTTP{
		Config:   cfg,
		Router:   r,
		App:      app,
		AuthRole: authRole,
		Hub:      h,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve blocks until the server stops. SIGINT or SIGTERM starts a graceful shutdown.
func (h *HTTP) Serve() {
	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	stopped := make(chan struct{})

	go h.respondToSigterm(stopped)

	log.Info().Str("addr", h.server.Addr).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-stopped
}

// Handler builds the routing tree once. It is also the entry point for serverless deployments.
func (h *HTTP) Handler() http.Handler {
	h.once.Do(func() {
		mux := chi.NewRouter()

		mux.Use(chiMiddleware.RealIP)
		mux.Use(chiMiddleware.Recoverer)

		if h.Config.App.CORS.Enable {
			mux.Use(cors.Handler(cors.Options{
				AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
				AllowedMethods:   h.Config.App.CORS.AllowedMethods,
				AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
				AllowCredentials: h.Config.App.CORS.AllowCredentials,
				MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
			}))
		}

		mux.Get("/healthz", h.health)

		if h.Config.Server.Env != constant.ServerEnvProduction {
			mux.Get("/swagger/*", httpSwagger.WrapHandler)
		}

		mux.Group(func(group chi.Router) {
			group.Use(h.App.Tracing)
			group.Use(h.App.RateLimit())
			group.Use(h.AuthRole.APIKey)
			group.Use(h.AuthRole.Auth)
			group.Use(h.AuthRole.RBAC)

			h.Router.SetupRoutes(group)
		})

		h.handler = mux
		h.state.Store(int32(ServerStateReady))
	})

	return h.handler
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithMessage(w, http.StatusOK, "OK")
}

func (h *HTTP) respondToSigterm(stopped chan<- struct{}) {
	defer close(stopped)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	<-signals

	shutdownConfig := h.Config.Server.Shutdown
	grace := time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second
	cleanup := time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		grace = 0
	} else {
		log.Info().Msg("Received SIGTERM.")
	}

	log.Info().Dur("period", grace).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(grace)

	log.Info().Dur("period", cleanup).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	// Hijacked websocket connections are not tracked by Shutdown, so the hub closes them.
	h.Hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), max(cleanup, time.Second))
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("HTTP server did not shut down cleanly")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
