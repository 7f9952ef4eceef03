package handler

import (
	"net/http"
	"sync"

	"resto/config"
	"resto/di"
	"resto/shared/logger"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	handler http.Handler
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server, _, err := di.InitializeService()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize service")
		}

		handler = server.Handler()
	})

	handler.ServeHTTP(w, r)
}
