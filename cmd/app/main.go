//go:generate go run github.com/swaggo/swag/cmd/swag init -g cmd/app/main.go -d ../../ -o ../../docs

package main

import (
	"resto/config"
	"resto/di"
	"resto/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Resto API
// @version 1.0
// @description Restaurant ordering and point of sale backend with a realtime table and kitchen feed.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}
	defer cleanup()

	http.Serve()
}
