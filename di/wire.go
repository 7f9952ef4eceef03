//go:build wireinject
// +build wireinject

package di

import (
	"resto/config"
	"resto/infras/jwt"
	"resto/infras/kafka"
	"resto/infras/otel"
	"resto/infras/postgres"
	"resto/infras/redis"
	"resto/infras/s3"
	"resto/internal/realtime/hub"
	"resto/internal/realtime/ws"
	"resto/permissions"
	"resto/shared/cache"
	"resto/transport/http"
	"resto/transport/http/middleware"
	"resto/transport/http/router"

	authService "resto/internal/domains/auth/service"
	cashierRepository "resto/internal/domains/cashier/repository"
	cashierService "resto/internal/domains/cashier/service"
	categoryRepository "resto/internal/domains/category/repository"
	categoryService "resto/internal/domains/category/service"
	menuItemRepository "resto/internal/domains/menuitem/repository"
	menuItemService "resto/internal/domains/menuitem/service"
	orderRepository "resto/internal/domains/order/repository"
	orderService "resto/internal/domains/order/service"
	reportService "resto/internal/domains/report/service"
	tableRepository "resto/internal/domains/table/repository"
	tableService "resto/internal/domains/table/service"

	authHandler "resto/internal/handlers/auth"
	cashierHandler "resto/internal/handlers/cashier"
	categoryHandler "resto/internal/handlers/category"
	menuItemHandler "resto/internal/handlers/menuitem"
	orderHandler "resto/internal/handlers/order"
	reportHandler "resto/internal/handlers/report"
	tableHandler "resto/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.NewOrderProducer,
)

var realtime = wire.NewSet(
	hub.New,
	wire.Bind(new(hub.Broadcaster), new(*hub.Hub)),
	ws.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	cashierRepository.New,
	categoryRepository.New,
	menuItemRepository.New,
	tableRepository.New,
	orderRepository.New,
)

var domains = wire.NewSet(
	authService.New,
	cashierService.New,
	categoryService.New,
	menuItemService.New,
	tableService.New,
	orderService.New,
	reportService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	cashierHandler.New,
	categoryHandler.New,
	menuItemHandler.New,
	tableHandler.New,
	orderHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, func(), error) {
	wire.Build(
		configurations,
		infrastructures,
		realtime,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return nil, nil, nil
}
