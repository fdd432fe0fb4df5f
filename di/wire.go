//go:build wireinject
// +build wireinject

package di

import (
	"bamf/config"
	"bamf/infras/kafka"
	"bamf/infras/otel"
	"bamf/infras/postgres"
	"bamf/infras/redis"
	"bamf/infras/s3"
	"bamf/infras/session"
	adminHandler "bamf/internal/handlers/admin"
	bookingHandler "bamf/internal/handlers/booking"
	contactHandler "bamf/internal/handlers/contact"
	paymentHandler "bamf/internal/handlers/payment"
	roomHandler "bamf/internal/handlers/room"
	"bamf/shared/cache"
	"bamf/transport/http"
	"bamf/transport/http/middleware"
	"bamf/transport/http/router"

	adminService "bamf/internal/domains/admin/service"
	bookingRepository "bamf/internal/domains/booking/repository"
	bookingService "bamf/internal/domains/booking/service"
	contactRepository "bamf/internal/domains/contact/repository"
	contactService "bamf/internal/domains/contact/service"
	"bamf/internal/domains/payment/gateway"
	paymentService "bamf/internal/domains/payment/service"
	roomRepository "bamf/internal/domains/room/repository"
	roomService "bamf/internal/domains/room/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	session.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAdminAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	newGatewayRegistry,
	paymentService.New,
)

var contactDomain = wire.NewSet(
	contactRepository.New,
	contactService.New,
)

var adminDomain = wire.NewSet(
	adminService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
	paymentDomain,
	contactDomain,
	adminDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	adminHandler.New,
	bookingHandler.New,
	contactHandler.New,
	paymentHandler.New,
	roomHandler.New,
	router.New,
)

// newGatewayRegistry builds the provider registry directly. Both gateways
// satisfy the same interface, so wire cannot tell them apart as providers.
func newGatewayRegistry(cfg *config.Config, ot otel.Otel) gateway.Registry {
	return gateway.NewRegistry(gateway.NewPaystack(cfg, ot), gateway.NewMonnify(cfg, ot))
}

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
