//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"frontdesk/config"
	"frontdesk/infras/kafka"
	"frontdesk/infras/otel"
	"frontdesk/infras/s3"
	bookingRepository "frontdesk/internal/domains/booking/repository"
	bookingService "frontdesk/internal/domains/booking/service"
	bookingHandler "frontdesk/internal/handlers/booking"
	roomHandler "frontdesk/internal/handlers/room"
	snapshotHandler "frontdesk/internal/handlers/snapshot"
	"frontdesk/transport/http"
	"frontdesk/transport/http/middleware"
	"frontdesk/transport/http/router"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var bookingDomain = wire.NewSet(
	bookingRepository.NewFileStore,
	bookingService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	bookingHandler.New,
	roomHandler.New,
	snapshotHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		bookingDomain,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
