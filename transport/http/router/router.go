package router

import (
	"github.com/go-chi/chi/v5"

	"frontdesk/internal/handlers/booking"
	"frontdesk/internal/handlers/room"
	"frontdesk/internal/handlers/snapshot"
)

type DomainHandlers struct {
	Booking  booking.Handler
	Room     room.Handler
	Snapshot snapshot.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Snapshot.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
