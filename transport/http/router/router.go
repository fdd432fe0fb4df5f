package router

import (
	adminHandler "bamf/internal/handlers/admin"
	bookingHandler "bamf/internal/handlers/booking"
	contactHandler "bamf/internal/handlers/contact"
	paymentHandler "bamf/internal/handlers/payment"
	roomHandler "bamf/internal/handlers/room"
	"bamf/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Admin   adminHandler.Handler
	Booking bookingHandler.Handler
	Contact contactHandler.Handler
	Payment paymentHandler.Handler
	Room    roomHandler.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AdminAuth      middleware.AdminAuth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)

		routerGroup.Route("/admin", func(adminRoot chi.Router) {
			r.DomainHandlers.Admin.Router(adminRoot)

			adminRoot.Group(func(guarded chi.Router) {
				guarded.Use(r.AdminAuth.Auth)

				r.DomainHandlers.Admin.AdminRouter(guarded)
				r.DomainHandlers.Room.AdminRouter(guarded)
				r.DomainHandlers.Booking.AdminRouter(guarded)
				r.DomainHandlers.Contact.AdminRouter(guarded)
			})
		})
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, adminAuth middleware.AdminAuth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AdminAuth:      adminAuth,
	}
}
