package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Singh-Prajwal/rental/internal/api/http/handlers"
	"github.com/Singh-Prajwal/rental/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Support        *handlers.SupportHandler
	Bookings       *handlers.BookingsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Guests create and read support tickets
// directly; status transitions and technician scheduling are admin actions.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	support := app.Group("/support")
	support.Post("/", cfg.Support.CreateTicket)
	support.Get("/", cfg.Support.ListTickets)
	support.Get("/:id", cfg.Support.GetTicket)
	support.Patch("/:id", cfg.AuthMiddleware.RequireAdmin, cfg.Support.TransitionTicket)
	support.Post("/:id/visits", cfg.AuthMiddleware.RequireAdmin, cfg.Support.ScheduleVisit)

	bookings := app.Group("/bookings")
	bookings.Post("/", cfg.Bookings.CreateBooking)
	bookings.Get("/:id", cfg.Bookings.GetBooking)
	bookings.Patch("/:id", cfg.AuthMiddleware.RequireAdmin, cfg.Bookings.TransitionBooking)
}
