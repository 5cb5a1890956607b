package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RateLimitConfig struct {
	Counter Counter
	Limit   int
	Window  time.Duration
}

func NewRouter(h *Handler, rl RateLimitConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))

	r.Get("/health", HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/locations", h.ListLocations)
		r.Route("/locations/{locationID}", func(r chi.Router) {
			r.Get("/availability", h.GetAvailability)
			r.Get("/services", h.ListServices)
			r.Get("/seats", h.ListSeats)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.With(RateLimit(rl.Counter, "bookings", rl.Limit, rl.Window, logger)).Post("/", h.SubmitBooking)
			r.Get("/{reference}", h.GetBooking)
		})

		r.Route("/admin", func(r chi.Router) {
			r.With(RateLimit(rl.Counter, "login", rl.Limit, rl.Window, logger)).Post("/login", h.Login)

			r.Group(func(r chi.Router) {
				r.Use(AdminAuth(h.auth))

				r.Get("/bookings", h.ListBookings)
				r.Put("/bookings/{bookingID}", h.RescheduleBooking)
				r.Delete("/bookings/{bookingID}", h.DeleteBooking)

				r.Get("/locations/{locationID}/seats", h.ListAllSeats)
				r.Post("/locations/{locationID}/seats", h.CreateSeat)
				r.Patch("/seats/{seatID}", h.SetSeatActive)
			})
		})
	})

	return r
}
