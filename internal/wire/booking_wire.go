package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		// POST /api/bookings - Book a class (eligibility pipeline)
		r.Post("/api/bookings", bookingHandler.Create)

		// DELETE /api/bookings/{id} - Cancel a booking; admins bypass
		// the ownership and cutoff checks
		r.Delete("/api/bookings/{id}", bookingHandler.Cancel)

		// GET /api/me/bookings - Own booking history
		r.Get("/api/me/bookings", bookingHandler.ListMine)
	})
}
