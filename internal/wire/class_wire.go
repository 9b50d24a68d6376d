package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireClass(
	r chi.Router,
	classHandler *adaptor.ClassHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Schedule browsing requires a session; participant counts come from
	// confirmed bookings
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/api/classes", classHandler.List)
		r.Get("/api/classes/{id}", classHandler.Get)
	})

	// Admin schedule management
	r.Route("/api/admin/classes", func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Post("/", classHandler.Create)
		r.Delete("/{id}", classHandler.Delete)
	})
}
