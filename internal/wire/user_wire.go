package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Client self-service routes
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/api/me", userHandler.Me)
		r.Post("/api/me/accept-terms", userHandler.AcceptTerms)
	})

	// Admin client management
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
		r.Delete("/{id}", userHandler.Delete)
	})
}
