package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSubscription(
	r chi.Router,
	subHandler *adaptor.SubscriptionHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Client self-service
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/api/me/subscriptions", subHandler.MySubscriptions)
		r.Get("/api/me/subscriptions/{id}/quota", subHandler.MySubscriptionQuota)
		r.Get("/api/me/quota", subHandler.MyQuota)
	})

	// Admin subscription management
	r.Route("/api/admin/subscriptions", func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Post("/", subHandler.Create)
		r.Get("/{id}", subHandler.Get)
		r.Put("/{id}", subHandler.Update)
		r.Delete("/{id}", subHandler.Delete)
	})

	// Per-client views for the back office
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Get("/api/admin/users/{id}/subscriptions", subHandler.ListForUser)
		r.Get("/api/admin/users/{id}/quota", subHandler.UserQuota)
	})
}
