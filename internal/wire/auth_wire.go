package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/admin/login", authHandler.AdminLogin)

	// Logout needs a valid session to know which token to revoke
	r.With(authenticated(repo, log)).Post("/api/logout", authHandler.Logout)
}
