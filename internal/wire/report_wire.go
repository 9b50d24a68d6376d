package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReport(
	r chi.Router,
	reportHandler *adaptor.ReportHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(authenticated(repo, log), middleware.Admin(log)).
		Get("/api/admin/reports/bookings", reportHandler.Bookings)
}
