package wire

import (
	"studio-booking/internal/adaptor"
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSchedule(
	r chi.Router,
	scheduleHandler *adaptor.ScheduleHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Weekly templates and schedule generation are back-office tools
	r.Route("/api/admin/templates", func(r chi.Router) {
		r.Use(authenticated(repo, log))
		r.Use(middleware.Admin(log))

		r.Post("/", scheduleHandler.CreateTemplate)
		r.Get("/", scheduleHandler.ListTemplates)
		r.Put("/{id}", scheduleHandler.UpdateTemplate)
		r.Delete("/{id}", scheduleHandler.DeleteTemplate)
	})

	r.With(authenticated(repo, log), middleware.Admin(log)).
		Post("/api/admin/schedule/generate", scheduleHandler.Generate)
}
