package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/internal/rules"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScheduleService interface {
	CreateTemplate(ctx context.Context, req *request.CreateTemplateRequest) (*response.TemplateClassResponse, error)
	ListTemplates(ctx context.Context) ([]response.TemplateClassResponse, error)
	UpdateTemplate(ctx context.Context, id uuid.UUID, req *request.UpdateTemplateRequest) (*response.TemplateClassResponse, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	// Generate materializes the active weekly templates into calendar
	// classes for the inclusive date range, skipping slots that already
	// exist. Returns how many classes were created.
	Generate(ctx context.Context, req *request.GenerateScheduleRequest) (int, error)
}

type scheduleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScheduleService(repo *repository.Repository, log *zap.Logger) ScheduleService {
	return &scheduleService{
		repo: repo,
		log:  log.With(zap.String("service", "schedule")),
	}
}

func (s *scheduleService) CreateTemplate(ctx context.Context, req *request.CreateTemplateRequest) (*response.TemplateClassResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create template validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	template := &entity.TemplateClass{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:            req.Name,
		Weekday:         *req.Weekday,
		StartTime:       req.StartTime,
		MaxParticipants: req.MaxParticipants,
		IsActive:        isActive,
	}

	if err := s.repo.TemplateClass.Create(ctx, template); err != nil {
		s.log.Error("Failed to create template", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create template")
	}

	resp := response.TemplateToResponse(template)
	return &resp, nil
}

func (s *scheduleService) ListTemplates(ctx context.Context) ([]response.TemplateClassResponse, error) {
	templates, err := s.repo.TemplateClass.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list templates", zap.Error(err))
		return nil, fmt.Errorf("failed to list templates")
	}

	responses := make([]response.TemplateClassResponse, 0, len(templates))
	for _, template := range templates {
		responses = append(responses, response.TemplateToResponse(template))
	}
	return responses, nil
}

func (s *scheduleService) UpdateTemplate(ctx context.Context, id uuid.UUID, req *request.UpdateTemplateRequest) (*response.TemplateClassResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update template validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	template, err := s.findTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Weekday != nil {
		template.Weekday = *req.Weekday
	}
	if req.StartTime != nil {
		template.StartTime = *req.StartTime
	}
	if req.MaxParticipants != nil {
		template.MaxParticipants = *req.MaxParticipants
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}

	if err := s.repo.TemplateClass.Update(ctx, template); err != nil {
		s.log.Error("Failed to update template", zap.Error(err), zap.String("template_id", id.String()))
		return nil, fmt.Errorf("failed to update template")
	}

	resp := response.TemplateToResponse(template)
	return &resp, nil
}

func (s *scheduleService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findTemplate(ctx, id); err != nil {
		return err
	}

	if err := s.repo.TemplateClass.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete template", zap.Error(err), zap.String("template_id", id.String()))
		return fmt.Errorf("failed to delete template")
	}

	return nil
}

func (s *scheduleService) Generate(ctx context.Context, req *request.GenerateScheduleRequest) (int, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Generate schedule validation failed", zap.Any("errors", errs))
		return 0, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	from, err := utils.ParseDate(req.From)
	if err != nil {
		return 0, fmt.Errorf("validation failed: invalid from date")
	}
	to, err := utils.ParseDate(req.To)
	if err != nil {
		return 0, fmt.Errorf("validation failed: invalid to date")
	}
	if to.Before(from) {
		return 0, fmt.Errorf("validation failed: to date before from date")
	}

	templates, err := s.repo.TemplateClass.FindAllActive(ctx)
	if err != nil {
		s.log.Error("Failed to load active templates", zap.Error(err))
		return 0, fmt.Errorf("failed to load templates")
	}
	if len(templates) == 0 {
		return 0, nil
	}

	existing, err := s.repo.Class.FindByDateRange(ctx, from, to)
	if err != nil {
		s.log.Error("Failed to load existing classes", zap.Error(err))
		return 0, fmt.Errorf("failed to load classes")
	}

	taken := make(map[string]bool, len(existing))
	for _, class := range existing {
		taken[slotKey(class.Name, class.Date, class.StartTime)] = true
	}

	now := time.Now()
	var classes []*entity.Class
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		// Template weekdays follow ISO order, 0 = Monday.
		weekday := (int(day.Weekday()) + 6) % 7
		for _, template := range templates {
			if template.Weekday != weekday {
				continue
			}
			if taken[slotKey(template.Name, day, template.StartTime)] {
				continue
			}
			classes = append(classes, &entity.Class{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				Name:            template.Name,
				Date:            day,
				StartTime:       template.StartTime,
				MaxParticipants: template.MaxParticipants,
			})
		}
	}

	if len(classes) == 0 {
		return 0, nil
	}

	if err := s.repo.Class.CreateBatch(ctx, classes); err != nil {
		s.log.Error("Failed to create generated classes", zap.Error(err))
		return 0, fmt.Errorf("failed to generate schedule")
	}

	s.log.Info("Schedule generated",
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.Int("classes", len(classes)))

	return len(classes), nil
}

func (s *scheduleService) findTemplate(ctx context.Context, id uuid.UUID) (*entity.TemplateClass, error) {
	template, err := s.repo.TemplateClass.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find template", zap.Error(err), zap.String("template_id", id.String()))
		return nil, fmt.Errorf("failed to find template")
	}
	if template == nil {
		return nil, rules.Reject(rules.ReasonNotFound)
	}
	return template, nil
}

func slotKey(name string, date time.Time, startTime string) string {
	return name + "|" + date.Format("2006-01-02") + "|" + startTime
}
