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

type ClassService interface {
	Create(ctx context.Context, req *request.CreateClassRequest) (*response.ClassResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.ClassResponse, error)
	// List returns the schedule, optionally narrowed to a date range.
	// Participant counts are derived from confirmed bookings.
	List(ctx context.Context, from, to *time.Time) ([]response.ClassResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type classService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewClassService(repo *repository.Repository, log *zap.Logger) ClassService {
	return &classService{
		repo: repo,
		log:  log.With(zap.String("service", "class")),
	}
}

func (s *classService) Create(ctx context.Context, req *request.CreateClassRequest) (*response.ClassResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create class validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid date")
	}

	class := &entity.Class{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name:            req.Name,
		Date:            date,
		StartTime:       req.StartTime,
		MaxParticipants: req.MaxParticipants,
	}

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.log.Error("Failed to create class", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create class")
	}

	s.log.Info("Class created",
		zap.String("class_id", class.ID.String()),
		zap.String("name", class.Name),
		zap.String("date", req.Date))

	resp := response.ClassToResponse(class)
	return &resp, nil
}

func (s *classService) Get(ctx context.Context, id uuid.UUID) (*response.ClassResponse, error) {
	class, err := s.repo.Class.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find class", zap.Error(err), zap.String("class_id", id.String()))
		return nil, fmt.Errorf("failed to find class")
	}
	if class == nil {
		return nil, rules.Reject(rules.ReasonNotFound)
	}

	if err := s.fillParticipantCounts(ctx, []*entity.Class{class}); err != nil {
		return nil, err
	}

	resp := response.ClassToResponse(class)
	return &resp, nil
}

func (s *classService) List(ctx context.Context, from, to *time.Time) ([]response.ClassResponse, error) {
	var classes []*entity.Class
	var err error

	if from != nil && to != nil {
		classes, err = s.repo.Class.FindByDateRange(ctx, *from, *to)
	} else {
		classes, err = s.repo.Class.FindAll(ctx)
	}
	if err != nil {
		s.log.Error("Failed to list classes", zap.Error(err))
		return nil, fmt.Errorf("failed to list classes")
	}

	if err := s.fillParticipantCounts(ctx, classes); err != nil {
		return nil, err
	}

	responses := make([]response.ClassResponse, 0, len(classes))
	for _, class := range classes {
		responses = append(responses, response.ClassToResponse(class))
	}
	return responses, nil
}

func (s *classService) Delete(ctx context.Context, id uuid.UUID) error {
	class, err := s.repo.Class.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find class", zap.Error(err), zap.String("class_id", id.String()))
		return fmt.Errorf("failed to find class")
	}
	if class == nil {
		return rules.Reject(rules.ReasonNotFound)
	}

	if err := s.repo.Class.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete class", zap.Error(err), zap.String("class_id", id.String()))
		return fmt.Errorf("failed to delete class")
	}

	return nil
}

func (s *classService) fillParticipantCounts(ctx context.Context, classes []*entity.Class) error {
	if len(classes) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(classes))
	for _, class := range classes {
		ids = append(ids, class.ID)
	}

	counts, err := s.repo.Class.ConfirmedCounts(ctx, ids)
	if err != nil {
		s.log.Error("Failed to count participants", zap.Error(err))
		return fmt.Errorf("failed to count participants")
	}

	for _, class := range classes {
		class.CurrentParticipants = counts[class.ID]
	}
	return nil
}
