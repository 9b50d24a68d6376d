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

type UserService interface {
	// Create registers a studio client. When no PIN is supplied the next
	// free numeric PIN is assigned.
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.UserResponse, error)
	List(ctx context.Context) ([]response.UserSummaryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AcceptTerms(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		s.log.Error("Failed to check phone", zap.Error(err), zap.String("phone", req.Phone))
		return nil, fmt.Errorf("failed to check phone")
	}
	if existing != nil {
		return nil, fmt.Errorf("phone already registered")
	}

	pin := req.PIN
	if pin == nil {
		maxPIN, err := s.repo.User.MaxPIN(ctx)
		if err != nil {
			s.log.Error("Failed to resolve next PIN", zap.Error(err))
			return nil, fmt.Errorf("failed to assign PIN")
		}
		next := maxPIN + 1
		pin = &next
	}

	role := entity.RoleClient
	if req.Role != nil {
		role = entity.UserRole(*req.Role)
	}

	var gender *entity.Gender
	if req.Gender != nil {
		g := entity.Gender(*req.Gender)
		gender = &g
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Phone:  req.Phone,
		PIN:    pin,
		Name:   req.Name,
		City:   req.City,
		Gender: gender,
		Role:   role,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("phone", req.Phone))
		return nil, fmt.Errorf("failed to create user")
	}

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user, nil)
	return &resp, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, rules.Reject(rules.ReasonNotFound)
	}

	bookings, err := s.repo.Booking.FindByUserWithClass(ctx, id)
	if err != nil {
		s.log.Error("Failed to load user bookings", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to load bookings")
	}

	resp := response.UserToResponse(user, bookings)
	return &resp, nil
}

func (s *userService) List(ctx context.Context) ([]response.UserSummaryResponse, error) {
	users, err := s.repo.User.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users")
	}

	summaries := make([]response.UserSummaryResponse, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, response.UserToSummary(user))
	}
	return summaries, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return rules.Reject(rules.ReasonNotFound)
	}

	if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
		s.log.Warn("Failed to revoke sessions of deleted user",
			zap.Error(err), zap.String("user_id", id.String()))
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to delete user")
	}

	return nil
}

func (s *userService) AcceptTerms(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to find user")
	}
	if user == nil {
		return rules.Reject(rules.ReasonNotFound)
	}

	if err := s.repo.User.SetAcceptedTerms(ctx, id); err != nil {
		s.log.Error("Failed to accept terms", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to accept terms")
	}

	return nil
}
