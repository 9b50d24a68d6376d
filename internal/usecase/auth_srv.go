package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Login authenticates a studio client by phone number and PIN.
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	// AdminLogin authenticates a back-office account by username and
	// password.
	AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByPhone(ctx, req.Phone)
	if err != nil {
		s.log.Error("Failed to find user by phone", zap.Error(err))
		return nil, fmt.Errorf("failed to find user")
	}

	if user == nil || user.PIN == nil || *user.PIN != req.PIN {
		s.log.Warn("Invalid phone or PIN", zap.String("phone", req.Phone))
		return nil, fmt.Errorf("invalid credentials")
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to create session",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("Client logged in", zap.String("user_id", user.ID.String()))

	return &response.AuthResponse{
		UserID:    user.ID.String(),
		Name:      user.Name,
		Role:      string(user.Role),
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) AdminLogin(ctx context.Context, req *request.AdminLoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Admin login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	admin, err := s.repo.Admin.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find admin", zap.Error(err))
		return nil, fmt.Errorf("failed to find admin")
	}

	if admin == nil || !utils.CheckPasswordHash(req.Password, admin.PasswordHash) {
		s.log.Warn("Invalid admin credentials", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid credentials")
	}

	session, err := s.createSession(ctx, admin.ID)
	if err != nil {
		s.log.Error("Failed to create admin session",
			zap.Error(err), zap.String("admin_id", admin.ID.String()))
		return nil, fmt.Errorf("failed to create session")
	}

	s.log.Info("Admin logged in", zap.String("admin_id", admin.ID.String()))

	return &response.AuthResponse{
		UserID:    admin.ID.String(),
		Name:      admin.Username,
		Role:      string(entity.RoleAdmin),
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("failed to logout")
	}
	return nil
}

func (s *authService) createSession(ctx context.Context, principalID uuid.UUID) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    principalID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
