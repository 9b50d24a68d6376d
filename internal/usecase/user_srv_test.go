package usecase

import (
	"context"
	"testing"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	repository.UserRepository
	byPhone map[string]*entity.User
	maxPIN  int
	created []*entity.User
}

func (f *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	return f.byPhone[phone], nil
}

func (f *fakeUserRepo) MaxPIN(_ context.Context) (int, error) {
	return f.maxPIN, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.created = append(f.created, user)
	return nil
}

func TestUserCreateAssignsNextPIN(t *testing.T) {
	userRepo := &fakeUserRepo{byPhone: map[string]*entity.User{}, maxPIN: 41}
	repo := &repository.Repository{User: userRepo}

	svc := NewUserService(repo, zap.NewNop())
	resp, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Phone: "6900000001",
		Name:  "Μαρία Π.",
	})

	require.NoError(t, err)
	require.Len(t, userRepo.created, 1)
	require.NotNil(t, resp.PIN)
	assert.Equal(t, 42, *resp.PIN)
	assert.Equal(t, string(entity.RoleClient), resp.Role)
	assert.False(t, resp.AcceptedTerms)
}

func TestUserCreateKeepsExplicitPIN(t *testing.T) {
	userRepo := &fakeUserRepo{byPhone: map[string]*entity.User{}, maxPIN: 41}
	repo := &repository.Repository{User: userRepo}

	pin := 7
	svc := NewUserService(repo, zap.NewNop())
	resp, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Phone: "6900000002",
		Name:  "Νίκος Κ.",
		PIN:   &pin,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.PIN)
	assert.Equal(t, 7, *resp.PIN)
}

func TestUserCreateRejectsDuplicatePhone(t *testing.T) {
	existing := &entity.User{
		Base:  entity.Base{ID: uuid.New()},
		Phone: "6900000003",
		Name:  "Ελένη Δ.",
		Role:  entity.RoleClient,
	}
	userRepo := &fakeUserRepo{byPhone: map[string]*entity.User{existing.Phone: existing}}
	repo := &repository.Repository{User: userRepo}

	svc := NewUserService(repo, zap.NewNop())
	_, err := svc.Create(context.Background(), &request.CreateUserRequest{
		Phone: existing.Phone,
		Name:  "Άλλη Πελάτισσα",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Empty(t, userRepo.created)
}
