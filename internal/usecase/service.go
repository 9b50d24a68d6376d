package usecase

import (
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Class        ClassService
	Booking      BookingService
	Subscription SubscriptionService
	Schedule     ScheduleService
	Report       ReportService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo, log),
		Class:        NewClassService(repo, log),
		Booking:      NewBookingService(repo, config, log),
		Subscription: NewSubscriptionService(repo, log),
		Schedule:     NewScheduleService(repo, log),
		Report:       NewReportService(repo, log),
	}
}
