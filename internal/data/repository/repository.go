package repository

import (
	"errors"

	"studio-booking/pkg/database"

	"go.uber.org/zap"
)

// Sentinel errors the service layer translates to business rejections.
var (
	ErrDuplicateBooking = errors.New("booking already exists for this user and class")
	ErrPackageExhausted = errors.New("package has no remaining classes")
)

type Repository struct {
	User          UserRepository
	Admin         AdminRepository
	Session       SessionRepository
	Subscription  SubscriptionRepository
	Class         ClassRepository
	Booking       BookingRepository
	TemplateClass TemplateClassRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:          NewUserRepository(db, log),
		Admin:         NewAdminRepository(db, log),
		Session:       NewSessionRepository(db, log),
		Subscription:  NewSubscriptionRepository(db, log),
		Class:         NewClassRepository(db, log),
		Booking:       NewBookingRepository(db, log),
		TemplateClass: NewTemplateClassRepository(db, log),
	}
}
