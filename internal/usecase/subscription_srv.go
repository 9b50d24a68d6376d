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

type SubscriptionService interface {
	Create(ctx context.Context, req *request.CreateSubscriptionRequest) (*response.SubscriptionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*response.SubscriptionResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]response.SubscriptionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateSubscriptionRequest) (*response.SubscriptionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Quota recounts remaining classes for every package subscription of
	// the user and refreshes the cached counters along the way.
	Quota(ctx context.Context, userID uuid.UUID) ([]response.QuotaSummaryResponse, error)

	// QuotaForSubscription recounts a single subscription. A non-package
	// model is a client error, never reported as an exhausted package.
	QuotaForSubscription(ctx context.Context, userID, subscriptionID uuid.UUID) (*response.QuotaSummaryResponse, error)
}

type subscriptionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSubscriptionService(repo *repository.Repository, log *zap.Logger) SubscriptionService {
	return &subscriptionService{
		repo: repo,
		log:  log.With(zap.String("service", "subscription")),
	}
}

func (s *subscriptionService) Create(ctx context.Context, req *request.CreateSubscriptionRequest) (*response.SubscriptionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create subscription validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid user ID")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, rules.RejectMsg(rules.ReasonNotFound, "Ο πελάτης δεν βρέθηκε.")
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid start date")
	}
	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid end date")
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("validation failed: end date before start date")
	}

	var paymentStatus *entity.PaymentStatus
	if req.PaymentStatus != nil {
		status := entity.PaymentStatus(*req.PaymentStatus)
		paymentStatus = &status
	}

	sub := &entity.Subscription{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:        userID,
		Model:         entity.SubscriptionModel(req.Model),
		StartDate:     startDate,
		EndDate:       endDate,
		PackageTotal:  req.PackageTotal,
		Price:         req.Price,
		PaymentStatus: paymentStatus,
		Note:          req.Note,
	}

	// Package models start with a full counter cache.
	if total := rules.PackageTotalFor(sub); total > 0 {
		sub.RemainingClasses = &total
	}

	if err := s.repo.Subscription.Create(ctx, sub); err != nil {
		s.log.Error("Failed to create subscription",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to create subscription")
	}

	s.log.Info("Subscription created",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("model", string(sub.Model)))

	resp := response.SubscriptionToResponse(sub)
	return &resp, nil
}

func (s *subscriptionService) Get(ctx context.Context, id uuid.UUID) (*response.SubscriptionResponse, error) {
	sub, err := s.findSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.SubscriptionToResponse(sub)
	return &resp, nil
}

func (s *subscriptionService) ListForUser(ctx context.Context, userID uuid.UUID) ([]response.SubscriptionResponse, error) {
	subs, err := s.repo.Subscription.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list subscriptions", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list subscriptions")
	}

	responses := make([]response.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, response.SubscriptionToResponse(sub))
	}
	return responses, nil
}

func (s *subscriptionService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateSubscriptionRequest) (*response.SubscriptionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update subscription validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	sub, err := s.findSubscription(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Model != nil {
		sub.Model = entity.SubscriptionModel(*req.Model)
	}
	if req.StartDate != nil {
		startDate, err := utils.ParseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("validation failed: invalid start date")
		}
		sub.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("validation failed: invalid end date")
		}
		sub.EndDate = endDate
	}
	if sub.EndDate.Before(sub.StartDate) {
		return nil, fmt.Errorf("validation failed: end date before start date")
	}
	if req.PackageTotal != nil {
		sub.PackageTotal = req.PackageTotal
	}
	if req.Price != nil {
		sub.Price = req.Price
	}
	if req.PaymentStatus != nil {
		status := entity.PaymentStatus(*req.PaymentStatus)
		sub.PaymentStatus = &status
	}
	if req.Note != nil {
		sub.Note = req.Note
	}

	if err := s.repo.Subscription.Update(ctx, sub); err != nil {
		s.log.Error("Failed to update subscription", zap.Error(err), zap.String("subscription_id", id.String()))
		return nil, fmt.Errorf("failed to update subscription")
	}

	resp := response.SubscriptionToResponse(sub)
	return &resp, nil
}

func (s *subscriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findSubscription(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Subscription.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete subscription", zap.Error(err), zap.String("subscription_id", id.String()))
		return fmt.Errorf("failed to delete subscription")
	}

	return nil
}

func (s *subscriptionService) Quota(ctx context.Context, userID uuid.UUID) ([]response.QuotaSummaryResponse, error) {
	subs, err := s.repo.Subscription.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load subscriptions", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load subscriptions")
	}

	bookings, err := s.repo.Booking.FindByUserWithClass(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load bookings")
	}

	views := make([]rules.BookingView, 0, len(bookings))
	for _, booking := range bookings {
		views = append(views, rules.BookingView{
			ClassID:   booking.ClassID,
			ClassName: booking.Class.Name,
			Date:      booking.Class.Date,
			Status:    booking.Status,
		})
	}

	summaries := rules.RemainingAll(subs, views)

	responses := make([]response.QuotaSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		// Keep the cached counter in step with the recount. Best effort.
		if err := s.repo.Subscription.UpdateRemaining(ctx, summary.SubscriptionID, summary.RemainingClasses); err != nil {
			s.log.Warn("Failed to refresh quota cache",
				zap.Error(err),
				zap.String("subscription_id", summary.SubscriptionID.String()))
		}
		responses = append(responses, response.QuotaToResponse(summary))
	}
	return responses, nil
}

func (s *subscriptionService) QuotaForSubscription(ctx context.Context, userID, subscriptionID uuid.UUID) (*response.QuotaSummaryResponse, error) {
	sub, err := s.findSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, rules.RejectMsg(rules.ReasonNotFound, "Η συνδρομή δεν βρέθηκε.")
	}

	bookings, err := s.repo.Booking.FindByUserWithClass(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load bookings")
	}

	views := make([]rules.BookingView, 0, len(bookings))
	for _, booking := range bookings {
		views = append(views, rules.BookingView{
			ClassID:   booking.ClassID,
			ClassName: booking.Class.Name,
			Date:      booking.Class.Date,
			Status:    booking.Status,
		})
	}

	summaries := rules.RemainingAll([]*entity.Subscription{sub}, views)
	if len(summaries) == 0 {
		return nil, fmt.Errorf("validation failed: subscription model is not a package")
	}

	summary := summaries[0]
	if err := s.repo.Subscription.UpdateRemaining(ctx, summary.SubscriptionID, summary.RemainingClasses); err != nil {
		s.log.Warn("Failed to refresh quota cache",
			zap.Error(err),
			zap.String("subscription_id", summary.SubscriptionID.String()))
	}

	resp := response.QuotaToResponse(summary)
	return &resp, nil
}

func (s *subscriptionService) findSubscription(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	sub, err := s.repo.Subscription.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find subscription", zap.Error(err), zap.String("subscription_id", id.String()))
		return nil, fmt.Errorf("failed to find subscription")
	}
	if sub == nil {
		return nil, rules.RejectMsg(rules.ReasonNotFound, "Η συνδρομή δεν βρέθηκε.")
	}
	return sub, nil
}
