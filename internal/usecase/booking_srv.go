package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/internal/rules"
	"studio-booking/pkg/metrics"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Create runs the eligibility pipeline for one candidate booking and
	// persists it when every rule passes.
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	// Cancel deletes a booking. Clients may only cancel their own and
	// only before the cancellation cutoff; admins bypass both.
	Cancel(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, admin bool) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error)
}

type bookingService struct {
	repo      *repository.Repository
	config    *utils.Config
	evaluator *rules.Evaluator
	loc       *time.Location
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BookingService {
	log = log.With(zap.String("service", "booking"))

	loc, err := time.LoadLocation(config.Booking.Timezone)
	if err != nil {
		log.Warn("Unknown studio timezone, falling back to UTC",
			zap.String("timezone", config.Booking.Timezone))
		loc = time.UTC
	}

	return &bookingService{
		repo:      repo,
		config:    config,
		evaluator: rules.NewEvaluator(rules.ChargePolicy(config.Booking.ChargePolicy)),
		loc:       loc,
		log:       log,
	}
}

func (s *bookingService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid class ID")
	}

	class, err := s.repo.Class.FindByID(ctx, classID)
	if err != nil {
		s.log.Error("Failed to find class", zap.Error(err), zap.String("class_id", classID.String()))
		return nil, fmt.Errorf("failed to find class")
	}
	if class == nil {
		return nil, rules.RejectMsg(rules.ReasonNotFound, "Το μάθημα δεν βρέθηκε.")
	}

	if rej := s.checkCutoff(class, s.config.Booking.BookCutoffMinutes,
		"Οι κρατήσεις κλείνουν %d λεπτά πριν την έναρξη του μαθήματος."); rej != nil {
		metrics.RecordDecision(string(rej.Reason))
		return nil, rej
	}

	subs, err := s.repo.Subscription.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load subscriptions", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to load subscriptions")
	}

	views, err := s.bookingViews(ctx, userID)
	if err != nil {
		return nil, err
	}

	decision, rej := s.evaluator.Evaluate(subs, views, rules.ClassView{
		ID:   class.ID,
		Name: class.Name,
		Date: class.Date,
	})
	if rej != nil {
		s.log.Info("Booking rejected",
			zap.String("user_id", userID.String()),
			zap.String("class_id", class.ID.String()),
			zap.String("reason", string(rej.Reason)))
		metrics.RecordDecision(string(rej.Reason))
		return nil, rej
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:  userID,
		ClassID: class.ID,
		Status:  entity.BookingStatusConfirmed,
	}

	if decision.Charge != nil {
		err = s.repo.Booking.CreateCharged(ctx, booking, repository.PackageCharge{
			SubscriptionID: decision.Charge.ID,
			PackageTotal:   rules.PackageTotalFor(decision.Charge),
			PremiumOnly:    rules.SpecFor(decision.Charge.Model).PremiumOnly,
		})
	} else {
		err = s.repo.Booking.Create(ctx, booking)
	}

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateBooking):
			metrics.RecordDecision(string(rules.ReasonDuplicateBooking))
			return nil, rules.Reject(rules.ReasonDuplicateBooking)
		case errors.Is(err, repository.ErrPackageExhausted):
			// The commit-time recount found the capacity the evaluation
			// saw already taken by a concurrent booking.
			metrics.RecordDecision(string(rules.ReasonPackageExhausted))
			return nil, rules.Reject(rules.ReasonPackageExhausted)
		default:
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("user_id", userID.String()),
				zap.String("class_id", class.ID.String()))
			return nil, fmt.Errorf("failed to create booking")
		}
	}

	metrics.RecordDecision("approved")
	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("class", class.Name))

	booking.Class = class
	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) Cancel(ctx context.Context, actorID uuid.UUID, bookingID uuid.UUID, admin bool) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		s.log.Error("Failed to find booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return fmt.Errorf("failed to find booking")
	}
	if booking == nil {
		return rules.RejectMsg(rules.ReasonNotFound, "Η κράτηση δεν βρέθηκε.")
	}

	if !admin {
		if booking.UserID != actorID {
			return rules.Reject(rules.ReasonForbidden)
		}
		if rej := s.checkCutoff(booking.Class, s.config.Booking.CancelCutoffMinutes,
			"Οι ακυρώσεις κλείνουν %d λεπτά πριν την έναρξη του μαθήματος."); rej != nil {
			return rej
		}
	}

	if err := s.repo.Booking.Delete(ctx, bookingID); err != nil {
		s.log.Error("Failed to delete booking", zap.Error(err), zap.String("booking_id", bookingID.String()))
		return fmt.Errorf("failed to cancel booking")
	}

	metrics.BookingsCancelledTotal.Inc()
	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("actor_id", actorID.String()))

	// The freed class flows back into the member's package counters.
	s.refreshQuotaCache(ctx, booking.UserID)

	return nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindByUserWithClass(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list bookings")
	}

	responses := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		responses = append(responses, response.BookingToResponse(booking))
	}
	return responses, nil
}

// checkCutoff rejects when the class starts within the cutoff window or
// already started. The gate is evaluated in the studio timezone.
func (s *bookingService) checkCutoff(class *entity.Class, cutoffMinutes int, messageFormat string) *rules.Rejection {
	startsAt, err := class.StartsAt(s.loc)
	if err != nil {
		s.log.Warn("Unparseable class start time, skipping cutoff gate",
			zap.String("class_id", class.ID.String()),
			zap.String("start_time", class.StartTime))
		return nil
	}

	if time.Until(startsAt) < time.Duration(cutoffMinutes)*time.Minute {
		return rules.RejectMsg(rules.ReasonTimingWindow, fmt.Sprintf(messageFormat, cutoffMinutes))
	}
	return nil
}

func (s *bookingService) bookingViews(ctx context.Context, userID uuid.UUID) ([]rules.BookingView, error) {
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
	return views, nil
}

// refreshQuotaCache recomputes the cached remaining-classes counters for
// the user's package subscriptions. Best effort: decisions recount from
// bookings, so a stale cache is cosmetic.
func (s *bookingService) refreshQuotaCache(ctx context.Context, userID uuid.UUID) {
	subs, err := s.repo.Subscription.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to load subscriptions for quota refresh",
			zap.Error(err), zap.String("user_id", userID.String()))
		return
	}

	views, err := s.bookingViews(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to load bookings for quota refresh",
			zap.Error(err), zap.String("user_id", userID.String()))
		return
	}

	for _, summary := range rules.RemainingAll(subs, views) {
		if err := s.repo.Subscription.UpdateRemaining(ctx, summary.SubscriptionID, summary.RemainingClasses); err != nil {
			s.log.Warn("Failed to refresh quota cache",
				zap.Error(err),
				zap.String("subscription_id", summary.SubscriptionID.String()))
		}
	}
}
