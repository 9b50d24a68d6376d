package usecase

import (
	"context"
	"testing"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/rules"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClassRepo struct {
	repository.ClassRepository
	classes map[uuid.UUID]*entity.Class
	created [][]*entity.Class
}

func (f *fakeClassRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Class, error) {
	return f.classes[id], nil
}

func (f *fakeClassRepo) FindByDateRange(_ context.Context, from, to time.Time) ([]*entity.Class, error) {
	var out []*entity.Class
	for _, class := range f.classes {
		if !class.Date.Before(from) && !class.Date.After(to) {
			out = append(out, class)
		}
	}
	return out, nil
}

func (f *fakeClassRepo) CreateBatch(_ context.Context, classes []*entity.Class) error {
	f.created = append(f.created, classes)
	return nil
}

type fakeSubscriptionRepo struct {
	repository.SubscriptionRepository
	subs      []*entity.Subscription
	remaining map[uuid.UUID]int
}

func (f *fakeSubscriptionRepo) FindByUserID(_ context.Context, _ uuid.UUID) ([]*entity.Subscription, error) {
	return f.subs, nil
}

func (f *fakeSubscriptionRepo) UpdateRemaining(_ context.Context, id uuid.UUID, remaining int) error {
	if f.remaining == nil {
		f.remaining = map[uuid.UUID]int{}
	}
	f.remaining[id] = remaining
	return nil
}

type fakeBookingRepo struct {
	repository.BookingRepository
	bookings   []*entity.Booking
	createErr  error
	chargedErr error
	charges    []repository.PackageCharge
	deleted    []uuid.UUID
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) CreateCharged(_ context.Context, booking *entity.Booking, charge repository.PackageCharge) error {
	if f.chargedErr != nil {
		return f.chargedErr
	}
	f.charges = append(f.charges, charge)
	f.bookings = append(f.bookings, booking)
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	for _, booking := range f.bookings {
		if booking.ID == id {
			return booking, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserWithClass(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 72},
		Booking: utils.BookingConfig{
			Timezone:            "Europe/Athens",
			BookCutoffMinutes:   90,
			CancelCutoffMinutes: 120,
			ChargePolicy:        "first_with_remaining",
		},
	}
}

func futureClass(name string) *entity.Class {
	day := time.Now().AddDate(0, 0, 7)
	return &entity.Class{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:            name,
		Date:            time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		MaxParticipants: 10,
	}
}

// imminentClass starts inside the booking cutoff window.
func imminentClass(name string) *entity.Class {
	loc, _ := time.LoadLocation("Europe/Athens")
	starts := time.Now().In(loc).Add(30 * time.Minute)
	return &entity.Class{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Name:            name,
		Date:            time.Date(starts.Year(), starts.Month(), starts.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       starts.Format("15:04"),
		MaxParticipants: 10,
	}
}

func weeklySub(userID uuid.UUID, model entity.SubscriptionModel) *entity.Subscription {
	return &entity.Subscription{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     userID,
		Model:      model,
		StartDate:  time.Now().AddDate(0, -1, 0),
		EndDate:    time.Now().AddDate(0, 1, 0),
	}
}

func newBookingService(repo *repository.Repository) BookingService {
	return NewBookingService(repo, testConfig(), zap.NewNop())
}

func TestBookingCreateWeeklyModel(t *testing.T) {
	userID := uuid.New()
	class := futureClass("Pilates Mat")
	bookingRepo := &fakeBookingRepo{}
	repo := &repository.Repository{
		Class:        &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{class.ID: class}},
		Subscription: &fakeSubscriptionRepo{subs: []*entity.Subscription{weeklySub(userID, entity.ModelSubscription2)}},
		Booking:      bookingRepo,
	}

	svc := newBookingService(repo)
	resp, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{ClassID: class.ID.String()})

	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusConfirmed), string(resp.Status))
	require.Len(t, bookingRepo.bookings, 1)
	assert.Empty(t, bookingRepo.charges, "weekly models are not charged against a package")
}

func TestBookingCreatePackageCharged(t *testing.T) {
	userID := uuid.New()
	class := futureClass("Pilates Reformer")
	sub := weeklySub(userID, entity.ModelPackage10)
	bookingRepo := &fakeBookingRepo{}
	repo := &repository.Repository{
		Class:        &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{class.ID: class}},
		Subscription: &fakeSubscriptionRepo{subs: []*entity.Subscription{sub}},
		Booking:      bookingRepo,
	}

	svc := newBookingService(repo)
	_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{ClassID: class.ID.String()})

	require.NoError(t, err)
	require.Len(t, bookingRepo.charges, 1)
	assert.Equal(t, sub.ID, bookingRepo.charges[0].SubscriptionID)
	assert.Equal(t, 10, bookingRepo.charges[0].PackageTotal)
	assert.False(t, bookingRepo.charges[0].PremiumOnly)
}

func TestBookingCreateCutoff(t *testing.T) {
	userID := uuid.New()
	class := imminentClass("Pilates Mat")
	repo := &repository.Repository{
		Class:        &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{class.ID: class}},
		Subscription: &fakeSubscriptionRepo{subs: []*entity.Subscription{weeklySub(userID, entity.ModelSubscription2)}},
		Booking:      &fakeBookingRepo{},
	}

	svc := newBookingService(repo)
	_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{ClassID: class.ID.String()})

	var rej *rules.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rules.ReasonTimingWindow, rej.Reason)
}

func TestBookingCreateClassNotFound(t *testing.T) {
	repo := &repository.Repository{
		Class: &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{}},
	}

	svc := newBookingService(repo)
	_, err := svc.Create(context.Background(), uuid.New(), &request.CreateBookingRequest{ClassID: uuid.NewString()})

	var rej *rules.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rules.ReasonNotFound, rej.Reason)
}

func TestBookingCreateNoSubscription(t *testing.T) {
	userID := uuid.New()
	class := futureClass("Pilates Mat")
	repo := &repository.Repository{
		Class:        &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{class.ID: class}},
		Subscription: &fakeSubscriptionRepo{},
		Booking:      &fakeBookingRepo{},
	}

	svc := newBookingService(repo)
	_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{ClassID: class.ID.String()})

	var rej *rules.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rules.ReasonNoActiveSubscription, rej.Reason)
}

func TestBookingCreateDuplicateTranslated(t *testing.T) {
	userID := uuid.New()
	class := futureClass("Pilates Mat")
	repo := &repository.Repository{
		Class:        &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{class.ID: class}},
		Subscription: &fakeSubscriptionRepo{subs: []*entity.Subscription{weeklySub(userID, entity.ModelSubscription2)}},
		Booking:      &fakeBookingRepo{createErr: repository.ErrDuplicateBooking},
	}

	svc := newBookingService(repo)
	_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{ClassID: class.ID.String()})

	var rej *rules.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rules.ReasonDuplicateBooking, rej.Reason)
}

func TestBookingCreateConcurrentExhaustion(t *testing.T) {
	userID := uuid.New()
	class := futureClass("Pilates Reformer")
	repo := &repository.Repository{
		Class:        &fakeClassRepo{classes: map[uuid.UUID]*entity.Class{class.ID: class}},
		Subscription: &fakeSubscriptionRepo{subs: []*entity.Subscription{weeklySub(userID, entity.ModelPackage10)}},
		Booking:      &fakeBookingRepo{chargedErr: repository.ErrPackageExhausted},
	}

	svc := newBookingService(repo)
	_, err := svc.Create(context.Background(), userID, &request.CreateBookingRequest{ClassID: class.ID.String()})

	var rej *rules.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rules.ReasonPackageExhausted, rej.Reason)
}

func TestBookingCancelOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	class := futureClass("Pilates Mat")
	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     owner,
		ClassID:    class.ID,
		Status:     entity.BookingStatusConfirmed,
		Class:      class,
	}
	bookingRepo := &fakeBookingRepo{bookings: []*entity.Booking{booking}}
	repo := &repository.Repository{
		Booking:      bookingRepo,
		Subscription: &fakeSubscriptionRepo{},
	}

	svc := newBookingService(repo)

	err := svc.Cancel(context.Background(), stranger, booking.ID, false)
	var rej *rules.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rules.ReasonForbidden, rej.Reason)
	assert.Empty(t, bookingRepo.deleted)

	require.NoError(t, svc.Cancel(context.Background(), owner, booking.ID, false))
	assert.Equal(t, []uuid.UUID{booking.ID}, bookingRepo.deleted)
}

func TestBookingCancelCutoffAdminBypass(t *testing.T) {
	owner := uuid.New()
	class := imminentClass("Pilates Mat")
	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     owner,
		ClassID:    class.ID,
		Status:     entity.BookingStatusConfirmed,
		Class:      class,
	}
	bookingRepo := &fakeBookingRepo{bookings: []*entity.Booking{booking}}
	repo := &repository.Repository{
		Booking:      bookingRepo,
		Subscription: &fakeSubscriptionRepo{},
	}

	svc := newBookingService(repo)

	err := svc.Cancel(context.Background(), owner, booking.ID, false)
	var rej *rules.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, rules.ReasonTimingWindow, rej.Reason)

	admin := uuid.New()
	require.NoError(t, svc.Cancel(context.Background(), admin, booking.ID, true))
	assert.Equal(t, []uuid.UUID{booking.ID}, bookingRepo.deleted)
}

func TestBookingCancelRefreshesQuotaCache(t *testing.T) {
	owner := uuid.New()
	sub := weeklySub(owner, entity.ModelPackage10)
	class := futureClass("Pilates Reformer")
	class.Date = sub.StartDate.AddDate(0, 0, 3)
	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     owner,
		ClassID:    class.ID,
		Status:     entity.BookingStatusConfirmed,
		Class:      class,
	}
	subRepo := &fakeSubscriptionRepo{subs: []*entity.Subscription{sub}}
	repo := &repository.Repository{
		Booking:      &fakeBookingRepo{bookings: []*entity.Booking{booking}},
		Subscription: subRepo,
	}

	svc := newBookingService(repo)
	require.NoError(t, svc.Cancel(context.Background(), owner, booking.ID, true))

	// The fake keeps the deleted booking in FindByUserWithClass, so the
	// recount still sees one confirmed class against the package of 10.
	assert.Equal(t, 9, subRepo.remaining[sub.ID])
}
