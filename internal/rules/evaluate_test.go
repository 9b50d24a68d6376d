package rules

import (
	"testing"
	"time"

	"studio-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sub(model entity.SubscriptionModel, start, end time.Time) *entity.Subscription {
	return &entity.Subscription{
		BaseSimple: entity.BaseSimple{ID: uuid.New()},
		Model:      model,
		StartDate:  start,
		EndDate:    end,
	}
}

func booked(name string, on time.Time) BookingView {
	return BookingView{
		ClassID:   uuid.New(),
		ClassName: name,
		Date:      on,
		Status:    entity.BookingStatusConfirmed,
	}
}

func TestEvaluateSubscriptionSelection(t *testing.T) {
	classDate := day(2025, time.June, 10)
	class := ClassView{ID: uuid.New(), Name: "Pilates Reformer", Date: classDate}

	tests := []struct {
		name string
		subs []*entity.Subscription
		want Reason
	}{
		{
			name: "no subscriptions at all",
			subs: nil,
			want: ReasonNoActiveSubscription,
		},
		{
			name: "latest subscription ended before class",
			subs: []*entity.Subscription{
				sub(entity.ModelSubscription3, day(2025, time.April, 1), day(2025, time.April, 30)),
			},
			want: ReasonSubscriptionExpired,
		},
		{
			name: "subscription starts after class",
			subs: []*entity.Subscription{
				sub(entity.ModelSubscription3, day(2025, time.July, 1), day(2025, time.July, 31)),
			},
			want: ReasonNoActiveSubscription,
		},
		{
			name: "older covering subscription wins over newer expired",
			subs: []*entity.Subscription{
				sub(entity.ModelSubscription3, day(2025, time.June, 1), day(2025, time.June, 30)),
				sub(entity.ModelSubscription2, day(2025, time.May, 1), day(2025, time.May, 31)),
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(ChargeFirstWithRemaining)
			decision, rej := e.Evaluate(tt.subs, nil, class)
			if tt.want == "" {
				require.Nil(t, rej)
				require.NotNil(t, decision)
				assert.Equal(t, entity.ModelSubscription3, decision.Subscription.Model)
			} else {
				require.NotNil(t, rej)
				assert.Equal(t, tt.want, rej.Reason)
				assert.NotEmpty(t, rej.Message)
			}
		})
	}
}

func TestEvaluatePicksMostRecentlyStarted(t *testing.T) {
	classDate := day(2025, time.June, 10)
	older := sub(entity.ModelSubscription5, day(2025, time.May, 15), day(2025, time.June, 14))
	newer := sub(entity.ModelSubscription2, day(2025, time.June, 1), day(2025, time.June, 30))

	e := NewEvaluator(ChargeFirstWithRemaining)
	decision, rej := e.Evaluate([]*entity.Subscription{older, newer},
		nil, ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: classDate})

	require.Nil(t, rej)
	assert.Equal(t, newer.ID, decision.Subscription.ID)
}

func TestEvaluateClassTypeGate(t *testing.T) {
	window := []time.Time{day(2025, time.June, 1), day(2025, time.June, 30)}
	classDate := day(2025, time.June, 10)

	tests := []struct {
		name      string
		model     entity.SubscriptionModel
		className string
		want      Reason
	}{
		{"weekly model rejected for cadillac class", entity.ModelSubscription3, "Cadillac Flow", ReasonClassTypeMismatch},
		{"free model rejected for cadillac class", entity.ModelFree, "Cadillac Flow", ReasonClassTypeMismatch},
		{"plain package rejected for cadillac class", entity.ModelPackage10, "Cadillac Flow", ReasonClassTypeMismatch},
		{"cadillac package rejected for plain class", entity.ModelCadillacPackage5, "Mat Pilates", ReasonClassTypeMismatch},
		{"family cadillac allowed for cadillac class", entity.ModelFamily3Cadillac, "Cadillac Flow", ""},
		{"family cadillac allowed for plain class", entity.ModelFamily3Cadillac, "Mat Pilates", ""},
		{"marker match is case-insensitive", entity.ModelSubscription3, "CADILLAC flow", ReasonClassTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEvaluator(ChargeFirstWithRemaining)
			_, rej := e.Evaluate(
				[]*entity.Subscription{sub(tt.model, window[0], window[1])},
				nil,
				ClassView{ID: uuid.New(), Name: tt.className, Date: classDate},
			)
			if tt.want == "" {
				assert.Nil(t, rej)
			} else {
				require.NotNil(t, rej)
				assert.Equal(t, tt.want, rej.Reason)
			}
		})
	}
}

func TestEvaluateDailyCap(t *testing.T) {
	s := sub(entity.ModelSubscription5, day(2025, time.June, 1), day(2025, time.June, 30))
	classDate := day(2025, time.June, 10)

	// A pending booking on the same day still blocks: the cap counts any
	// status.
	existing := BookingView{
		ClassID:   uuid.New(),
		ClassName: "Mat Pilates",
		Date:      classDate,
		Status:    entity.BookingStatusPending,
	}

	e := NewEvaluator(ChargeFirstWithRemaining)
	_, rej := e.Evaluate([]*entity.Subscription{s}, []BookingView{existing},
		ClassView{ID: uuid.New(), Name: "Pilates Reformer", Date: classDate})

	require.NotNil(t, rej)
	assert.Equal(t, ReasonDailyLimitExceeded, rej.Reason)
}

func TestEvaluateWeeklyCap(t *testing.T) {
	// 2025-06-09 is a Monday.
	s := sub(entity.ModelSubscription2, day(2025, time.June, 1), day(2025, time.June, 30))
	monday := day(2025, time.June, 9)
	wednesday := day(2025, time.June, 11)
	thursday := day(2025, time.June, 12)
	nextMonday := day(2025, time.June, 16)

	e := NewEvaluator(ChargeFirstWithRemaining)
	subs := []*entity.Subscription{s}

	// Two bookings Mon and Wed fill the 2-per-week model.
	bookings := []BookingView{
		booked("Mat Pilates", monday),
		booked("Mat Pilates", wednesday),
	}

	_, rej := e.Evaluate(subs, bookings, ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: thursday})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonWeeklyLimitExceeded, rej.Reason)
	assert.Contains(t, rej.Message, "2")

	// The following Monday is a fresh ISO week.
	decision, rej := e.Evaluate(subs, bookings, ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: nextMonday})
	assert.Nil(t, rej)
	assert.NotNil(t, decision)
}

func TestEvaluateWeeklyCapSundayBelongsToSameWeek(t *testing.T) {
	s := sub(entity.ModelSubscription2, day(2025, time.June, 1), day(2025, time.June, 30))
	e := NewEvaluator(ChargeFirstWithRemaining)

	// Bookings on Monday 9th and Saturday 14th; Sunday 15th closes the
	// same ISO week.
	bookings := []BookingView{
		booked("Mat Pilates", day(2025, time.June, 9)),
		booked("Mat Pilates", day(2025, time.June, 14)),
	}

	_, rej := e.Evaluate([]*entity.Subscription{s}, bookings,
		ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: day(2025, time.June, 15)})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonWeeklyLimitExceeded, rej.Reason)
}

func TestEvaluatePackageQuota(t *testing.T) {
	total := 2
	pkg := sub(entity.ModelPackage10, day(2025, time.June, 1), day(2025, time.June, 30))
	pkg.PackageTotal = &total

	e := NewEvaluator(ChargeFirstWithRemaining)
	subs := []*entity.Subscription{pkg}

	bookings := []BookingView{
		booked("Mat Pilates", day(2025, time.June, 2)),
		booked("Mat Pilates", day(2025, time.June, 4)),
	}

	_, rej := e.Evaluate(subs, bookings, ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: day(2025, time.June, 6)})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonPackageExhausted, rej.Reason)

	// Cancelled bookings do not consume the package.
	bookings[1].Status = entity.BookingStatusCancelled
	decision, rej := e.Evaluate(subs, bookings, ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: day(2025, time.June, 6)})
	require.Nil(t, rej)
	require.NotNil(t, decision.Charge)
	assert.Equal(t, pkg.ID, decision.Charge.ID)
}

func TestEvaluateChargePolicy(t *testing.T) {
	exhaustedTotal := 1
	first := sub(entity.ModelPackage10, day(2025, time.June, 1), day(2025, time.June, 30))
	first.PackageTotal = &exhaustedTotal
	second := sub(entity.ModelPackage15, day(2025, time.June, 5), day(2025, time.June, 30))

	subs := []*entity.Subscription{second, first}
	bookings := []BookingView{booked("Mat Pilates", day(2025, time.June, 2))}
	class := ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: day(2025, time.June, 20)}

	// first_with_remaining skips the used-up earlier package.
	decision, rej := NewEvaluator(ChargeFirstWithRemaining).Evaluate(subs, bookings, class)
	require.Nil(t, rej)
	require.NotNil(t, decision.Charge)
	assert.Equal(t, second.ID, decision.Charge.ID)

	// earliest charges the first-started package only.
	_, rej = NewEvaluator(ChargeEarliest).Evaluate(subs, bookings, class)
	require.NotNil(t, rej)
	assert.Equal(t, ReasonPackageExhausted, rej.Reason)
}

func TestEvaluatePackageTypeFilterOnCharge(t *testing.T) {
	// A cadillac package with capacity cannot absorb a plain-class booking
	// when the plain package is used up: the selected plain package rules.
	plainTotal := 1
	plain := sub(entity.ModelPackage10, day(2025, time.June, 1), day(2025, time.June, 30))
	plain.PackageTotal = &plainTotal
	cadillac := sub(entity.ModelCadillacPackage10, day(2025, time.May, 20), day(2025, time.June, 30))

	bookings := []BookingView{booked("Mat Pilates", day(2025, time.June, 2))}

	_, rej := NewEvaluator(ChargeFirstWithRemaining).Evaluate(
		[]*entity.Subscription{plain, cadillac}, bookings,
		ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: day(2025, time.June, 10)})

	require.NotNil(t, rej)
	assert.Equal(t, ReasonPackageExhausted, rej.Reason)
}

func TestStartOfISOWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", day(2025, time.June, 9), day(2025, time.June, 9)},
		{"wednesday maps back to monday", day(2025, time.June, 11), day(2025, time.June, 9)},
		{"sunday maps back to monday", day(2025, time.June, 15), day(2025, time.June, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startOfISOWeek(tt.in))
		})
	}
}
