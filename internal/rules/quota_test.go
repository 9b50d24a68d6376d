package rules

import (
	"testing"
	"time"

	"studio-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingNotApplicableForWeeklyModels(t *testing.T) {
	for _, model := range []entity.SubscriptionModel{
		entity.ModelSubscription2,
		entity.ModelSubscription5,
		entity.ModelFamily3Cadillac,
		entity.ModelFree,
	} {
		s := sub(model, day(2025, time.June, 1), day(2025, time.June, 30))
		_, ok := Remaining(s, nil)
		assert.False(t, ok, "model %s must not be treated as a package", model)
	}
}

func TestRemainingCountsOnlyMatchingBookings(t *testing.T) {
	total := 10
	pkg := sub(entity.ModelPackage10, day(2025, time.June, 1), day(2025, time.June, 30))
	pkg.PackageTotal = &total

	bookings := []BookingView{
		booked("Mat Pilates", day(2025, time.June, 3)),      // counts
		booked("Pilates Reformer", day(2025, time.June, 5)), // counts
		booked("Cadillac Flow", day(2025, time.June, 7)),    // premium, filtered out
		booked("Mat Pilates", day(2025, time.May, 20)),      // before window
		booked("Mat Pilates", day(2025, time.July, 2)),      // after window
		{ClassID: uuid.New(), ClassName: "Mat Pilates", Date: day(2025, time.June, 9), Status: entity.BookingStatusCancelled},
	}

	remaining, ok := Remaining(pkg, bookings)
	require.True(t, ok)
	assert.Equal(t, 8, remaining)
}

func TestRemainingPremiumPackageCountsOnlyPremium(t *testing.T) {
	pkg := sub(entity.ModelCadillacPackage5, day(2025, time.June, 1), day(2025, time.June, 30))

	bookings := []BookingView{
		booked("Cadillac Flow", day(2025, time.June, 3)),
		booked("Mat Pilates", day(2025, time.June, 5)), // plain, filtered out
	}

	remaining, ok := Remaining(pkg, bookings)
	require.True(t, ok)
	assert.Equal(t, 4, remaining)
}

func TestRemainingNeverNegative(t *testing.T) {
	total := 1
	pkg := sub(entity.ModelPackage10, day(2025, time.June, 1), day(2025, time.June, 30))
	pkg.PackageTotal = &total

	bookings := []BookingView{
		booked("Mat Pilates", day(2025, time.June, 3)),
		booked("Mat Pilates", day(2025, time.June, 4)),
	}

	remaining, ok := Remaining(pkg, bookings)
	require.True(t, ok)
	assert.Equal(t, 0, remaining)
}

func TestRemainingFullPackageScenario(t *testing.T) {
	// Package of 10 valid through June; ten confirmed matching bookings
	// exhaust it, cancelling one restores a slot on recompute.
	pkg := sub(entity.ModelPackage10, day(2025, time.June, 1), day(2025, time.June, 30))

	bookings := make([]BookingView, 0, 10)
	for i := 0; i < 10; i++ {
		bookings = append(bookings, booked("Mat Pilates", day(2025, time.June, 2+i)))
	}

	remaining, ok := Remaining(pkg, bookings)
	require.True(t, ok)
	assert.Equal(t, 0, remaining)

	_, rej := NewEvaluator(ChargeFirstWithRemaining).Evaluate(
		[]*entity.Subscription{pkg}, bookings,
		ClassView{ID: uuid.New(), Name: "Mat Pilates", Date: day(2025, time.June, 25)})
	require.NotNil(t, rej)
	assert.Equal(t, ReasonPackageExhausted, rej.Reason)

	bookings[0].Status = entity.BookingStatusCancelled
	remaining, ok = Remaining(pkg, bookings)
	require.True(t, ok)
	assert.Equal(t, 1, remaining)
}

func TestRemainingAll(t *testing.T) {
	weekly := sub(entity.ModelSubscription3, day(2025, time.June, 1), day(2025, time.June, 30))
	plain := sub(entity.ModelPackage15, day(2025, time.June, 1), day(2025, time.June, 30))
	premium := sub(entity.ModelCadillacPackage5, day(2025, time.June, 1), day(2025, time.June, 30))

	bookings := []BookingView{
		booked("Mat Pilates", day(2025, time.June, 3)),
		booked("Cadillac Flow", day(2025, time.June, 4)),
		booked("Cadillac Flow", day(2025, time.June, 6)),
	}

	summaries := RemainingAll([]*entity.Subscription{weekly, plain, premium}, bookings)
	require.Len(t, summaries, 2, "weekly models are skipped, not reported as zero")

	byID := map[uuid.UUID]QuotaSummary{}
	for _, s := range summaries {
		byID[s.SubscriptionID] = s
	}

	assert.Equal(t, 1, byID[plain.ID].UsedClasses)
	assert.Equal(t, 14, byID[plain.ID].RemainingClasses)
	assert.Equal(t, 15, byID[plain.ID].PackageTotal)

	assert.Equal(t, 2, byID[premium.ID].UsedClasses)
	assert.Equal(t, 3, byID[premium.ID].RemainingClasses)
}
