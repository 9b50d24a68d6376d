package rules

import (
	"fmt"
	"sort"
	"time"

	"studio-booking/internal/data/entity"

	"github.com/google/uuid"
)

// ChargePolicy decides which package subscription a booking is charged
// against when a member holds several overlapping ones.
type ChargePolicy string

const (
	// ChargeFirstWithRemaining walks packages by start date ascending and
	// charges the first one with capacity left.
	ChargeFirstWithRemaining ChargePolicy = "first_with_remaining"
	// ChargeEarliest always charges the earliest-started package, even if
	// a later one still has capacity.
	ChargeEarliest ChargePolicy = "earliest"
)

// ClassView is the schedule snapshot of the class being booked.
type ClassView struct {
	ID   uuid.UUID
	Name string
	Date time.Time
}

// Decision is a successful evaluation. Charge is the package subscription
// the booking consumes a class from, nil for weekly and free models.
type Decision struct {
	Subscription *entity.Subscription
	Charge       *entity.Subscription
}

// Evaluator applies the studio's booking rules to in-memory snapshots.
// It is pure: all state comes in as arguments and nothing is written.
type Evaluator struct {
	policy ChargePolicy
}

func NewEvaluator(policy ChargePolicy) *Evaluator {
	if policy != ChargeEarliest {
		policy = ChargeFirstWithRemaining
	}
	return &Evaluator{policy: policy}
}

// Evaluate runs the rule pipeline for one candidate booking. The first
// failing rule wins and its rejection is returned; a nil rejection means
// the booking is allowed. Cutoff gates (minutes before class start) are
// the caller's concern, not the evaluator's: every rule here is driven by
// the class calendar date.
func (e *Evaluator) Evaluate(subs []*entity.Subscription, bookings []BookingView, class ClassView) (*Decision, *Rejection) {
	sub, rej := selectSubscription(subs, class.Date)
	if rej != nil {
		return nil, rej
	}

	spec := SpecFor(sub.Model)
	premiumClass := IsPremiumClass(class.Name)

	if premiumClass && !spec.Premium {
		return nil, RejectMsg(ReasonClassTypeMismatch,
			"Μόνο οι συνδρομές Cadillac μπορούν να κλείσουν Cadillac Flow μαθήματα.")
	}
	if spec.PremiumOnly && !premiumClass {
		return nil, RejectMsg(ReasonClassTypeMismatch,
			"Το πακέτο αυτό ισχύει μόνο για Cadillac Flow μαθήματα.")
	}

	if countOnDay(bookings, class.Date) >= 1 {
		return nil, Reject(ReasonDailyLimitExceeded)
	}

	if spec.WeeklyAllowance > 0 {
		if countInISOWeek(bookings, class.Date) >= spec.WeeklyAllowance {
			return nil, RejectMsg(ReasonWeeklyLimitExceeded, fmt.Sprintf(
				"Η συνδρομή σας, σας επιτρέπει έως %d κρατήσεις την εβδομάδα.", spec.WeeklyAllowance))
		}
	}

	decision := &Decision{Subscription: sub}
	if spec.IsPackage {
		charge, rej := e.selectCharge(subs, bookings, class.Date, premiumClass)
		if rej != nil {
			return nil, rej
		}
		decision.Charge = charge
	}

	return decision, nil
}

// selectSubscription picks the most-recently-started subscription whose
// window contains the class date. When nothing covers the date, a member
// whose latest subscription ran out before the class gets the expiry
// message rather than the generic one.
func selectSubscription(subs []*entity.Subscription, day time.Time) (*entity.Subscription, *Rejection) {
	if len(subs) == 0 {
		return nil, Reject(ReasonNoActiveSubscription)
	}

	ordered := make([]*entity.Subscription, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartDate.After(ordered[j].StartDate)
	})

	for _, sub := range ordered {
		if sub.Covers(day) {
			return sub, nil
		}
	}

	if ordered[0].EndDate.Before(day) {
		return nil, Reject(ReasonSubscriptionExpired)
	}
	return nil, Reject(ReasonNoActiveSubscription)
}

// selectCharge picks the package subscription the booking consumes,
// restricted to packages whose premium filter matches the class.
func (e *Evaluator) selectCharge(subs []*entity.Subscription, bookings []BookingView, day time.Time, premiumClass bool) (*entity.Subscription, *Rejection) {
	var candidates []*entity.Subscription
	for _, sub := range packagesByStart(subs, day) {
		if SpecFor(sub.Model).Premium == premiumClass {
			candidates = append(candidates, sub)
		}
	}
	if len(candidates) == 0 {
		return nil, Reject(ReasonPackageExhausted)
	}

	if e.policy == ChargeEarliest {
		if remaining, _ := Remaining(candidates[0], bookings); remaining <= 0 {
			return nil, Reject(ReasonPackageExhausted)
		}
		return candidates[0], nil
	}

	for _, sub := range candidates {
		if remaining, _ := Remaining(sub, bookings); remaining > 0 {
			return sub, nil
		}
	}
	return nil, Reject(ReasonPackageExhausted)
}

// countOnDay counts bookings of any status on the class's calendar date.
func countOnDay(bookings []BookingView, day time.Time) int {
	n := 0
	for _, b := range bookings {
		if sameDay(b.Date, day) {
			n++
		}
	}
	return n
}

// countInISOWeek counts bookings of any status whose class date falls in
// the Monday-to-Sunday week containing day.
func countInISOWeek(bookings []BookingView, day time.Time) int {
	monday := startOfISOWeek(day)
	sunday := monday.AddDate(0, 0, 6)

	n := 0
	for _, b := range bookings {
		d := dateOnly(b.Date)
		if !d.Before(monday) && !d.After(sunday) {
			n++
		}
	}
	return n
}

func startOfISOWeek(day time.Time) time.Time {
	d := dateOnly(day)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
