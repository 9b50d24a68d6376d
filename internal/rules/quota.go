package rules

import (
	"sort"
	"time"

	"studio-booking/internal/data/entity"

	"github.com/google/uuid"
)

// BookingView is the snapshot row the engine works on: a booking joined
// with the schedule data of its class. The persistence layer supplies
// these; the engine itself performs no I/O.
type BookingView struct {
	ClassID   uuid.UUID
	ClassName string
	Date      time.Time
	Status    entity.BookingStatus
}

// QuotaSummary is the per-subscription result of a remaining-classes
// computation for a package model.
type QuotaSummary struct {
	SubscriptionID   uuid.UUID
	Model            entity.SubscriptionModel
	StartDate        time.Time
	EndDate          time.Time
	PackageTotal     int
	UsedClasses      int
	RemainingClasses int
}

// Remaining derives the remaining class count of a package subscription
// from the booking snapshot. ok is false when the model is not a package;
// callers must not treat that as an exhausted package.
func Remaining(sub *entity.Subscription, bookings []BookingView) (remaining int, ok bool) {
	spec := SpecFor(sub.Model)
	if !spec.IsPackage {
		return 0, false
	}

	used := countUsed(sub, spec, bookings)
	remaining = packageTotal(sub, spec) - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// RemainingAll computes one summary per package subscription, skipping
// non-package models entirely.
func RemainingAll(subs []*entity.Subscription, bookings []BookingView) []QuotaSummary {
	summaries := make([]QuotaSummary, 0, len(subs))
	for _, sub := range subs {
		spec := SpecFor(sub.Model)
		if !spec.IsPackage {
			continue
		}

		used := countUsed(sub, spec, bookings)
		total := packageTotal(sub, spec)
		remaining := total - used
		if remaining < 0 {
			remaining = 0
		}

		summaries = append(summaries, QuotaSummary{
			SubscriptionID:   sub.ID,
			Model:            sub.Model,
			StartDate:        sub.StartDate,
			EndDate:          sub.EndDate,
			PackageTotal:     total,
			UsedClasses:      used,
			RemainingClasses: remaining,
		})
	}
	return summaries
}

// countUsed counts confirmed bookings inside the subscription window whose
// class matches the model's premium filter. Premium packages count premium
// classes only, everything else counts non-premium only; the two sets never
// overlap.
func countUsed(sub *entity.Subscription, spec ModelSpec, bookings []BookingView) int {
	used := 0
	for _, b := range bookings {
		if b.Status != entity.BookingStatusConfirmed {
			continue
		}
		if !sub.Covers(b.Date) {
			continue
		}
		if IsPremiumClass(b.ClassName) != spec.Premium {
			continue
		}
		used++
	}
	return used
}

// packagesByStart returns the package subscriptions covering day, ordered
// by start date ascending for deterministic charging.
func packagesByStart(subs []*entity.Subscription, day time.Time) []*entity.Subscription {
	var packages []*entity.Subscription
	for _, sub := range subs {
		if SpecFor(sub.Model).IsPackage && sub.Covers(day) {
			packages = append(packages, sub)
		}
	}
	sort.SliceStable(packages, func(i, j int) bool {
		return packages[i].StartDate.Before(packages[j].StartDate)
	})
	return packages
}
