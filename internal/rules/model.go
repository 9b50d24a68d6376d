package rules

import (
	"strings"

	"studio-booking/internal/data/entity"
)

// premiumMarker tags the studio's premium-equipment classes. Class records
// carry no structured flag, so the class side stays a name match; the
// subscription side is fully structured via ModelSpec.
const premiumMarker = "cadillac"

// ModelSpec holds the structured attributes of a subscription model.
// Weekly models cap bookings per ISO week; package models carry a fixed
// class count inside the validity window.
type ModelSpec struct {
	// WeeklyAllowance is the bookings-per-ISO-week cap for weekly models.
	// Zero means no weekly cap applies.
	WeeklyAllowance int
	// PackageTotal is the default class count for package models; the
	// subscription record may override it.
	PackageTotal int
	IsPackage    bool
	// Premium models may book premium (Cadillac) classes.
	Premium bool
	// PremiumOnly package models book and count premium classes
	// exclusively.
	PremiumOnly bool
}

var modelSpecs = map[entity.SubscriptionModel]ModelSpec{
	entity.ModelSubscription2:     {WeeklyAllowance: 2},
	entity.ModelSubscription3:     {WeeklyAllowance: 3},
	entity.ModelSubscription5:     {WeeklyAllowance: 5},
	entity.ModelFamily2:           {WeeklyAllowance: 2},
	entity.ModelFamily3:           {WeeklyAllowance: 3},
	entity.ModelFamily3Cadillac:   {WeeklyAllowance: 3, Premium: true},
	entity.ModelYoga4:             {IsPackage: true, PackageTotal: 4},
	entity.ModelPackage10:         {IsPackage: true, PackageTotal: 10},
	entity.ModelPackage15:         {IsPackage: true, PackageTotal: 15},
	entity.ModelPackage20:         {IsPackage: true, PackageTotal: 20},
	entity.ModelCadillacPackage5:  {IsPackage: true, PackageTotal: 5, Premium: true, PremiumOnly: true},
	entity.ModelCadillacPackage10: {IsPackage: true, PackageTotal: 10, Premium: true, PremiumOnly: true},
	entity.ModelFree:              {},
}

// SpecFor returns the structured attributes for a subscription model.
// Unknown models behave like the unrestricted "free" model.
func SpecFor(model entity.SubscriptionModel) ModelSpec {
	return modelSpecs[model]
}

// IsPremiumClass reports whether a class belongs to the premium category.
func IsPremiumClass(className string) bool {
	return strings.Contains(strings.ToLower(className), premiumMarker)
}

// PackageTotalFor resolves the effective class count of a package
// subscription, preferring the per-record total over the model default.
// Zero for non-package models.
func PackageTotalFor(sub *entity.Subscription) int {
	spec := SpecFor(sub.Model)
	if !spec.IsPackage {
		return 0
	}
	return packageTotal(sub, spec)
}

// packageTotal resolves the effective class count of a package
// subscription, preferring the per-record total over the model default.
func packageTotal(sub *entity.Subscription, spec ModelSpec) int {
	if sub.PackageTotal != nil {
		return *sub.PackageTotal
	}
	return spec.PackageTotal
}
