package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Εκκρεμεί"
	PaymentStatusPaid    PaymentStatus = "Πληρωμένη"
)

type SubscriptionModel string

const (
	ModelSubscription2     SubscriptionModel = "συνδρομή *2"
	ModelSubscription3     SubscriptionModel = "συνδρομή *3"
	ModelSubscription5     SubscriptionModel = "συνδρομή *5"
	ModelFamily2           SubscriptionModel = "family *2"
	ModelFamily3           SubscriptionModel = "family *3"
	ModelFamily3Cadillac   SubscriptionModel = "family *3 + Cadillac"
	ModelYoga4             SubscriptionModel = "πακέτο 4 YOGA"
	ModelPackage10         SubscriptionModel = "πακέτο 10"
	ModelPackage15         SubscriptionModel = "πακέτο 15"
	ModelPackage20         SubscriptionModel = "πακέτο 20"
	ModelCadillacPackage5  SubscriptionModel = "πακέτο Cadillac 5"
	ModelCadillacPackage10 SubscriptionModel = "πακέτο Cadillac 10"
	ModelFree              SubscriptionModel = "ελεύθερη"
)

type Subscription struct {
	BaseSimple
	UserID           uuid.UUID         `db:"user_id"`
	Model            SubscriptionModel `db:"model"`
	StartDate        time.Time         `db:"start_date"`
	EndDate          time.Time         `db:"end_date"`
	PackageTotal     *int              `db:"package_total"`
	RemainingClasses *int              `db:"remaining_classes"`
	Price            *float64          `db:"price"`
	PaymentStatus    *PaymentStatus    `db:"payment_status"`
	Note             *string           `db:"note"`
}

// Covers reports whether the subscription window contains the given day.
func (s *Subscription) Covers(day time.Time) bool {
	return !day.Before(s.StartDate) && !day.After(s.EndDate)
}
