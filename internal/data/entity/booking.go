package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	BaseSimple
	UserID  uuid.UUID     `db:"user_id"`
	ClassID uuid.UUID     `db:"class_id"`
	Status  BookingStatus `db:"status"`

	// Joined class record, populated by queries that need schedule data.
	Class *Class `db:"-"`
}
