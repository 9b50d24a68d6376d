package entity

import (
	"fmt"
	"time"
)

type Class struct {
	BaseSimple
	Name            string    `db:"name"`
	Date            time.Time `db:"date"`
	StartTime       string    `db:"start_time"`
	MaxParticipants int       `db:"max_participants"`

	// Derived from confirmed bookings, never read from storage.
	CurrentParticipants int `db:"-"`
}

// StartsAt combines the class date and "HH:MM" start time in the studio
// timezone.
func (c *Class) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", c.StartTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse class start time %q: %w", c.StartTime, err)
	}
	return time.Date(c.Date.Year(), c.Date.Month(), c.Date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
