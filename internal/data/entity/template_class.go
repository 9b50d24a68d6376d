package entity

// TemplateClass is a weekly schedule slot that gets materialized into
// calendar classes. Weekday follows ISO order, 0 = Monday.
type TemplateClass struct {
	BaseSimple
	Name            string `db:"name"`
	Weekday         int    `db:"weekday"`
	StartTime       string `db:"start_time"`
	MaxParticipants int    `db:"max_participants"`
	IsActive        bool   `db:"is_active"`
}
