package request

type CreateClassRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	MaxParticipants int    `json:"max_participants" validate:"required,min=1,max=50"`
}

// GenerateScheduleRequest materializes active weekly templates into
// calendar classes for the inclusive date range.
type GenerateScheduleRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to" validate:"required,datetime=2006-01-02"`
}
