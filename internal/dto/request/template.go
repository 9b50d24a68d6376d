package request

type CreateTemplateRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Weekday         *int   `json:"weekday" validate:"required,min=0,max=6"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	MaxParticipants int    `json:"max_participants" validate:"required,min=1,max=50"`
	IsActive        *bool  `json:"is_active,omitempty"`
}

type UpdateTemplateRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Weekday         *int    `json:"weekday,omitempty" validate:"omitempty,min=0,max=6"`
	StartTime       *string `json:"start_time,omitempty" validate:"omitempty,datetime=15:04"`
	MaxParticipants *int    `json:"max_participants,omitempty" validate:"omitempty,min=1,max=50"`
	IsActive        *bool   `json:"is_active,omitempty"`
}
