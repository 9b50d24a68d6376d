package response

import (
	"studio-booking/internal/data/entity"
)

type ClassResponse struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Date                string `json:"date"`
	StartTime           string `json:"start_time"`
	MaxParticipants     int    `json:"max_participants"`
	CurrentParticipants int    `json:"current_participants"`
}

func ClassToResponse(c *entity.Class) ClassResponse {
	return ClassResponse{
		ID:                  c.ID.String(),
		Name:                c.Name,
		Date:                c.Date.Format("2006-01-02"),
		StartTime:           c.StartTime,
		MaxParticipants:     c.MaxParticipants,
		CurrentParticipants: c.CurrentParticipants,
	}
}

type TemplateClassResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Weekday         int    `json:"weekday"`
	StartTime       string `json:"start_time"`
	MaxParticipants int    `json:"max_participants"`
	IsActive        bool   `json:"is_active"`
}

func TemplateToResponse(t *entity.TemplateClass) TemplateClassResponse {
	return TemplateClassResponse{
		ID:              t.ID.String(),
		Name:            t.Name,
		Weekday:         t.Weekday,
		StartTime:       t.StartTime,
		MaxParticipants: t.MaxParticipants,
		IsActive:        t.IsActive,
	}
}
