package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	ClassID   string               `json:"class_id"`
	ClassName string               `json:"class_name,omitempty"`
	Date      string               `json:"date,omitempty"`
	StartTime string               `json:"start_time,omitempty"`
	Status    entity.BookingStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID.String(),
		UserID:    b.UserID.String(),
		ClassID:   b.ClassID.String(),
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
	if b.Class != nil {
		resp.ClassName = b.Class.Name
		resp.Date = b.Class.Date.Format("2006-01-02")
		resp.StartTime = b.Class.StartTime
	}
	return resp
}
