package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type UserResponse struct {
	ID            string            `json:"id"`
	Phone         string            `json:"phone"`
	PIN           *int              `json:"pin,omitempty"`
	Name          string            `json:"name"`
	City          *string           `json:"city,omitempty"`
	Gender        *string           `json:"gender,omitempty"`
	Role          string            `json:"role"`
	AcceptedTerms bool              `json:"accepted_terms"`
	CreatedAt     time.Time         `json:"created_at"`
	Bookings      []BookingResponse `json:"bookings,omitempty"`
}

func UserToResponse(u *entity.User, bookings []*entity.Booking) UserResponse {
	resp := UserResponse{
		ID:            u.ID.String(),
		Phone:         u.Phone,
		PIN:           u.PIN,
		Name:          u.Name,
		City:          u.City,
		Role:          string(u.Role),
		AcceptedTerms: u.AcceptedTerms,
		CreatedAt:     u.CreatedAt,
	}
	if u.Gender != nil {
		gender := string(*u.Gender)
		resp.Gender = &gender
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, BookingToResponse(b))
	}
	return resp
}

// UserSummaryResponse is the admin list row, without booking details.
type UserSummaryResponse struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func UserToSummary(u *entity.User) UserSummaryResponse {
	return UserSummaryResponse{
		ID:    u.ID.String(),
		Phone: u.Phone,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}
