package request

type CreateBookingRequest struct {
	ClassID string `json:"class_id" validate:"required,uuid4"`
}
