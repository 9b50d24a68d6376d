package request

type CreateSubscriptionRequest struct {
	UserID        string   `json:"user_id" validate:"required,uuid4"`
	Model         string   `json:"model" validate:"required"`
	StartDate     string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	PackageTotal  *int     `json:"package_total,omitempty" validate:"omitempty,min=1"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	PaymentStatus *string  `json:"payment_status,omitempty" validate:"omitempty,oneof=Εκκρεμεί Πληρωμένη"`
	Note          *string  `json:"note,omitempty"`
}

type UpdateSubscriptionRequest struct {
	Model         *string  `json:"model,omitempty"`
	StartDate     *string  `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string  `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PackageTotal  *int     `json:"package_total,omitempty" validate:"omitempty,min=1"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,min=0"`
	PaymentStatus *string  `json:"payment_status,omitempty" validate:"omitempty,oneof=Εκκρεμεί Πληρωμένη"`
	Note          *string  `json:"note,omitempty"`
}
