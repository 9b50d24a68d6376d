package response

import (
	"studio-booking/internal/data/entity"
	"studio-booking/internal/rules"
)

type SubscriptionResponse struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	Model            string   `json:"model"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	PackageTotal     *int     `json:"package_total,omitempty"`
	RemainingClasses *int     `json:"remaining_classes,omitempty"`
	Price            *float64 `json:"price,omitempty"`
	PaymentStatus    *string  `json:"payment_status,omitempty"`
	Note             *string  `json:"note,omitempty"`
}

func SubscriptionToResponse(s *entity.Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:               s.ID.String(),
		UserID:           s.UserID.String(),
		Model:            string(s.Model),
		StartDate:        s.StartDate.Format("2006-01-02"),
		EndDate:          s.EndDate.Format("2006-01-02"),
		PackageTotal:     s.PackageTotal,
		RemainingClasses: s.RemainingClasses,
		Price:            s.Price,
		Note:             s.Note,
	}
	if s.PaymentStatus != nil {
		status := string(*s.PaymentStatus)
		resp.PaymentStatus = &status
	}
	return resp
}

// QuotaSummaryResponse mirrors the quota calculator output for one package
// subscription.
type QuotaSummaryResponse struct {
	SubscriptionID   string `json:"subscription_id"`
	Model            string `json:"subscription_model"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	PackageTotal     int    `json:"package_total"`
	UsedClasses      int    `json:"used_classes"`
	RemainingClasses int    `json:"remaining_classes"`
}

func QuotaToResponse(q rules.QuotaSummary) QuotaSummaryResponse {
	return QuotaSummaryResponse{
		SubscriptionID:   q.SubscriptionID.String(),
		Model:            string(q.Model),
		StartDate:        q.StartDate.Format("2006-01-02"),
		EndDate:          q.EndDate.Format("2006-01-02"),
		PackageTotal:     q.PackageTotal,
		UsedClasses:      q.UsedClasses,
		RemainingClasses: q.RemainingClasses,
	}
}
