package adaptor

import (
	"encoding/json"
	"net/http"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	service usecase.SubscriptionService
	log     *zap.Logger
}

func NewSubscriptionHandler(service usecase.SubscriptionService, log *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/admin/subscriptions
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSubscriptionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create subscription")
		return
	}

	utils.ResponseCreated(w, "Subscription created", resp)
}

// Get handles GET /api/admin/subscriptions/{id}
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid subscription ID", nil)
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get subscription")
		return
	}

	utils.ResponseSuccess(w, "Subscription retrieved", resp)
}

// ListForUser handles GET /api/admin/users/{id}/subscriptions
func (h *SubscriptionHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	subs, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err, "list subscriptions")
		return
	}

	utils.ResponseSuccess(w, "Subscriptions retrieved", subs)
}

// Update handles PUT /api/admin/subscriptions/{id}
func (h *SubscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid subscription ID", nil)
		return
	}

	var req request.UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update subscription")
		return
	}

	utils.ResponseSuccess(w, "Subscription updated", resp)
}

// Delete handles DELETE /api/admin/subscriptions/{id}
func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid subscription ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete subscription")
		return
	}

	utils.ResponseNoContent(w)
}

// MySubscriptions handles GET /api/me/subscriptions
func (h *SubscriptionHandler) MySubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	subs, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err, "list subscriptions")
		return
	}

	utils.ResponseSuccess(w, "Subscriptions retrieved", subs)
}

// MyQuota handles GET /api/me/quota
func (h *SubscriptionHandler) MyQuota(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	quota, err := h.service.Quota(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err, "compute quota")
		return
	}

	utils.ResponseSuccess(w, "Quota computed", quota)
}

// MySubscriptionQuota handles GET /api/me/subscriptions/{id}/quota
func (h *SubscriptionHandler) MySubscriptionQuota(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	subscriptionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid subscription ID", nil)
		return
	}

	quota, err := h.service.QuotaForSubscription(r.Context(), userID, subscriptionID)
	if err != nil {
		respondError(w, h.log, err, "compute quota")
		return
	}

	utils.ResponseSuccess(w, "Quota computed", quota)
}

// UserQuota handles GET /api/admin/users/{id}/quota
func (h *SubscriptionHandler) UserQuota(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	quota, err := h.service.Quota(r.Context(), userID)
	if err != nil {
		respondError(w, h.log, err, "compute quota")
		return
	}

	utils.ResponseSuccess(w, "Quota computed", quota)
}
