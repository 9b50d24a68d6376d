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

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

// CreateTemplate handles POST /api/admin/templates
func (h *ScheduleHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTemplateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.CreateTemplate(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create template")
		return
	}

	utils.ResponseCreated(w, "Template created", resp)
}

// ListTemplates handles GET /api/admin/templates
func (h *ScheduleHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context())
	if err != nil {
		respondError(w, h.log, err, "list templates")
		return
	}

	utils.ResponseSuccess(w, "Templates retrieved", templates)
}

// UpdateTemplate handles PUT /api/admin/templates/{id}
func (h *ScheduleHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid template ID", nil)
		return
	}

	var req request.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.UpdateTemplate(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update template")
		return
	}

	utils.ResponseSuccess(w, "Template updated", resp)
}

// DeleteTemplate handles DELETE /api/admin/templates/{id}
func (h *ScheduleHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid template ID", nil)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete template")
		return
	}

	utils.ResponseNoContent(w)
}

// Generate handles POST /api/admin/schedule/generate
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "generate schedule")
		return
	}

	utils.ResponseCreated(w, "Schedule generated", map[string]int{"classes_created": created})
}
