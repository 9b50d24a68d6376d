package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"studio-booking/internal/dto/request"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClassHandler struct {
	service usecase.ClassService
	log     *zap.Logger
}

func NewClassHandler(service usecase.ClassService, log *zap.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/admin/classes
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClassRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create class")
		return
	}

	utils.ResponseCreated(w, "Class created", resp)
}

// List handles GET /api/classes with optional from/to query filters.
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDateParam(w, r.URL.Query().Get("from"))
	if !ok {
		return
	}
	to, ok := parseDateParam(w, r.URL.Query().Get("to"))
	if !ok {
		return
	}

	classes, err := h.service.List(r.Context(), from, to)
	if err != nil {
		respondError(w, h.log, err, "list classes")
		return
	}

	utils.ResponseSuccess(w, "Classes retrieved", classes)
}

// Get handles GET /api/classes/{id}
func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid class ID", nil)
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get class")
		return
	}

	utils.ResponseSuccess(w, "Class retrieved", resp)
}

// Delete handles DELETE /api/admin/classes/{id}
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid class ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete class")
		return
	}

	utils.ResponseNoContent(w)
}

func parseDateParam(w http.ResponseWriter, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	date, err := utils.ParseDate(value)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
		return nil, false
	}
	return &date, true
}
