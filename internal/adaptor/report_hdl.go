package adaptor

import (
	"fmt"
	"net/http"

	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

// Bookings handles GET /api/admin/reports/bookings?from=...&to=...
// and streams back an xlsx attachment.
func (h *ReportHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	from, err := utils.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid from date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := utils.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid to date, expected YYYY-MM-DD", nil)
		return
	}
	if to.Before(from) {
		utils.ResponseBadRequest(w, "to date before from date", nil)
		return
	}

	data, filename, err := h.service.Bookings(r.Context(), from, to)
	if err != nil {
		respondError(w, h.log, err, "generate report")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.log.Warn("Failed to stream report", zap.Error(err))
	}
}
