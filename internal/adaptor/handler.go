package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"studio-booking/internal/rules"
	"studio-booking/internal/usecase"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Class        *ClassHandler
	Booking      *BookingHandler
	Subscription *SubscriptionHandler
	Schedule     *ScheduleHandler
	Report       *ReportHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		User:         NewUserHandler(service.User, log),
		Class:        NewClassHandler(service.Class, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Subscription: NewSubscriptionHandler(service.Subscription, log),
		Schedule:     NewScheduleHandler(service.Schedule, log),
		Report:       NewReportHandler(service.Report, log),
	}
}

// respondError maps service errors onto HTTP responses. Rule rejections
// carry their reason and the client-facing Greek message; everything else
// falls back to string matching in front of a 500.
func respondError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var rej *rules.Rejection
	if errors.As(err, &rej) {
		log.Warn(operation+" rejected",
			zap.String("reason", string(rej.Reason)),
			zap.String("message", rej.Message))

		switch rej.Reason {
		case rules.ReasonNotFound:
			utils.ResponseNotFound(w, rej.Message)
		case rules.ReasonForbidden:
			utils.ResponseForbidden(w, rej.Message)
		case rules.ReasonDuplicateBooking:
			utils.ResponseConflict(w, rej.Message)
		default:
			utils.ResponseBadRequest(w, rej.Message, map[string]string{
				"reason": string(rej.Reason),
			})
		}
		return
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid credentials"):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "already registered"):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
