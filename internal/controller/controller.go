package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/service"
	"go.uber.org/zap"
)

// Controller exposes the services over HTTP. It stays thin: decode, call,
// encode. Every rule lives in the service layer.
type Controller struct {
	users         *service.UserService
	rooms         *service.RoomService
	bookings      *service.BookingService
	shifts        *service.ShiftService
	notifications *service.NotificationService
	jwtSecret     string
	logger        *zap.Logger
}

func New(
	users *service.UserService,
	rooms *service.RoomService,
	bookings *service.BookingService,
	shifts *service.ShiftService,
	notifications *service.NotificationService,
	jwtSecret string,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		users:         users,
		rooms:         rooms,
		bookings:      bookings,
		shifts:        shifts,
		notifications: notifications,
		jwtSecret:     jwtSecret,
		logger:        logger,
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, statusCode int, msg string) {
	respondJSON(w, statusCode, map[string]string{"error": msg})
}

// respondServiceError maps domain error kinds to HTTP statuses. Anything
// unclassified is a 500 with a generic body.
func (c *Controller) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case apperr.IsPermissionDenied(err):
		respondError(w, http.StatusForbidden, err.Error())
	case apperr.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case apperr.IsConflict(err):
		respondError(w, http.StatusConflict, err.Error())
	case apperr.IsInvalidTransition(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		c.logger.Error("Unhandled service error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(ps httprouter.Params) (int64, error) {
	return strconv.ParseInt(ps.ByName("id"), 10, 64)
}
