package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"github.com/zordhalo/managment-site/internal/auth"
	"github.com/zordhalo/managment-site/internal/model"
)

// CreateBooking handles POST /api/bookings (players only). A booking
// conflict returns 409 with the specific reason, so the player can pick a
// different slot.
func (c *Controller) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var body struct {
		RoomID    int64     `json:"room_id"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	booking, err := c.bookings.CreateBooking(r.Context(), claims.UserID, body.RoomID, body.StartTime, body.EndTime)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"booking": booking})
}

// ListBookings handles GET /api/bookings. Players see their own bookings;
// supervisors see all, optionally filtered with ?status=.
func (c *Controller) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var (
		bookings []*model.Booking
		err      error
	)
	if claims.Role == model.RoleSupervisor {
		status := model.BookingStatus(r.URL.Query().Get("status"))
		bookings, err = c.bookings.ListAll(r.Context(), status)
	} else {
		bookings, err = c.bookings.ListForUser(r.Context(), claims.UserID)
	}
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/:id (owner or supervisor).
func (c *Controller) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := c.bookings.GetByID(r.Context(), id, claims.Actor())
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": booking})
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status. Supervisors
// approve, reject and complete; the owner cancels.
func (c *Controller) UpdateBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var body struct {
		Status model.BookingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	booking, err := c.bookings.UpdateStatus(r.Context(), id, claims.Actor(), body.Status)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": booking})
}

// BookingQR handles GET /api/bookings/:id/qr, rendering the booking's QR
// token as a PNG for check-in at the venue.
func (c *Controller) BookingQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := c.bookings.GetByID(r.Context(), id, claims.Actor())
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	png, err := qrcode.Encode(booking.QRCode, qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
