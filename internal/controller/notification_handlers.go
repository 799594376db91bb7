package controller

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/zordhalo/managment-site/internal/auth"
)

// ListNotifications handles GET /api/notifications, returning the caller's
// notifications newest first.
func (c *Controller) ListNotifications(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	notifications, err := c.notifications.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read.
func (c *Controller) MarkNotificationRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	notification, err := c.notifications.MarkRead(r.Context(), id, claims.Actor())
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"notification": notification})
}
