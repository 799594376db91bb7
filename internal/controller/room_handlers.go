package controller

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/zordhalo/managment-site/internal/model"
)

type roomBody struct {
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	Equipment   []string `json:"equipment"`
	HourlyRate  float64  `json:"hourly_rate"`
	Description string   `json:"description"`
	IsActive    *bool    `json:"is_active"`
}

// ListRooms handles GET /api/rooms. ?active=true limits to bookable rooms.
func (c *Controller) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	activeOnly := r.URL.Query().Get("active") == "true"

	rooms, err := c.rooms.ListRooms(r.Context(), activeOnly)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms})
}

// GetRoom handles GET /api/rooms/:id.
func (c *Controller) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := c.rooms.GetRoom(r.Context(), id)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"room": room})
}

// CreateRoom handles POST /api/rooms (supervisor only).
func (c *Controller) CreateRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body roomBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	room, err := c.rooms.CreateRoom(r.Context(), &model.Room{
		Name:        body.Name,
		Capacity:    body.Capacity,
		Equipment:   body.Equipment,
		HourlyRate:  body.HourlyRate,
		Description: body.Description,
	})
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"room": room})
}

// UpdateRoom handles PUT /api/rooms/:id (supervisor only).
func (c *Controller) UpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var body roomBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	room, err := c.rooms.UpdateRoom(r.Context(), &model.Room{
		ID:          id,
		Name:        body.Name,
		Capacity:    body.Capacity,
		Equipment:   body.Equipment,
		HourlyRate:  body.HourlyRate,
		Description: body.Description,
		IsActive:    isActive,
	})
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"room": room})
}

// DeleteRoom handles DELETE /api/rooms/:id (supervisor only). The room is
// deactivated, never removed.
func (c *Controller) DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	if err := c.rooms.DeactivateRoom(r.Context(), id); err != nil {
		c.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
