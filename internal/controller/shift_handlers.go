package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/zordhalo/managment-site/internal/auth"
	"github.com/zordhalo/managment-site/internal/model"
)

type shiftBody struct {
	EmployeeID int64     `json:"employee_id"`
	RoomID     int64     `json:"room_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

const dateLayout = "2006-01-02"

// CreateShift handles POST /api/shifts (supervisor only). The response
// carries the shift with its expanded task checklist.
func (c *Controller) CreateShift(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body shiftBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	shift, err := c.shifts.CreateShift(r.Context(), body.EmployeeID, body.RoomID, date, body.StartTime, body.EndTime)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"shift": shift})
}

// ListShifts handles GET /api/shifts. Employees see their own shifts;
// supervisors see all, optionally filtered with ?date=YYYY-MM-DD.
func (c *Controller) ListShifts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	var (
		shifts []*model.Shift
		err    error
	)
	if claims.Role == model.RoleSupervisor {
		var date *time.Time
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, parseErr := time.Parse(dateLayout, raw)
			if parseErr != nil {
				respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
				return
			}
			date = &parsed
		}
		shifts, err = c.shifts.ListAll(r.Context(), date)
	} else {
		shifts, err = c.shifts.ListForEmployee(r.Context(), claims.UserID)
	}
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"shifts": shifts})
}

// UpdateShift handles PUT /api/shifts/:id (supervisor only).
func (c *Controller) UpdateShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	var body shiftBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	shift, err := c.shifts.UpdateShift(r.Context(), id, body.EmployeeID, body.RoomID, date, body.StartTime, body.EndTime)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"shift": shift})
}

// DeleteShift handles DELETE /api/shifts/:id (supervisor only). The shift is
// deactivated, never removed.
func (c *Controller) DeleteShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	if err := c.shifts.DeactivateShift(r.Context(), id); err != nil {
		c.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListShiftTasks handles GET /api/shifts/:id/tasks (the shift's employee or
// a supervisor).
func (c *Controller) ListShiftTasks(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	tasks, err := c.shifts.TasksForShift(r.Context(), id, claims.Actor())
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// ToggleTask handles PATCH /api/tasks/:id (the shift's employee only).
func (c *Controller) ToggleTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}

	var body struct {
		IsCompleted bool `json:"is_completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := c.shifts.ToggleTask(r.Context(), id, claims.Actor(), body.IsCompleted)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

type templateBody struct {
	Name      string             `json:"name"`
	Category  model.TaskCategory `json:"category"`
	IsDefault bool               `json:"is_default"`
}

// ListTemplates handles GET /api/task-templates (supervisor only).
func (c *Controller) ListTemplates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	templates, err := c.shifts.ListTemplates(r.Context())
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// CreateTemplate handles POST /api/task-templates (supervisor only).
func (c *Controller) CreateTemplate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body templateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	tpl, err := c.shifts.CreateTemplate(r.Context(), body.Name, body.Category, body.IsDefault)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"template": tpl})
}

// UpdateTemplate handles PUT /api/task-templates/:id (supervisor only).
func (c *Controller) UpdateTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var body templateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	tpl, err := c.shifts.UpdateTemplate(r.Context(), id, body.Name, body.Category, body.IsDefault)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"template": tpl})
}

// DeleteTemplate handles DELETE /api/task-templates/:id (supervisor only).
// The template only leaves the default set; the row stays.
func (c *Controller) DeleteTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := pathID(ps)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid template id")
		return
	}

	if err := c.shifts.RemoveTemplateDefault(r.Context(), id); err != nil {
		c.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
