package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/auth"
	"github.com/zordhalo/managment-site/internal/model"
	"github.com/zordhalo/managment-site/internal/service"
)

const tokenTTL = 24 * time.Hour

// Register handles POST /api/auth/register. A supervisor bearer token (when
// present) authorizes creating staff accounts.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Username string     `json:"username"`
		FullName string     `json:"full_name"`
		Email    string     `json:"email"`
		Password string     `json:"password"`
		Role     model.Role `json:"role"`
		Phone    *string    `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var actor *model.User
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		actor = claims.Actor()
	}

	user, err := c.users.Register(r.Context(), service.RegisterParams{
		Username: body.Username,
		FullName: body.FullName,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
		Phone:    body.Phone,
	}, actor)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// Login handles POST /api/auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	user, err := c.users.Authenticate(r.Context(), body.Username, body.Password)
	if err != nil {
		if apperr.IsPermissionDenied(err) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		c.respondServiceError(w, err)
		return
	}

	token, err := auth.GenerateToken(c.jwtSecret, user, tokenTTL)
	if err != nil {
		c.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
