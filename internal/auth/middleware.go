package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/zordhalo/managment-site/internal/model"
)

type contextKey string

const claimsKey contextKey = "authClaims"

// Middleware authenticates requests and gates routes by role.
type Middleware struct {
	secret string
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: secret}
}

// Authenticate requires a valid "Bearer <token>" Authorization header and
// stores the claims in the request context.
func (m *Middleware) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			http.Error(w, "invalid token format", http.StatusUnauthorized)
			return
		}

		claims, err := ParseToken(m.secret, parts[1])
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

// OptionalAuth parses the Authorization header when present but lets the
// request through either way. Used by registration, where a supervisor token
// unlocks staff account creation.
func (m *Middleware) OptionalAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if claims, err := ParseToken(m.secret, parts[1]); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
		}
		next(w, r, ps)
	}
}

// RequireRole allows only the listed roles through. Must run inside
// Authenticate.
func (m *Middleware) RequireRole(next httprouter.Handle, roles ...model.Role) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				next(w, r, ps)
				return
			}
		}

		http.Error(w, "insufficient role", http.StatusForbidden)
	}
}

// ClaimsFromContext extracts the authenticated identity, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
