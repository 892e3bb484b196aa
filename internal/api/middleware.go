package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/manacart/manacart/internal/api/response"
	"github.com/manacart/manacart/internal/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the caller's user ID from the request context.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// requireUser extracts the caller identity from the X-User-ID header. The
// storefront trusts the frontend's session layer; this service only needs
// a stable identifier to scope decks and orders.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID == "" {
			response.Unauthorized(w, errors.New("X-User-ID header is required"))
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin verifies the X-Admin-Key header against the configured
// Argon2id hash. With no hash configured the admin surface is disabled.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminKeyHash == "" {
			response.Unauthorized(w, errors.New("admin API is not configured"))
			return
		}
		key := r.Header.Get("X-Admin-Key")
		if key == "" {
			response.Unauthorized(w, errors.New("X-Admin-Key header is required"))
			return
		}
		ok, err := auth.VerifyKey(key, s.adminKeyHash)
		if err != nil {
			response.InternalError(w, err)
			return
		}
		if !ok {
			response.Unauthorized(w, errors.New("invalid admin key"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// jsonContentType enforces application/json for requests with bodies.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength != 0 {
				contentType := r.Header.Get("Content-Type")
				if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
					http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
					return
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
