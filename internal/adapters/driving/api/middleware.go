package api

import (
	"context"
	"net/http"
)

type contextKey string

// userIDKey carries the authenticated user through the request context.
const userIDKey contextKey = "userID"

// userHeader names the header carrying the caller's identity. Recall
// trusts the deployment's reverse proxy to authenticate and set it.
const userHeader = "X-User-ID"

// UserMiddleware extracts the caller's identity and rejects requests
// without one. Every knowledge operation is scoped to a user.
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(userHeader)
		if userID == "" {
			writeError(w, http.StatusUnauthorized, "missing "+userHeader+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID returns the authenticated user from the request context.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
