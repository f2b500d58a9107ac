package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

type ctxKey int

const userIDKey ctxKey = iota

const UserHeader = "X-User-ID"

// CORS lets the browser client call every route from any origin. Preflight
// requests are answered before routing.
var CORS = cors.Handler(cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type", UserHeader},
	MaxAge:         300,
})

// RequireUser rejects requests without a user id. Authentication happens
// upstream; the header is trusted as-is.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserHeader))
		if userID == "" {
			errorf(w, http.StatusUnauthorized, "missing %s header", UserHeader)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}
