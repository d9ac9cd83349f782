package testutil

import (
	"net/http"

	id "voltid/pkg/domain"
	"voltid/pkg/requestcontext"
)

// WithUserID places userID on the request context the way auth.RequireAuth
// does for a valid token.
func WithUserID(req *http.Request, userID id.UserID) *http.Request {
	return req.WithContext(requestcontext.WithUserID(req.Context(), userID))
}

// AsUser wraps next so every request carries userID.
func AsUser(userID id.UserID, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, WithUserID(r, userID))
	})
}
