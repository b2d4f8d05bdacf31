package httputil

import (
	"context"
	"net/http"
)

type userIDKey struct{}

// ContextWithUserID returns ctx carrying the authenticated user ID
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user ID, or "" for anonymous
// requests
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}

// WithUserID returns a copy of r whose context carries userID
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(ContextWithUserID(r.Context(), userID))
}

// GetUserID is UserIDFromContext for a request
func GetUserID(r *http.Request) string {
	return UserIDFromContext(r.Context())
}
