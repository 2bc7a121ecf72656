// Package contextkeys provides centralized context key definitions
//
// All context keys used across the application must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
package contextkeys

import "context"

// Key is the type for context keys to prevent collisions
type Key string

const (
	// CurrentUserKey contains the resolved *users.User for the request.
	// Set by: middleware.Auth (pkg/middleware/auth.go)
	// Required by: All owner-scoped article endpoints, /api/auth/me
	CurrentUserKey Key = "current_user"

	// RequestIDKey contains the request ID string (UUID)
	// Set by: httputil.RequestIDMiddleware
	// Used by: Logger, request tracing
	RequestIDKey Key = "request_id"

	// UserIDKey contains the resolved user's hex id
	// Set by: middleware.Auth after identity resolution
	// Used by: Logger
	UserIDKey Key = "user_id"
)

// WithCurrentUser adds the resolved user to the context. The value is stored
// as interface{} so this package stays free of domain imports; pkg/middleware
// owns the concrete type.
func WithCurrentUser(ctx context.Context, user interface{}) context.Context {
	return context.WithValue(ctx, CurrentUserKey, user)
}

// CurrentUser retrieves the resolved user from the context, or nil.
func CurrentUser(ctx context.Context) interface{} {
	return ctx.Value(CurrentUserKey)
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithUserID adds the user's hex id to the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID retrieves the user's hex id from context
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}
