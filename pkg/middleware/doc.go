// Package middleware provides HTTP middleware for authentication and
// rate limiting.
//
// Auth extracts the Bearer token from the Authorization header, resolves
// it to a stored user and places the user in the request context. All
// authentication failures produce the same 401 body so callers cannot
// probe which accounts exist.
//
// RateLimiter is an in-memory token bucket keyed by user id (falling
// back to remote address) used to protect the generation endpoints.
package middleware
