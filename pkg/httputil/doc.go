// Package httputil provides HTTP handler utilities for consistent error
// handling, JSON encoding/decoding, and request parsing.
//
// # Responses
//
// Write helpers keep the error payload shape uniform across endpoints:
//
//	httputil.WriteNotFoundError(w, "Article not found")
//	// -> 404 {"error":"Article not found"}
//
// # Requests
//
//	var req createRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return
//	}
//
// # Middleware
//
// RequestIDMiddleware, LoggingMiddleware, RecoveryMiddleware and
// CORSMiddleware compose with Chain:
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)(router)
package httputil
