// Package api assembles the HTTP surface of the service: routing, the
// middleware chain and the health endpoint. Handlers themselves live
// with their domains (pkg/users, pkg/articles, pkg/generation).
package api
