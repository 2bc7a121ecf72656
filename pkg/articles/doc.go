// Package articles implements owner-scoped storage and HTTP handlers for
// authored articles. Every repository operation takes the owning user's id
// and never returns or mutates another user's documents.
package articles
