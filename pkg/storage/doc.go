// Package storage bootstraps the MongoDB client shared by the repositories.
//
// Connect establishes the client once at startup and pings the deployment;
// the returned Client hands out collection handles and implements the
// observability.Pinger interface for readiness probes. EnsureIndexes
// creates the unique index on users.email that backs the email-uniqueness
// invariant.
package storage
