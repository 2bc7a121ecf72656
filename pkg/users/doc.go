// Package users manages user identities: registration, login, and
// per-request identity resolution.
//
// Repository abstracts the users collection; MongoRepository is the
// production implementation and MemoryRepository backs tests. Service owns
// the register/login flows on top of pkg/auth, and Resolver is the single
// authorization checkpoint every protected request passes through: it
// verifies the bearer token, loads the user it names, and strips the
// password hash before the user object travels further.
package users
