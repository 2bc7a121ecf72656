// Package auth implements credential hashing and access-token issuance.
//
// # Credential Store
//
// PasswordHasher wraps bcrypt with a configurable cost. Hash salts every
// call, so hashing the same password twice yields different values.
// Verify never returns an error; a malformed or corrupt stored hash is
// simply a failed verification.
//
// # Token Service
//
// TokenService issues and verifies HS256-signed JWTs carrying the user id
// as the subject claim and an absolute expiry. Verification is a pure
// function of (token, secret, clock); there is no revocation list, so a
// token stays valid until it expires.
//
// # Errors
//
// Verification failures are typed (ErrTokenExpired, ErrTokenMalformed) so
// the boundary can keep the outward response uniform while logging the
// real cause. ErrInvalidSubject and ErrUserNotFound belong to identity
// resolution (pkg/users.Resolver) and live here so the whole auth
// taxonomy is in one place.
package auth
