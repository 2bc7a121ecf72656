package auth

import "errors"

var (
	// ErrTokenExpired means the token's expiry instant has passed
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed means the token is structurally wrong or its
	// signature does not verify
	ErrTokenMalformed = errors.New("token malformed")
	// ErrInvalidSubject means the subject claim is not a well-formed user id
	ErrInvalidSubject = errors.New("invalid token subject")
	// ErrUserNotFound means the subject is well-formed but no longer
	// resolves to a user
	ErrUserNotFound = errors.New("user not found")
)
