package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Shalin-Shah-2002/Artium/pkg/auth"
	"github.com/Shalin-Shah-2002/Artium/pkg/contextkeys"
	"github.com/Shalin-Shah-2002/Artium/pkg/httputil"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/Shalin-Shah-2002/Artium/pkg/users"
)

// unauthorizedMessage is deliberately identical for a missing header, a
// bad token and an unknown user.
const unauthorizedMessage = "Invalid authentication credentials"

// Auth authenticates requests by resolving Bearer tokens to users.
type Auth struct {
	resolver *users.Resolver
	logger   *observability.Logger
}

// NewAuth creates authentication middleware around the given resolver.
func NewAuth(resolver *users.Resolver, logger *observability.Logger) *Auth {
	return &Auth{resolver: resolver, logger: logger}
}

// Require wraps a handler so it only runs with a resolved identity in
// the request context.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			httputil.WriteUnauthorized(w, unauthorizedMessage)
			return
		}

		user, err := a.resolver.Resolve(r.Context(), token)
		if err != nil {
			if !isCredentialError(err) {
				// store outage, not a bad credential
				a.logger.WithError(err).Error("identity resolution failed")
				httputil.WriteInternalError(w, errors.New("failed to authenticate request"))
				return
			}
			a.logger.WithError(err).Debug("token resolution failed")
			httputil.WriteUnauthorized(w, unauthorizedMessage)
			return
		}

		ctx := contextkeys.WithCurrentUser(r.Context(), user)
		ctx = contextkeys.WithUserID(ctx, user.ID.Hex())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isCredentialError reports whether the resolution failure is the
// caller's fault. Anything else is a backend failure.
func isCredentialError(err error) bool {
	return errors.Is(err, auth.ErrTokenExpired) ||
		errors.Is(err, auth.ErrTokenMalformed) ||
		errors.Is(err, auth.ErrInvalidSubject) ||
		errors.Is(err, auth.ErrUserNotFound)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
