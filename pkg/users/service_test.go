package users

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/auth"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService([]byte("test-secret"))
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	return NewService(repo, hasher, tokens, time.Hour, logger, nil), repo
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@x.com", "password1", nil)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.ID.IsZero())
	assert.Empty(t, user.PasswordHash)

	token, err := svc.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "password1", nil)
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "password2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody@x.com", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  A@X.Com ", "password1", nil)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	// login with a differently-cased email still authenticates
	_, err = svc.Login(ctx, "A@x.COM", "password1")
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "password1", nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "A@X.com", "password2", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "password1", nil)
	require.NoError(t, err)

	stored, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "password1", stored.PasswordHash)
}

func TestRegisterKeepsName(t *testing.T) {
	svc, _ := newTestService(t)
	name := "Ada"

	user, err := svc.Register(context.Background(), "a@x.com", "password1", &name)
	require.NoError(t, err)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Ada", *user.Name)
}
