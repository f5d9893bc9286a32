package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/movie-catalog/internal/auth"
	"github.com/spec-kit/movie-catalog/internal/domain"
	"github.com/spec-kit/movie-catalog/internal/kv"
	apperrors "github.com/spec-kit/movie-catalog/pkg/util"
)

// stubUserRepo serves a single fixed user, or fails every call with err.
type stubUserRepo struct {
	user *domain.User
	err  error
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	user.ID = "u-1"
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.user != nil && (r.user.Email == email || r.user.Username == username), nil
}

func newAuthService(t *testing.T, users *stubUserRepo) (*AuthService, *auth.SessionStore) {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	sessions := auth.NewSessionStore(kv.NewMemoryStore(), time.Hour)
	return NewAuthService(users, tokens, sessions, 4), sessions
}

func fixedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return &domain.User{
		ID:           "u-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
}

func TestLoginRecordsSession(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newAuthService(t, &stubUserRepo{user: fixedUser(t, "secret")})

	user, token, _, err := svc.Login(ctx, "alice@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	stored, err := sessions.Get(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestLoginUnknownEmailIsUnauthorized(t *testing.T) {
	svc, _ := newAuthService(t, &stubUserRepo{})

	_, _, _, err := svc.Login(context.Background(), "nobody@example.com", "secret")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	svc, _ := newAuthService(t, &stubUserRepo{user: fixedUser(t, "secret")})

	_, _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperrors.ToDomainError(err).HTTPStatus)
}

func TestLoginStoreOutageIsNotUnauthorized(t *testing.T) {
	svc, _ := newAuthService(t, &stubUserRepo{err: errors.New("connection refused")})

	_, _, _, err := svc.Login(context.Background(), "alice@example.com", "secret")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus,
		"a primary-store failure must surface as a server error, not bad credentials")
}

func TestLogoutDeletesOnlyCallerSession(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	sessions := auth.NewSessionStore(store, time.Hour)
	svc := NewAuthService(&stubUserRepo{}, tokens, sessions, 4)

	require.NoError(t, sessions.Put(ctx, "u-1", "token-a"))
	require.NoError(t, sessions.Put(ctx, "u-2", "token-b"))

	require.NoError(t, svc.Logout(ctx, "u-1"))

	_, err = sessions.Get(ctx, "u-1")
	assert.ErrorIs(t, err, auth.ErrNoSession)
	token, err := sessions.Get(ctx, "u-2")
	require.NoError(t, err)
	assert.Equal(t, "token-b", token)
}
