package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"climblog/internal/modules/auth/dto"
	"climblog/internal/modules/auth/service"
	"climblog/internal/modules/auth/usecase"
	"climblog/internal/platform/clock"
	apperrors "climblog/internal/platform/errors"
	"climblog/internal/platform/logging"
	"climblog/internal/platform/restclient"
)

type memoryStore struct {
	token   string
	savedAt time.Time
	has     bool
}

func (m *memoryStore) Get(context.Context) (string, error) {
	if !m.has {
		return "", apperrors.ErrNotFound
	}
	return m.token, nil
}

func (m *memoryStore) Set(_ context.Context, token string) error {
	m.token, m.has = token, true
	return nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.token, m.has = "", false
	return nil
}

func (m *memoryStore) UpdatedAt(context.Context) (time.Time, error) {
	if !m.has {
		return time.Time{}, apperrors.ErrNotFound
	}
	return m.savedAt, nil
}

type fakeAuthenticator struct {
	token string
	err   error
	calls int
}

func (f *fakeAuthenticator) Login(context.Context, string, string) (string, error) {
	f.calls++
	return f.token, f.err
}

func (f *fakeAuthenticator) Signup(context.Context, string, string) error {
	f.calls++
	return f.err
}

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func newUsecase(auth *fakeAuthenticator, store *memoryStore) *usecase.Interactor {
	svc := service.NewAuthService(clock.Fixed(now), auth, store, logging.Discard())
	return usecase.NewInteractor(svc).(*usecase.Interactor)
}

func TestLoginStoresTokenAndReportsClaimsUsername(t *testing.T) {
	t.Parallel()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "ada", "exp": now.Add(-time.Hour).Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	store := &memoryStore{savedAt: now}
	uc := newUsecase(&fakeAuthenticator{token: token}, store)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginInput{Username: " someone ", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "ada", out.Username)
	require.Equal(t, token, store.token)

	cred, err := uc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, token, cred.Token)

	who, err := uc.Whoami(ctx)
	require.NoError(t, err)
	require.True(t, who.Authenticated)
	require.Equal(t, "ada", who.Username)
	require.True(t, who.Expired)
	require.Equal(t, now, who.SavedAt)
}

func TestLoginFailureStoresNothing(t *testing.T) {
	t.Parallel()
	store := &memoryStore{}
	auth := &fakeAuthenticator{err: &restclient.APIError{Status: 400, Detail: "Invalid credentials"}}
	uc := newUsecase(auth, store)

	_, err := uc.Login(context.Background(), dto.LoginInput{Username: "ada", Password: "bad"})
	detail, ok := restclient.Detail(err)
	require.True(t, ok)
	require.Equal(t, "Invalid credentials", detail)
	require.False(t, store.has)

	_, err = uc.Current(context.Background())
	require.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
}

func TestLoginRequiresUsernameAndPassword(t *testing.T) {
	t.Parallel()
	auth := &fakeAuthenticator{token: "x"}
	uc := newUsecase(auth, &memoryStore{})

	_, err := uc.Login(context.Background(), dto.LoginInput{Username: "  ", Password: "pw"})
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	require.ErrorIs(t, uc.Signup(context.Background(), dto.SignupInput{Username: "ada"}), apperrors.ErrInvalidInput)
	require.Zero(t, auth.calls)
}

func TestLogoutClearsCredential(t *testing.T) {
	t.Parallel()
	store := &memoryStore{token: "opaque", has: true}
	uc := newUsecase(&fakeAuthenticator{}, store)

	who, err := uc.Whoami(context.Background())
	require.NoError(t, err)
	require.True(t, who.Authenticated)
	require.Empty(t, who.Username)

	require.NoError(t, uc.Logout(context.Background()))
	who, err = uc.Whoami(context.Background())
	require.NoError(t, err)
	require.False(t, who.Authenticated)
	_, err = uc.Current(context.Background())
	require.True(t, errors.Is(err, apperrors.ErrNotAuthenticated))
}

func TestAuthenticateLeavesStoreUntilRemembered(t *testing.T) {
	t.Parallel()
	store := &memoryStore{savedAt: now}
	uc := newUsecase(&fakeAuthenticator{token: "opaque"}, store)
	ctx := context.Background()

	out, err := uc.Authenticate(ctx, dto.LoginInput{Username: "ada", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "opaque", out.Token)
	require.Equal(t, "ada", out.Username)
	require.False(t, store.has)

	require.ErrorIs(t, uc.Remember(ctx, " "), apperrors.ErrInvalidInput)
	require.NoError(t, uc.Remember(ctx, out.Token))
	require.Equal(t, "opaque", store.token)
}
