package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maeum-crm/backend/internal/cache"
	"github.com/maeum-crm/backend/internal/config"
	"github.com/maeum-crm/backend/internal/model"
)

type fakeUserStore struct {
	users map[int64]*model.User
}

func (f *fakeUserStore) GetUserByPhoneNumber(_ context.Context, phoneNumber string) (*model.User, error) {
	for _, user := range f.users {
		if user.PhoneNumber == phoneNumber {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

type authFixture struct {
	svc    *AuthService
	users  *fakeUserStore
	tokens *cache.MemoryTokenStore
}

func newAuthFixture(t *testing.T, accessTTL time.Duration) *authFixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUserStore{users: map[int64]*model.User{
		1: {
			ID:           1,
			PhoneNumber:  "010-1234-5678",
			PasswordHash: string(hash),
			IsActive:     true,
		},
	}}

	issuer, err := NewTokenIssuer("test-secret", accessTTL, time.Hour)
	require.NoError(t, err)

	tokens := cache.NewMemoryTokenStore()
	svc, err := NewAuthService(users, issuer, tokens, cache.NewMemoryDenylist(), config.AuthConfig{
		CookieSecure:   "true",
		CookieSameSite: "lax",
		CookiePath:     "/",
	}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	return &authFixture{svc: svc, users: users, tokens: tokens}
}

func TestLoginSuccess(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)

	access, refresh, err := f.svc.Login(context.Background(), "010-1234-5678", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	cached, err := f.tokens.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, refresh, cached)
}

func TestLoginBadCredentials(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	_, _, err := f.svc.Login(ctx, "010-9999-9999", "password123")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, _, err = f.svc.Login(ctx, "010-1234-5678", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	f.users.users[1].IsActive = false
	_, _, err = f.svc.Login(ctx, "010-1234-5678", "password123")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestLoginSupersedesPreviousRefreshToken(t *testing.T) {
	f := newAuthFixture(t, -time.Minute)
	ctx := context.Background()

	_, firstRefresh, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	_, secondRefresh, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)
	require.NotEqual(t, firstRefresh, secondRefresh)

	// 이전 세션의 토큰으로는 더 이상 갱신할 수 없다
	_, err = f.svc.Refresh(ctx, firstRefresh, "")
	assert.ErrorIs(t, err, ErrStaleRefresh)

	access, err := f.svc.Refresh(ctx, secondRefresh, "")
	require.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRefreshRejectedWhileAccessTokenValid(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	access, refresh, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, refresh, access)
	assert.ErrorIs(t, err, ErrAccessValid)

	// 액세스 토큰을 제시하지 않으면 갱신된다
	newAccess, err := f.svc.Refresh(ctx, refresh, "")
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
}

func TestRefreshDoesNotRotateRefreshToken(t *testing.T) {
	f := newAuthFixture(t, -time.Minute)
	ctx := context.Background()

	_, refresh, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	_, err = f.svc.Refresh(ctx, refresh, "")
	require.NoError(t, err)

	// 같은 리프레시 토큰으로 반복 갱신 가능
	_, err = f.svc.Refresh(ctx, refresh, "")
	require.NoError(t, err)

	cached, err := f.tokens.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, refresh, cached)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)

	_, err := f.svc.Refresh(context.Background(), "not.a.jwt", "")
	assert.ErrorIs(t, err, ErrStaleRefresh)
}

func TestRefreshRejectsInactiveUser(t *testing.T) {
	f := newAuthFixture(t, -time.Minute)
	ctx := context.Background()

	_, refresh, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	f.users.users[1].IsActive = false
	_, err = f.svc.Refresh(ctx, refresh, "")
	assert.ErrorIs(t, err, ErrStaleRefresh)
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	access, refresh, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, access))

	// 로그아웃한 액세스 토큰으로는 인증 불가
	_, err = f.svc.Authenticate(ctx, access)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 리프레시 토큰도 즉시 거부된다
	_, err = f.svc.Refresh(ctx, refresh, "")
	assert.ErrorIs(t, err, ErrStaleRefresh)
}

func TestLogoutWithoutSession(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	access, _, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, access))

	// 두 번째 로그아웃: 액세스 토큰이 이미 블랙리스트에 있다
	err = f.svc.Logout(ctx, access)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutNoCachedRefreshToken(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	access, _, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	require.NoError(t, f.tokens.Delete(ctx, 1))

	err = f.svc.Logout(ctx, access)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogoutRejectsInvalidToken(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)

	err := f.svc.Logout(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t, 15*time.Minute)
	ctx := context.Background()

	access, _, err := f.svc.Login(ctx, "010-1234-5678", "password123")
	require.NoError(t, err)

	user, err := f.svc.Authenticate(ctx, access)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "010-1234-5678", user.PhoneNumber)
}

func TestNewAuthServiceRejectsInsecureSameSiteNone(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = NewAuthService(&fakeUserStore{}, issuer, cache.NewMemoryTokenStore(), cache.NewMemoryDenylist(), config.AuthConfig{
		CookieSecure:   "false",
		CookieSameSite: "none",
	}, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, ErrMisconfigured)
}
