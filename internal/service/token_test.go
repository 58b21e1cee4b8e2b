package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maeum-crm/backend/internal/model"
)

func testIssuer(t *testing.T, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", accessTTL, refreshTTL)
	require.NoError(t, err)
	return issuer
}

func testUser() *model.User {
	return &model.User{
		ID:          42,
		PhoneNumber: "010-1234-5678",
		IsActive:    true,
	}
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Minute, time.Hour)
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestIssueAndVerify(t *testing.T) {
	issuer := testIssuer(t, 15*time.Minute, 168*time.Hour)
	user := testUser()

	access, refresh, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, phone, err := issuer.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.PhoneNumber, phone)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt, 5*time.Second)

	refreshClaims, err := issuer.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims.UserID)
	assert.NotEqual(t, claims.TokenID, refreshClaims.TokenID)
}

func TestVerifyRejectsWrongType(t *testing.T) {
	issuer := testIssuer(t, 15*time.Minute, 168*time.Hour)
	access, refresh, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, _, err = issuer.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := testIssuer(t, -time.Minute, 168*time.Hour)
	access, err := issuer.IssueAccess(testUser())
	require.NoError(t, err)

	_, _, err = issuer.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer := testIssuer(t, 15*time.Minute, 168*time.Hour)
	other, err := NewTokenIssuer("another-secret", 15*time.Minute, 168*time.Hour)
	require.NoError(t, err)

	access, err := other.IssueAccess(testUser())
	require.NoError(t, err)

	_, _, err = issuer.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := testIssuer(t, 15*time.Minute, 168*time.Hour)
	_, _, err := issuer.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPeekIDWorksOnExpiredToken(t *testing.T) {
	issuer := testIssuer(t, 15*time.Minute, -time.Minute)
	_, refresh, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = issuer.VerifyRefresh(refresh)
	assert.ErrorIs(t, err, ErrTokenExpired)

	peeked, err := issuer.PeekID(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), peeked.UserID)
	assert.NotEmpty(t, peeked.TokenID)
}

func TestPhoneNumberOnlyInAccessToken(t *testing.T) {
	issuer := testIssuer(t, 15*time.Minute, 168*time.Hour)
	_, refresh, err := issuer.Issue(testUser())
	require.NoError(t, err)

	claims := &sessionClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(refresh, claims)
	require.NoError(t, err)
	assert.Empty(t, claims.PhoneNumber)
	assert.Equal(t, tokenTypeRefresh, claims.TokenType)
}
