package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maeum-crm/backend/internal/model"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type sessionClaims struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	TokenType   string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies the HS256 access/refresh token pair.
// Verification is pure: signature, expiry and token type only. Revocation
// and supersession checks live in AuthService.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (i *TokenIssuer) AccessTTL() time.Duration  { return i.accessTTL }
func (i *TokenIssuer) RefreshTTL() time.Duration { return i.refreshTTL }

// Issue mints a fresh access/refresh pair for an authenticated user.
func (i *TokenIssuer) Issue(user *model.User) (access string, refresh string, err error) {
	access, err = i.IssueAccess(user)
	if err != nil {
		return "", "", err
	}

	refresh, err = i.sign(user, tokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

func (i *TokenIssuer) IssueAccess(user *model.User) (string, error) {
	return i.sign(user, tokenTypeAccess, i.accessTTL)
}

func (i *TokenIssuer) sign(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if tokenType == tokenTypeAccess {
		claims.PhoneNumber = user.PhoneNumber
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (i *TokenIssuer) VerifyAccess(token string) (model.TokenClaims, string, error) {
	return i.verify(token, tokenTypeAccess)
}

func (i *TokenIssuer) VerifyRefresh(token string) (model.TokenClaims, error) {
	claims, _, err := i.verify(token, tokenTypeRefresh)
	return claims, err
}

func (i *TokenIssuer) verify(tokenStr, wantType string) (model.TokenClaims, string, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, "", ErrTokenExpired
		}
		return model.TokenClaims{}, "", ErrTokenInvalid
	}

	if claims.TokenType != wantType {
		return model.TokenClaims{}, "", ErrTokenInvalid
	}

	converted, err := convertClaims(claims)
	if err != nil {
		return model.TokenClaims{}, "", err
	}
	return converted, claims.PhoneNumber, nil
}

// PeekID extracts jti and expiry without verifying the signature. Used only
// to best-effort denylist a refresh token that already failed verification.
func (i *TokenIssuer) PeekID(tokenStr string) (model.TokenClaims, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return model.TokenClaims{}, ErrTokenInvalid
	}
	return convertClaims(claims)
}

func convertClaims(claims *sessionClaims) (model.TokenClaims, error) {
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return model.TokenClaims{}, ErrTokenInvalid
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return model.TokenClaims{}, ErrTokenInvalid
	}
	return model.TokenClaims{
		UserID:    userID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
