package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/maeum-crm/backend/internal/cache"
	"github.com/maeum-crm/backend/internal/config"
	"github.com/maeum-crm/backend/internal/db"
	"github.com/maeum-crm/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const refreshCookieName = "refresh_token"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrBadCredentials = errors.New("bad credentials")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrStaleRefresh   = errors.New("refresh token expired or superseded")
	ErrNoSession      = errors.New("no cached refresh token")
	ErrAccessValid    = errors.New("access token still valid")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrMisconfigured  = errors.New("auth config invalid")
)

type CookieConfig struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// UserStore is the slice of the persistence layer the session flows need.
type UserStore interface {
	GetUserByPhoneNumber(ctx context.Context, phoneNumber string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

// RefreshTokenCache holds the single current refresh token per user.
// Store overwrites any prior value (latest login wins).
type RefreshTokenCache interface {
	Store(ctx context.Context, userID int64, token string, ttl time.Duration) error
	Get(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
}

// RevocationLedger denylists token identifiers until their natural expiry.
type RevocationLedger interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService orchestrates the login / refresh / logout session lifecycle.
// A refresh token is honored only while it is cryptographically valid, its
// jti is absent from the ledger, and it matches the cached value for its
// user. The cache match is what blocks superseded tokens; it is never
// skipped.
type AuthService struct {
	users     UserStore
	issuer    *TokenIssuer
	cache     RefreshTokenCache
	denylist  RevocationLedger
	cookieCfg CookieConfig
	logger    *slog.Logger
}

func NewAuthService(users UserStore, issuer *TokenIssuer, tokenCache RefreshTokenCache, denylist RevocationLedger, cfg config.AuthConfig, logger *slog.Logger) (*AuthService, error) {
	if users == nil || issuer == nil || tokenCache == nil || denylist == nil {
		return nil, fmt.Errorf("%w: missing dependency", ErrMisconfigured)
	}

	cookieSecure, err := parseBool(cfg.CookieSecure, true)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
	}

	cookieSameSite, err := parseSameSite(cfg.CookieSameSite)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SAMESITE", ErrMisconfigured)
	}

	if cookieSameSite == http.SameSiteNoneMode && !cookieSecure {
		return nil, fmt.Errorf("%w: SameSite=None requires Secure cookie", ErrMisconfigured)
	}

	cookiePath := cfg.CookiePath
	if strings.TrimSpace(cookiePath) == "" {
		cookiePath = "/"
	}

	return &AuthService{
		users:    users,
		issuer:   issuer,
		cache:    tokenCache,
		denylist: denylist,
		cookieCfg: CookieConfig{
			Name:     refreshCookieName,
			Path:     cookiePath,
			Domain:   cfg.CookieDomain,
			Secure:   cookieSecure,
			SameSite: cookieSameSite,
			MaxAge:   int(issuer.RefreshTTL().Seconds()),
		},
		logger: logger,
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

// Login checks credentials and issues a fresh token pair. Unknown phone
// number, wrong password and inactive account all collapse into
// ErrBadCredentials so the response cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, phoneNumber, password string) (access string, refresh string, err error) {
	user, err := s.users.GetUserByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		if db.IsNoRows(err) {
			s.logger.Warn("login failed", "reason", "unknown phone number")
			return "", "", ErrBadCredentials
		}
		return "", "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed", "reason", "wrong password", "user_id", user.ID)
		return "", "", ErrBadCredentials
	}

	if !user.IsActive {
		s.logger.Warn("login failed", "reason", "inactive account", "user_id", user.ID)
		return "", "", ErrBadCredentials
	}

	access, refresh, err = s.issuer.Issue(user)
	if err != nil {
		return "", "", err
	}

	// 이전 로그인의 Refresh Token은 여기서 덮어써 무효화된다
	if err := s.cache.Store(ctx, user.ID, refresh, s.issuer.RefreshTTL()); err != nil {
		return "", "", err
	}

	s.logger.Info("login succeeded", "user_id", user.ID)
	return access, refresh, nil
}

// Logout revokes the presented access token and the cached refresh token,
// then drops the cache entry. Access-token revocation is best effort; a
// failure there is logged and does not block the refresh-token revocation.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, _, err := s.issuer.VerifyAccess(accessToken)
	if err != nil {
		s.logger.Warn("logout rejected", "reason", "invalid access token", "err", err)
		return ErrUnauthorized
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return fmt.Errorf("denylist check failed: %w", err)
	}
	if revoked {
		s.logger.Warn("logout rejected", "reason", "revoked access token", "user_id", claims.UserID)
		return ErrUnauthorized
	}

	cachedRefresh, err := s.cache.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			s.logger.Warn("logout failed", "reason", "no cached refresh token", "user_id", claims.UserID)
			return ErrNoSession
		}
		return err
	}

	if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		s.logger.Warn("access token revocation failed", "user_id", claims.UserID, "err", err)
	}

	refreshClaims, err := s.issuer.VerifyRefresh(cachedRefresh)
	if err != nil {
		// 캐시에 남은 토큰이 이미 만료된 경우: 블랙리스트는 best effort
		if peeked, peekErr := s.issuer.PeekID(cachedRefresh); peekErr == nil {
			_ = s.denylist.Revoke(ctx, peeked.TokenID, peeked.ExpiresAt)
		}
		s.logger.Warn("cached refresh token no longer verifies", "user_id", claims.UserID, "err", err)
	} else if err := s.denylist.Revoke(ctx, refreshClaims.TokenID, refreshClaims.ExpiresAt); err != nil {
		return fmt.Errorf("refresh token revocation failed: %w", err)
	}

	if err := s.cache.Delete(ctx, claims.UserID); err != nil {
		return err
	}

	s.logger.Info("logout succeeded", "user_id", claims.UserID)
	return nil
}

// Refresh mints a new access token from a still-valid refresh token. The
// refresh token itself is not rotated. Callers pass the access token too,
// if one was presented: refresh is only for renewing an expired one.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, accessToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrUnauthorized
	}

	if accessToken != "" {
		if _, _, err := s.issuer.VerifyAccess(accessToken); err == nil {
			return "", ErrAccessValid
		}
	}

	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		s.revokeUnverified(ctx, refreshToken)
		s.logger.Warn("refresh rejected", "reason", "invalid refresh token", "err", err)
		return "", ErrStaleRefresh
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return "", fmt.Errorf("denylist check failed: %w", err)
	}
	if revoked {
		s.logger.Warn("refresh rejected", "reason", "revoked refresh token", "user_id", claims.UserID)
		return "", ErrStaleRefresh
	}

	// 필수 검사: 캐시의 최신 값과 일치하지 않으면 이전 세션의 토큰 재사용
	cached, err := s.cache.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			_ = s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
			s.logger.Warn("refresh rejected", "reason", "no cached refresh token", "user_id", claims.UserID)
			return "", ErrStaleRefresh
		}
		return "", err
	}
	if cached != refreshToken {
		if err := s.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
			s.logger.Warn("stale refresh token revocation failed", "user_id", claims.UserID, "err", err)
		}
		s.logger.Warn("refresh rejected", "reason", "superseded refresh token", "user_id", claims.UserID)
		return "", ErrStaleRefresh
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrStaleRefresh
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		s.logger.Warn("refresh rejected", "reason", "inactive account", "user_id", user.ID)
		return "", ErrStaleRefresh
	}

	access, err := s.issuer.IssueAccess(user)
	if err != nil {
		return "", err
	}

	s.logger.Info("access token refreshed", "user_id", user.ID)
	return access, nil
}

// Authenticate validates a bearer access token for ordinary authenticated
// requests: signature, expiry, then the revocation ledger.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.AuthUser, error) {
	claims, phoneNumber, err := s.issuer.VerifyAccess(accessToken)
	if err != nil {
		return nil, ErrUnauthorized
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("denylist check failed: %w", err)
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	return &model.AuthUser{ID: claims.UserID, PhoneNumber: phoneNumber}, nil
}

func (s *AuthService) revokeUnverified(ctx context.Context, token string) {
	peeked, err := s.issuer.PeekID(token)
	if err != nil {
		return
	}
	if err := s.denylist.Revoke(ctx, peeked.TokenID, peeked.ExpiresAt); err != nil {
		s.logger.Warn("best-effort revocation failed", "token_id", peeked.TokenID, "err", err)
	}
}

func parseBool(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseSameSite(value string) (http.SameSite, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "lax":
		return http.SameSiteLaxMode, nil
	case "strict":
		return http.SameSiteStrictMode, nil
	case "none":
		return http.SameSiteNoneMode, nil
	default:
		return 0, ErrInvalidInput
	}
}
