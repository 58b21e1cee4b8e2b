package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/maeum-crm/backend/internal/cache"
	"github.com/maeum-crm/backend/internal/config"
	"github.com/maeum-crm/backend/internal/model"
	"github.com/maeum-crm/backend/internal/service"
)

type stubUserStore struct {
	user *model.User
}

func (s *stubUserStore) GetUserByPhoneNumber(_ context.Context, phoneNumber string) (*model.User, error) {
	if s.user != nil && s.user.PhoneNumber == phoneNumber {
		return s.user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserStore) GetUserByID(_ context.Context, userID int64) (*model.User, error) {
	if s.user != nil && s.user.ID == userID {
		return s.user, nil
	}
	return nil, pgx.ErrNoRows
}

func newAuthRouter(t *testing.T, accessTTL time.Duration) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &stubUserStore{user: &model.User{
		ID:           1,
		PhoneNumber:  "010-1234-5678",
		PasswordHash: string(hash),
		IsActive:     true,
	}}

	issuer, err := service.NewTokenIssuer("test-secret", accessTTL, time.Hour)
	require.NoError(t, err)

	svc, err := service.NewAuthService(users, issuer, cache.NewMemoryTokenStore(), cache.NewMemoryDenylist(), config.AuthConfig{
		CookieSecure:   "true",
		CookieSameSite: "lax",
		CookiePath:     "/",
	}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/api/v1/oauth/login", h.Login)
	r.POST("/api/v1/oauth/logout", h.Logout)
	r.POST("/api/v1/oauth/refresh", h.Refresh)
	return r, svc
}

func postJSON(r *gin.Engine, path, body string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if mutate != nil {
		mutate(req)
	}
	r.ServeHTTP(w, req)
	return w
}

func refreshCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}

func TestLoginSetsRefreshCookie(t *testing.T) {
	r, _ := newAuthRouter(t, 15*time.Minute)

	w := postJSON(r, "/api/v1/oauth/login", `{"phone_number":"010-1234-5678","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "successfully logged in", resp.Detail)
	assert.NotEmpty(t, resp.AccessToken)

	cookie := refreshCookie(t, w)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	r, _ := newAuthRouter(t, 15*time.Minute)

	bodies := []string{
		`{"phone_number":"010-9999-9999","password":"password123"}`, // 없는 번호
		`{"phone_number":"010-1234-5678","password":"wrong-pass"}`,  // 틀린 비밀번호
		`{"phone_number":"02-123-4567","password":"password123"}`,   // 휴대폰 형식 아님
		`{"phone_number":"010-1234-5678"}`,                          // 비밀번호 누락
	}
	for _, body := range bodies {
		w := postJSON(r, "/api/v1/oauth/login", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp model.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid phone number or password", resp.Detail)
	}
}

func TestRefreshRequiresCookie(t *testing.T) {
	r, _ := newAuthRouter(t, 15*time.Minute)

	w := postJSON(r, "/api/v1/oauth/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "refresh token cookie not found", resp.Detail)
}

func TestRefreshWithValidAccessToken(t *testing.T) {
	r, _ := newAuthRouter(t, 15*time.Minute)

	login := postJSON(r, "/api/v1/oauth/login", `{"phone_number":"010-1234-5678","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := refreshCookie(t, login)

	var loginResp model.LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

	w := postJSON(r, "/api/v1/oauth/refresh", "", func(req *http.Request) {
		req.AddCookie(cookie)
		req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "access token is still valid", resp.Detail)
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	r, _ := newAuthRouter(t, -time.Minute)

	login := postJSON(r, "/api/v1/oauth/login", `{"phone_number":"010-1234-5678","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	cookie := refreshCookie(t, login)

	w := postJSON(r, "/api/v1/oauth/refresh", "", func(req *http.Request) {
		req.AddCookie(cookie)
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.RefreshResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshClearsCookieOnStaleToken(t *testing.T) {
	r, _ := newAuthRouter(t, 15*time.Minute)

	w := postJSON(r, "/api/v1/oauth/refresh", "", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "stale.garbage.token"})
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := refreshCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestLogoutFlow(t *testing.T) {
	r, _ := newAuthRouter(t, 15*time.Minute)

	login := postJSON(r, "/api/v1/oauth/login", `{"phone_number":"010-1234-5678","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)

	var loginResp model.LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

	w := postJSON(r, "/api/v1/oauth/logout", "", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := refreshCookie(t, w)
	assert.Empty(t, cookie.Value)

	// 로그아웃한 토큰으로 다시 로그아웃하면 401
	w = postJSON(r, "/api/v1/oauth/logout", "", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutWithoutBearerToken(t *testing.T) {
	r, _ := newAuthRouter(t, 15*time.Minute)

	w := postJSON(r, "/api/v1/oauth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareProtectsRoutes(t *testing.T) {
	r, svc := newAuthRouter(t, 15*time.Minute)
	r.GET("/api/v1/protected", AuthMiddleware(svc), func(c *gin.Context) {
		user := GetAuthUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login := postJSON(r, "/api/v1/oauth/login", `{"phone_number":"010-1234-5678","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, login.Code)
	var loginResp model.LoginResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &loginResp))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
