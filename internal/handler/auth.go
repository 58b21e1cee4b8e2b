package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maeum-crm/backend/internal/model"
	"github.com/maeum-crm/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Login
// @Description Issues an access token and sets the refresh token cookie.
// @Tags oauth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Phone number and password"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/oauth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 전화번호 없음 / 비밀번호 오류와 같은 메시지로 응답 (계정 추측 방지)
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid phone number or password"})
		return
	}

	access, refresh, err := h.svc.Login(c.Request.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	h.setRefreshCookie(c, refresh)
	c.JSON(http.StatusOK, model.LoginResponse{
		Detail:      "successfully logged in",
		AccessToken: access,
	})
}

// Logout godoc
// @Summary Logout
// @Description Denylists the access token and the cached refresh token, then clears the cookie.
// @Tags oauth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DetailResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/oauth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	if err := h.svc.Logout(c.Request.Context(), accessToken); err != nil {
		writeServiceError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, model.DetailResponse{Detail: "successfully logged out"})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Mints a new access token from the refresh token cookie. The refresh token is not rotated.
// @Tags oauth
// @Produce json
// @Success 200 {object} model.RefreshResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/oauth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.svc.CookieConfig().Name)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "refresh token cookie not found"})
		return
	}

	accessToken, _ := bearerToken(c)
	access, err := h.svc.Refresh(c.Request.Context(), refreshToken, accessToken)
	if err != nil {
		if err == service.ErrStaleRefresh {
			h.clearRefreshCookie(c)
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.RefreshResponse{AccessToken: access})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, token, cfg.MaxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
