package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maeum-crm/backend/internal/model"
	"github.com/maeum-crm/backend/internal/service"
)

// writeServiceError - 서비스 계층 sentinel 에러를 HTTP 상태로 변환
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid request data"})
	case errors.Is(err, service.ErrBadCredentials):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid phone number or password"})
	case errors.Is(err, service.ErrAccessValid):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "access token is still valid"})
	case errors.Is(err, service.ErrNoSession):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "refresh token not found"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid sign up data"})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
	case errors.Is(err, service.ErrStaleRefresh):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "refresh token expired or invalid"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Detail: "not found"})
	default:
		slog.Error("unexpected error", "path", c.FullPath(), "method", c.Request.Method, "err", err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Detail: "internal server error"})
	}
}
