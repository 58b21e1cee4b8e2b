package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maeum-crm/backend/internal/model"
	"github.com/maeum-crm/backend/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SignUp godoc
// @Summary Sign up
// @Tags oauth
// @Accept json
// @Produce json
// @Param request body model.SignUpRequest true "Sign up data"
// @Success 201 {object} model.SignUpResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) SignUp(c *gin.Context) {
	var req model.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid sign up data"})
		return
	}

	user, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.SignUpResponse{
		Detail: "successfully signed up",
		Data:   user.Response(),
	})
}

// Info godoc
// @Summary Get own profile
// @Tags user-info
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users/info [get]
func (h *UserHandler) Info(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	profile, err := h.svc.GetUser(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile.Response())
}

// UpdateInfo godoc
// @Summary Update own profile
// @Description PUT and PATCH share the same semantics: absent fields are unchanged. Password and key are re-hashed.
// @Tags user-info
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UserResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users/info [put]
func (h *UserHandler) UpdateInfo(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	var req model.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid user data"})
		return
	}

	updated, err := h.svc.UpdateUser(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated.Response())
}

// DeleteInfo godoc
// @Summary Delete own account
// @Tags user-info
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.DetailResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/users/info [delete]
func (h *UserHandler) DeleteInfo(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), user.ID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DetailResponse{Detail: "successfully deleted account"})
}
