package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maeum-crm/backend/internal/model"
	"github.com/maeum-crm/backend/internal/service"
)

type CustomerHandler struct {
	svc *service.CustomerService
}

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List godoc
// @Summary List own customers
// @Tags customer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CustomerResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	customers, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, customers[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

// Create godoc
// @Summary Create customer
// @Description The customer is linked to the logged-in user. A security row is created alongside.
// @Tags customer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CustomerCreateRequest true "Customer data"
// @Success 201 {object} model.CustomerResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	var req model.CustomerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid customer data"})
		return
	}

	customer, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer.Response())
}

// Detail godoc
// @Summary Get customer
// @Tags customer
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} model.CustomerResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/customers/{id} [get]
func (h *CustomerHandler) Detail(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	customer, err := h.svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer.Response())
}

// Update godoc
// @Summary Update customer
// @Tags customer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} model.CustomerResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	var req model.CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid customer data"})
		return
	}

	customer, err := h.svc.Update(c.Request.Context(), user.ID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer.Response())
}

// UpdateSecurity godoc
// @Summary Update customer security info
// @Tags customer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} model.CustomerResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/customers/{id}/security [put]
func (h *CustomerHandler) UpdateSecurity(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	var req model.CustomerSecurityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid security data"})
		return
	}

	customer, err := h.svc.UpdateSecurity(c.Request.Context(), user.ID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer.Response())
}

// Delete godoc
// @Summary Delete customer
// @Tags customer
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// authAndID - 인증 사용자와 경로의 숫자 ID를 함께 꺼내는 공용 헬퍼
func authAndID(c *gin.Context, param string) (*model.AuthUser, int64, bool) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return nil, 0, false
	}

	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Detail: "not found"})
		return nil, 0, false
	}

	return user, id, true
}
