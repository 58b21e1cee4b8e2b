package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maeum-crm/backend/internal/model"
	"github.com/maeum-crm/backend/internal/service"
)

type CounselHandler struct {
	svc *service.CounselService
}

func NewCounselHandler(svc *service.CounselService) *CounselHandler {
	return &CounselHandler{svc: svc}
}

// List godoc
// @Summary List counsels of own customers
// @Tags counsel
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CounselResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/counsels [get]
func (h *CounselHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	counsels, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.CounselResponse, 0, len(counsels))
	for i := range counsels {
		responses = append(responses, counsels[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

// Create godoc
// @Summary Create counsel
// @Description Creating against a customer owned by another user is rejected with 401.
// @Tags counsel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CounselCreateRequest true "Counsel data"
// @Success 201 {object} model.CounselResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/counsels [post]
func (h *CounselHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "unauthorized"})
		return
	}

	var req model.CounselCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid counsel data"})
		return
	}

	counsel, err := h.svc.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, counsel.Response())
}

// Detail godoc
// @Summary Get counsel
// @Tags counsel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Success 200 {object} model.CounselResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id} [get]
func (h *CounselHandler) Detail(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	counsel, err := h.svc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counsel.Response())
}

// Update godoc
// @Summary Update counsel
// @Tags counsel
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Success 200 {object} model.CounselResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id} [put]
func (h *CounselHandler) Update(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	var req model.CounselUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid counsel data"})
		return
	}

	counsel, err := h.svc.Update(c.Request.Context(), user.ID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, counsel.Response())
}

// Delete godoc
// @Summary Delete counsel
// @Tags counsel
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id} [delete]
func (h *CounselHandler) Delete(c *gin.Context) {
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

// ListDocuments godoc
// @Summary List documents of a counsel
// @Tags counsel-document
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Success 200 {array} model.CounselDocumentResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id}/documents [get]
func (h *CounselHandler) ListDocuments(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	docs, err := h.svc.ListDocuments(c.Request.Context(), user.ID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	responses := make([]model.CounselDocumentResponse, 0, len(docs))
	for i := range docs {
		responses = append(responses, docs[i].Response())
	}
	c.JSON(http.StatusOK, responses)
}

// CreateDocument godoc
// @Summary Attach document to a counsel
// @Tags counsel-document
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Param request body model.CounselDocumentCreateRequest true "Document data"
// @Success 201 {object} model.CounselDocumentResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id}/documents [post]
func (h *CounselHandler) CreateDocument(c *gin.Context) {
	user, id, ok := authAndID(c, "id")
	if !ok {
		return
	}

	var req model.CounselDocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid document data"})
		return
	}

	doc, err := h.svc.CreateDocument(c.Request.Context(), user.ID, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc.Response())
}

// DocumentDetail godoc
// @Summary Get counsel document
// @Tags counsel-document
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Param docID path int true "Document ID"
// @Success 200 {object} model.CounselDocumentResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id}/documents/{docID} [get]
func (h *CounselHandler) DocumentDetail(c *gin.Context) {
	user, id, docID, ok := authCounselDoc(c)
	if !ok {
		return
	}

	doc, err := h.svc.GetDocument(c.Request.Context(), user.ID, id, docID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc.Response())
}

// UpdateDocument godoc
// @Summary Update counsel document
// @Tags counsel-document
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Param docID path int true "Document ID"
// @Success 200 {object} model.CounselDocumentResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id}/documents/{docID} [put]
func (h *CounselHandler) UpdateDocument(c *gin.Context) {
	user, id, docID, ok := authCounselDoc(c)
	if !ok {
		return
	}

	var req model.CounselDocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Detail: "invalid document data"})
		return
	}

	doc, err := h.svc.UpdateDocument(c.Request.Context(), user.ID, id, docID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc.Response())
}

// DeleteDocument godoc
// @Summary Delete counsel document
// @Tags counsel-document
// @Produce json
// @Security BearerAuth
// @Param id path int true "Counsel ID"
// @Param docID path int true "Document ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/counsels/{id}/documents/{docID} [delete]
func (h *CounselHandler) DeleteDocument(c *gin.Context) {
	user, id, docID, ok := authCounselDoc(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteDocument(c.Request.Context(), user.ID, id, docID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func authCounselDoc(c *gin.Context) (user *model.AuthUser, counselID, docID int64, ok bool) {
	user, counselID, ok = authAndID(c, "id")
	if !ok {
		return nil, 0, 0, false
	}

	docID, err := strconv.ParseInt(c.Param("docID"), 10, 64)
	if err != nil || docID <= 0 {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Detail: "not found"})
		return nil, 0, 0, false
	}

	return user, counselID, docID, true
}
