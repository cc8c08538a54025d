package handler

import (
	"net/http"

	"marketplace-backend/internal/domains/category"
	"marketplace-backend/internal/shared/response"
	"marketplace-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type CategoryHandler struct {
	service category.CategoryService
}

func NewCategoryHandler(svc category.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// ========== LIST: GET /api/v1/categories ==========
func (h *CategoryHandler) ListActive(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context(), category.CategoryFilter{ActiveOnly: true})
	if err != nil {
		response.Error(c, category.GetHTTPStatusCode(err), "Failed to list categories", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Get categories successfully", categories)
}

// ========== CREATE: POST /api/v1/admin/categories ==========
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, category.GetHTTPStatusCode(err), "Failed to create category", err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Create a category successfully", created)
}

// ========== SET ACTIVE: PATCH /api/v1/admin/categories/:id/active ==========
// Deactivate không đụng tới product: snapshot trên product giữ nguyên
func (h *CategoryHandler) SetActive(c *gin.Context) {
	id, ok := utils.ParsePathID(c.Param("id"))
	if !ok {
		response.Error(c, http.StatusBadRequest, "Bad Request", "invalid category id")
		return
	}

	var req category.SetActiveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	if err := h.service.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		response.Error(c, category.GetHTTPStatusCode(err), "Failed to update category", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Category updated successfully", nil)
}
