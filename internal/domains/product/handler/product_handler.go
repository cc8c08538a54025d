package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/repository"
	"marketplace-backend/internal/domains/product/service"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/internal/shared/response"
	"marketplace-backend/internal/shared/utils"
	"marketplace-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TaskEnqueuer - Đẩy reshuffle sang worker
type TaskEnqueuer interface {
	EnqueueReshuffle(ctx context.Context, requestedBy string) (string, error)
}

// Handler - HTTP Handler cho catalog
type Handler struct {
	service      service.ServiceInterface
	tasks        TaskEnqueuer
	defaultLimit int
	maxLimit     int
}

// NewHandler - Constructor with DI. tasks có thể nil (không có worker)
func NewHandler(service service.ServiceInterface, tasks TaskEnqueuer, defaultLimit, maxLimit int) *Handler {
	if defaultLimit < 1 {
		defaultLimit = 20
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	return &Handler{
		service:      service,
		tasks:        tasks,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// ============ LISTING ============

// ListProducts - GET /api/v1/products?cursor=&limit=
func (h *Handler) ListProducts(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context(), c.Query("cursor"), h.parseLimit(c))
	if model.HandleProductError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, "Get products successfully", result)
}

// ListBySeller - GET /api/v1/products/by-seller/:sellerId
func (h *Handler) ListBySeller(c *gin.Context) {
	sellerID, ok := utils.ParsePathID(c.Param("sellerId"))
	if !ok {
		model.HandleProductError(c, model.ErrInvalidSellerID)
		return
	}

	result, err := h.service.ListBySeller(c.Request.Context(), sellerID, c.Query("cursor"), h.parseLimit(c))
	if model.HandleProductError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, "Get products successfully", result)
}

// ListByCategory - GET /api/v1/products/by-category/:categorySlug
func (h *Handler) ListByCategory(c *gin.Context) {
	result, err := h.service.ListByCategorySlug(c.Request.Context(), c.Param("categorySlug"), c.Query("cursor"), h.parseLimit(c))
	if model.HandleProductError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, "Get products successfully", result)
}

// GetProduct - GET /api/v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.service.GetByID(c.Request.Context(), id)
	if model.HandleProductError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, "Get product successfully", product)
}

// ============ MUTATIONS ============

// CreateProduct - POST /api/v1/products (seller/admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	product, err := h.service.Create(c.Request.Context(), actor, req)
	if model.HandleProductError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct - PATCH /api/v1/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	product, err := h.service.Update(c.Request.Context(), actor, id, req)
	if model.HandleProductError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct - DELETE /api/v1/products/:id (soft delete)
func (h *Handler) DeleteProduct(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	if model.HandleProductError(c, h.service.SoftDelete(c.Request.Context(), actor, id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ============ ADMIN ============

// Reshuffle - POST /api/v1/admin/products/reshuffle
// Không có worker => chạy đồng bộ
func (h *Handler) Reshuffle(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	if h.tasks == nil {
		changed, err := h.service.Reshuffle(c.Request.Context())
		if model.HandleProductError(c, err) {
			return
		}
		response.Success(c, http.StatusOK, "Products reshuffled", gin.H{"changed": changed})
		return
	}

	taskID, err := h.tasks.EnqueueReshuffle(c.Request.Context(), userID.String())
	if err != nil {
		logger.Error("[Handler] Failed to enqueue reshuffle", err)
		response.Error(c, http.StatusServiceUnavailable, "Queue unavailable", "Please retry later")
		return
	}
	response.Success(c, http.StatusAccepted, "Reshuffle scheduled", gin.H{"task_id": taskID})
}

// Export - GET /api/v1/admin/products/export?seller_id=&category=
func (h *Handler) Export(c *gin.Context) {
	scope, ok := h.exportScope(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	rows, err := h.service.Export(c.Request.Context(), scope, &buf)
	if model.HandleProductError(c, err) {
		return
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("X-Export-Rows", strconv.Itoa(rows))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ============ HELPERS ============

func (h *Handler) exportScope(c *gin.Context) (repository.Scope, bool) {
	if raw := c.Query("seller_id"); raw != "" {
		sellerID, ok := utils.ParsePathID(raw)
		if !ok {
			model.HandleProductError(c, model.ErrInvalidSellerID)
			return repository.Scope{}, false
		}
		return repository.SellerScope(sellerID), true
	}
	if slug := c.Query("category"); slug != "" {
		scope, err := h.service.ResolveCategoryScope(c.Request.Context(), slug)
		if model.HandleProductError(c, err) {
			return repository.Scope{}, false
		}
		return scope, true
	}
	return repository.GlobalScope(), true
}

// parseLimit - Không có/không hợp lệ/0 => default; clamp vào [1, maxLimit]
func (h *Handler) parseLimit(c *gin.Context) int {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return h.defaultLimit
	}
	l, err := strconv.Atoi(limitStr)
	if err != nil || l == 0 {
		// 0 coi như không truyền
		return h.defaultLimit
	}
	if l < 1 {
		return 1
	}
	if l > h.maxLimit {
		return h.maxLimit
	}
	return l
}

func parseProductID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := utils.ParsePathID(c.Param("id"))
	if !ok {
		model.HandleProductError(c, model.ErrInvalidProductID)
		return uuid.Nil, false
	}
	return id, true
}

func actorFrom(c *gin.Context) (model.Actor, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
		return model.Actor{}, false
	}
	return model.NewActor(userID, middleware.GetRole(c)), true
}
