package model

import (
	"errors"
	"fmt"
	"net/http"

	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrForbidden            = errors.New("operation not permitted for this caller")
	ErrCategoryUnavailable  = errors.New("category does not exist or is not active")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrStoreUnavailable     = errors.New("product store unavailable")
	ErrSellerRequired       = errors.New("seller_id is required when an admin creates a product")
	ErrSKUConflict          = errors.New("sku already used by another product of this seller")
	ErrInvalidProductID     = errors.New("invalid product id")
	ErrInvalidSellerID      = errors.New("invalid seller id")
	ErrInvalidLimit         = errors.New("limit must be positive")
	ErrActivationNotAllowed = fmt.Errorf("%w: only admins can activate a product", ErrForbidden)
)

// StoreUnavailable - Wrap lỗi transient từ storage; errors.Is khớp cả ErrStoreUnavailable lẫn cause
func StoreUnavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, cause)
}

// RetryAfterSeconds - Header Retry-After khi store không sẵn sàng
const RetryAfterSeconds = "5"

type errorMapping struct {
	Err     error
	Status  int
	Title   string
	Message string
}

// Thứ tự quan trọng: lỗi cụ thể (wrap lỗi khác) phải đứng trước
var productErrorMap = []errorMapping{
	{ErrProductNotFound, http.StatusNotFound, "Product not found", "The specified product does not exist"},
	{ErrActivationNotAllowed, http.StatusForbidden, "Forbidden", "Only admins can activate a product"},
	{ErrForbidden, http.StatusForbidden, "Forbidden", "You are not allowed to modify this product"},
	{ErrCategoryUnavailable, http.StatusUnprocessableEntity, "Category unavailable", "The category does not exist or is not active"},
	{ErrCategoryNotFound, http.StatusNotFound, "Category not found", "The specified category does not exist"},
	{ErrSellerRequired, http.StatusBadRequest, "Seller required", "seller_id is required"},
	{ErrInvalidSellerID, http.StatusBadRequest, "Invalid seller ID", "seller_id must be a valid UUID"},
	{ErrInvalidProductID, http.StatusBadRequest, "Invalid product ID", "ID must be a valid UUID"},
	{ErrInvalidLimit, http.StatusBadRequest, "Invalid limit", "limit must be positive"},
	{ErrSKUConflict, http.StatusConflict, "SKU already exists", "This SKU is already used by another of your products"},
}

// HandleProductError - Map lỗi domain => HTTP response. Trả về true nếu đã ghi response.
func HandleProductError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)
		return true
	}

	for _, m := range productErrorMap {
		if errors.Is(err, m.Err) {
			response.Error(c, m.Status, m.Title, m.Message)
			return true
		}
	}

	if errors.Is(err, ErrStoreUnavailable) {
		logger.Error("[Handler] Product store unavailable", err)
		c.Header("Retry-After", RetryAfterSeconds)
		response.Error(c, http.StatusServiceUnavailable, "Service unavailable", "Please retry later")
		return true
	}

	// Lỗi không xác định
	logger.Error("[Handler] Unexpected product error", err)
	response.Error(c, http.StatusInternalServerError, "Internal server error", "Internal server error")
	return true
}
