package category

import (
	"errors"
	"net/http"
)

// ============================================================
// DOMAIN ERRORS
// ============================================================
// handler => service => repository: wrap bằng fmt.Errorf("%w"),
// handler dùng GetHTTPStatusCode (errors.Is) để map sang HTTP status.
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInactive    = errors.New("category is not active")
	ErrDuplicateSlug       = errors.New("category slug already exists")
	ErrInvalidCategoryName = errors.New("category name must be 1-255 characters")
	ErrInvalidSortOrder    = errors.New("sort_order must be between 0 and 999")
	ErrParentNotFound      = errors.New("parent category not found")
)

// GetHTTPStatusCode map domain error tới HTTP status code
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrCategoryInactive):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSlug):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCategoryName),
		errors.Is(err, ErrInvalidSortOrder),
		errors.Is(err, ErrParentNotFound):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
