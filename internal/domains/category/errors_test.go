package category

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatusCode(ErrCategoryNotFound))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatusCode(fmt.Errorf("slug x: %w", ErrCategoryInactive)))
	assert.Equal(t, http.StatusConflict, GetHTTPStatusCode(ErrDuplicateSlug))
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatusCode(ErrInvalidCategoryName))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatusCode(errors.New("boom")))
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Kids Toys ", "", nil, 0)
	assert.NoError(t, err)
	assert.Equal(t, "Kids Toys", c.Name)
	assert.Equal(t, "kids-toys", c.Slug)

	_, err = NewCategory("   ", "", nil, 0)
	assert.ErrorIs(t, err, ErrInvalidCategoryName)

	_, err = NewCategory("Toys", "", nil, 1000)
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}
