package category

import (
	"github.com/google/uuid"
)

// CreateCategoryReq - POST /api/v1/admin/categories
type CreateCategoryReq struct {
	Name      string     `json:"name" binding:"required"`
	Slug      string     `json:"slug" binding:"omitempty,max=255"`
	ParentID  *uuid.UUID `json:"parent_id" binding:"omitempty"`
	SortOrder int        `json:"sort_order" binding:"omitempty,gte=0,lte=999"`
}

// SetActiveReq - PATCH /api/v1/admin/categories/:id/active
type SetActiveReq struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// CategoryFilter - Filter cho GetAll
type CategoryFilter struct {
	ActiveOnly bool
}
