package category

import (
	"strings"
	"time"

	"marketplace-backend/internal/shared/utils"

	"github.com/google/uuid"
)

// ============================================================
// ENTITY: Category
// ============================================================
// Category là danh mục mà product tham chiếu tới khi ghi.
// Product chỉ giữ snapshot {id, name, slug}; đổi tên category
// KHÔNG cập nhật lại các product đã tồn tại.
//
// DATABASE MAPPING:
// ┌─────────────────────────┐
// │    categories table     │
// ├─────────────────────────┤
// │ id (UUID) - PRIMARY KEY │
// │ name (TEXT)             │
// │ slug (TEXT) - UNIQUE    │
// │ parent_id (UUID) - FK   │
// │ sort_order (INT)        │
// │ is_active (BOOLEAN)     │
// │ created_at / updated_at │
// └─────────────────────────┘
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder int        `json:"sort_order"`

	// IsActive: false => không được gán cho product mới,
	// và listing theo slug trả về not found
	IsActive bool `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory - Factory: validate name, sinh slug nếu chưa có
func NewCategory(name, slug string, parentID *uuid.UUID, sortOrder int) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return nil, ErrInvalidCategoryName
	}
	if sortOrder < 0 || sortOrder > 999 {
		return nil, ErrInvalidSortOrder
	}

	if slug == "" {
		slug = utils.GenerateSlug(name)
	}
	if slug == "" {
		return nil, ErrInvalidCategoryName
	}

	now := time.Now().UTC()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		ParentID:  parentID,
		SortOrder: sortOrder,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
