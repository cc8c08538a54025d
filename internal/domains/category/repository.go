package category

import (
	"context"

	"github.com/google/uuid"
)

// ============================================================
// REPOSITORY INTERFACE: CategoryRepository
// ============================================================
// GetByID / GetBySlug trả về ErrCategoryNotFound khi không có row,
// kể cả category inactive (caller tự check IsActive).
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	GetAll(ctx context.Context, filter CategoryFilter) ([]Category, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// ============================================================
// SERVICE INTERFACE
// ============================================================

// Resolver - Phần category mà product domain cần:
// chỉ category đang active mới resolve được.
type Resolver interface {
	ResolveActive(ctx context.Context, id uuid.UUID) (*Category, error)
	ResolveActiveBySlug(ctx context.Context, slug string) (*Category, error)
}

// CategoryService - Admin management + Resolver
type CategoryService interface {
	Resolver
	Create(ctx context.Context, req *CreateCategoryReq) (*Category, error)
	List(ctx context.Context, filter CategoryFilter) ([]Category, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}
