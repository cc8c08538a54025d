package repository

import (
	"context"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/ranking"

	"github.com/google/uuid"
)

// ScopeKind - Phạm vi listing
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeSeller
	ScopeCategory
)

// Scope - Filter phạm vi, luôn AND với status=active và deleted_at IS NULL
type Scope struct {
	Kind       ScopeKind
	SellerID   uuid.UUID
	CategoryID uuid.UUID
}

func GlobalScope() Scope {
	return Scope{Kind: ScopeGlobal}
}

func SellerScope(id uuid.UUID) Scope {
	return Scope{Kind: ScopeSeller, SellerID: id}
}

func CategoryScope(id uuid.UUID) Scope {
	return Scope{Kind: ScopeCategory, CategoryID: id}
}

// ListQuery - Một lần fetch theo thứ tự (rank DESC, shuffle DESC, id DESC).
// After == nil: từ đầu. Limit > 0 là precondition của caller.
type ListQuery struct {
	Scope Scope
	After *ranking.Cursor
	Limit int
}

// MutateFunc - Áp dụng thay đổi lên bản copy của product.
// Trả lỗi => không có gì được ghi.
type MutateFunc func(p *model.Product) error

// RepositoryInterface - Ordered range-query store cho product
type RepositoryInterface interface {
	// Create - ErrSKUConflict nếu seller đã có sku này
	Create(ctx context.Context, p *model.Product) error

	// GetByID - ErrProductNotFound nếu không có hoặc đã soft delete
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Mutate - Read-modify-write atomic trên 1 product chưa bị xoá
	Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (*model.Product, error)

	// List - Tối đa q.Limit product public sau q.After
	List(ctx context.Context, q ListQuery) ([]model.Product, error)

	// ListIDsAfter - id của product chưa xoá, tăng dần, sau afterID (uuid.Nil = từ đầu)
	ListIDsAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error)
}

// KindName - label ngắn cho metrics/log
func (s Scope) KindName() string {
	switch s.Kind {
	case ScopeSeller:
		return "seller"
	case ScopeCategory:
		return "category"
	default:
		return "global"
	}
}
