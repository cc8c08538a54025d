package service

import (
	"context"
	"io"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/repository"

	"github.com/google/uuid"
)

// ServiceInterface - Business logic của catalog
type ServiceInterface interface {
	// ===== Mutations =====
	Create(ctx context.Context, actor model.Actor, req model.CreateProductRequest) (*model.Product, error)
	Update(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdateProductRequest) (*model.Product, error)
	SoftDelete(ctx context.Context, actor model.Actor, id uuid.UUID) error

	// ===== Reads =====
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListAll(ctx context.Context, cursor string, limit int) (*model.ListResult, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, cursor string, limit int) (*model.ListResult, error)
	ListByCategorySlug(ctx context.Context, slug string, cursor string, limit int) (*model.ListResult, error)

	// ===== Operations =====
	Reshuffle(ctx context.Context) (int, error)
	Export(ctx context.Context, scope repository.Scope, w io.Writer) (int, error)
	ResolveCategoryScope(ctx context.Context, slug string) (repository.Scope, error)
}
