package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-backend/internal/domains/category"
	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/ranking"
	"marketplace-backend/internal/domains/product/repository"
	"marketplace-backend/internal/infrastructure/metrics"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Options - Dependencies tuỳ chọn của ProductService
type Options struct {
	Salt         ranking.Salt
	Cache        cache.Cache // nil => không cache listing
	ListCacheTTL time.Duration
	Metrics      metrics.CatalogMetrics
	Now          func() time.Time
	NewID        func() (uuid.UUID, error)
}

// ProductService - Implements ServiceInterface
type ProductService struct {
	repo         repository.RepositoryInterface
	categories   category.Resolver
	cache        cache.Cache
	listCacheTTL time.Duration
	metrics      metrics.CatalogMetrics
	salt         ranking.Salt
	now          func() time.Time
	newID        func() (uuid.UUID, error)
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, categories category.Resolver, opts Options) *ProductService {
	s := &ProductService{
		repo:         repo,
		categories:   categories,
		cache:        opts.Cache,
		listCacheTTL: opts.ListCacheTTL,
		metrics:      opts.Metrics,
		salt:         opts.Salt,
		now:          opts.Now,
		newID:        opts.NewID,
	}
	if s.salt == "" {
		s.salt = ranking.DefaultSalt
	}
	if s.metrics == nil {
		s.metrics = metrics.Noop{}
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewV7
	}
	return s
}

var _ ServiceInterface = (*ProductService)(nil)

// ===== CREATE =====

// Create - Tạo product mới.
// Seller: luôn là draft, luôn thuộc về chính seller. Admin: phải chỉ định seller_id.
func (s *ProductService) Create(ctx context.Context, actor model.Actor, req model.CreateProductRequest) (p *model.Product, err error) {
	defer func() { s.metrics.RecordMutation("create", outcome(err)) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Seller
	sellerID := actor.ID
	if actor.IsPrivileged {
		if req.SellerID == nil {
			return nil, model.ErrSellerRequired
		}
		if sellerID, err = uuid.Parse(*req.SellerID); err != nil {
			return nil, model.ErrInvalidSellerID
		}
	}

	// 2. Category snapshot (chỉ category active)
	snapshot, err := s.resolveCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}

	// 3. Status
	status := model.StatusDraft
	if actor.IsPrivileged && req.Status != nil {
		status = model.Status(*req.Status)
	}

	// 4. Identity trước, shuffle key tính từ id
	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate product id: %w", err)
	}

	now := s.now()
	currency := model.DefaultCurrency
	if req.Currency != "" {
		currency = model.Currency(req.Currency)
	}

	p = &model.Product{
		ID:             id,
		SellerID:       sellerID,
		Category:       *snapshot,
		Title:          req.Title,
		Description:    req.Description,
		Images:         req.Images,
		Tags:           req.Tags,
		Price:          req.Price,
		OldPrice:       req.OldPrice,
		Currency:       currency,
		StockQty:       req.StockQty,
		SKU:            req.SKU,
		Status:         status,
		PromotionLevel: ranking.PromotionNone,
		PromotionEndAt: req.PromotionEndAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.PromotionLevel != nil {
		p.PromotionLevel = ranking.PromotionLevel(*req.PromotionLevel)
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	p.Reshuffle(s.salt)
	p.Rerank(now)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	logger.Info("product created", map[string]interface{}{
		"product_id": p.ID.String(),
		"seller_id":  p.SellerID.String(),
		"status":     string(p.Status),
		"rank_score": p.RankScore,
	})
	return p, nil
}

// ===== UPDATE =====

// Update - Partial update, atomic. Rank luôn được tính lại sau khi áp field.
func (s *ProductService) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdateProductRequest) (p *model.Product, err error) {
	defer func() { s.metrics.RecordMutation("update", outcome(err)) }()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err = s.repo.Mutate(ctx, id, func(p *model.Product) error {
		if !actor.CanModify(p) {
			return model.ErrForbidden
		}
		if !actor.IsPrivileged && req.Status != nil && model.Status(*req.Status) == model.StatusActive {
			return model.ErrActivationNotAllowed
		}
		if err := s.applyUpdate(ctx, p, req); err != nil {
			return err
		}

		now := s.now()
		p.Rerank(now)
		if req.RotateShuffle {
			p.Reshuffle(s.salt)
		}
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	logger.Info("product updated", map[string]interface{}{
		"product_id":  p.ID.String(),
		"status":      string(p.Status),
		"rank_score":  p.RankScore,
		"shuffle_key": p.ShuffleKey,
	})
	return p, nil
}

func (s *ProductService) applyUpdate(ctx context.Context, p *model.Product, req model.UpdateProductRequest) error {
	if req.CategoryID != nil {
		snapshot, err := s.resolveCategory(ctx, *req.CategoryID)
		if err != nil {
			return err
		}
		p.Category = *snapshot
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Images != nil {
		p.Images = *req.Images
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.OldPrice != nil {
		p.OldPrice = nonZero(req.OldPrice)
	}
	if req.Currency != nil {
		p.Currency = model.Currency(*req.Currency)
	}
	if req.StockQty != nil {
		p.StockQty = *req.StockQty
	}
	if req.SKU != nil {
		p.SKU = req.SKU
	}
	if req.Status != nil {
		p.Status = model.Status(*req.Status)
	}
	if req.PromotionLevel != nil {
		p.PromotionLevel = ranking.PromotionLevel(*req.PromotionLevel)
	}
	if req.PromotionEndAt.Set {
		p.PromotionEndAt = nil
		if req.PromotionEndAt.Value != nil {
			endAt := *req.PromotionEndAt.Value
			p.PromotionEndAt = &endAt
		}
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	return nil
}

// nonZero - old_price = 0 nghĩa là bỏ giá cũ
func nonZero(d *decimal.Decimal) *decimal.Decimal {
	if d == nil || d.IsZero() {
		return nil
	}
	v := *d
	return &v
}

// ===== DELETE =====

// SoftDelete - Set deleted_at; không thể khôi phục
func (s *ProductService) SoftDelete(ctx context.Context, actor model.Actor, id uuid.UUID) (err error) {
	defer func() { s.metrics.RecordMutation("delete", outcome(err)) }()

	_, err = s.repo.Mutate(ctx, id, func(p *model.Product) error {
		if !actor.CanModify(p) {
			return model.ErrForbidden
		}
		now := s.now()
		p.DeletedAt = &now
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateListings(ctx)
	logger.Info("product deleted", map[string]interface{}{"product_id": id.String()})
	return nil
}

// ===== READ =====

// GetByID - Chỉ product public (active, chưa xoá)
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsPublic() {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

// ===== HELPERS =====

// resolveCategory - category phải tồn tại và active, trả về snapshot {id, name, slug}
func (s *ProductService) resolveCategory(ctx context.Context, rawID string) (*model.CategorySnapshot, error) {
	categoryID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, model.ErrCategoryUnavailable
	}

	c, err := s.categories.ResolveActive(ctx, categoryID)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) || errors.Is(err, category.ErrCategoryInactive) {
			return nil, model.ErrCategoryUnavailable
		}
		return nil, err
	}

	return &model.CategorySnapshot{ID: c.ID, Name: c.Name, Slug: c.Slug}, nil
}

// invalidateListings - Đổi generation rồi xoá toàn bộ listing page cache. Lỗi cache chỉ log.
// Đổi generation trước: trang đọc từ store trước mutation sẽ không được ghi lại
// hoặc nằm dưới key cũ không ai đọc nữa.
func (s *ProductService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, model.ListGenerationKey, uuid.NewString(), 0); err != nil {
		logger.Error("[ProductService] Failed to bump listing generation", err)
	}
	if err := s.cache.DeletePattern(ctx, model.ListCachePattern()); err != nil {
		logger.Error("[ProductService] Failed to invalidate listing cache", err)
	}
}

// outcome - label cho metrics
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, model.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, model.ErrForbidden):
		return "forbidden"
	case errors.Is(err, model.ErrCategoryUnavailable):
		return "category_unavailable"
	case errors.Is(err, model.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "error"
	}
}
