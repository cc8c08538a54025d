package service

import (
	"context"
	"errors"
	"time"

	"marketplace-backend/internal/domains/category"
	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/ranking"
	"marketplace-backend/internal/domains/product/repository"
	"marketplace-backend/pkg/logger"

	"github.com/google/uuid"
)

// ListAll - Listing toàn catalog
func (s *ProductService) ListAll(ctx context.Context, cursor string, limit int) (*model.ListResult, error) {
	return s.list(ctx, "global", repository.GlobalScope(), cursor, limit)
}

// ListBySeller - Listing của 1 seller (chỉ product public)
func (s *ProductService) ListBySeller(ctx context.Context, sellerID uuid.UUID, cursor string, limit int) (*model.ListResult, error) {
	return s.list(ctx, "seller:"+sellerID.String(), repository.SellerScope(sellerID), cursor, limit)
}

// ListByCategorySlug - Slug không tồn tại hoặc category inactive => ErrCategoryNotFound,
// KHÔNG trả về trang rỗng
func (s *ProductService) ListByCategorySlug(ctx context.Context, slug string, cursor string, limit int) (*model.ListResult, error) {
	scope, err := s.ResolveCategoryScope(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "category:"+scope.CategoryID.String(), scope, cursor, limit)
}

// ResolveCategoryScope - slug => ScopeCategory
func (s *ProductService) ResolveCategoryScope(ctx context.Context, slug string) (repository.Scope, error) {
	c, err := s.categories.ResolveActiveBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, category.ErrCategoryNotFound) || errors.Is(err, category.ErrCategoryInactive) {
			return repository.Scope{}, model.ErrCategoryNotFound
		}
		return repository.Scope{}, err
	}
	return repository.CategoryScope(c.ID), nil
}

// list - Fetch limit+1 để biết còn trang sau hay không.
// Cursor hỏng được coi như không có cursor (trang đầu).
func (s *ProductService) list(ctx context.Context, scopeKey string, scope repository.Scope, cursor string, limit int) (*model.ListResult, error) {
	if limit < 1 {
		return nil, model.ErrInvalidLimit
	}
	start := time.Now()

	after := ranking.DecodeCursor(cursor)
	normalized := ""
	if after != nil {
		normalized = ranking.EncodeCursor(*after)
	}

	// 1. Cache. generation đọc TRƯỚC store: mutation xen giữa sẽ đổi generation
	gen, cacheable := s.listGeneration(ctx)
	cacheKey := model.GenerateListCacheKey(gen, scopeKey, normalized, limit)
	if cacheable {
		if cached, ok := s.cachedPage(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	// 2. Store
	rows, err := s.repo.List(ctx, repository.ListQuery{Scope: scope, After: after, Limit: limit + 1})
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []model.Product{}
	}
	result := &model.ListResult{Items: rows}
	hasMore := len(rows) > limit
	if hasMore {
		result.Items = rows[:limit]
		next := ranking.EncodeCursor(result.Items[limit-1].Cursor())
		result.NextCursor = &next
	}

	// 3. Cache write (best effort). Bỏ qua nếu đã có mutation trong lúc đọc store.
	if cacheable {
		if current, ok := s.listGeneration(ctx); ok && current == gen {
			if err := s.cache.Set(ctx, cacheKey, result, s.listCacheTTL); err != nil {
				logger.Error("[ProductService] Failed to cache listing page", err)
			}
		}
	}

	s.metrics.RecordListing(scope.KindName(), len(result.Items), hasMore, time.Since(start))
	return result, nil
}

// listGeneration - Token thế hệ hiện tại; false => không dùng cache cho request này
func (s *ProductService) listGeneration(ctx context.Context) (string, bool) {
	if s.cache == nil || s.listCacheTTL <= 0 {
		return "", false
	}

	var gen string
	found, err := s.cache.Get(ctx, model.ListGenerationKey, &gen)
	if err != nil {
		logger.Error("[ProductService] Listing generation read failed", err)
		return "", false
	}
	if !found || gen == "" {
		gen = model.InitialListGeneration
	}
	return gen, true
}

func (s *ProductService) cachedPage(ctx context.Context, key string) (*model.ListResult, bool) {
	var cached model.ListResult
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Error("[ProductService] Listing cache read failed", err)
		return nil, false
	}
	s.metrics.RecordCacheLookup(found)
	if !found {
		return nil, false
	}
	return &cached, true
}
