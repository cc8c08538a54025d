package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"marketplace-backend/internal/domains/category"
	"marketplace-backend/pkg/logger"

	"github.com/google/uuid"
)

type categoryService struct {
	repo category.CategoryRepository
}

func NewCategoryService(repo category.CategoryRepository) category.CategoryService {
	return &categoryService{repo: repo}
}

// ========== CREATE ==========
func (s *categoryService) Create(ctx context.Context, req *category.CreateCategoryReq) (*category.Category, error) {
	if req.ParentID != nil {
		if _, err := s.repo.GetByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, category.ErrCategoryNotFound) {
				return nil, category.ErrParentNotFound
			}
			return nil, err
		}
	}

	entity, err := category.NewCategory(req.Name, strings.TrimSpace(req.Slug), req.ParentID, req.SortOrder)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info("category created", map[string]interface{}{
		"category_id": entity.ID.String(),
		"slug":        entity.Slug,
	})
	return entity, nil
}

// ========== READ ==========
func (s *categoryService) List(ctx context.Context, filter category.CategoryFilter) ([]category.Category, error) {
	return s.repo.GetAll(ctx, filter)
}

// ResolveActive - Category phải tồn tại VÀ đang active
func (s *categoryService) ResolveActive(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.IsActive {
		return nil, fmt.Errorf("%s: %w", id, category.ErrCategoryInactive)
	}
	return entity, nil
}

func (s *categoryService) ResolveActiveBySlug(ctx context.Context, slug string) (*category.Category, error) {
	entity, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !entity.IsActive {
		return nil, fmt.Errorf("%s: %w", slug, category.ErrCategoryInactive)
	}
	return entity, nil
}

// ========== UPDATE ==========
func (s *categoryService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
