package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketplace-backend/internal/domains/category"

	"github.com/google/uuid"
)

// memoryRepository - In-process CategoryRepository (STORE_DRIVER=memory, tests)
type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]category.Category
}

func NewMemoryRepository() category.CategoryRepository {
	return &memoryRepository{byID: make(map[uuid.UUID]category.Category)}
}

func (r *memoryRepository) Create(_ context.Context, c *category.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Slug == c.Slug {
			return category.ErrDuplicateSlug
		}
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, category.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *memoryRepository) GetBySlug(_ context.Context, slug string) (*category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.Slug == slug {
			c := c
			return &c, nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (r *memoryRepository) GetAll(_ context.Context, filter category.CategoryFilter) ([]category.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]category.Category, 0, len(r.byID))
	for _, c := range r.byID {
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memoryRepository) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return category.ErrCategoryNotFound
	}
	c.IsActive = active
	c.UpdatedAt = time.Now().UTC()
	r.byID[id] = c
	return nil
}
