package repository

import (
	"context"
	"sort"
	"sync"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/ranking"

	"github.com/google/uuid"
)

// memoryRepository - In-process store (STORE_DRIVER=memory, tests).
// Cùng thứ tự và cùng predicate seek với postgresRepository.
type memoryRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*model.Product
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{products: make(map[uuid.UUID]*model.Product)}
}

func (r *memoryRepository) Create(_ context.Context, p *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skuTaken(p, uuid.Nil) {
		return model.ErrSKUConflict
	}
	r.products[p.ID] = p.Clone()
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || p.IsDeleted() {
		return nil, model.ErrProductNotFound
	}
	return p.Clone(), nil
}

func (r *memoryRepository) Mutate(_ context.Context, id uuid.UUID, fn MutateFunc) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[id]
	if !ok || current.IsDeleted() {
		return nil, model.ErrProductNotFound
	}

	// fn làm việc trên bản copy: lỗi => state cũ giữ nguyên
	draft := current.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	if r.skuTaken(draft, draft.ID) {
		return nil, model.ErrSKUConflict
	}

	r.products[id] = draft
	return draft.Clone(), nil
}

func (r *memoryRepository) List(_ context.Context, q ListQuery) ([]model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Product, 0)
	for _, p := range r.products {
		if !p.IsPublic() || !inScope(p, q.Scope) {
			continue
		}
		if q.After != nil && !q.After.After(p.RankScore, p.ShuffleKey, p.ID) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		return ranking.Less(a.RankScore, a.ShuffleKey, a.ID, b.RankScore, b.ShuffleKey, b.ID)
	})

	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	out := make([]model.Product, 0, len(matched))
	for _, p := range matched {
		out = append(out, *p.Clone())
	}
	return out, nil
}

func (r *memoryRepository) ListIDsAfter(_ context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uuid.UUID, 0)
	for id, p := range r.products {
		if !p.IsDeleted() && ranking.CompareIDs(id, afterID) > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ranking.CompareIDs(ids[i], ids[j]) < 0 })

	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func inScope(p *model.Product, s Scope) bool {
	switch s.Kind {
	case ScopeSeller:
		return p.SellerID == s.SellerID
	case ScopeCategory:
		return p.Category.ID == s.CategoryID
	default:
		return true
	}
}

// skuTaken - Unique (seller_id, sku) trên product chưa xoá, trừ chính nó
func (r *memoryRepository) skuTaken(p *model.Product, self uuid.UUID) bool {
	if p.SKU == nil || p.IsDeleted() {
		return false
	}
	for id, other := range r.products {
		if id == self || other.IsDeleted() || other.SKU == nil {
			continue
		}
		if other.SellerID == p.SellerID && *other.SKU == *p.SKU {
			return true
		}
	}
	return false
}
