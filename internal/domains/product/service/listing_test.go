package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"marketplace-backend/internal/domains/category"
	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/ranking"
	"marketplace-backend/internal/domains/product/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed - Ghi thẳng vào repo với rank/shuffle tuỳ ý (bỏ qua service)
func (f *fixture) seed(t *testing.T, rank int, shuffle uint32) *model.Product {
	t.Helper()
	p := &model.Product{
		ID:         uuid.New(),
		SellerID:   f.seller.ID,
		Category:   model.CategorySnapshot{ID: f.category.ID, Name: f.category.Name, Slug: f.category.Slug},
		Title:      "seeded",
		Price:      decimal.NewFromInt(10),
		Currency:   model.CurrencyRUB,
		Status:     model.StatusActive,
		RankScore:  rank,
		ShuffleKey: shuffle,
		CreatedAt:  f.clock.now,
		UpdatedAt:  f.clock.now,
	}
	require.NoError(t, f.repo.Create(context.Background(), p))
	return p
}

func TestList_PaginationIsComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ranks := []int{0, 5, 10, 35}
	var seeded []*model.Product
	for i := 0; i < 25; i++ {
		// nhiều bộ (rank, shuffle) trùng nhau => id quyết định thứ tự
		seeded = append(seeded, f.seed(t, ranks[i%len(ranks)], uint32(i%3)))
	}

	sort.Slice(seeded, func(i, j int) bool {
		a, b := seeded[i], seeded[j]
		return ranking.Less(a.RankScore, a.ShuffleKey, a.ID, b.RankScore, b.ShuffleKey, b.ID)
	})
	expected := make([]uuid.UUID, len(seeded))
	for i, p := range seeded {
		expected[i] = p.ID
	}

	var got []uuid.UUID
	cursor := ""
	pages := 0
	for {
		page, err := f.svc.ListAll(ctx, cursor, 7)
		require.NoError(t, err)
		pages++
		assert.LessOrEqual(t, len(page.Items), 7)
		got = append(got, collectIDs(page.Items)...)
		if page.NextCursor == nil {
			break
		}
		cursor = *page.NextCursor
		require.Less(t, pages, 10, "pagination does not terminate")
	}

	assert.Equal(t, 4, pages)
	assert.Equal(t, expected, got)
}

func TestList_PromotedFirstThenExhausted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	endAt := f.clock.now.Add(time.Hour)

	a := f.createActive(t, "A", func(r *model.CreateProductRequest) {
		r.PromotionLevel = strPtr("pro")
		r.PromotionEndAt = &endAt
		r.IsFeatured = boolPtr(true)
	})
	b := f.createActive(t, "B")

	first, err := f.svc.ListAll(ctx, "", 1)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{a.ID}, collectIDs(first.Items))
	assert.Equal(t, 35, first.Items[0].RankScore)
	require.NotNil(t, first.NextCursor)

	second, err := f.svc.ListAll(ctx, *first.NextCursor, 1)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b.ID}, collectIDs(second.Items))
	assert.Nil(t, second.NextCursor)
}

func TestList_ExactPageHasNoCursor(t *testing.T) {
	f := newFixture(t)
	f.createActive(t, "one")
	f.createActive(t, "two")

	page, err := f.svc.ListAll(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Nil(t, page.NextCursor)
}

func TestList_ExpiredPromotionIsRecomputedOnlyOnWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	endAt := f.clock.now.Add(time.Hour)

	promoted := f.createActive(t, "promoted", func(r *model.CreateProductRequest) {
		r.PromotionLevel = strPtr("plus")
		r.PromotionEndAt = &endAt
	})
	featured := f.createActive(t, "featured", func(r *model.CreateProductRequest) {
		r.IsFeatured = boolPtr(true)
	})

	f.clock.Advance(2 * time.Hour)

	stale, err := f.svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{promoted.ID, featured.ID}, collectIDs(stale.Items))
	assert.Equal(t, 20, stale.Items[0].RankScore)

	_, err = f.svc.Update(ctx, f.seller, promoted.ID, model.UpdateProductRequest{Title: strPtr("promoted v2")})
	require.NoError(t, err)

	fresh, err := f.svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{featured.ID, promoted.ID}, collectIDs(fresh.Items))
	assert.Equal(t, 0, fresh.Items[1].RankScore)
}

func TestList_Scopes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.categories.Create(ctx, &category.CreateCategoryReq{Name: "Books"})
	require.NoError(t, err)

	mine := f.createActive(t, "mine")
	otherSeller := uuid.New()
	foreign := f.createActive(t, "foreign", func(r *model.CreateProductRequest) {
		r.SellerID = strPtr(otherSeller.String())
		r.CategoryID = other.ID.String()
	})
	_, err = f.svc.Create(ctx, f.seller, f.createReq("draft"))
	require.NoError(t, err)

	bySeller, err := f.svc.ListBySeller(ctx, f.seller.ID, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{mine.ID}, collectIDs(bySeller.Items))

	byCategory, err := f.svc.ListByCategorySlug(ctx, "books", "", 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{foreign.ID}, collectIDs(byCategory.Items))

	global, err := f.svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{mine.ID, foreign.ID}, collectIDs(global.Items))
}

func TestList_CategorySlugMustResolve(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListByCategorySlug(ctx, "no-such-category", "", 10)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)

	require.NoError(t, f.categories.SetActive(ctx, f.category.ID, false))
	_, err = f.svc.ListByCategorySlug(ctx, f.category.Slug, "", 10)
	assert.ErrorIs(t, err, model.ErrCategoryNotFound)
}

func TestList_GarbageCursorReturnsFirstPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createActive(t, "one")
	f.createActive(t, "two")

	first, err := f.svc.ListAll(ctx, "", 10)
	require.NoError(t, err)

	for _, cursor := range []string{"!!!", "e30", "not-a-cursor"} {
		page, err := f.svc.ListAll(ctx, cursor, 10)
		require.NoError(t, err, cursor)
		assert.Equal(t, collectIDs(first.Items), collectIDs(page.Items), cursor)
	}
}

func TestList_InvalidLimit(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ListAll(context.Background(), "", 0)
	assert.ErrorIs(t, err, model.ErrInvalidLimit)
}

func TestList_PageCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := f.createActive(t, "first")

	page, err := f.svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	// generation token + 1 trang
	assert.Equal(t, 2, f.cache.Len())

	// ghi thẳng vào repo: cache không biết => vẫn trả trang cũ
	hidden := f.seed(t, 100, 1)
	cached, err := f.svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, collectIDs(cached.Items))

	// mọi mutation qua service xoá cache listing
	second := f.createActive(t, "second")
	assert.Equal(t, 1, f.cache.Len())

	fresh, err := f.svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{hidden.ID, first.ID, second.ID}, collectIDs(fresh.Items))
	assert.Equal(t, hidden.ID, fresh.Items[0].ID)
}

func TestList_PageCacheKeepsCursorsApart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		f.seed(t, 10, uint32(1000*(i+1)))
	}

	first, err := f.svc.ListAll(ctx, "", 2)
	require.NoError(t, err)
	require.NotNil(t, first.NextCursor)
	second, err := f.svc.ListAll(ctx, *first.NextCursor, 2)
	require.NoError(t, err)
	require.NotNil(t, second.NextCursor)

	// đọc lại từ cache: mỗi cursor vẫn nhận đúng trang của nó
	againSecond, err := f.svc.ListAll(ctx, *first.NextCursor, 2)
	require.NoError(t, err)
	assert.Equal(t, collectIDs(second.Items), collectIDs(againSecond.Items))

	third, err := f.svc.ListAll(ctx, *second.NextCursor, 2)
	require.NoError(t, err)
	assert.Len(t, third.Items, 1)
	assert.Nil(t, third.NextCursor)
	assert.NotContains(t, collectIDs(second.Items), third.Items[0].ID)
}

// hookRepo - Chạy hook ngay sau lần List kế tiếp, trước khi service ghi cache
type hookRepo struct {
	repository.RepositoryInterface
	afterList func()
}

func (r *hookRepo) List(ctx context.Context, q repository.ListQuery) ([]model.Product, error) {
	rows, err := r.RepositoryInterface.List(ctx, q)
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return rows, err
}

func TestList_DeleteDuringReadIsNotCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	repo := &hookRepo{RepositoryInterface: f.repo}
	svc := NewService(repo, f.categories, Options{
		Salt:         "test-salt",
		Cache:        f.cache,
		ListCacheTTL: time.Minute,
		Now:          f.clock.Now,
	})
	p := f.createActive(t, "doomed")

	repo.afterList = func() {
		require.NoError(t, svc.SoftDelete(ctx, f.seller, p.ID))
	}
	stale, err := svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p.ID}, collectIDs(stale.Items))

	// SoftDelete đã trả về => lần gọi kế tiếp không thấy product nữa
	page, err := svc.ListAll(ctx, "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	bySeller, err := svc.ListBySeller(ctx, f.seller.ID, "", 10)
	require.NoError(t, err)
	assert.Empty(t, bySeller.Items)
}

// ===== store failures =====

type unavailableRepo struct {
	repository.RepositoryInterface
}

func (unavailableRepo) List(context.Context, repository.ListQuery) ([]model.Product, error) {
	return nil, model.StoreUnavailable("list products", errors.New("connection refused"))
}

func (unavailableRepo) Mutate(context.Context, uuid.UUID, repository.MutateFunc) (*model.Product, error) {
	return nil, model.StoreUnavailable("mutate product", errors.New("connection refused"))
}

func TestList_StoreUnavailable(t *testing.T) {
	f := newFixture(t)
	svc := NewService(unavailableRepo{}, f.categories, Options{Now: f.clock.Now})
	ctx := context.Background()

	_, err := svc.ListAll(ctx, "", 10)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)

	_, err = svc.ListByCategorySlug(ctx, f.category.Slug, "", 10)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)

	err = svc.SoftDelete(ctx, f.admin, uuid.New())
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, model.ErrProductNotFound)
}
