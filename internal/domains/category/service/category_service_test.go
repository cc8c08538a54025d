package service

import (
	"context"
	"testing"

	"marketplace-backend/internal/domains/category"
	"marketplace-backend/internal/domains/category/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() category.CategoryService {
	return NewCategoryService(repository.NewMemoryRepository())
}

func TestCreate_GeneratesSlug(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), &category.CreateCategoryReq{Name: "Home & Garden"})
	require.NoError(t, err)
	assert.Equal(t, "home-garden", created.Slug)
	assert.True(t, created.IsActive)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &category.CreateCategoryReq{Name: "Shoes"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &category.CreateCategoryReq{Name: "shoes"})
	assert.ErrorIs(t, err, category.ErrDuplicateSlug)
}

func TestCreate_UnknownParent(t *testing.T) {
	svc := newTestService()
	parent := uuid.New()

	_, err := svc.Create(context.Background(), &category.CreateCategoryReq{Name: "Boots", ParentID: &parent})
	assert.ErrorIs(t, err, category.ErrParentNotFound)
}

func TestResolveActive(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &category.CreateCategoryReq{Name: "Electronics"})
	require.NoError(t, err)

	got, err := svc.ResolveActive(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "electronics", got.Slug)

	got, err = svc.ResolveActiveBySlug(ctx, "electronics")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, svc.SetActive(ctx, created.ID, false))

	_, err = svc.ResolveActive(ctx, created.ID)
	assert.ErrorIs(t, err, category.ErrCategoryInactive)
	_, err = svc.ResolveActiveBySlug(ctx, "electronics")
	assert.ErrorIs(t, err, category.ErrCategoryInactive)

	_, err = svc.ResolveActiveBySlug(ctx, "does-not-exist")
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}

func TestList_ActiveOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, &category.CreateCategoryReq{Name: "Books", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &category.CreateCategoryReq{Name: "Audio", SortOrder: 1})
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(ctx, a.ID, false))

	all, err := svc.List(ctx, category.CategoryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "audio", all[0].Slug)

	active, err := svc.List(ctx, category.CategoryFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "audio", active[0].Slug)
}
