package service

import (
	"bytes"
	"context"
	"testing"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExport_WritesListingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	low := f.createActive(t, "low")
	high := f.createActive(t, "high", func(r *model.CreateProductRequest) { r.IsFeatured = boolPtr(true) })
	_, err := f.svc.Create(ctx, f.seller, f.createReq("draft"))
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := f.svc.Export(ctx, repository.GlobalScope(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	book, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, high.ID.String(), rows[1][0])
	assert.Equal(t, "high", rows[1][4])
	assert.Equal(t, low.ID.String(), rows[2][0])
}

func TestExport_EmptyScope(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	n, err := f.svc.Export(context.Background(), repository.SellerScope(f.seller.ID), &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NotZero(t, buf.Len())
}
