package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"marketplace-backend/internal/domains/product/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	undefinedTable := &pgconn.PgError{Code: "42P01", Message: `relation "products" does not exist`}

	tests := []struct {
		name    string
		in      error
		is      []error
		isNot   []error
		keepsPg bool
	}{
		{
			name:  "no rows",
			in:    pgx.ErrNoRows,
			is:    []error{model.ErrProductNotFound},
			isNot: []error{model.ErrStoreUnavailable},
		},
		{
			name: "wrapped no rows",
			in:   fmt.Errorf("scan product: %w", pgx.ErrNoRows),
			is:   []error{model.ErrProductNotFound},
		},
		{
			name:  "unique violation",
			in:    &pgconn.PgError{Code: uniqueViolation, ConstraintName: "products_seller_sku_key"},
			is:    []error{model.ErrSKUConflict},
			isNot: []error{model.ErrStoreUnavailable},
		},
		{
			name:    "server side sql error stays a bug",
			in:      undefinedTable,
			isNot:   []error{model.ErrStoreUnavailable, model.ErrProductNotFound, model.ErrSKUConflict},
			keepsPg: true,
		},
		{
			name:  "deadline",
			in:    context.DeadlineExceeded,
			is:    []error{model.ErrStoreUnavailable, context.DeadlineExceeded},
			isNot: []error{model.ErrProductNotFound},
		},
		{
			name: "plain transport error",
			in:   errors.New("read tcp: connection reset by peer"),
			is:   []error{model.ErrStoreUnavailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError("list products", tt.in)
			for _, target := range tt.is {
				assert.ErrorIs(t, got, target)
			}
			for _, target := range tt.isNot {
				assert.NotErrorIs(t, got, target)
			}
			if tt.keepsPg {
				var pgErr *pgconn.PgError
				assert.ErrorAs(t, got, &pgErr)
				assert.Equal(t, "42P01", pgErr.Code)
				assert.Contains(t, got.Error(), "list products")
			}
		})
	}

	assert.NoError(t, translateError("list products", nil))
}
