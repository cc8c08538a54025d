package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/domains/product/ranking"
	"marketplace-backend/pkg/database"
	"marketplace-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

// ============================================================
// CREATE
// ============================================================
func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`
	_, err := r.pool.Exec(ctx, query, productArgs(p)...)
	if err != nil {
		return translateError("create product", err)
	}
	return nil
}

// ============================================================
// READ
// ============================================================
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError("get product", err)
	}
	return p, nil
}

// List - Keyset pagination, xem buildListQuery
func (r *postgresRepository) List(ctx context.Context, q ListQuery) ([]model.Product, error) {
	query, args := buildListQuery(q)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError("list products", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0, q.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, translateError("scan product", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError("iterate products", err)
	}
	return products, nil
}

func (r *postgresRepository) ListIDsAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	const query = `
		SELECT id FROM products
		WHERE deleted_at IS NULL AND id > $1
		ORDER BY id ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, translateError("list product ids", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, translateError("collect product ids", err)
	}
	return ids, nil
}

// ============================================================
// UPDATE (read-modify-write trong 1 transaction, row bị lock)
// ============================================================
func (r *postgresRepository) Mutate(ctx context.Context, id uuid.UUID, fn MutateFunc) (*model.Product, error) {
	var fnErr error

	updated, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Product, error) {
		query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

		p, err := scanProduct(tx.QueryRow(ctx, query, id))
		if err != nil {
			return nil, err
		}

		// Lỗi nghiệp vụ => rollback, trả nguyên lỗi cho service
		if fnErr = fn(p); fnErr != nil {
			return nil, fnErr
		}

		const update = `
			UPDATE products SET
				seller_id = $2, category_id = $3, category_name = $4, category_slug = $5,
				title = $6, description = $7, images = $8, tags = $9, price = $10,
				old_price = $11, currency = $12, stock_qty = $13, sku = $14,
				status = $15, deleted_at = $16, promotion_level = $17, promotion_end_at = $18,
				is_featured = $19, rank_score = $20, shuffle_key = $21, updated_at = $22
			WHERE id = $1
		`
		args := productArgs(p)
		// bỏ created_at ($22 trong productColumns), giữ updated_at
		args = append(args[:21], args[22])
		if _, err := tx.Exec(ctx, update, args...); err != nil {
			return nil, err
		}
		return p, nil
	})
	if fnErr != nil {
		return nil, fnErr
	}
	if err != nil {
		return nil, translateError("mutate product", err)
	}
	return updated, nil
}

// ============================================================
// HELPERS
// ============================================================

// productArgs - Thứ tự khớp productColumns ($1..$23)
func productArgs(p *model.Product) []interface{} {
	return []interface{}{
		p.ID, p.SellerID, p.Category.ID, p.Category.Name, p.Category.Slug,
		p.Title, p.Description, textArray(p.Images), textArray(p.Tags), p.Price, p.OldPrice,
		string(p.Currency), p.StockQty, p.SKU,
		string(p.Status), p.DeletedAt, string(p.PromotionLevel), p.PromotionEndAt, p.IsFeatured,
		p.RankScore, int64(p.ShuffleKey), p.CreatedAt, p.UpdatedAt,
	}
}

// textArray - nil slice sẽ thành NULL, cột là NOT NULL DEFAULT '{}'
func textArray(a []string) []string {
	if a == nil {
		return []string{}
	}
	return a
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p         model.Product
		images    []string
		tags      []string
		currency  string
		status    string
		promotion string
		shuffle   int64
	)
	err := row.Scan(
		&p.ID, &p.SellerID, &p.Category.ID, &p.Category.Name, &p.Category.Slug,
		&p.Title, &p.Description, &images, &tags, &p.Price, &p.OldPrice,
		&currency, &p.StockQty, &p.SKU,
		&status, &p.DeletedAt, &promotion, &p.PromotionEndAt, &p.IsFeatured,
		&p.RankScore, &shuffle, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Images = images
	p.Tags = tags
	p.Currency = model.Currency(currency)
	p.Status = model.Status(status)
	p.PromotionLevel = ranking.PromotionLevel(promotion)
	p.ShuffleKey = uint32(shuffle)
	return &p, nil
}

// translateError - Map lỗi pgx sang domain error.
// Lỗi SQL từ server giữ nguyên (bug), lỗi kết nối/timeout => ErrStoreUnavailable.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrProductNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			return model.ErrSKUConflict
		}
		logger.Error(op+": database error", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Error(op+": store unavailable", err)
	return model.StoreUnavailable(op, err)
}
