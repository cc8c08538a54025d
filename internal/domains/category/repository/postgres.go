package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace-backend/internal/domains/category"
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

func NewPostgresRepository(pool *pgxpool.Pool) category.CategoryRepository {
	return &postgresRepository{pool: pool}
}

const selectColumns = `id, name, slug, parent_id, sort_order, is_active, created_at, updated_at`

// ============================================================
// CREATE
// ============================================================
func (r *postgresRepository) Create(ctx context.Context, c *category.Category) error {
	const query = `
		INSERT INTO categories (id, name, slug, parent_id, sort_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Name, c.Slug, c.ParentID, c.SortOrder, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return category.ErrDuplicateSlug
		}
		logger.Error("Create category: database error", err)
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ============================================================
// READ
// ============================================================
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*category.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories WHERE slug = $1`
	return r.getOne(ctx, query, slug)
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg interface{}) (*category.Category, error) {
	entity, err := scanCategory(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		logger.Error("Get category: database error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return entity, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter category.CategoryFilter) ([]category.Category, error) {
	query := `SELECT ` + selectColumns + ` FROM categories`
	if filter.ActiveOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order ASC, name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		entity, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// ============================================================
// UPDATE
// ============================================================
func (r *postgresRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE categories SET is_active = $2, updated_at = NOW() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*category.Category, error) {
	entity := &category.Category{}
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Slug,
		&entity.ParentID,
		&entity.SortOrder,
		&entity.IsActive,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}
