package repository

import (
	"fmt"

	"marketplace-backend/internal/shared/utils"
)

const productColumns = `
	id, seller_id, category_id, category_name, category_slug,
	title, description, images, tags, price, old_price, currency, stock_qty, sku,
	status, deleted_at, promotion_level, promotion_end_at, is_featured,
	rank_score, shuffle_key, created_at, updated_at`

const listingOrder = `rank_score DESC, shuffle_key DESC, id DESC`

// buildWhereClause - Scope + visibility + seek predicate.
// Returns: (whereClause, args, nextArgIndex)
func buildWhereClause(q ListQuery) (string, []interface{}, int) {
	conditions := []string{
		"status = 'active'",
		"deleted_at IS NULL",
	}
	args := []interface{}{}
	argIndex := 1

	switch q.Scope.Kind {
	case ScopeSeller:
		conditions = append(conditions, fmt.Sprintf("seller_id = $%d", argIndex))
		args = append(args, q.Scope.SellerID)
		argIndex++
	case ScopeCategory:
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIndex))
		args = append(args, q.Scope.CategoryID)
		argIndex++
	}

	// Seek: tuple strictly after cursor trong thứ tự giảm dần
	if q.After != nil {
		r, s, id := argIndex, argIndex+1, argIndex+2
		seek := utils.JoinWithOr([]string{
			fmt.Sprintf("rank_score < $%d", r),
			fmt.Sprintf("rank_score = $%d AND shuffle_key < $%d", r, s),
			fmt.Sprintf("rank_score = $%d AND shuffle_key = $%d AND id < $%d", r, s, id),
		})
		conditions = append(conditions, "("+seek+")")
		args = append(args, q.After.Rank, int64(q.After.ShuffleKey), q.After.ID)
		argIndex += 3
	}

	return utils.JoinWithAnd(conditions), args, argIndex
}

// buildListQuery - SELECT ... WHERE ... ORDER BY ... LIMIT
func buildListQuery(q ListQuery) (string, []interface{}) {
	where, args, argIndex := buildWhereClause(q)
	query := fmt.Sprintf(
		"SELECT %s\n\tFROM products\n\tWHERE %s\n\tORDER BY %s\n\tLIMIT $%d",
		productColumns, where, listingOrder, argIndex,
	)
	return query, append(args, q.Limit)
}
