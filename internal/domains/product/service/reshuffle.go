package service

import (
	"context"
	"errors"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/pkg/logger"

	"github.com/google/uuid"
)

const reshuffleBatchSize = 200

// Reshuffle - Tính lại shuffle key của mọi product chưa xoá với salt hiện tại.
// Dùng sau khi đổi PROMO_SALT. Không phải snapshot: thứ tự có thể đổi
// giữa chừng đối với client đang phân trang.
func (s *ProductService) Reshuffle(ctx context.Context) (int, error) {
	changed := 0
	after := uuid.Nil

	for {
		if err := ctx.Err(); err != nil {
			return changed, err
		}

		ids, err := s.repo.ListIDsAfter(ctx, after, reshuffleBatchSize)
		if err != nil {
			return changed, err
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			updated := false
			_, err := s.repo.Mutate(ctx, id, func(p *model.Product) error {
				old := p.ShuffleKey
				p.Reshuffle(s.salt)
				updated = p.ShuffleKey != old
				return nil
			})
			if errors.Is(err, model.ErrProductNotFound) {
				// bị xoá trong lúc quét
				continue
			}
			if err != nil {
				return changed, err
			}
			if updated {
				changed++
			}
		}
		after = ids[len(ids)-1]
	}

	if changed > 0 {
		s.invalidateListings(ctx)
	}
	s.metrics.RecordReshuffled(changed)
	logger.Info("reshuffle completed", map[string]interface{}{
		"changed": changed,
	})
	return changed, nil
}
