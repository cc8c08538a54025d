package job

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace-backend/internal/shared"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Reshuffler - phần service mà job cần
type Reshuffler interface {
	Reshuffle(ctx context.Context) (int, error)
}

// ReshuffleHandler - Xử lý shared.TypeReshuffleProducts
type ReshuffleHandler struct {
	service Reshuffler
}

func NewReshuffleHandler(service Reshuffler) *ReshuffleHandler {
	return &ReshuffleHandler{service: service}
}

// ProcessTask - Tính lại shuffle key cho toàn bộ catalog với salt hiện tại
func (h *ReshuffleHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReshuffleProductsPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal ReshuffleProducts payload")
			// payload hỏng thì retry cũng vô ích
			return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	log.Info().
		Str("requested_by", payload.RequestedBy).
		Msg("Reshuffling products")

	changed, err := h.service.Reshuffle(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Int("changed", changed).
			Msg("Reshuffle failed")
		return fmt.Errorf("reshuffle products: %w", err)
	}

	log.Info().
		Int("changed", changed).
		Msg("Reshuffle completed")
	return nil
}
