package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace-backend/internal/shared"
	"marketplace-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// Client - Enqueue background task lên asynq (Redis)
type Client struct {
	client *asynq.Client
}

func NewClient(opt asynq.RedisConnOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// EnqueueReshuffle - Một reshuffle tại một thời điểm: task trùng trong
// cửa sổ unique được coi như đã enqueue.
func (c *Client) EnqueueReshuffle(ctx context.Context, requestedBy string) (string, error) {
	payload, err := json.Marshal(shared.ReshuffleProductsPayload{RequestedBy: requestedBy})
	if err != nil {
		return "", fmt.Errorf("marshal reshuffle payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeReshuffleProducts, payload)
	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Minute),
		asynq.Unique(10*time.Minute),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			logger.Info("reshuffle already queued", map[string]interface{}{"requested_by": requestedBy})
			return "", nil
		}
		return "", fmt.Errorf("enqueue reshuffle: %w", err)
	}

	logger.Info("reshuffle enqueued", map[string]interface{}{
		"task_id":      info.ID,
		"queue":        info.Queue,
		"requested_by": requestedBy,
	})
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
