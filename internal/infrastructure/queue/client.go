package queue

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the part of asynq.Client used to publish tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// OrderTasks publishes order related tasks
type OrderTasks struct {
	client   TaskEnqueuer
	maxRetry int
}

func NewOrderTasks(client TaskEnqueuer, maxRetry int) *OrderTasks {
	return &OrderTasks{client: client, maxRetry: maxRetry}
}

func (q *OrderTasks) EnqueueOrderConfirmation(ctx context.Context, payload model.OrderConfirmationPayload) error {
	task, err := utils.MarshalTask(shared.TypeSendOrderConfirmation, payload)
	if err != nil {
		return err
	}

	info, err := q.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueHigh),
		asynq.MaxRetry(q.maxRetry),
		asynq.Timeout(time.Minute),
		asynq.TaskID(fmt.Sprintf("order-confirmation-%d", payload.OrderID)),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeSendOrderConfirmation, err)
	}

	logger.DebugFields("task enqueued", map[string]interface{}{
		"type":     info.Type,
		"task_id":  info.ID,
		"queue":    info.Queue,
		"order_id": payload.OrderID,
	})
	return nil
}
