package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"courseware-backend/pkg/logger"
)

// Enqueuer là phần asynq client mà services cần
type Enqueuer interface {
	Enqueue(ctx context.Context, taskType string, payload interface{}) error
}

// AsynqEnqueuer enqueue task lên Redis qua asynq
type AsynqEnqueuer struct {
	client   *asynq.Client
	queue    string
	maxRetry int
}

func NewAsynqEnqueuer(redisAddr, password string, db int, queue string) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: password,
			DB:       db,
		}),
		queue:    queue,
		maxRetry: 3,
	}
}

func newTask(taskType string, payload interface{}) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, raw), nil
}

func (e *AsynqEnqueuer) Enqueue(ctx context.Context, taskType string, payload interface{}) error {
	task, err := newTask(taskType, payload)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task, asynq.Queue(e.queue), asynq.MaxRetry(e.maxRetry))
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}

	logger.Debug(fmt.Sprintf("[Queue] enqueued %s id=%s queue=%s", taskType, info.ID, info.Queue))
	return nil
}

func (e *AsynqEnqueuer) Close() error {
	return e.client.Close()
}

// NoopEnqueuer bỏ qua mọi task (QUEUE_ENABLED=false, test)
type NoopEnqueuer struct{}

func (NoopEnqueuer) Enqueue(context.Context, string, interface{}) error { return nil }
