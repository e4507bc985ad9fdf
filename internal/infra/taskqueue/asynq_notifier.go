package taskqueue

import (
	"context"
	"encoding/json"
	"log/slog"

	"quill/config"
	"quill/internal/domain/service"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

// asynqNotifier submits email notifications to the asynq queue.
type asynqNotifier struct {
	client *asynq.Client
	queue  string
	logger *slog.Logger
}

// NewAsynqNotifier creates a Notifier backed by the configured Redis broker.
func NewAsynqNotifier(cfg *config.TaskQueueConfig, logger *slog.Logger) (service.Notifier, error) {
	if cfg.RedisAddr == "" {
		return nil, errors.New("redis address is required for the task queue")
	}

	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	return &asynqNotifier{
		client: client,
		queue:  queue,
		logger: logger,
	}, nil
}

// Notify marshals the notification and enqueues it for the mail worker.
func (n *asynqNotifier) Notify(ctx context.Context, notification *service.EmailNotification) error {
	if notification == nil {
		return errors.New("notification is nil")
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return errors.Wrap(err, "failed to marshal email notification")
	}

	task := asynq.NewTask(TaskTypeEmailSend, payload, asynq.Queue(n.queue))
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrap(err, "failed to enqueue email notification")
	}

	n.logger.Debug("Email notification enqueued",
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue),
		slog.String("recipient", notification.Recipient),
	)

	return nil
}

// Close releases the underlying Redis connection.
func (n *asynqNotifier) Close() error {
	return n.client.Close()
}
