// Package worker runs the asynq consumer that delivers queued emails.
package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"quill/config"
	"quill/internal/delivery"
	"quill/internal/domain/service"
	"quill/internal/infra/taskqueue"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type mailWorker struct {
	cfg    *config.Config
	logger *slog.Logger
	server *asynq.Server
	mux    *asynq.ServeMux
}

// ServerParams holds dependencies for the mail worker, injected by Fx.
type ServerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Logger *slog.Logger
}

// NewServer creates the asynq consumer bound to the email queue.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	cfg := params.Cfg.TaskQueue
	if cfg == nil || cfg.RedisAddr == "" {
		return nil, errors.New("task queue configuration is required for the mail worker")
	}

	queue := cfg.Queue
	if queue == "" {
		queue = taskqueue.DefaultQueue
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = taskqueue.DefaultConcurrency
	}

	server := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				queue: 1,
			},
		},
	)

	worker := &mailWorker{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: server,
		mux:    asynq.NewServeMux(),
	}
	worker.mux.HandleFunc(taskqueue.TaskTypeEmailSend, worker.handleEmailSend)

	params.Lc.Append(fx.Hook{
		OnStop: worker.stop,
	})

	return worker, nil
}

// Serve runs the consumer and blocks until shutdown.
func (w *mailWorker) Serve(_ context.Context) error {
	w.logger.Info("Starting mail worker",
		slog.String("redis_addr", w.cfg.TaskQueue.RedisAddr),
		slog.String("queue", w.cfg.TaskQueue.Queue),
	)

	if err := w.server.Run(w.mux); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
		return errors.Wrap(err, "mail worker stopped")
	}

	return nil
}

func (w *mailWorker) stop(_ context.Context) error {
	w.logger.Info("Shutting down mail worker")
	w.server.Shutdown()

	return nil
}

// handleEmailSend simulates delivery by logging the message. A returned
// error makes asynq retry the task.
func (w *mailWorker) handleEmailSend(ctx context.Context, task *asynq.Task) error {
	var notification service.EmailNotification
	if err := json.Unmarshal(task.Payload(), &notification); err != nil {
		return errors.Wrap(err, "failed to decode email notification")
	}

	if notification.Recipient == "" {
		return errors.New("email notification missing recipient")
	}

	w.logger.LogAttrs(ctx, slog.LevelInfo, "Email sent (simulated)",
		slog.String("to", notification.Recipient),
		slog.String("subject", notification.Subject),
		slog.String("body", notification.Body),
		slog.String("request_id", notification.RequestID),
	)

	return nil
}
