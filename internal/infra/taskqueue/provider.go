package taskqueue

import (
	"context"
	"log/slog"

	"quill/config"
	"quill/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopNotifier is a no-op implementation when the task queue is disabled.
type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) Notify(_ context.Context, notification *service.EmailNotification) error {
	n.logger.Debug("[NoopNotifier] Task queue disabled, dropping notification",
		slog.String("recipient", notification.Recipient),
		slog.String("subject", notification.Subject),
	)

	return nil
}

func (n *noopNotifier) Close() error {
	return nil
}

// NotifierParams holds dependencies for the Notifier, injected by Fx.
type NotifierParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier creates a Notifier based on configuration.
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := params.Config.TaskQueue
	logger := params.Logger

	// Missing configuration disables submission rather than failing startup.
	if cfg == nil || cfg.Provider == "" {
		logger.Info("Task queue not configured, using no-op notifier")

		return &noopNotifier{logger: logger}, nil
	}

	var notifier service.Notifier
	var err error

	switch cfg.Provider {
	case "redis":
		logger.Info("Using asynq notifier for email delivery",
			slog.String("redis_addr", cfg.RedisAddr),
			slog.String("queue", cfg.Queue),
		)

		notifier, err = NewAsynqNotifier(cfg, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown task queue provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			logger.Info("Closing Notifier")

			return notifier.Close()
		},
	})

	return notifier, nil
}

// Module provides the task queue FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotifier),
)
