// The mailworker command consumes the email queue and delivers messages.
package main

import (
	"context"
	"log/slog"
	"os"

	"quill/config"
	"quill/internal/delivery"
	"quill/internal/delivery/worker"
	logs "quill/internal/infra/log"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type startWorkerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	_ = godotenv.Load()

	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startWorker,
		),
	).Run()
}

func startWorker(ctx context.Context, params startWorkerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
