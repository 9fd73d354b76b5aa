package helper

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type PaymentSweeper interface {
	ExpireStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// StartPaymentSweepScheduler runs the stale payment sweep on the given cron schedule.
func StartPaymentSweepScheduler(expr string, ttl time.Duration, sweeper PaymentSweeper, log *slog.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if _, err := sweeper.ExpireStale(ctx, ttl); err != nil {
				log.Error("payment sweep failed", slog.Any("error", err))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	s.Start()
	log.Info("payment sweep scheduler started", slog.String("schedule", expr))
	return s, nil
}
