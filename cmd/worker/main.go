package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servant_backend/internal/bookings/calendar"
	"servant_backend/internal/email"
	"servant_backend/internal/notification"
	"servant_backend/internal/scheduler"
	"servant_backend/platform/config"
	"servant_backend/platform/events"
	"servant_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var calStore *calendar.GoogleStore
	if err := withRetry(ctx, log, "calendar connection", 5, 2*time.Second, func() error {
		cs, err := calendar.NewGoogleStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		calStore = cs
		return nil
	}); err != nil {
		log.Error("failed to connect to calendar", "error", err)
		panic("failed to connect to calendar: " + err.Error())
	}

	eventBus := events.NewInMemoryBus(log)

	sender := email.NewSender(cfg)
	notificationModule := notification.NewModule(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	worker, err := scheduler.NewWorker(cfg, calStore, eventBus, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
