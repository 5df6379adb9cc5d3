package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"servant_backend/internal/adapters/storage"
	"servant_backend/internal/auth"
	"servant_backend/internal/bookings"
	"servant_backend/internal/bookings/calendar"
	"servant_backend/internal/contact"
	"servant_backend/internal/email"
	apphttp "servant_backend/internal/http"
	"servant_backend/internal/http/router"
	"servant_backend/internal/invoicing"
	"servant_backend/internal/notification"
	"servant_backend/internal/pricing"
	"servant_backend/internal/scheduler"
	"servant_backend/internal/siteconfig"
	"servant_backend/internal/siteconfig/store"
	"servant_backend/platform/config"
	"servant_backend/platform/events"
	"servant_backend/platform/httpkit"
	"servant_backend/platform/logger"
	"servant_backend/platform/validator"
)

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.StorageService, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := email.NewSender(cfg)

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for site-config documents and gallery uploads (MinIO)
	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	ensureBucket(ctx, log, storageSvc, "site-config", cfg.GetMinioBucketSiteConfig())
	ensureBucket(ctx, log, storageSvc, "gallery", cfg.GetMinioBucketGallery())
	log.Info(
		"storage service initialized",
		"siteConfigBucket", cfg.GetMinioBucketSiteConfig(),
		"galleryBucket", cfg.GetMinioBucketGallery(),
	)

	docs := store.NewObjectStore(storageSvc, cfg.GetMinioBucketSiteConfig())

	// Google Calendar is the booking system of record
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
	log.Info("calendar connection established", "calendarId", cfg.GetGoogleCalendarID())

	var issuer invoicing.Issuer = invoicing.DisabledIssuer{}
	if cfg.IsBillingEnabled() {
		issuer = invoicing.NewStripeIssuer(cfg.GetStripeSecretKey(), cfg.GetBillingCurrency(), log)
		log.Info("stripe invoice issuer initialized", "currency", cfg.GetBillingCurrency())
	} else {
		log.Warn("STRIPE_SECRET_KEY not configured; booking approvals will fail until billing is set up")
	}

	publicLimiter := httpkit.NewWindowLimiter()
	sweeperStop := make(chan struct{})
	defer close(sweeperStop)
	go publicLimiter.RunSweeper(sweeperStop, 5*time.Minute)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.NewModule(sender, cfg, log)
	notificationModule.RegisterHandlers(eventBus)

	siteconfigModule := siteconfig.NewModule(docs, storageSvc, cfg.GetMinioBucketGallery(), log, val)
	pricingModule := pricing.NewModule(docs, val)
	bookingsModule := bookings.NewModule(calStore, pricingModule.Service(), issuer, cfg, calStore.Location(), eventBus, log, val)
	if reminderScheduler != nil {
		bookingsModule.SetReminderScheduler(reminderScheduler)
	}
	contactModule := contact.NewModule(eventBus, val, log)
	authModule := auth.NewModule(cfg, log, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		Health:        storageSvc,
		EventBus:      eventBus,
		PublicLimiter: publicLimiter,
		Modules: []apphttp.Module{
			authModule,
			siteconfigModule,
			pricingModule,
			bookingsModule,
			contactModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; booking reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
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
