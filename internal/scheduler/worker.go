package scheduler

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"servant_backend/internal/bookings/calendar"
	"servant_backend/internal/bookings/transport"
	"servant_backend/internal/events"
	"servant_backend/platform/config"
	"servant_backend/platform/logger"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	store  calendar.BookingStore
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, store calendar.BookingStore, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		store:  store,
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskBookingReminder, w.handleBookingReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleBookingReminder re-reads the booking at fire time. A booking that was
// rejected or deleted after the reminder was queued sends nothing.
func (w *Worker) handleBookingReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseBookingReminderPayload(task)
	if err != nil {
		return err
	}

	booking, err := w.store.Get(ctx, payload.BookingID)
	if err != nil {
		w.log.Warn("reminder skipped, booking not readable", "bookingId", payload.BookingID, "error", err)
		return nil
	}

	if booking.Status != transport.StatusApproved {
		return nil
	}
	if booking.ClientEmail == "" {
		return nil
	}

	if w.bus == nil {
		return nil
	}

	eventType, clientName := splitSummary(booking.Summary)
	return w.bus.PublishSync(ctx, events.BookingReminderDue{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   booking.ID,
		ClientName:  clientName,
		ClientEmail: booking.ClientEmail,
		EventType:   eventType,
		EventStart:  booking.Start,
	})
}

// splitSummary recovers the event type and client name from the calendar
// summary written at creation time ("Catering request: <type> for <name>").
func splitSummary(summary string) (eventType, clientName string) {
	rest := strings.TrimPrefix(summary, "Catering request: ")
	eventType, clientName, found := strings.Cut(rest, " for ")
	if !found {
		return rest, ""
	}
	return eventType, clientName
}
