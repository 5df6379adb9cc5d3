package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"servant_backend/internal/bookings/calendar"
	"servant_backend/internal/bookings/transport"
	"servant_backend/internal/events"
	"servant_backend/internal/invoicing"
	pricingservice "servant_backend/internal/pricing/service"
	pricingtransport "servant_backend/internal/pricing/transport"
	"servant_backend/internal/scheduler"
	"servant_backend/platform/apperr"
	"servant_backend/platform/config"
	"servant_backend/platform/logger"
	"servant_backend/platform/phone"
)

// keyedMutex serializes operations per booking id so two admins acting on
// the same booking cannot interleave the read-check-write sequence. Entries
// are never reclaimed; approvals are human-paced and the map stays tiny.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}

// Service orchestrates the booking workflow: create request, approve,
// reject. The calendar store is the system of record; this service never
// mutates bookings except through it.
type Service struct {
	store     calendar.BookingStore
	pricing   *pricingservice.Service
	issuer    invoicing.Issuer
	eventBus  events.Bus
	reminders scheduler.ReminderScheduler
	cfg       config.CalendarConfig
	loc       *time.Location
	log       *logger.Logger
	perID     *keyedMutex
	now       func() time.Time
}

// New creates the booking orchestrator.
func New(store calendar.BookingStore, pricing *pricingservice.Service, issuer invoicing.Issuer, cfg config.CalendarConfig, loc *time.Location, log *logger.Logger) *Service {
	return &Service{
		store:   store,
		pricing: pricing,
		issuer:  issuer,
		cfg:     cfg,
		loc:     loc,
		log:     log,
		perID:   newKeyedMutex(),
		now:     time.Now,
	}
}

// SetEventBus wires the event bus for domain event publishing.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// SetReminderScheduler wires the optional reminder queue. Without it,
// approvals still work and no reminder is sent.
func (s *Service) SetReminderScheduler(rs scheduler.ReminderScheduler) {
	s.reminders = rs
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(ctx, event)
	}
}

// Create validates a booking request, recomputes the estimate server-side,
// and writes a pending booking to the calendar. The client-submitted total,
// if any, is ignored: pricing always comes from the server's own config.
func (s *Service) Create(ctx context.Context, req transport.CreateBookingRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.EventType) == "" {
		return "", apperr.Validation("name, email, and eventType are required")
	}

	estimate, err := s.pricing.Estimate(ctx, pricingtransport.EstimateInput{
		EventType:    req.EventType,
		ServiceStyle: req.ServiceType,
		GuestCount:   req.GuestCount,
		AddOnIDs:     req.SelectedAddOns,
		Meal:         req.MealSelection,
	})
	var estimatePtr *pricingtransport.QuoteEstimate
	if err != nil {
		// A config-store outage should not lose the lead; the booking
		// goes in without a pricing block.
		s.log.UpstreamError("pricing", "estimate for booking", err)
	} else {
		estimatePtr = &estimate
		if len(estimate.UnresolvedRefs) > 0 {
			s.log.BookingEvent("estimate has unresolved refs: "+strings.Join(estimate.UnresolvedRefs, ", "), "")
		}
	}

	mealInfo := ""
	if req.MealSelection != nil {
		if raw, err := json.Marshal(req.MealSelection); err == nil {
			mealInfo = string(raw)
		}
	}

	addOnNames := make([]string, 0)
	if estimatePtr != nil {
		for _, line := range estimatePtr.AddOnBreakdown {
			addOnNames = append(addOnNames, line.Name)
		}
	}

	details := calendar.BookingDetails{
		ClientName:   req.Name,
		ClientEmail:  req.Email,
		ClientPhone:  phone.NormalizeE164(req.Phone),
		EventType:    req.EventType,
		ServiceType:  req.ServiceType,
		EventDate:    req.EventDate,
		EventTime:    req.EventTime,
		GuestCount:   req.GuestCount,
		DietaryNeeds: req.DietaryNeeds,
		Notes:        req.Notes,
		AddOnNames:   addOnNames,
		Estimate:     estimatePtr,
		MealInfo:     mealInfo,
	}

	id, err := s.store.Create(ctx, details)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnavailable, "failed to save booking request", err)
	}
	s.log.BookingEvent("booking requested", id)

	eventStart := s.eventStart(req.EventDate, req.EventTime)
	estimatedTotal := 0.0
	if estimatePtr != nil {
		estimatedTotal = estimatePtr.Total
	}
	s.publish(ctx, events.BookingRequested{
		BaseEvent:      events.NewBaseEvent(),
		BookingID:      id,
		ClientName:     req.Name,
		ClientEmail:    req.Email,
		ClientPhone:    details.ClientPhone,
		EventType:      req.EventType,
		EventStart:     eventStart,
		GuestCount:     req.GuestCount,
		EstimatedTotal: estimatedTotal,
	})

	return id, nil
}

// List returns bookings inside the configured lookback window.
func (s *Service) List(ctx context.Context) ([]transport.Booking, error) {
	windowStart := s.now().AddDate(0, 0, -s.cfg.GetBookingLookbackDays())
	bookings, err := s.store.List(ctx, windowStart)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "failed to list bookings", err)
	}
	return bookings, nil
}

// Get returns one booking by id.
func (s *Service) Get(ctx context.Context, id string) (transport.Booking, error) {
	booking, err := s.store.Get(ctx, id)
	if err != nil {
		return transport.Booking{}, apperr.Wrap(apperr.KindNotFound, "booking not found", err)
	}
	return booking, nil
}

// Approve issues the invoice and then marks the booking approved. The order
// matters: a booking must never read approved without a real invoice behind
// it. If the status write fails after invoicing, the invoice is orphaned but
// idempotency-keyed, so the admin can safely retry.
func (s *Service) Approve(ctx context.Context, id string, req transport.ApproveBookingRequest) (invoicing.Result, error) {
	if req.FinalTotal <= 0 {
		return invoicing.Result{}, apperr.Validation("finalTotal must be greater than zero")
	}
	if req.DepositAmount <= 0 || req.DepositAmount > req.FinalTotal {
		return invoicing.Result{}, apperr.Validation("depositAmount must be greater than zero and no more than finalTotal")
	}
	if strings.TrimSpace(req.ClientEmail) == "" || strings.TrimSpace(req.ClientName) == "" {
		return invoicing.Result{}, apperr.Validation("clientName and clientEmail are required")
	}

	lock := s.perID.get(id)
	lock.Lock()
	defer lock.Unlock()

	booking, err := s.store.Get(ctx, id)
	if err != nil {
		return invoicing.Result{}, apperr.Wrap(apperr.KindNotFound, "booking not found", err)
	}
	if booking.Status.IsTerminal() {
		return invoicing.Result{}, apperr.Conflict("booking is already " + string(booking.Status))
	}

	eventDate := booking.Start
	if req.EventDate != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", req.EventDate, s.loc); err == nil {
			eventDate = parsed
		}
	}

	result, err := s.issuer.CreateInvoiceForBooking(ctx, invoicing.Params{
		BookingID:     id,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		EventType:     req.EventType,
		EventDate:     eventDate,
		FinalTotal:    req.FinalTotal,
		DepositAmount: req.DepositAmount,
	})
	if err != nil {
		return invoicing.Result{}, apperr.Wrap(apperr.KindUnavailable, "invoice creation failed", err)
	}

	update := &calendar.StatusUpdate{
		EstimatedTotal: strconv.FormatFloat(req.FinalTotal, 'f', 2, 64),
		InvoiceID:      result.InvoiceID,
		InvoiceURL:     result.InvoiceURL,
	}
	if err := s.store.UpdateStatus(ctx, id, transport.StatusApproved, update); err != nil {
		return invoicing.Result{}, apperr.Wrap(apperr.KindUnavailable, "invoice issued but status update failed; retry the approval", err)
	}
	s.log.BookingEvent("booking approved", id)

	s.publish(ctx, events.BookingApproved{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   id,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		EventType:   req.EventType,
		EventStart:  eventDate,
		FinalTotal:  req.FinalTotal,
		InvoiceID:   result.InvoiceID,
		InvoiceURL:  result.InvoiceURL,
	})

	if s.reminders != nil {
		reminderAt := eventDate.Add(-24 * time.Hour)
		if reminderAt.After(s.now()) {
			if err := s.reminders.ScheduleBookingReminder(ctx, scheduler.BookingReminderPayload{BookingID: id}, reminderAt); err != nil {
				s.log.UpstreamError("scheduler", "enqueue booking reminder", err)
			}
		}
	}

	return result, nil
}

// Reject marks a pending booking rejected. No invoice, no other writes.
func (s *Service) Reject(ctx context.Context, id string) error {
	lock := s.perID.get(id)
	lock.Lock()
	defer lock.Unlock()

	booking, err := s.store.Get(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindNotFound, "booking not found", err)
	}
	if booking.Status.IsTerminal() {
		return apperr.Conflict("booking is already " + string(booking.Status))
	}

	if err := s.store.UpdateStatus(ctx, id, transport.StatusRejected, nil); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "failed to reject booking", err)
	}
	s.log.BookingEvent("booking rejected", id)

	s.publish(ctx, events.BookingRejected{
		BaseEvent:   events.NewBaseEvent(),
		BookingID:   id,
		ClientEmail: booking.ClientEmail,
		EventType:   booking.Summary,
	})

	return nil
}

// AvailableSlots returns the free business-hour slots for a date. If the
// free/busy lookup fails the full non-past slot list is returned unfiltered:
// degrade to "assume available", never block the funnel.
func (s *Service) AvailableSlots(ctx context.Context, date string) ([]transport.TimeSlot, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, apperr.Validation("date must be YYYY-MM-DD")
	}

	openHour := s.cfg.GetBusinessOpenHour()
	closeHour := s.cfg.GetBusinessCloseHour()
	slots := calendar.BuildDaySlots(day, openHour, closeHour, s.now())
	if len(slots) == 0 {
		return []transport.TimeSlot{}, nil
	}

	busy, err := s.store.FreeBusy(ctx, day.Add(time.Duration(openHour)*time.Hour), day.Add(time.Duration(closeHour)*time.Hour))
	if err != nil {
		s.log.UpstreamError("calendar", "free/busy query", err)
		return slots, nil
	}
	return calendar.FilterBusy(slots, busy), nil
}

func (s *Service) eventStart(eventDate, eventTime string) time.Time {
	layout, value := "2006-01-02", eventDate
	if eventTime != "" {
		layout, value = "2006-01-02 15:04", eventDate+" "+eventTime
	}
	start, err := time.ParseInLocation(layout, value, s.loc)
	if err != nil {
		return s.now()
	}
	return start
}
