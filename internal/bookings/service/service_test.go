package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"servant_backend/internal/bookings/calendar"
	"servant_backend/internal/bookings/transport"
	"servant_backend/internal/events"
	"servant_backend/internal/invoicing"
	pricingservice "servant_backend/internal/pricing/service"
	"servant_backend/internal/scheduler"
	"servant_backend/internal/siteconfig/store"
	"servant_backend/platform/apperr"
	"servant_backend/platform/logger"
)

type fakeStore struct {
	bookings  map[string]transport.Booking
	createErr error
	updateErr error
	busy      []calendar.Interval
	busyErr   error

	created []calendar.BookingDetails
	calls   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[string]transport.Booking)}
}

func (f *fakeStore) Create(_ context.Context, details calendar.BookingDetails) (string, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, details)
	id := "evt-1"
	f.bookings[id] = transport.Booking{ID: id, Status: transport.StatusPending}
	return id, nil
}

func (f *fakeStore) List(context.Context, time.Time) ([]transport.Booking, error) {
	out := make([]transport.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (transport.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return transport.Booking{}, errors.New("not found")
	}
	return booking, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status transport.Status, _ *calendar.StatusUpdate) error {
	f.calls = append(f.calls, "updateStatus")
	if f.updateErr != nil {
		return f.updateErr
	}
	booking := f.bookings[id]
	booking.Status = status
	f.bookings[id] = booking
	return nil
}

func (f *fakeStore) FreeBusy(context.Context, time.Time, time.Time) ([]calendar.Interval, error) {
	if f.busyErr != nil {
		return nil, f.busyErr
	}
	return f.busy, nil
}

type fakeIssuer struct {
	err   error
	calls []string
}

func (f *fakeIssuer) CreateInvoiceForBooking(context.Context, invoicing.Params) (invoicing.Result, error) {
	f.calls = append(f.calls, "invoice")
	if f.err != nil {
		return invoicing.Result{}, f.err
	}
	return invoicing.Result{InvoiceID: "inv-1", InvoiceURL: "https://pay.example.com/inv-1"}, nil
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event)          { b.published = append(b.published, event) }
func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

type testCalConfig struct{}

func (testCalConfig) GetGoogleCredentialsFile() string { return "" }
func (testCalConfig) GetGoogleCalendarID() string      { return "primary" }
func (testCalConfig) GetBusinessTimezone() string      { return "UTC" }
func (testCalConfig) GetBusinessOpenHour() int         { return 9 }
func (testCalConfig) GetBusinessCloseHour() int        { return 19 }
func (testCalConfig) GetBookingLookbackDays() int      { return 30 }

func newTestService(t *testing.T, st *fakeStore, issuer *fakeIssuer) (*Service, *captureBus) {
	t.Helper()
	pricing := pricingservice.New(store.NewMemoryStore())
	svc := New(st, pricing, issuer, testCalConfig{}, time.UTC, logger.New("test"))
	bus := &captureBus{}
	svc.SetEventBus(bus)
	return svc, bus
}

func TestCreate_RequiresCoreFields(t *testing.T) {
	svc, _ := newTestService(t, newFakeStore(), &fakeIssuer{})

	_, err := svc.Create(context.Background(), transport.CreateBookingRequest{
		Name: "Jordan Lee", Email: "", EventType: "wedding",
	})

	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreate_StoresPendingAndPublishesEvent(t *testing.T) {
	st := newFakeStore()
	svc, bus := newTestService(t, st, &fakeIssuer{})

	id, err := svc.Create(context.Background(), transport.CreateBookingRequest{
		Name:      "Jordan Lee",
		Email:     "jordan@example.com",
		EventType: "wedding",
		EventDate: "2026-06-15",
		EventTime: "17:00",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id != "evt-1" {
		t.Fatalf("expected event id evt-1, got %q", id)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.published))
	}
	requested, ok := bus.published[0].(events.BookingRequested)
	if !ok {
		t.Fatalf("expected BookingRequested, got %T", bus.published[0])
	}
	if requested.BookingID != "evt-1" || requested.ClientEmail != "jordan@example.com" {
		t.Fatalf("unexpected event payload %+v", requested)
	}
}

func TestApprove_ValidatesDepositBounds(t *testing.T) {
	svc, _ := newTestService(t, newFakeStore(), &fakeIssuer{})

	base := transport.ApproveBookingRequest{ClientName: "Jordan Lee", ClientEmail: "jordan@example.com"}

	for _, tc := range []struct {
		name    string
		final   float64
		deposit float64
	}{
		{"zero total", 0, 100},
		{"zero deposit", 1000, 0},
		{"deposit over total", 1000, 1500},
	} {
		req := base
		req.FinalTotal = tc.final
		req.DepositAmount = tc.deposit
		if _, err := svc.Approve(context.Background(), "evt-1", req); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestApprove_InvoiceFailureLeavesBookingPending(t *testing.T) {
	st := newFakeStore()
	st.bookings["evt-1"] = transport.Booking{ID: "evt-1", Status: transport.StatusPending}
	issuer := &fakeIssuer{err: errors.New("billing down")}
	svc, bus := newTestService(t, st, issuer)

	_, err := svc.Approve(context.Background(), "evt-1", transport.ApproveBookingRequest{
		FinalTotal: 1000, DepositAmount: 200,
		ClientName: "Jordan Lee", ClientEmail: "jordan@example.com",
	})

	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if st.bookings["evt-1"].Status != transport.StatusPending {
		t.Fatalf("expected booking still pending, got %s", st.bookings["evt-1"].Status)
	}
	for _, call := range st.calls {
		if call == "updateStatus" {
			t.Fatalf("status must not be written when invoicing fails")
		}
	}
	if len(bus.published) != 0 {
		t.Fatalf("no event should be published on failed approval")
	}
}

func TestApprove_InvoicesBeforeStatusWrite(t *testing.T) {
	st := newFakeStore()
	st.bookings["evt-1"] = transport.Booking{ID: "evt-1", Status: transport.StatusPending}
	issuer := &fakeIssuer{}
	svc, bus := newTestService(t, st, issuer)

	result, err := svc.Approve(context.Background(), "evt-1", transport.ApproveBookingRequest{
		FinalTotal: 1000, DepositAmount: 200,
		ClientName: "Jordan Lee", ClientEmail: "jordan@example.com",
		EventDate: "2026-06-15",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if result.InvoiceID != "inv-1" {
		t.Fatalf("expected invoice id inv-1, got %q", result.InvoiceID)
	}
	if st.bookings["evt-1"].Status != transport.StatusApproved {
		t.Fatalf("expected booking approved, got %s", st.bookings["evt-1"].Status)
	}
	if len(issuer.calls) != 1 || len(st.calls) == 0 || st.calls[len(st.calls)-1] != "updateStatus" {
		t.Fatalf("expected invoice first then status write, issuer=%v store=%v", issuer.calls, st.calls)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.published))
	}
	if _, ok := bus.published[0].(events.BookingApproved); !ok {
		t.Fatalf("expected BookingApproved, got %T", bus.published[0])
	}
}

func TestApprove_TerminalBookingConflicts(t *testing.T) {
	st := newFakeStore()
	st.bookings["evt-1"] = transport.Booking{ID: "evt-1", Status: transport.StatusApproved}
	issuer := &fakeIssuer{}
	svc, _ := newTestService(t, st, issuer)

	_, err := svc.Approve(context.Background(), "evt-1", transport.ApproveBookingRequest{
		FinalTotal: 1000, DepositAmount: 200,
		ClientName: "Jordan Lee", ClientEmail: "jordan@example.com",
	})

	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(issuer.calls) != 0 {
		t.Fatalf("no second invoice may be issued for a terminal booking")
	}
}

func TestReject_TransitionsPendingBooking(t *testing.T) {
	st := newFakeStore()
	st.bookings["evt-1"] = transport.Booking{ID: "evt-1", Status: transport.StatusPending, ClientEmail: "jordan@example.com"}
	svc, bus := newTestService(t, st, &fakeIssuer{})

	if err := svc.Reject(context.Background(), "evt-1"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if st.bookings["evt-1"].Status != transport.StatusRejected {
		t.Fatalf("expected booking rejected, got %s", st.bookings["evt-1"].Status)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.published))
	}
}

func TestReject_TerminalBookingConflicts(t *testing.T) {
	st := newFakeStore()
	st.bookings["evt-1"] = transport.Booking{ID: "evt-1", Status: transport.StatusRejected}
	svc, _ := newTestService(t, st, &fakeIssuer{})

	if err := svc.Reject(context.Background(), "evt-1"); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAvailableSlots_FiltersBusyIntervals(t *testing.T) {
	st := newFakeStore()
	st.busy = []calendar.Interval{{
		Start: time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
	}}
	svc, _ := newTestService(t, st, &fakeIssuer{})
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	slots, err := svc.AvailableSlots(context.Background(), "2026-06-15")
	if err != nil {
		t.Fatalf("slots failed: %v", err)
	}
	if len(slots) != 7 {
		t.Fatalf("expected 7 free slots, got %d", len(slots))
	}
	if slots[0].Start.Hour() != 12 {
		t.Fatalf("expected first free slot at 12:00, got %v", slots[0].Start)
	}
}

func TestAvailableSlots_DegradesWhenFreeBusyFails(t *testing.T) {
	st := newFakeStore()
	st.busyErr = errors.New("calendar down")
	svc, _ := newTestService(t, st, &fakeIssuer{})
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	slots, err := svc.AvailableSlots(context.Background(), "2026-06-15")
	if err != nil {
		t.Fatalf("slots must not fail when free/busy fails: %v", err)
	}
	if len(slots) != 10 {
		t.Fatalf("expected all 10 business-hour slots, got %d", len(slots))
	}
}

func TestAvailableSlots_RejectsBadDate(t *testing.T) {
	svc, _ := newTestService(t, newFakeStore(), &fakeIssuer{})

	if _, err := svc.AvailableSlots(context.Background(), "June 15"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAvailableSlots_PastDayIsEmpty(t *testing.T) {
	svc, _ := newTestService(t, newFakeStore(), &fakeIssuer{})
	svc.now = func() time.Time { return time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC) }

	slots, err := svc.AvailableSlots(context.Background(), "2026-06-15")
	if err != nil {
		t.Fatalf("slots failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for a past day, got %d", len(slots))
	}
}

type fakeReminderScheduler struct {
	payloads []scheduler.BookingReminderPayload
	runAts   []time.Time
}

func (f *fakeReminderScheduler) ScheduleBookingReminder(_ context.Context, payload scheduler.BookingReminderPayload, runAt time.Time) error {
	f.payloads = append(f.payloads, payload)
	f.runAts = append(f.runAts, runAt)
	return nil
}

func TestApprove_SchedulesReminderDayBeforeEvent(t *testing.T) {
	st := newFakeStore()
	st.bookings["evt-1"] = transport.Booking{ID: "evt-1", Status: transport.StatusPending}
	svc, _ := newTestService(t, st, &fakeIssuer{})
	reminders := &fakeReminderScheduler{}
	svc.SetReminderScheduler(reminders)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC) }

	_, err := svc.Approve(context.Background(), "evt-1", transport.ApproveBookingRequest{
		FinalTotal: 1000, DepositAmount: 200,
		ClientName: "Jordan Lee", ClientEmail: "jordan@example.com",
		EventDate: "2026-06-15",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	if len(reminders.payloads) != 1 {
		t.Fatalf("expected 1 scheduled reminder, got %d", len(reminders.payloads))
	}
	if reminders.payloads[0].BookingID != "evt-1" {
		t.Fatalf("reminder for wrong booking: %q", reminders.payloads[0].BookingID)
	}
	want := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	if !reminders.runAts[0].Equal(want) {
		t.Fatalf("reminder at %v, want %v", reminders.runAts[0], want)
	}
}

func TestApprove_SkipsReminderForImminentEvent(t *testing.T) {
	st := newFakeStore()
	st.bookings["evt-1"] = transport.Booking{ID: "evt-1", Status: transport.StatusPending}
	svc, _ := newTestService(t, st, &fakeIssuer{})
	reminders := &fakeReminderScheduler{}
	svc.SetReminderScheduler(reminders)
	svc.now = func() time.Time { return time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC) }

	_, err := svc.Approve(context.Background(), "evt-1", transport.ApproveBookingRequest{
		FinalTotal: 1000, DepositAmount: 200,
		ClientName: "Jordan Lee", ClientEmail: "jordan@example.com",
		EventDate: "2026-06-15",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if len(reminders.payloads) != 0 {
		t.Fatalf("expected no reminder for event inside 24h, got %d", len(reminders.payloads))
	}
}
