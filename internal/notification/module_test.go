package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"servant_backend/internal/email"
	"servant_backend/internal/events"
	"servant_backend/platform/logger"
)

type fakeSender struct {
	sent        []string
	attachments []email.Attachment
	requestData email.BookingRequestData
	err         error
}

func (f *fakeSender) SendBookingRequestEmail(_ context.Context, _ string, data email.BookingRequestData) error {
	f.sent = append(f.sent, "booking_request")
	f.requestData = data
	return f.err
}

func (f *fakeSender) SendBookingApprovedEmail(_ context.Context, _ string, _ email.BookingApprovedData, attachments ...email.Attachment) error {
	f.sent = append(f.sent, "booking_approved")
	f.attachments = attachments
	return f.err
}

func (f *fakeSender) SendBookingRejectedEmail(context.Context, string, string, string) error {
	f.sent = append(f.sent, "booking_rejected")
	return f.err
}

func (f *fakeSender) SendBookingReminderEmail(context.Context, string, string, string, string, string) error {
	f.sent = append(f.sent, "booking_reminder")
	return f.err
}

func (f *fakeSender) SendContactMessageEmail(context.Context, string, string, string, string, string) error {
	f.sent = append(f.sent, "contact_message")
	return f.err
}

type testNotifyConfig struct{}

func (testNotifyConfig) GetAppBaseURL() string       { return "https://servantcatering.example.com" }
func (testNotifyConfig) GetAdminNotifyEmail() string { return "owner@example.com" }
func (testNotifyConfig) GetBusinessName() string     { return "Servant Catering" }

func newTestModule(sender *fakeSender) *Module {
	return NewModule(sender, testNotifyConfig{}, logger.New("test"))
}

func TestHandle_RoutesEventsToTemplates(t *testing.T) {
	sender := &fakeSender{}
	m := newTestModule(sender)
	ctx := context.Background()
	start := time.Date(2026, 6, 15, 17, 0, 0, 0, time.UTC)

	eventsToSend := []events.Event{
		events.BookingRequested{BaseEvent: events.NewBaseEvent(), BookingID: "evt-1", ClientName: "Jordan", ClientEmail: "j@example.com", EventStart: start},
		events.BookingApproved{BaseEvent: events.NewBaseEvent(), BookingID: "evt-1", ClientEmail: "j@example.com", EventStart: start},
		events.BookingRejected{BaseEvent: events.NewBaseEvent(), BookingID: "evt-1", ClientEmail: "j@example.com"},
		events.BookingReminderDue{BaseEvent: events.NewBaseEvent(), BookingID: "evt-1", ClientEmail: "j@example.com", EventStart: start},
		events.ContactMessageReceived{BaseEvent: events.NewBaseEvent(), Name: "Sam", Email: "s@example.com", Message: "hi"},
	}
	for _, e := range eventsToSend {
		if err := m.Handle(ctx, e); err != nil {
			t.Fatalf("handle %T: %v", e, err)
		}
	}

	want := []string{"booking_request", "booking_approved", "booking_rejected", "booking_reminder", "contact_message"}
	if len(sender.sent) != len(want) {
		t.Fatalf("sent %v, want %v", sender.sent, want)
	}
	for i, name := range want {
		if sender.sent[i] != name {
			t.Errorf("send %d = %q, want %q", i, sender.sent[i], name)
		}
	}
}

func TestHandle_RequestEmailLinksAdminReview(t *testing.T) {
	sender := &fakeSender{}
	m := newTestModule(sender)

	err := m.Handle(context.Background(), events.BookingRequested{
		BaseEvent: events.NewBaseEvent(), BookingID: "evt-42", ClientName: "Jordan", ClientEmail: "j@example.com",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	want := "https://servantcatering.example.com/admin/bookings/evt-42"
	if sender.requestData.ReviewURL != want {
		t.Fatalf("review url = %q, want %q", sender.requestData.ReviewURL, want)
	}
}

func TestHandle_ApprovedEmailAttachesInvoiceQR(t *testing.T) {
	sender := &fakeSender{}
	m := newTestModule(sender)

	err := m.Handle(context.Background(), events.BookingApproved{
		BaseEvent: events.NewBaseEvent(), BookingID: "evt-1",
		ClientEmail: "j@example.com", InvoiceURL: "https://pay.example.com/inv-1",
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sender.attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(sender.attachments))
	}
	att := sender.attachments[0]
	if att.FileName != "invoice-qr.png" || att.MIMEType != "image/png" || len(att.Content) == 0 {
		t.Fatalf("unexpected attachment %q %q len=%d", att.FileName, att.MIMEType, len(att.Content))
	}
}

func TestHandle_SendFailuresAreSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	m := newTestModule(sender)

	err := m.Handle(context.Background(), events.BookingRejected{
		BaseEvent: events.NewBaseEvent(), BookingID: "evt-1", ClientEmail: "j@example.com",
	})
	if err != nil {
		t.Fatalf("send failure must not propagate, got %v", err)
	}
}

func TestHandle_SkipsClientMailWithoutAddress(t *testing.T) {
	sender := &fakeSender{}
	m := newTestModule(sender)

	_ = m.Handle(context.Background(), events.BookingApproved{BaseEvent: events.NewBaseEvent(), BookingID: "evt-1"})
	if len(sender.sent) != 0 {
		t.Fatalf("expected no sends without a client email, got %v", sender.sent)
	}
}
