// Package notification sends transactional emails in response to domain
// events. Domain modules publish events and never touch mail providers or
// templates; every send here is best-effort and failures are only logged.
package notification

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"servant_backend/internal/email"
	"servant_backend/internal/events"
	"servant_backend/platform/config"
	"servant_backend/platform/logger"
)

// Module subscribes to booking and contact events and emails the right party.
type Module struct {
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
}

// NewModule creates the notification module.
func NewModule(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.BookingRequested{}.EventName(), m)
	bus.Subscribe(events.BookingApproved{}.EventName(), m)
	bus.Subscribe(events.BookingRejected{}.EventName(), m)
	bus.Subscribe(events.BookingReminderDue{}.EventName(), m)
	bus.Subscribe(events.ContactMessageReceived{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle dispatches one domain event to the matching email.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.BookingRequested:
		m.handleBookingRequested(ctx, e)
	case events.BookingApproved:
		m.handleBookingApproved(ctx, e)
	case events.BookingRejected:
		m.handleBookingRejected(ctx, e)
	case events.BookingReminderDue:
		m.handleBookingReminderDue(ctx, e)
	case events.ContactMessageReceived:
		m.handleContactMessage(ctx, e)
	}
	return nil
}

func (m *Module) handleBookingRequested(ctx context.Context, e events.BookingRequested) {
	toEmail := m.cfg.GetAdminNotifyEmail()
	if toEmail == "" {
		return
	}
	err := m.sender.SendBookingRequestEmail(ctx, toEmail, email.BookingRequestData{
		ClientName:     e.ClientName,
		ClientEmail:    e.ClientEmail,
		ClientPhone:    e.ClientPhone,
		EventType:      e.EventType,
		EventDate:      e.EventStart.Format("January 2, 2006"),
		GuestCount:     e.GuestCount,
		EstimatedTotal: e.EstimatedTotal,
		ReviewURL:      fmt.Sprintf("%s/admin/bookings/%s", m.cfg.GetAppBaseURL(), e.BookingID),
	})
	if err != nil {
		m.log.MailError("booking_request", toEmail, err)
	}
}

func (m *Module) handleBookingApproved(ctx context.Context, e events.BookingApproved) {
	if e.ClientEmail == "" {
		return
	}

	// A scannable payment link for clients reading the mail on paper or a
	// second screen. Skipped silently if encoding fails.
	var attachments []email.Attachment
	if e.InvoiceURL != "" {
		if png, err := qrcode.Encode(e.InvoiceURL, qrcode.Medium, 256); err == nil {
			attachments = append(attachments, email.Attachment{
				Content:  png,
				FileName: "invoice-qr.png",
				MIMEType: "image/png",
			})
		}
	}

	err := m.sender.SendBookingApprovedEmail(ctx, e.ClientEmail, email.BookingApprovedData{
		ClientName:   e.ClientName,
		BusinessName: m.cfg.GetBusinessName(),
		EventType:    e.EventType,
		EventDate:    e.EventStart.Format("January 2, 2006"),
		FinalTotal:   e.FinalTotal,
		InvoiceURL:   e.InvoiceURL,
	}, attachments...)
	if err != nil {
		m.log.MailError("booking_approved", e.ClientEmail, err)
	}
}

func (m *Module) handleBookingRejected(ctx context.Context, e events.BookingRejected) {
	if e.ClientEmail == "" {
		return
	}
	if err := m.sender.SendBookingRejectedEmail(ctx, e.ClientEmail, e.ClientName, m.cfg.GetBusinessName()); err != nil {
		m.log.MailError("booking_rejected", e.ClientEmail, err)
	}
}

func (m *Module) handleBookingReminderDue(ctx context.Context, e events.BookingReminderDue) {
	if e.ClientEmail == "" {
		return
	}
	err := m.sender.SendBookingReminderEmail(ctx, e.ClientEmail, e.ClientName, e.EventType, e.EventStart.Format("January 2, 2006"), m.cfg.GetBusinessName())
	if err != nil {
		m.log.MailError("booking_reminder", e.ClientEmail, err)
	}
}

func (m *Module) handleContactMessage(ctx context.Context, e events.ContactMessageReceived) {
	toEmail := m.cfg.GetAdminNotifyEmail()
	if toEmail == "" {
		return
	}
	if err := m.sender.SendContactMessageEmail(ctx, toEmail, e.Name, e.Email, e.Phone, e.Message); err != nil {
		m.log.MailError("contact_message", toEmail, err)
	}
}

var _ events.Handler = (*Module)(nil)
