// Package email renders and delivers the site's transactional emails.
package email

import (
	"context"

	"servant_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte
	FileName string
	MIMEType string
}

// BookingRequestData is the admin-notification payload for a new request.
type BookingRequestData struct {
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	EventType      string
	EventDate      string
	GuestCount     int
	EstimatedTotal float64
	ReviewURL      string
}

// BookingApprovedData is the client-confirmation payload for an approval.
type BookingApprovedData struct {
	ClientName   string
	BusinessName string
	EventType    string
	EventDate    string
	FinalTotal   float64
	InvoiceURL   string
}

// Sender delivers transactional emails. All sends are best-effort from the
// caller's point of view: callers log failures and move on.
type Sender interface {
	SendBookingRequestEmail(ctx context.Context, toEmail string, data BookingRequestData) error
	SendBookingApprovedEmail(ctx context.Context, toEmail string, data BookingApprovedData, attachments ...Attachment) error
	SendBookingRejectedEmail(ctx context.Context, toEmail, clientName, businessName string) error
	SendBookingReminderEmail(ctx context.Context, toEmail, clientName, eventType, eventDate, businessName string) error
	SendContactMessageEmail(ctx context.Context, toEmail, name, fromEmail, phone, message string) error
}

// NoopSender drops every email. Used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendBookingRequestEmail(context.Context, string, BookingRequestData) error {
	return nil
}

func (NoopSender) SendBookingApprovedEmail(context.Context, string, BookingApprovedData, ...Attachment) error {
	return nil
}

func (NoopSender) SendBookingRejectedEmail(context.Context, string, string, string) error {
	return nil
}

func (NoopSender) SendBookingReminderEmail(context.Context, string, string, string, string, string) error {
	return nil
}

func (NoopSender) SendContactMessageEmail(context.Context, string, string, string, string, string) error {
	return nil
}

// NewSender returns the configured Sender: SMTP when email is enabled, a
// noop otherwise.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	)
}
