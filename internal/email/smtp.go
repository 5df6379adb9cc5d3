package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string, attachments ...Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	for _, att := range attachments {
		if err := msg.AttachReader(att.FileName, bytes.NewReader(att.Content)); err != nil {
			return fmt.Errorf("smtp attach %s: %w", att.FileName, err)
		}
	}

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendBookingRequestEmail(ctx context.Context, toEmail string, data BookingRequestData) error {
	content, err := renderEmailTemplate("booking_request.html", bookingRequestEmailData{
		baseEmailData: baseEmailData{
			Title:    "New catering request",
			Heading:  "New catering request",
			CTALabel: "Review booking",
			CTAURL:   data.ReviewURL,
		},
		ClientName:     data.ClientName,
		ClientEmail:    data.ClientEmail,
		ClientPhone:    data.ClientPhone,
		EventType:      data.EventType,
		EventDate:      data.EventDate,
		GuestCount:     data.GuestCount,
		EstimatedTotal: formatCurrencyUSD(data.EstimatedTotal),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectBookingRequestFmt, data.EventType), content)
}

func (s *SMTPSender) SendBookingApprovedEmail(ctx context.Context, toEmail string, data BookingApprovedData, attachments ...Attachment) error {
	content, err := renderEmailTemplate("booking_approved.html", bookingApprovedEmailData{
		baseEmailData: baseEmailData{
			Title:    "Your booking is confirmed",
			Heading:  "Your booking is confirmed",
			CTALabel: "View and pay your invoice",
			CTAURL:   data.InvoiceURL,
		},
		ClientName:   data.ClientName,
		BusinessName: data.BusinessName,
		EventType:    data.EventType,
		EventDate:    data.EventDate,
		FinalTotal:   formatCurrencyUSD(data.FinalTotal),
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingApproved, content, attachments...)
}

func (s *SMTPSender) SendBookingRejectedEmail(ctx context.Context, toEmail, clientName, businessName string) error {
	content, err := renderEmailTemplate("booking_rejected.html", bookingRejectedEmailData{
		baseEmailData: baseEmailData{
			Title:   "About your catering request",
			Heading: "About your catering request",
		},
		ClientName:   clientName,
		BusinessName: businessName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectBookingRejected, content)
}

func (s *SMTPSender) SendBookingReminderEmail(ctx context.Context, toEmail, clientName, eventType, eventDate, businessName string) error {
	content, err := renderEmailTemplate("booking_reminder.html", bookingReminderEmailData{
		baseEmailData: baseEmailData{
			Title:   "Your event is coming up",
			Heading: "Your event is coming up",
		},
		ClientName:   clientName,
		BusinessName: businessName,
		EventType:    eventType,
		EventDate:    eventDate,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectBookingReminderFmt, eventDate), content)
}

func (s *SMTPSender) SendContactMessageEmail(ctx context.Context, toEmail, name, fromEmail, phone, message string) error {
	content, err := renderEmailTemplate("contact_message.html", contactMessageEmailData{
		baseEmailData: baseEmailData{
			Title:   "New contact message",
			Heading: "New contact message",
		},
		Name:    name,
		Email:   fromEmail,
		Phone:   phone,
		Message: message,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectContactMessageFmt, name), content)
}

var _ Sender = (*SMTPSender)(nil)
