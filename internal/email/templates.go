package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type bookingRequestEmailData struct {
	baseEmailData
	ClientName     string
	ClientEmail    string
	ClientPhone    string
	EventType      string
	EventDate      string
	GuestCount     int
	EstimatedTotal string
}

type bookingApprovedEmailData struct {
	baseEmailData
	ClientName   string
	BusinessName string
	EventType    string
	EventDate    string
	FinalTotal   string
}

type bookingRejectedEmailData struct {
	baseEmailData
	ClientName   string
	BusinessName string
}

type bookingReminderEmailData struct {
	baseEmailData
	ClientName   string
	BusinessName string
	EventType    string
	EventDate    string
}

type contactMessageEmailData struct {
	baseEmailData
	Name    string
	Email   string
	Phone   string
	Message string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatCurrencyUSD(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
