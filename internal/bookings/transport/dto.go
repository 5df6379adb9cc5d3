package transport

import (
	"time"

	pricingtransport "servant_backend/internal/pricing/transport"
)

// Status is the booking lifecycle state. It starts at pending and moves
// exactly once to approved or rejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CreateBookingRequest is the public booking submission payload.
type CreateBookingRequest struct {
	Name           string                          `json:"name" validate:"required"`
	Email          string                          `json:"email" validate:"required,email"`
	Phone          string                          `json:"phone"`
	EventDate      string                          `json:"eventDate" validate:"required"`
	EventTime      string                          `json:"eventTime"`
	GuestCount     int                             `json:"guestCount" validate:"min=0"`
	EventType      string                          `json:"eventType" validate:"required"`
	ServiceType    string                          `json:"serviceType"`
	DietaryNeeds   string                          `json:"dietaryNeeds"`
	Notes          string                          `json:"notes"`
	SelectedAddOns []string                        `json:"selectedAddOns"`
	MealSelection  *pricingtransport.MealSelection `json:"mealSelection"`
}

// CreateBookingResponse acknowledges a stored booking request.
type CreateBookingResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"eventId"`
}

// Booking is a booking reconstructed from a calendar event and its private
// metadata.
type Booking struct {
	ID             string    `json:"id"`
	Summary        string    `json:"summary"`
	Description    string    `json:"description"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Status         Status    `json:"bookingStatus"`
	ClientEmail    string    `json:"clientEmail"`
	ClientPhone    string    `json:"clientPhone"`
	EstimatedTotal string    `json:"estimatedTotal"`
	InvoiceID      string    `json:"invoiceId"`
	InvoiceURL     string    `json:"invoiceUrl"`
	MealInfo       string    `json:"mealInfo"`
}

// ApproveBookingRequest carries the admin's final terms for an approval.
type ApproveBookingRequest struct {
	FinalTotal    float64 `json:"finalTotal" validate:"required,gt=0"`
	DepositAmount float64 `json:"depositAmount" validate:"required,gt=0"`
	ClientEmail   string  `json:"clientEmail" validate:"required,email"`
	ClientName    string  `json:"clientName" validate:"required"`
	EventType     string  `json:"eventType"`
	EventDate     string  `json:"eventDate"`
	GuestCount    int     `json:"guestCount"`
}

// ApproveBookingResponse reports the created invoice.
type ApproveBookingResponse struct {
	Success    bool   `json:"success"`
	InvoiceID  string `json:"invoiceId"`
	InvoiceURL string `json:"invoiceUrl"`
}

// TimeSlot is one bookable window within business hours.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// SlotsResponse wraps the available slots for a day.
type SlotsResponse struct {
	Slots []TimeSlot `json:"slots"`
}
