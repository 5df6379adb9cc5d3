// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"servant_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Booking Domain Events
// =============================================================================

// BookingRequested is published when a visitor submits a booking request.
type BookingRequested struct {
	BaseEvent
	BookingID      string    `json:"bookingId"`
	ClientName     string    `json:"clientName"`
	ClientEmail    string    `json:"clientEmail"`
	ClientPhone    string    `json:"clientPhone,omitempty"`
	EventType      string    `json:"eventType"`
	EventStart     time.Time `json:"eventStart"`
	GuestCount     int       `json:"guestCount"`
	EstimatedTotal float64   `json:"estimatedTotal"`
}

func (e BookingRequested) EventName() string { return "bookings.requested" }

// BookingApproved is published after an approval completed, invoice included.
type BookingApproved struct {
	BaseEvent
	BookingID   string    `json:"bookingId"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	EventType   string    `json:"eventType"`
	EventStart  time.Time `json:"eventStart"`
	FinalTotal  float64   `json:"finalTotal"`
	InvoiceID   string    `json:"invoiceId"`
	InvoiceURL  string    `json:"invoiceUrl"`
}

func (e BookingApproved) EventName() string { return "bookings.approved" }

// BookingRejected is published after a rejection was persisted.
type BookingRejected struct {
	BaseEvent
	BookingID   string `json:"bookingId"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	EventType   string `json:"eventType"`
}

func (e BookingRejected) EventName() string { return "bookings.rejected" }

// BookingReminderDue is published by the worker when an approved event is
// coming up and the client should be reminded.
type BookingReminderDue struct {
	BaseEvent
	BookingID   string    `json:"bookingId"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	EventType   string    `json:"eventType"`
	EventStart  time.Time `json:"eventStart"`
}

func (e BookingReminderDue) EventName() string { return "bookings.reminder_due" }

// =============================================================================
// Contact Domain Events
// =============================================================================

// ContactMessageReceived is published when a visitor submits the contact form.
type ContactMessageReceived struct {
	BaseEvent
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

func (e ContactMessageReceived) EventName() string { return "contact.message_received" }
