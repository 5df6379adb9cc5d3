// Package calendar adapts an external calendar into the booking store. Each
// booking is one calendar event; booking state lives in the event's private
// metadata so the calendar itself stays human-readable.
package calendar

import (
	"context"
	"time"

	"servant_backend/internal/bookings/transport"
	pricingtransport "servant_backend/internal/pricing/transport"
)

// BookingDetails is everything needed to write a new pending booking.
type BookingDetails struct {
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	EventType    string
	ServiceType  string
	EventDate    string // YYYY-MM-DD
	EventTime    string // HH:MM, optional
	GuestCount   int
	DietaryNeeds string
	Notes        string
	AddOnNames   []string
	Estimate     *pricingtransport.QuoteEstimate
	MealInfo     string // JSON snapshot of the chosen meal
}

// StatusUpdate carries the extra fields an approval writes alongside the
// status. Empty fields are left untouched in the event's metadata.
type StatusUpdate struct {
	EstimatedTotal string
	InvoiceID      string
	InvoiceURL     string
}

// Interval is a half-open busy window [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// BookingStore is the contract the orchestrator works against. The calendar
// is the system of record: there is no separate database of bookings.
type BookingStore interface {
	// Create writes a pending booking and returns the assigned event id.
	Create(ctx context.Context, details BookingDetails) (string, error)

	// List returns bookings with a start time at or after windowStart.
	List(ctx context.Context, windowStart time.Time) ([]transport.Booking, error)

	// Get returns a single booking by event id.
	Get(ctx context.Context, id string) (transport.Booking, error)

	// UpdateStatus merges the new status (and any extra fields) into the
	// event's metadata. Read-merge-write, last writer wins.
	UpdateStatus(ctx context.Context, id string, status transport.Status, extra *StatusUpdate) error

	// FreeBusy returns the busy intervals between start and end.
	FreeBusy(ctx context.Context, start, end time.Time) ([]Interval, error)
}
