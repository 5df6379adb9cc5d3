package invoicing

import (
	"context"
	"errors"
	"time"
)

// Params carries everything needed to invoice an approved booking.
type Params struct {
	BookingID     string
	ClientName    string
	ClientEmail   string
	EventType     string
	EventDate     time.Time
	FinalTotal    float64
	DepositAmount float64
}

// Result identifies the issued invoice. For a split schedule this is the
// deposit invoice; the balance invoice is delivered by the provider on its
// own due date.
type Result struct {
	InvoiceID  string
	InvoiceURL string
}

// Issuer creates payable invoices in an external billing provider.
type Issuer interface {
	CreateInvoiceForBooking(ctx context.Context, p Params) (Result, error)
}

// ErrBillingDisabled is returned when no billing provider is configured.
var ErrBillingDisabled = errors.New("billing is not configured")

// DisabledIssuer fails every invoice request. Used when billing is not
// configured so approvals fail loudly instead of marking bookings approved
// without a real invoice.
type DisabledIssuer struct{}

func (DisabledIssuer) CreateInvoiceForBooking(context.Context, Params) (Result, error) {
	return Result{}, ErrBillingDisabled
}

var _ Issuer = DisabledIssuer{}
