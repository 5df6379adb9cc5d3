// Package invoicing turns an approval decision into payable invoices with a
// deposit/balance split in the billing provider.
package invoicing

import (
	"math"
	"time"
)

// PaymentKind distinguishes the two legs of a split invoice.
type PaymentKind string

const (
	PaymentDeposit PaymentKind = "DEPOSIT"
	PaymentBalance PaymentKind = "BALANCE"
)

const (
	depositLeadTime  = 3 * 24 * time.Hour
	balanceLeadTime  = 3 * 24 * time.Hour
	minDueDateSpread = 24 * time.Hour
)

// Payment is one payment request with its amount in minor currency units.
type Payment struct {
	Kind        PaymentKind
	AmountCents int64
	DueDate     time.Time
}

// Schedule is the computed set of payment requests for one approval.
type Schedule struct {
	Payments []Payment
}

// toCents converts a currency amount to minor units, rounded to the nearest
// cent.
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ComputeSchedule derives the payment requests for an approved booking.
//
// The deposit is due three days from now and the balance three days before
// the event. The billing provider requires the deposit due date to be
// strictly before the balance due date, so a near-term event pushes the
// balance to deposit+1d. When the event is so soon that the deposit due date
// would not even precede the event, the split is skipped entirely and a
// single balance payment for the full amount falls due on the event date.
func ComputeSchedule(now, eventDate time.Time, finalTotal, depositAmount float64) Schedule {
	totalCents := toCents(finalTotal)
	depositDue := now.Add(depositLeadTime)

	if !depositDue.Before(eventDate) {
		return Schedule{Payments: []Payment{{
			Kind:        PaymentBalance,
			AmountCents: totalCents,
			DueDate:     eventDate,
		}}}
	}

	balanceDue := eventDate.Add(-balanceLeadTime)
	if !balanceDue.After(depositDue) {
		balanceDue = depositDue.Add(minDueDateSpread)
	}

	depositCents := toCents(depositAmount)
	return Schedule{Payments: []Payment{
		{Kind: PaymentDeposit, AmountCents: depositCents, DueDate: depositDue},
		{Kind: PaymentBalance, AmountCents: totalCents - depositCents, DueDate: balanceDue},
	}}
}
