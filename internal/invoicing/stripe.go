package invoicing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/invoice"
	"github.com/stripe/stripe-go/v76/invoiceitem"

	"servant_backend/platform/logger"
)

// StripeIssuer implements Issuer against the Stripe Invoicing API. One
// Stripe invoice is created per payment leg; each carries an idempotency key
// derived from the booking id so an admin retry after a partial failure
// never double-bills.
type StripeIssuer struct {
	currency string
	log      *logger.Logger
}

// NewStripeIssuer configures the global Stripe client and returns the issuer.
func NewStripeIssuer(secretKey, currency string, log *logger.Logger) *StripeIssuer {
	stripe.Key = secretKey
	return &StripeIssuer{currency: currency, log: log}
}

// findOrCreateCustomer looks a customer up by exact email and creates one on
// miss. The display name is split on the first space into given/family parts
// kept in metadata.
func (s *StripeIssuer) findOrCreateCustomer(ctx context.Context, name, email string) (*stripe.Customer, error) {
	searchParams := &stripe.CustomerSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("email:'%s'", email),
			Context: ctx,
		},
	}
	iter := customer.Search(searchParams)
	if iter.Next() {
		return iter.Customer(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("customer search failed: %w", err)
	}

	given, family := splitName(name)
	createParams := &stripe.CustomerParams{
		Name:  stripe.String(name),
		Email: stripe.String(email),
	}
	createParams.Context = ctx
	createParams.AddMetadata("givenName", given)
	createParams.AddMetadata("familyName", family)

	created, err := customer.New(createParams)
	if err != nil {
		return nil, fmt.Errorf("customer creation failed: %w", err)
	}
	return created, nil
}

func splitName(name string) (string, string) {
	given, family, found := strings.Cut(strings.TrimSpace(name), " ")
	if !found {
		return given, ""
	}
	return given, family
}

// createLegInvoice creates, finalizes, and sends one invoice for a single
// payment leg. Finalize and send are explicit: a draft invoice alone never
// reaches the client.
func (s *StripeIssuer) createLegInvoice(ctx context.Context, customerID string, p Params, leg Payment) (*stripe.Invoice, error) {
	legKey := fmt.Sprintf("booking:%s:%s", p.BookingID, strings.ToLower(string(leg.Kind)))

	invParams := &stripe.InvoiceParams{
		Customer:                    stripe.String(customerID),
		CollectionMethod:            stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DueDate:                     stripe.Int64(leg.DueDate.Unix()),
		Description:                 stripe.String(fmt.Sprintf("%s for %s catering on %s", leg.Kind, p.EventType, p.EventDate.Format("January 2, 2006"))),
		PendingInvoiceItemsBehavior: stripe.String("exclude"),
	}
	invParams.Context = ctx
	invParams.IdempotencyKey = stripe.String(legKey + ":invoice")

	inv, err := invoice.New(invParams)
	if err != nil {
		return nil, fmt.Errorf("invoice creation failed for %s leg: %w", leg.Kind, err)
	}

	itemParams := &stripe.InvoiceItemParams{
		Customer:    stripe.String(customerID),
		Invoice:     stripe.String(inv.ID),
		Amount:      stripe.Int64(leg.AmountCents),
		Currency:    stripe.String(s.currency),
		Description: stripe.String(fmt.Sprintf("%s: %s catering, %s", leg.Kind, p.EventType, p.EventDate.Format("2006-01-02"))),
	}
	itemParams.Context = ctx
	itemParams.IdempotencyKey = stripe.String(legKey + ":item")

	if _, err := invoiceitem.New(itemParams); err != nil {
		return nil, fmt.Errorf("invoice line item failed for %s leg: %w", leg.Kind, err)
	}

	finalizeParams := &stripe.InvoiceFinalizeInvoiceParams{}
	finalizeParams.Context = ctx
	finalizeParams.IdempotencyKey = stripe.String(legKey + ":finalize")
	finalized, err := invoice.FinalizeInvoice(inv.ID, finalizeParams)
	if err != nil {
		return nil, fmt.Errorf("invoice finalization failed for %s leg: %w", leg.Kind, err)
	}

	sendParams := &stripe.InvoiceSendInvoiceParams{}
	sendParams.Context = ctx
	sendParams.IdempotencyKey = stripe.String(legKey + ":send")
	sent, err := invoice.SendInvoice(finalized.ID, sendParams)
	if err != nil {
		return nil, fmt.Errorf("invoice send failed for %s leg: %w", leg.Kind, err)
	}
	return sent, nil
}

// CreateInvoiceForBooking issues the payment schedule for an approval. Any
// failure aborts the whole operation; the caller must not mark the booking
// approved in that case.
func (s *StripeIssuer) CreateInvoiceForBooking(ctx context.Context, p Params) (Result, error) {
	cust, err := s.findOrCreateCustomer(ctx, p.ClientName, p.ClientEmail)
	if err != nil {
		return Result{}, err
	}

	schedule := ComputeSchedule(time.Now(), p.EventDate, p.FinalTotal, p.DepositAmount)

	var first *stripe.Invoice
	for _, leg := range schedule.Payments {
		inv, err := s.createLegInvoice(ctx, cust.ID, p, leg)
		if err != nil {
			return Result{}, err
		}
		if first == nil {
			first = inv
		}
	}

	s.log.BookingEvent("invoices issued", p.BookingID)
	return Result{InvoiceID: first.ID, InvoiceURL: first.HostedInvoiceURL}, nil
}

var _ Issuer = (*StripeIssuer)(nil)
