package interfaces

import (
	"context"
	"time"
)

// CheckoutSessionRequest describes the single line item the hosted session
// collects. Metadata fields are echoed back in settlement events so the
// webhook handler can correlate without a second lookup.

type CheckoutSessionRequest struct {
	EnrollmentID     string
	Description      string
	AmountMinor      int64
	Currency         string
	CustomerID       string
	CustomerEmail    string
	ExpiresAt        time.Time
	TermsVersion     string
	TermsContentHash string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// ICheckoutGateway abstracts the external checkout processor (Mercado Pago).
//
// FindOrCreateCustomer dedupes the processor-side customer by email before
// creating a new one. CreateSession opens a hosted checkout scoped to
// exactly one enrollment.

type ICheckoutGateway interface {
	FindOrCreateCustomer(ctx context.Context, email, name string) (customerID string, err error)
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
}
