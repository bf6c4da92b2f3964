package entities

import (
	"encoding/json"
	"time"
)

// Settlement event kinds delivered by the checkout processor.
const (
	SettlementSessionCompleted = "checkout_session.completed"
	SettlementPaymentConfirmed = "payment.confirmed"
	SettlementPaymentFailed    = "payment.failed"
	SettlementSessionExpired   = "checkout_session.expired"
)

// SettlementEvent is the verified webhook envelope: event id, kind, and the
// object payload inline.

type SettlementEvent struct {
	ID      string           `json:"id"`
	Type    string           `json:"type"`
	Created int64            `json:"created"`
	Data    SettlementObject `json:"data"`
}

// SettlementObject carries the processor correlation ids for one enrollment.
// EnrollmentID comes back from the session metadata set at creation, so the
// handler needs no second lookup to correlate.

type SettlementObject struct {
	Object            json.RawMessage   `json:"object,omitempty"`
	EnrollmentID      string            `json:"enrollment_id"`
	CheckoutSessionID string            `json:"checkout_session_id,omitempty"`
	PaymentIntentID   string            `json:"payment_intent_id,omitempty"`
	PaymentMethodKind PaymentMethodKind `json:"payment_method_kind,omitempty"`
	ErrorMessage      string            `json:"error_message,omitempty"`
}

// ProcessedSettlementEvent is the idempotency ledger row. The processor's
// event id is the primary key and insertion is unique-constrained; a row is
// written only after the corresponding transition is durably applied.

type ProcessedSettlementEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	ProcessedAt time.Time `json:"processed_at"`
}
