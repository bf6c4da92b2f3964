package entities

import (
	"encoding/json"
	"time"
)

// Lifecycle event tags emitted by the core flows. The column is free-form;
// these are the tags the service itself writes.
const (
	EventEnrollmentCreated     = "enrollment_created"
	EventEnrollmentRegenerated = "enrollment_regenerated"
	EventLinkOpened            = "link_opened"
	EventTermsAccepted         = "terms_accepted"
	EventCheckoutSessionCreate = "checkout_session_created"
	EventPaymentProcessing     = "payment_processing"
	EventPaymentPaid           = "payment_paid"
	EventPaymentFailed         = "payment_failed"
	EventEnrollmentExpired     = "enrollment_expired"
	EventConsentDocumentStored = "consent_document_stored"
)

// LifecycleEvent is the append-only audit trail for an enrollment. Rows are
// never updated or deleted; regeneration leaves prior rows in place, so the
// trail spans token generations.
//
// Storage model (DynamoDB):
//   - PK: enrollment_id
//   - SK: id (time-ordered UUID assigned at append)

type LifecycleEvent struct {
	ID           string          `json:"id"`
	EnrollmentID string          `json:"enrollment_id"`
	EventType    string          `json:"event_type"`
	EventData    json.RawMessage `json:"event_data,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
