package entities

import "time"

// EnrollmentStatus is the closed set of lifecycle states for a payment link.
//
// Domain notes:
//   - paid, failed, expired and canceled are terminal for a token generation.
//   - Regeneration may re-open a non-paid terminal enrollment by rotating
//     the token and resetting to created.
//   - Transitions are driven only by link resolution and verified settlement
//     callbacks, never by client-reported intent.

type EnrollmentStatus string

const (
	StatusCreated    EnrollmentStatus = "created"
	StatusSent       EnrollmentStatus = "sent"
	StatusOpened     EnrollmentStatus = "opened"
	StatusProcessing EnrollmentStatus = "processing"
	StatusPaid       EnrollmentStatus = "paid"
	StatusFailed     EnrollmentStatus = "failed"
	StatusExpired    EnrollmentStatus = "expired"
	StatusCanceled   EnrollmentStatus = "canceled"
)

// transitions is the explicit state table. The side-exits (failed, expired,
// canceled) are reachable from every non-terminal state.
var transitions = map[EnrollmentStatus][]EnrollmentStatus{
	StatusCreated:    {StatusSent, StatusOpened, StatusFailed, StatusExpired, StatusCanceled},
	StatusSent:       {StatusOpened, StatusFailed, StatusExpired, StatusCanceled},
	StatusOpened:     {StatusProcessing, StatusPaid, StatusFailed, StatusExpired, StatusCanceled},
	StatusProcessing: {StatusPaid, StatusFailed, StatusExpired},
	StatusPaid:       {},
	StatusFailed:     {},
	StatusExpired:    {},
	StatusCanceled:   {},
}

func (s EnrollmentStatus) CanTransitionTo(next EnrollmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s EnrollmentStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusFailed, StatusExpired, StatusCanceled:
		return true
	}
	return false
}

// CanRegenerate reports whether a new token generation may be issued.
// processing is deliberately excluded: an in-flight bank debit must settle
// or expire before the link can be reissued.
func (s EnrollmentStatus) CanRegenerate() bool {
	switch s {
	case StatusFailed, StatusExpired, StatusCanceled:
		return true
	}
	return false
}

func (s EnrollmentStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// PaymentMethodKind classifies how the patient paid. Bank debits settle
// asynchronously, so they park the enrollment in processing instead of paid.

type PaymentMethodKind string

const (
	PaymentMethodCard      PaymentMethodKind = "card"
	PaymentMethodBankDebit PaymentMethodKind = "bank_debit"
)

// Enrollment is one patient's single payment-collection instance.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI token_hash-index (PK: token_hash) — unique by construction
//   - a pointer item per CRM record ("active#<module>#<record>") arbitrates
//     the one-payable-link-per-record rule via conditional writes
//
// TokenHash is the only persisted form of the link secret; the raw token
// exists transiently at issuance and is returned once to the CRM caller.

type Enrollment struct {
	ID        string `json:"id"`
	CRMModule string `json:"crm_module"`
	CRMRecord string `json:"crm_record_id"`

	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
	PatientPhone string `json:"patient_phone,omitempty"`
	PatientID    string `json:"patient_id,omitempty"`

	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`

	TokenHash   string `json:"-"`
	TokenSuffix string `json:"token_suffix"`

	TermsURL         string `json:"terms_url"`
	TermsVersion     string `json:"terms_version"`
	TermsContentHash string `json:"terms_content_hash"`
	PolicyID         string `json:"policy_id,omitempty"`

	Status EnrollmentStatus `json:"status"`

	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	OpenedAt        *time.Time `json:"opened_at,omitempty"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at,omitempty"`
	ProcessingAt    *time.Time `json:"processing_at,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	FailedAt        *time.Time `json:"failed_at,omitempty"`
	ExpiredAt       *time.Time `json:"expired_at,omitempty"`

	ConsentIP          string `json:"consent_ip,omitempty"`
	ConsentUserAgent   string `json:"consent_user_agent,omitempty"`
	SignatureBlobRef   string `json:"signature_blob_ref,omitempty"`
	ConsentDocumentRef string `json:"consent_document_ref,omitempty"`

	CheckoutSessionID   string            `json:"checkout_session_id,omitempty"`
	PaymentIntentID     string            `json:"payment_intent_id,omitempty"`
	ProcessorCustomerID string            `json:"processor_customer_id,omitempty"`
	PaymentMethodKind   PaymentMethodKind `json:"payment_method_kind,omitempty"`
}

// LinkExpired reports lazy expiry: the deadline has passed but no callback
// or read has flipped the status yet.
func (e Enrollment) LinkExpired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}
