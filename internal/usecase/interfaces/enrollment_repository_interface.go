package interfaces

import (
	"context"
	"errors"
	"time"

	"paylink/internal/domain/entities"
)

// ErrActiveEnrollmentExists signals that another enrollment already holds the
// active slot for the CRM record. The slot is a conditional-put pointer item,
// so this is the storage layer arbitrating a concurrent create or a
// regenerate against a newer live link.
var ErrActiveEnrollmentExists = errors.New("an active enrollment already exists for this crm record")

// RegenerateParams is the field set replaced atomically when a terminal
// (non-paid) enrollment is re-opened with a fresh token generation.

type RegenerateParams struct {
	TokenHash        string
	TokenSuffix      string
	AmountMinor      int64
	Currency         string
	TermsURL         string
	TermsVersion     string
	TermsContentHash string
	PolicyID         string
	ExpiresAt        time.Time
}

// IEnrollmentRepository abstracts DynamoDB persistence for Enrollment.
//
// Every state-changing method issues a conditional update guarded by the
// expected current status (compare-and-swap at the storage layer). A guard
// miss returns a zero-value Enrollment and a nil error; callers treat the
// empty ID as "transition did not apply".
//
// One-active-link-per-record is enforced by a pointer item keyed by the CRM
// record: Create and Regenerate claim it with a conditional write in the
// same transaction as the row change, and terminal transitions release it.
// A claim lost to a concurrent writer surfaces as ErrActiveEnrollmentExists.

type IEnrollmentRepository interface {
	// Create inserts the enrollment and claims the record's active slot
	// atomically. replaceActiveID names the stale holder when the slot still
	// points at a terminal or missing enrollment; empty means the slot must
	// be vacant.
	Create(ctx context.Context, e entities.Enrollment, replaceActiveID string) (entities.Enrollment, error)
	GetByID(ctx context.Context, id string) (entities.Enrollment, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (entities.Enrollment, error)
	// FindActiveByCRMRecord resolves the active slot with a consistent read.
	// When the slot points at a terminal or missing enrollment it returns a
	// zero value plus the stale holder's id for Create to replace.
	FindActiveByCRMRecord(ctx context.Context, crmModule, crmRecordID string) (entities.Enrollment, string, error)

	MarkSent(ctx context.Context, id string) (entities.Enrollment, error)
	MarkOpened(ctx context.Context, id string) (entities.Enrollment, error)
	RecordConsent(ctx context.Context, id, consentIP, consentUserAgent, signatureBlobRef string) (entities.Enrollment, error)
	AttachCheckoutSession(ctx context.Context, id, sessionID, customerID string) (entities.Enrollment, error)
	MarkProcessing(ctx context.Context, id, paymentIntentID string, kind entities.PaymentMethodKind) (entities.Enrollment, error)
	MarkPaid(ctx context.Context, id string, expected entities.EnrollmentStatus, paymentIntentID string, kind entities.PaymentMethodKind) (entities.Enrollment, error)
	MarkFailed(ctx context.Context, id string) (entities.Enrollment, error)
	MarkExpired(ctx context.Context, id string, expected ...entities.EnrollmentStatus) (entities.Enrollment, error)
	SetConsentDocumentRef(ctx context.Context, id, ref string) (entities.Enrollment, error)
	Regenerate(ctx context.Context, id string, params RegenerateParams, expected ...entities.EnrollmentStatus) (entities.Enrollment, error)
}
