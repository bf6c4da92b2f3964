package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var ErrEventUnparseable = errors.New("settlement event missing id or type")

// ISettlementUseCase applies one verified processor callback. The handler
// has already checked the payload signature; everything past that point must
// be idempotent under redelivery.

type ISettlementUseCase interface {
	Process(ctx context.Context, ev entities.SettlementEvent) error
}

type SettlementUseCase struct {
	repo     interfaces.IEnrollmentRepository
	events   interfaces.ILifecycleEventRepository
	ledger   interfaces.ISettlementLedger
	blobs    interfaces.IBlobStore
	renderer interfaces.IConsentRenderer
	mailer   interfaces.IMailer
	crm      interfaces.ICRMClient
	policy   interfaces.IPolicyFetcher
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(
	repo interfaces.IEnrollmentRepository,
	events interfaces.ILifecycleEventRepository,
	ledger interfaces.ISettlementLedger,
	blobs interfaces.IBlobStore,
	renderer interfaces.IConsentRenderer,
	mailer interfaces.IMailer,
	crm interfaces.ICRMClient,
	policy interfaces.IPolicyFetcher,
) *SettlementUseCase {
	return &SettlementUseCase{
		repo: repo, events: events, ledger: ledger,
		blobs: blobs, renderer: renderer, mailer: mailer, crm: crm, policy: policy,
	}
}

// Process dispatches a settlement event through the guarded state machine.
//
// Ordering matters: the ledger insert is the last step, so a crash after the
// transition but before the insert causes a reprocessing on retry that the
// status guards turn into a no-op. Errors returned here are storage failures
// on the financial path; best-effort side effects (PDF, email, CRM) are
// logged and swallowed.
func (u *SettlementUseCase) Process(ctx context.Context, ev entities.SettlementEvent) error {
	if ev.ID == "" || ev.Type == "" {
		return ErrEventUnparseable
	}

	processed, err := u.ledger.IsProcessed(ctx, ev.ID)
	if err != nil {
		return err
	}
	if processed {
		log.Printf("[settlement][usecase] duplicate event short-circuit event_id=%s type=%s", ev.ID, ev.Type)
		return nil
	}

	enrollmentID := ev.Data.EnrollmentID
	if enrollmentID == "" {
		log.Printf("[settlement][usecase] event without enrollment correlation event_id=%s type=%s", ev.ID, ev.Type)
		return u.record(ctx, ev)
	}

	e, err := u.repo.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if e.ID == "" {
		// Ack to stop the retry storm; the correlation id is logged for
		// manual reconciliation.
		log.Printf("[settlement][usecase] enrollment not found event_id=%s enrollment_id=%s", ev.ID, enrollmentID)
		return u.record(ctx, ev)
	}
	log.Printf("[settlement][usecase] process start event_id=%s type=%s enrollment_id=%s status=%s", ev.ID, ev.Type, e.ID, e.Status)

	switch ev.Type {
	case entities.SettlementSessionCompleted:
		if err := u.applySessionCompleted(ctx, e, ev); err != nil {
			return err
		}
	case entities.SettlementPaymentConfirmed:
		// Async settlement of a bank debit. The guard on processing keeps a
		// late confirmation from touching an already-terminal record.
		if err := u.applyPaid(ctx, e, ev, entities.StatusProcessing); err != nil {
			return err
		}
	case entities.SettlementPaymentFailed:
		if err := u.applyFailed(ctx, e, ev); err != nil {
			return err
		}
	case entities.SettlementSessionExpired:
		if err := u.applySessionExpired(ctx, e, ev); err != nil {
			return err
		}
	default:
		log.Printf("[settlement][usecase] unhandled event type event_id=%s type=%s", ev.ID, ev.Type)
	}

	return u.record(ctx, ev)
}

func (u *SettlementUseCase) applySessionCompleted(ctx context.Context, e entities.Enrollment, ev entities.SettlementEvent) error {
	kind := ev.Data.PaymentMethodKind
	if kind == entities.PaymentMethodBankDebit {
		updated, err := u.repo.MarkProcessing(ctx, e.ID, ev.Data.PaymentIntentID, kind)
		if err != nil {
			return err
		}
		if updated.ID == "" {
			log.Printf("[settlement][usecase] processing guard miss enrollment_id=%s status=%s", e.ID, e.Status)
			return nil
		}
		u.appendEvent(ctx, e.ID, entities.EventPaymentProcessing, ev)
		u.pushCRM(ctx, updated)
		return nil
	}
	return u.applyPaid(ctx, e, ev, entities.StatusOpened)
}

// applyPaid moves the enrollment into paid when the expected status still
// holds. Consent-document rendering, the confirmation email and the CRM push
// fire only on the transition, never on a replay.
func (u *SettlementUseCase) applyPaid(ctx context.Context, e entities.Enrollment, ev entities.SettlementEvent, expected entities.EnrollmentStatus) error {
	kind := ev.Data.PaymentMethodKind
	if kind == "" {
		kind = e.PaymentMethodKind
	}
	updated, err := u.repo.MarkPaid(ctx, e.ID, expected, ev.Data.PaymentIntentID, kind)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		log.Printf("[settlement][usecase] paid guard miss enrollment_id=%s expected=%s status=%s", e.ID, expected, e.Status)
		return nil
	}
	u.appendEvent(ctx, e.ID, entities.EventPaymentPaid, ev)

	pdf := u.storeConsentDocument(ctx, updated, ev.ID)
	if u.mailer != nil {
		if err := u.mailer.SendPaymentConfirmation(ctx, updated, pdf); err != nil {
			log.Printf("[settlement][usecase] confirmation email failed enrollment_id=%s err=%v", updated.ID, err)
		}
	}
	u.pushCRM(ctx, updated)
	return nil
}

func (u *SettlementUseCase) applyFailed(ctx context.Context, e entities.Enrollment, ev entities.SettlementEvent) error {
	updated, err := u.repo.MarkFailed(ctx, e.ID)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		log.Printf("[settlement][usecase] failed guard miss enrollment_id=%s status=%s", e.ID, e.Status)
		return nil
	}
	u.appendEvent(ctx, e.ID, entities.EventPaymentFailed, ev)
	u.pushCRM(ctx, updated)
	return nil
}

// applySessionExpired expires only a still-processing enrollment; the guard
// keeps it from racing a payment that just completed.
func (u *SettlementUseCase) applySessionExpired(ctx context.Context, e entities.Enrollment, ev entities.SettlementEvent) error {
	updated, err := u.repo.MarkExpired(ctx, e.ID, entities.StatusProcessing)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		log.Printf("[settlement][usecase] expiry guard miss enrollment_id=%s status=%s", e.ID, e.Status)
		return nil
	}
	u.appendEvent(ctx, e.ID, entities.EventEnrollmentExpired, ev)
	u.pushCRM(ctx, updated)
	return nil
}

// storeConsentDocument renders and stores the consent PDF, stamping the ref
// on the enrollment. Best-effort: the paid transition is already durable, so
// any failure here only logs. Returns the PDF bytes for the email attachment
// (nil when rendering failed).
func (u *SettlementUseCase) storeConsentDocument(ctx context.Context, e entities.Enrollment, eventID string) []byte {
	if u.renderer == nil || u.blobs == nil {
		return nil
	}

	policyText := ""
	if u.policy != nil && e.TermsURL != "" {
		text, err := u.policy.Fetch(ctx, e.TermsURL)
		if err != nil {
			log.Printf("[settlement][usecase] policy fetch failed enrollment_id=%s err=%v", e.ID, err)
		} else {
			policyText = text
		}
	}

	var signaturePNG []byte
	if e.SignatureBlobRef != "" {
		blob, err := u.blobs.Get(ctx, e.SignatureBlobRef)
		if err != nil {
			log.Printf("[settlement][usecase] signature blob fetch failed enrollment_id=%s err=%v", e.ID, err)
		} else {
			signaturePNG = blob
		}
	}

	pdf, err := u.renderer.Render(e, policyText, signaturePNG)
	if err != nil {
		log.Printf("[settlement][usecase] consent pdf render failed enrollment_id=%s err=%v", e.ID, err)
		return nil
	}

	ref, err := u.blobs.Put(ctx,
		fmt.Sprintf("consent-documents/%s/%s.pdf", e.ID, eventID),
		"application/pdf", pdf)
	if err != nil {
		log.Printf("[settlement][usecase] consent pdf store failed enrollment_id=%s err=%v", e.ID, err)
		return pdf
	}
	if _, err := u.repo.SetConsentDocumentRef(ctx, e.ID, ref); err != nil {
		log.Printf("[settlement][usecase] consent ref persist failed enrollment_id=%s err=%v", e.ID, err)
	}
	u.appendEvent(ctx, e.ID, entities.EventConsentDocumentStored, map[string]any{"consent_document_ref": ref})
	return pdf
}

func (u *SettlementUseCase) record(ctx context.Context, ev entities.SettlementEvent) error {
	err := u.ledger.Record(ctx, entities.ProcessedSettlementEvent{
		EventID:     ev.ID,
		EventType:   ev.Type,
		ProcessedAt: time.Now().UTC(),
	})
	if errors.Is(err, interfaces.ErrEventAlreadyProcessed) {
		// A concurrent delivery recorded it first; its effects were guarded.
		return nil
	}
	if err != nil {
		// The transition is durable; a missing ledger row only means a
		// redelivery will re-run the guarded (no-op) path.
		log.Printf("[settlement][usecase] ledger record failed event_id=%s err=%v", ev.ID, err)
	}
	return nil
}

func (u *SettlementUseCase) appendEvent(ctx context.Context, enrollmentID, eventType string, data any) {
	var payload json.RawMessage
	if data != nil {
		if b, err := json.Marshal(data); err == nil {
			payload = b
		}
	}
	if _, err := u.events.Append(ctx, entities.LifecycleEvent{
		ID:           uuid.NewString(),
		EnrollmentID: enrollmentID,
		EventType:    eventType,
		EventData:    payload,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		log.Printf("[settlement][usecase] lifecycle append failed enrollment_id=%s event=%s err=%v", enrollmentID, eventType, err)
	}
}

func (u *SettlementUseCase) pushCRM(ctx context.Context, e entities.Enrollment) {
	if u.crm == nil {
		return
	}
	if err := u.crm.Push(ctx, e); err != nil {
		log.Printf("[settlement][usecase] crm push failed enrollment_id=%s err=%v", e.ID, err)
	}
}
