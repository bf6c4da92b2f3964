package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"
	"paylink/pkg"

	"github.com/google/uuid"
)

var (
	ErrTermsNotAccepted     = errors.New("terms must be accepted")
	ErrAlreadyPaid          = errors.New("already paid")
	ErrEnrollmentCanceled   = errors.New("canceled")
	ErrLinkExpired          = errors.New("link expired")
	ErrLinkNotPayable       = errors.New("link no longer payable")
	ErrInvalidSignatureData = errors.New("invalid signature data")
	ErrProcessorSession     = errors.New("checkout session creation failed")
)

const (
	// sessionWindow caps how long a hosted session stays open.
	sessionWindow = 30 * time.Minute
	// processorMinSessionLead is the processor's minimum allowed lead time.
	// When the enrollment's own deadline is sooner, the processor minimum
	// wins and the session may outlive the enrollment's nominal deadline.
	processorMinSessionLead = 30 * time.Minute
)

// CreateSessionInput is the patient-facing checkout payload.
type CreateSessionInput struct {
	RawToken         string
	TermsAccepted    bool
	ConsentIP        string
	ConsentUserAgent string
	// SignatureData is a base64 PNG data URL captured from the signature pad.
	SignatureData string
}

// ICheckoutUseCase creates the processor-hosted payment session for one
// enrollment, recording consent first.

type ICheckoutUseCase interface {
	CreateSession(ctx context.Context, in CreateSessionInput) (string, error)
}

type CheckoutUseCase struct {
	repo    interfaces.IEnrollmentRepository
	events  interfaces.ILifecycleEventRepository
	gateway interfaces.ICheckoutGateway
	blobs   interfaces.IBlobStore
	crm     interfaces.ICRMClient
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	repo interfaces.IEnrollmentRepository,
	events interfaces.ILifecycleEventRepository,
	gateway interfaces.ICheckoutGateway,
	blobs interfaces.IBlobStore,
	crm interfaces.ICRMClient,
) *CheckoutUseCase {
	return &CheckoutUseCase{repo: repo, events: events, gateway: gateway, blobs: blobs, crm: crm}
}

// CreateSession runs the checkout flow: resolve token, reject terminal and
// expired links, record consent, then open the hosted session. Status never
// becomes paid or processing here; only a verified settlement callback does
// that.
func (u *CheckoutUseCase) CreateSession(ctx context.Context, in CreateSessionInput) (string, error) {
	rawToken := strings.TrimSpace(in.RawToken)
	if rawToken == "" {
		return "", ErrInvalidToken
	}
	if !in.TermsAccepted {
		return "", ErrTermsNotAccepted
	}

	e, err := u.repo.GetByTokenHash(ctx, pkg.HashToken(rawToken))
	if err != nil {
		return "", err
	}
	if e.ID == "" {
		return "", ErrInvalidToken
	}
	log.Printf("[checkout][usecase] create-session start enrollment_id=%s status=%s", e.ID, e.Status)

	now := time.Now().UTC()
	switch {
	case e.Status == entities.StatusPaid:
		return "", ErrAlreadyPaid
	case e.Status == entities.StatusCanceled:
		return "", ErrEnrollmentCanceled
	case e.Status == entities.StatusFailed:
		return "", ErrLinkNotPayable
	case e.Status == entities.StatusExpired:
		return "", ErrLinkExpired
	case e.LinkExpired(now):
		// Lazy expiry is enforced at checkout time too, regardless of the
		// stored status value.
		expired, err := u.repo.MarkExpired(ctx, e.ID,
			entities.StatusCreated, entities.StatusSent, entities.StatusOpened, entities.StatusProcessing)
		if err != nil {
			return "", err
		}
		if expired.ID != "" {
			u.appendEvent(ctx, e.ID, entities.EventEnrollmentExpired, map[string]any{"reason": "link_expired_at_checkout"})
			u.pushCRM(ctx, expired)
		}
		return "", ErrLinkExpired
	}

	if e.Status == entities.StatusCreated || e.Status == entities.StatusSent {
		if opened, err := u.repo.MarkOpened(ctx, e.ID); err != nil {
			return "", err
		} else if opened.ID != "" {
			e = opened
		}
	}

	e, err = u.recordConsent(ctx, e, in)
	if err != nil {
		return "", err
	}

	sessionExpiry := e.ExpiresAt
	if windowEnd := now.Add(sessionWindow); windowEnd.Before(sessionExpiry) {
		sessionExpiry = windowEnd
	}
	if minLead := now.Add(processorMinSessionLead); sessionExpiry.Before(minLead) {
		sessionExpiry = minLead
	}

	customerID, err := u.gateway.FindOrCreateCustomer(ctx, e.PatientEmail, e.PatientName)
	if err != nil {
		log.Printf("[checkout][usecase] customer dedupe failed enrollment_id=%s err=%v", e.ID, err)
		return "", ErrProcessorSession
	}

	session, err := u.gateway.CreateSession(ctx, interfaces.CheckoutSessionRequest{
		EnrollmentID:     e.ID,
		Description:      fmt.Sprintf("Enrollment payment %s", e.TokenSuffix),
		AmountMinor:      e.AmountMinor,
		Currency:         e.Currency,
		CustomerID:       customerID,
		CustomerEmail:    e.PatientEmail,
		ExpiresAt:        sessionExpiry,
		TermsVersion:     e.TermsVersion,
		TermsContentHash: e.TermsContentHash,
	})
	if err != nil {
		log.Printf("[checkout][usecase] session creation failed enrollment_id=%s err=%v", e.ID, err)
		return "", ErrProcessorSession
	}

	if _, err := u.repo.AttachCheckoutSession(ctx, e.ID, session.ID, customerID); err != nil {
		log.Printf("[checkout][usecase] persist session failed enrollment_id=%s session_id=%s err=%v", e.ID, session.ID, err)
		return "", err
	}
	u.appendEvent(ctx, e.ID, entities.EventCheckoutSessionCreate, map[string]any{
		"checkout_session_id":   session.ID,
		"processor_customer_id": customerID,
		"session_expires_at":    sessionExpiry,
	})

	log.Printf("[checkout][usecase] create-session success enrollment_id=%s session_id=%s", e.ID, session.ID)
	return session.URL, nil
}

// recordConsent persists acceptance timestamp, IP and user agent exactly
// once per checkout attempt, stores the signature image by reference and
// appends the terms_accepted audit event.
func (u *CheckoutUseCase) recordConsent(ctx context.Context, e entities.Enrollment, in CreateSessionInput) (entities.Enrollment, error) {
	if e.TermsAcceptedAt != nil {
		// Retry of a checkout attempt that already captured consent.
		return e, nil
	}

	signaturePNG, err := DecodeSignatureData(in.SignatureData)
	if err != nil {
		return entities.Enrollment{}, ErrInvalidSignatureData
	}

	sigRef, err := u.blobs.Put(ctx,
		fmt.Sprintf("signatures/%s/%s.png", e.ID, uuid.NewString()),
		"image/png", signaturePNG)
	if err != nil {
		log.Printf("[checkout][usecase] signature store failed enrollment_id=%s err=%v", e.ID, err)
		return entities.Enrollment{}, err
	}

	updated, err := u.repo.RecordConsent(ctx, e.ID, in.ConsentIP, in.ConsentUserAgent, sigRef)
	if err != nil {
		return entities.Enrollment{}, err
	}
	if updated.ID == "" {
		// Concurrent attempt won the conditional write; use its evidence.
		current, err := u.repo.GetByID(ctx, e.ID)
		if err != nil {
			return entities.Enrollment{}, err
		}
		return current, nil
	}

	u.appendEvent(ctx, e.ID, entities.EventTermsAccepted, map[string]any{
		"consent_ip":         in.ConsentIP,
		"consent_user_agent": in.ConsentUserAgent,
		"terms_version":      e.TermsVersion,
		"terms_content_hash": e.TermsContentHash,
		"signature_blob_ref": sigRef,
	})
	return updated, nil
}

// DecodeSignatureData accepts a "data:image/png;base64,..." data URL or bare
// base64 and returns the PNG bytes.
func DecodeSignatureData(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, errors.New("empty signature data")
	}
	if idx := strings.Index(data, ","); idx >= 0 && strings.HasPrefix(data, "data:") {
		data = data[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	if len(decoded) == 0 {
		return nil, errors.New("empty signature image")
	}
	return decoded, nil
}

func (u *CheckoutUseCase) appendEvent(ctx context.Context, enrollmentID, eventType string, data map[string]any) {
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
		log.Printf("[checkout][usecase] lifecycle append failed enrollment_id=%s event=%s err=%v", enrollmentID, eventType, err)
	}
}

func (u *CheckoutUseCase) pushCRM(ctx context.Context, e entities.Enrollment) {
	if u.crm == nil {
		return
	}
	if err := u.crm.Push(ctx, e); err != nil {
		log.Printf("[checkout][usecase] crm push failed enrollment_id=%s err=%v", e.ID, err)
	}
}
