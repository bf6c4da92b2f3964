package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"
	"paylink/pkg"

	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is deliberately generic: a lookup miss, a malformed
	// token and an expired link all surface the same way so callers cannot
	// distinguish "wrong" from "expired".
	ErrInvalidToken = errors.New("invalid or expired link")

	ErrEnrollmentNotFound    = errors.New("enrollment not found")
	ErrInvalidCRMReference   = errors.New("invalid crm reference")
	ErrInvalidPatient        = errors.New("invalid patient fields")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrRegenerateNotAllowed  = errors.New("enrollment not in a regenerable state")
	ErrPaymentInFlight       = errors.New("payment in flight for this crm record")
	ErrEnrollmentStaleUpdate = errors.New("enrollment changed concurrently")

	// ErrActiveLinkExists reports that the storage-layer active-slot claim
	// lost to another enrollment holding a live link for the same record.
	ErrActiveLinkExists = errors.New("an active link already exists for this crm record")
)

const defaultExpiresIn = 48 * time.Hour

// CreateEnrollmentInput is the CRM ingress payload after transport decoding.
type CreateEnrollmentInput struct {
	CRMModule    string
	CRMRecordID  string
	PatientName  string
	PatientEmail string
	PatientPhone string
	PatientID    string

	AmountMinor int64
	Currency    string

	TermsURL         string
	TermsVersion     string
	TermsContentHash string
	PolicyID         string

	ExpiresIn time.Duration
}

// CreatedEnrollment carries the one-time raw token back to the CRM caller.
// The token is never persisted or logged; this is its only exposure.
type CreatedEnrollment struct {
	Enrollment entities.Enrollment
	RawToken   string
}

// IEnrollmentUseCase covers enrollment issuance, link resolution and the
// read paths serving the admin surface.

type IEnrollmentUseCase interface {
	Create(ctx context.Context, in CreateEnrollmentInput) (CreatedEnrollment, error)
	Regenerate(ctx context.Context, id string, in CreateEnrollmentInput) (CreatedEnrollment, error)
	ResolveByToken(ctx context.Context, rawToken string) (entities.Enrollment, string, error)
	MarkSent(ctx context.Context, id string) (entities.Enrollment, error)
	GetByID(ctx context.Context, id string) (entities.Enrollment, error)
	ListEvents(ctx context.Context, id string) ([]entities.LifecycleEvent, error)
}

type EnrollmentUseCase struct {
	repo   interfaces.IEnrollmentRepository
	events interfaces.ILifecycleEventRepository
	crm    interfaces.ICRMClient
	policy interfaces.IPolicyFetcher
}

var _ IEnrollmentUseCase = (*EnrollmentUseCase)(nil)

func NewEnrollmentUseCase(
	repo interfaces.IEnrollmentRepository,
	events interfaces.ILifecycleEventRepository,
	crm interfaces.ICRMClient,
	policy interfaces.IPolicyFetcher,
) *EnrollmentUseCase {
	return &EnrollmentUseCase{repo: repo, events: events, crm: crm, policy: policy}
}

// Create issues a payment link for a CRM record. If a live (non-terminal)
// enrollment already exists for the same record it is updated in place with
// a fresh token generation instead of inserting a duplicate; a record with a
// bank debit mid-flight is rejected outright.
func (u *EnrollmentUseCase) Create(ctx context.Context, in CreateEnrollmentInput) (CreatedEnrollment, error) {
	if err := validateInput(&in); err != nil {
		return CreatedEnrollment{}, err
	}
	log.Printf("[enrollment][usecase] create start crm_module=%s crm_record=%s amount_minor=%d", in.CRMModule, in.CRMRecordID, in.AmountMinor)

	u.snapshotPolicy(ctx, &in)

	existing, staleID, err := u.repo.FindActiveByCRMRecord(ctx, in.CRMModule, in.CRMRecordID)
	if err != nil {
		return CreatedEnrollment{}, err
	}
	if existing.ID != "" {
		if existing.Status == entities.StatusProcessing {
			log.Printf("[enrollment][usecase] create rejected: payment in flight enrollment_id=%s", existing.ID)
			return CreatedEnrollment{}, ErrPaymentInFlight
		}
		log.Printf("[enrollment][usecase] live enrollment exists, rotating in place enrollment_id=%s status=%s", existing.ID, existing.Status)
		return u.rotate(ctx, existing.ID, in, entities.EventEnrollmentRegenerated,
			entities.StatusCreated, entities.StatusSent, entities.StatusOpened)
	}

	raw, hash, suffix, err := pkg.IssueToken()
	if err != nil {
		return CreatedEnrollment{}, err
	}

	now := time.Now().UTC()
	e := entities.Enrollment{
		ID:               uuid.NewString(),
		CRMModule:        in.CRMModule,
		CRMRecord:        in.CRMRecordID,
		PatientName:      in.PatientName,
		PatientEmail:     in.PatientEmail,
		PatientPhone:     in.PatientPhone,
		PatientID:        in.PatientID,
		AmountMinor:      in.AmountMinor,
		Currency:         in.Currency,
		TokenHash:        hash,
		TokenSuffix:      suffix,
		TermsURL:         in.TermsURL,
		TermsVersion:     in.TermsVersion,
		TermsContentHash: in.TermsContentHash,
		PolicyID:         in.PolicyID,
		Status:           entities.StatusCreated,
		CreatedAt:        now,
		ExpiresAt:        now.Add(in.ExpiresIn),
	}

	created, err := u.repo.Create(ctx, e, staleID)
	if err != nil {
		if errors.Is(err, interfaces.ErrActiveEnrollmentExists) {
			// A concurrent create claimed the record's active slot first.
			log.Printf("[enrollment][usecase] create lost active slot crm_record=%s", in.CRMRecordID)
			return CreatedEnrollment{}, ErrActiveLinkExists
		}
		log.Printf("[enrollment][usecase] create failed crm_record=%s err=%v", in.CRMRecordID, err)
		return CreatedEnrollment{}, err
	}

	u.appendEvent(ctx, created.ID, entities.EventEnrollmentCreated, map[string]any{
		"crm_module":    created.CRMModule,
		"crm_record_id": created.CRMRecord,
		"amount_minor":  created.AmountMinor,
		"currency":      created.Currency,
		"token_suffix":  created.TokenSuffix,
		"terms_version": created.TermsVersion,
		"expires_at":    created.ExpiresAt,
	})
	u.pushCRM(ctx, created)

	log.Printf("[enrollment][usecase] create success enrollment_id=%s token_suffix=%s", created.ID, created.TokenSuffix)
	return CreatedEnrollment{Enrollment: created, RawToken: raw}, nil
}

// Regenerate rotates the token of a terminal non-paid enrollment, resetting
// it to created. Prior lifecycle events and consent documents are preserved.
func (u *EnrollmentUseCase) Regenerate(ctx context.Context, id string, in CreateEnrollmentInput) (CreatedEnrollment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CreatedEnrollment{}, ErrEnrollmentNotFound
	}

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return CreatedEnrollment{}, err
	}
	if current.ID == "" {
		return CreatedEnrollment{}, ErrEnrollmentNotFound
	}
	if !current.Status.CanRegenerate() {
		log.Printf("[enrollment][usecase] regenerate rejected enrollment_id=%s status=%s", id, current.Status)
		return CreatedEnrollment{}, ErrRegenerateNotAllowed
	}

	// Regeneration may keep the original amount and policy snapshot when
	// the caller omits them.
	if in.AmountMinor <= 0 {
		in.AmountMinor = current.AmountMinor
	}
	if strings.TrimSpace(in.Currency) == "" {
		in.Currency = current.Currency
	}
	if strings.TrimSpace(in.TermsURL) == "" {
		in.TermsURL = current.TermsURL
		in.TermsVersion = current.TermsVersion
		in.TermsContentHash = current.TermsContentHash
		in.PolicyID = current.PolicyID
	}
	if in.ExpiresIn <= 0 {
		in.ExpiresIn = defaultExpiresIn
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	u.snapshotPolicy(ctx, &in)

	return u.rotate(ctx, id, in, entities.EventEnrollmentRegenerated,
		entities.StatusFailed, entities.StatusExpired, entities.StatusCanceled)
}

// rotate issues a new token generation for an existing row. The repository
// guard on expected statuses is the final arbiter under concurrency.
func (u *EnrollmentUseCase) rotate(ctx context.Context, id string, in CreateEnrollmentInput, eventType string, expected ...entities.EnrollmentStatus) (CreatedEnrollment, error) {
	raw, hash, suffix, err := pkg.IssueToken()
	if err != nil {
		return CreatedEnrollment{}, err
	}

	params := interfaces.RegenerateParams{
		TokenHash:        hash,
		TokenSuffix:      suffix,
		AmountMinor:      in.AmountMinor,
		Currency:         in.Currency,
		TermsURL:         in.TermsURL,
		TermsVersion:     in.TermsVersion,
		TermsContentHash: in.TermsContentHash,
		PolicyID:         in.PolicyID,
		ExpiresAt:        time.Now().UTC().Add(in.ExpiresIn),
	}

	updated, err := u.repo.Regenerate(ctx, id, params, expected...)
	if err != nil {
		if errors.Is(err, interfaces.ErrActiveEnrollmentExists) {
			log.Printf("[enrollment][usecase] rotate blocked by newer active link enrollment_id=%s", id)
			return CreatedEnrollment{}, ErrActiveLinkExists
		}
		log.Printf("[enrollment][usecase] rotate failed enrollment_id=%s err=%v", id, err)
		return CreatedEnrollment{}, err
	}
	if updated.ID == "" {
		// Guard miss: status changed between read and write.
		log.Printf("[enrollment][usecase] rotate guard miss enrollment_id=%s", id)
		return CreatedEnrollment{}, ErrEnrollmentStaleUpdate
	}

	u.appendEvent(ctx, updated.ID, eventType, map[string]any{
		"amount_minor":  updated.AmountMinor,
		"currency":      updated.Currency,
		"token_suffix":  updated.TokenSuffix,
		"terms_version": updated.TermsVersion,
		"expires_at":    updated.ExpiresAt,
	})
	u.pushCRM(ctx, updated)

	log.Printf("[enrollment][usecase] rotate success enrollment_id=%s token_suffix=%s", updated.ID, updated.TokenSuffix)
	return CreatedEnrollment{Enrollment: updated, RawToken: raw}, nil
}

// ResolveByToken hashes the presented token, looks the enrollment up by
// hash, applies lazy expiry and flips created|sent to opened exactly once.
// The returned string is the policy text for the consent form (best-effort).
func (u *EnrollmentUseCase) ResolveByToken(ctx context.Context, rawToken string) (entities.Enrollment, string, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return entities.Enrollment{}, "", ErrInvalidToken
	}

	e, err := u.repo.GetByTokenHash(ctx, pkg.HashToken(rawToken))
	if err != nil {
		return entities.Enrollment{}, "", err
	}
	if e.ID == "" {
		return entities.Enrollment{}, "", ErrInvalidToken
	}

	if !e.Status.IsTerminal() && e.LinkExpired(time.Now().UTC()) {
		log.Printf("[enrollment][usecase] lazy expiry on read enrollment_id=%s", e.ID)
		expired, err := u.repo.MarkExpired(ctx, e.ID,
			entities.StatusCreated, entities.StatusSent, entities.StatusOpened, entities.StatusProcessing)
		if err != nil {
			return entities.Enrollment{}, "", err
		}
		if expired.ID != "" {
			u.appendEvent(ctx, e.ID, entities.EventEnrollmentExpired, map[string]any{"reason": "link_expired_on_read"})
			u.pushCRM(ctx, expired)
		}
		return entities.Enrollment{}, "", ErrInvalidToken
	}
	if e.Status == entities.StatusExpired {
		return entities.Enrollment{}, "", ErrInvalidToken
	}

	if e.Status == entities.StatusCreated || e.Status == entities.StatusSent {
		opened, err := u.repo.MarkOpened(ctx, e.ID)
		if err != nil {
			return entities.Enrollment{}, "", err
		}
		if opened.ID != "" {
			// First resolution only; replays lose the guard and change nothing.
			e = opened
			u.appendEvent(ctx, e.ID, entities.EventLinkOpened, nil)
		} else {
			e, err = u.repo.GetByID(ctx, e.ID)
			if err != nil {
				return entities.Enrollment{}, "", err
			}
		}
	}

	policyText := u.fetchPolicy(ctx, e)
	return e, policyText, nil
}

func (u *EnrollmentUseCase) MarkSent(ctx context.Context, id string) (entities.Enrollment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Enrollment{}, ErrEnrollmentNotFound
	}
	updated, err := u.repo.MarkSent(ctx, id)
	if err != nil {
		return entities.Enrollment{}, err
	}
	if updated.ID == "" {
		// Already past created; report current state instead of failing.
		current, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return entities.Enrollment{}, err
		}
		if current.ID == "" {
			return entities.Enrollment{}, ErrEnrollmentNotFound
		}
		return current, nil
	}
	return updated, nil
}

func (u *EnrollmentUseCase) GetByID(ctx context.Context, id string) (entities.Enrollment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Enrollment{}, ErrEnrollmentNotFound
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Enrollment{}, err
	}
	if e.ID == "" {
		return entities.Enrollment{}, ErrEnrollmentNotFound
	}
	return e, nil
}

func (u *EnrollmentUseCase) ListEvents(ctx context.Context, id string) ([]entities.LifecycleEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEnrollmentNotFound
	}
	return u.events.ListByEnrollmentID(ctx, id)
}

// snapshotPolicy fills the content hash from the fetched policy text when
// the caller supplied only a terms_url. Fetch failures leave the hash empty
// and are logged; they do not block issuance.
func (u *EnrollmentUseCase) snapshotPolicy(ctx context.Context, in *CreateEnrollmentInput) {
	if in.TermsContentHash != "" || in.TermsURL == "" || u.policy == nil {
		return
	}
	text, err := u.policy.Fetch(ctx, in.TermsURL)
	if err != nil {
		log.Printf("[enrollment][usecase] policy fetch failed terms_url=%s err=%v", in.TermsURL, err)
		return
	}
	sum := sha256.Sum256([]byte(text))
	in.TermsContentHash = hex.EncodeToString(sum[:])
}

func (u *EnrollmentUseCase) fetchPolicy(ctx context.Context, e entities.Enrollment) string {
	if u.policy == nil || e.TermsURL == "" {
		return ""
	}
	text, err := u.policy.Fetch(ctx, e.TermsURL)
	if err != nil {
		log.Printf("[enrollment][usecase] policy fetch failed enrollment_id=%s err=%v", e.ID, err)
		return ""
	}
	return text
}

func (u *EnrollmentUseCase) appendEvent(ctx context.Context, enrollmentID, eventType string, data map[string]any) {
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
		log.Printf("[enrollment][usecase] lifecycle append failed enrollment_id=%s event=%s err=%v", enrollmentID, eventType, err)
	}
}

func (u *EnrollmentUseCase) pushCRM(ctx context.Context, e entities.Enrollment) {
	if u.crm == nil {
		return
	}
	if err := u.crm.Push(ctx, e); err != nil {
		log.Printf("[enrollment][usecase] crm push failed enrollment_id=%s err=%v", e.ID, err)
	}
}

func validateInput(in *CreateEnrollmentInput) error {
	in.CRMModule = strings.TrimSpace(in.CRMModule)
	in.CRMRecordID = strings.TrimSpace(in.CRMRecordID)
	if in.CRMModule == "" || in.CRMRecordID == "" {
		return ErrInvalidCRMReference
	}
	in.PatientName = strings.TrimSpace(in.PatientName)
	in.PatientEmail = strings.TrimSpace(in.PatientEmail)
	if in.PatientName == "" || in.PatientEmail == "" {
		return ErrInvalidPatient
	}
	if in.AmountMinor <= 0 {
		return ErrInvalidAmount
	}
	in.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if in.Currency == "" {
		in.Currency = "USD"
	}
	if in.ExpiresIn <= 0 {
		in.ExpiresIn = defaultExpiresIn
	}
	return nil
}
