package response

import (
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase"
)

// CreatedEnrollmentResponse is returned only to the authenticated CRM caller
// on issuance and regeneration. It is the single exposure of the raw token.
type CreatedEnrollmentResponse struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	Token       string    `json:"token"`
	TokenSuffix string    `json:"token_suffix"`
	PaymentURL  string    `json:"payment_url,omitempty"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromCreatedEnrollment(c usecase.CreatedEnrollment, publicBaseURL string) CreatedEnrollmentResponse {
	resp := CreatedEnrollmentResponse{
		ID:          c.Enrollment.ID,
		Status:      string(c.Enrollment.Status),
		Token:       c.RawToken,
		TokenSuffix: c.Enrollment.TokenSuffix,
		AmountMinor: c.Enrollment.AmountMinor,
		Currency:    c.Enrollment.Currency,
		ExpiresAt:   c.Enrollment.ExpiresAt,
		CreatedAt:   c.Enrollment.CreatedAt,
	}
	if publicBaseURL != "" {
		resp.PaymentURL = publicBaseURL + "/pay/" + c.RawToken
	}
	return resp
}

// PublicEnrollmentResponse is the patient-facing projection served on link
// resolution. No CRM identifiers, token material or consent evidence leak
// through it.
type PublicEnrollmentResponse struct {
	ID           string `json:"id"`
	PatientName  string `json:"patient_name"`
	AmountMinor  int64  `json:"amount_minor"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	TermsURL     string `json:"terms_url"`
	TermsVersion string `json:"terms_version"`
	PolicyText   string `json:"policy_text,omitempty"`

	ExpiresAt time.Time `json:"expires_at"`
}

func FromEnrollmentPublic(e entities.Enrollment, policyText string) PublicEnrollmentResponse {
	return PublicEnrollmentResponse{
		ID:           e.ID,
		PatientName:  e.PatientName,
		AmountMinor:  e.AmountMinor,
		Currency:     e.Currency,
		Status:       string(e.Status),
		TermsURL:     e.TermsURL,
		TermsVersion: e.TermsVersion,
		PolicyText:   policyText,
		ExpiresAt:    e.ExpiresAt,
	}
}

// EnrollmentResponse is the admin projection: the full record minus token
// hash, which never leaves persistence.
type EnrollmentResponse struct {
	ID          string `json:"id"`
	CRMModule   string `json:"crm_module"`
	CRMRecordID string `json:"crm_record_id"`

	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email"`
	PatientPhone string `json:"patient_phone,omitempty"`
	PatientID    string `json:"patient_id,omitempty"`

	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	TokenSuffix string `json:"token_suffix"`

	TermsURL         string `json:"terms_url"`
	TermsVersion     string `json:"terms_version"`
	TermsContentHash string `json:"terms_content_hash,omitempty"`

	Status string `json:"status"`

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
	ConsentDocumentRef string `json:"consent_document_ref,omitempty"`

	CheckoutSessionID string `json:"checkout_session_id,omitempty"`
	PaymentIntentID   string `json:"payment_intent_id,omitempty"`
	PaymentMethodKind string `json:"payment_method_kind,omitempty"`
}

func FromEnrollment(e entities.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:                 e.ID,
		CRMModule:          e.CRMModule,
		CRMRecordID:        e.CRMRecord,
		PatientName:        e.PatientName,
		PatientEmail:       e.PatientEmail,
		PatientPhone:       e.PatientPhone,
		PatientID:          e.PatientID,
		AmountMinor:        e.AmountMinor,
		Currency:           e.Currency,
		TokenSuffix:        e.TokenSuffix,
		TermsURL:           e.TermsURL,
		TermsVersion:       e.TermsVersion,
		TermsContentHash:   e.TermsContentHash,
		Status:             string(e.Status),
		CreatedAt:          e.CreatedAt,
		ExpiresAt:          e.ExpiresAt,
		OpenedAt:           e.OpenedAt,
		TermsAcceptedAt:    e.TermsAcceptedAt,
		ProcessingAt:       e.ProcessingAt,
		PaidAt:             e.PaidAt,
		FailedAt:           e.FailedAt,
		ExpiredAt:          e.ExpiredAt,
		ConsentIP:          e.ConsentIP,
		ConsentUserAgent:   e.ConsentUserAgent,
		ConsentDocumentRef: e.ConsentDocumentRef,
		CheckoutSessionID:  e.CheckoutSessionID,
		PaymentIntentID:    e.PaymentIntentID,
		PaymentMethodKind:  string(e.PaymentMethodKind),
	}
}

// LifecycleEventResponse serializes one audit-trail entry.
type LifecycleEventResponse struct {
	ID        string      `json:"id"`
	EventType string      `json:"event_type"`
	EventData interface{} `json:"event_data,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func FromLifecycleEvents(events []entities.LifecycleEvent) []LifecycleEventResponse {
	out := make([]LifecycleEventResponse, 0, len(events))
	for _, ev := range events {
		resp := LifecycleEventResponse{
			ID:        ev.ID,
			EventType: ev.EventType,
			CreatedAt: ev.CreatedAt,
		}
		if len(ev.EventData) > 0 {
			resp.EventData = ev.EventData
		}
		out = append(out, resp)
	}
	return out
}
