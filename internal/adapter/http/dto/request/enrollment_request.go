package request

import (
	"strings"
	"time"

	"paylink/internal/usecase"
)

// EnrollmentRequest is the CRM-facing payload for issuing or regenerating a
// payment link. amount_minor is in the currency's minor unit; expires_in is
// hours and falls back to the service default when omitted.
type EnrollmentRequest struct {
	CRMModule   string `json:"crm_module" binding:"required"`
	CRMRecordID string `json:"crm_record_id" binding:"required"`

	PatientName  string `json:"patient_name" binding:"required"`
	PatientEmail string `json:"patient_email" binding:"required,email"`
	PatientPhone string `json:"patient_phone"`
	PatientID    string `json:"patient_id"`

	AmountMinor int64  `json:"amount_minor" binding:"required"`
	Currency    string `json:"currency" binding:"required"`

	TermsURL         string `json:"terms_url" binding:"required"`
	TermsVersion     string `json:"terms_version" binding:"required"`
	TermsContentHash string `json:"terms_content_hash"`
	PolicyID         string `json:"policy_id"`

	ExpiresInHours int `json:"expires_in_hours"`
}

func (r EnrollmentRequest) ToInput() usecase.CreateEnrollmentInput {
	return usecase.CreateEnrollmentInput{
		CRMModule:        strings.TrimSpace(r.CRMModule),
		CRMRecordID:      strings.TrimSpace(r.CRMRecordID),
		PatientName:      strings.TrimSpace(r.PatientName),
		PatientEmail:     strings.TrimSpace(r.PatientEmail),
		PatientPhone:     strings.TrimSpace(r.PatientPhone),
		PatientID:        strings.TrimSpace(r.PatientID),
		AmountMinor:      r.AmountMinor,
		Currency:         strings.ToUpper(strings.TrimSpace(r.Currency)),
		TermsURL:         strings.TrimSpace(r.TermsURL),
		TermsVersion:     strings.TrimSpace(r.TermsVersion),
		TermsContentHash: strings.TrimSpace(r.TermsContentHash),
		PolicyID:         strings.TrimSpace(r.PolicyID),
		ExpiresIn:        time.Duration(r.ExpiresInHours) * time.Hour,
	}
}
