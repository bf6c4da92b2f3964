package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"
)

// CRMClient writes enrollment status back onto the originating CRM record.
// Each push is a full snapshot PUT; the CRM applies it as an upsert on the
// record's payment fields, so a missed push is healed by the next one.

type CRMClient struct {
	baseURL   string
	authToken string
	client    *http.Client
	mockMode  bool
}

var _ interfaces.ICRMClient = (*CRMClient)(nil)

func NewCRMClient() *CRMClient {
	return &CRMClient{
		baseURL:   os.Getenv("CRM_BASE_URL"),
		authToken: os.Getenv("CRM_AUTH_TOKEN"),
		client:    &http.Client{Timeout: 10 * time.Second},
		mockMode:  os.Getenv("CRM_MOCK") == "true",
	}
}

type recordUpdate struct {
	EnrollmentID      string `json:"enrollment_id"`
	Status            string `json:"payment_status"`
	AmountMinor       int64  `json:"amount_minor"`
	Currency          string `json:"currency"`
	TokenSuffix       string `json:"token_suffix"`
	ExpiresAt         string `json:"expires_at"`
	OpenedAt          string `json:"opened_at,omitempty"`
	TermsAcceptedAt   string `json:"terms_accepted_at,omitempty"`
	PaidAt            string `json:"paid_at,omitempty"`
	FailedAt          string `json:"failed_at,omitempty"`
	ExpiredAt         string `json:"expired_at,omitempty"`
	PaymentIntentID   string `json:"payment_intent_id,omitempty"`
	CheckoutSessionID string `json:"checkout_session_id,omitempty"`
	PaymentMethod     string `json:"payment_method,omitempty"`
}

func (c *CRMClient) Push(ctx context.Context, e entities.Enrollment) error {
	if c.mockMode {
		log.Printf("[crm][infra] mock mode: skipping push for %s/%s status=%s", e.CRMModule, e.CRMRecord, e.Status)
		return nil
	}
	if c.baseURL == "" {
		return fmt.Errorf("CRM_BASE_URL not configured")
	}

	update := recordUpdate{
		EnrollmentID:      e.ID,
		Status:            string(e.Status),
		AmountMinor:       e.AmountMinor,
		Currency:          e.Currency,
		TokenSuffix:       e.TokenSuffix,
		ExpiresAt:         formatTime(&e.ExpiresAt),
		OpenedAt:          formatTime(e.OpenedAt),
		TermsAcceptedAt:   formatTime(e.TermsAcceptedAt),
		PaidAt:            formatTime(e.PaidAt),
		FailedAt:          formatTime(e.FailedAt),
		ExpiredAt:         formatTime(e.ExpiredAt),
		PaymentIntentID:   e.PaymentIntentID,
		CheckoutSessionID: e.CheckoutSessionID,
		PaymentMethod:     string(e.PaymentMethodKind),
	}

	body, err := json.Marshal(update)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, e.CRMModule, e.CRMRecord)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("crm push failed for %s/%s: %w", e.CRMModule, e.CRMRecord, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("crm push for %s/%s returned %d: %s", e.CRMModule, e.CRMRecord, resp.StatusCode, snippet)
	}

	log.Printf("[crm][infra] pushed status=%s to %s/%s", e.Status, e.CRMModule, e.CRMRecord)
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
