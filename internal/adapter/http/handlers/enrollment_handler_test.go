package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paylink/internal/adapter/http/handlers/mocks"
	"paylink/internal/domain/entities"
	"paylink/internal/usecase"
	mock_interfaces "paylink/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func enrollmentBody() map[string]any {
	return map[string]any{
		"crm_module":    "patients",
		"crm_record_id": "rec-1",
		"patient_name":  "Ana Souza",
		"patient_email": "ana@example.com",
		"amount_minor":  15000,
		"currency":      "BRL",
		"terms_url":     "https://clinic.example/terms/v3",
		"terms_version": "v3",
	}
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(payload)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEnrollmentHandler_CreateEnrollment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		h := NewEnrollmentHandler(uc, nil, "")

		r := gin.New()
		r.POST("/v1/enrollments", h.CreateEnrollment)

		req := httptest.NewRequest(http.MethodPost, "/v1/enrollments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		h := NewEnrollmentHandler(uc, nil, "")

		r := gin.New()
		r.POST("/v1/enrollments", h.CreateEnrollment)

		body := enrollmentBody()
		delete(body, "patient_email")
		if w := postJSON(r, "/v1/enrollments", body); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("payment in flight maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		h := NewEnrollmentHandler(uc, nil, "")

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(usecase.CreatedEnrollment{}, usecase.ErrPaymentInFlight)

		r := gin.New()
		r.POST("/v1/enrollments", h.CreateEnrollment)

		if w := postJSON(r, "/v1/enrollments", enrollmentBody()); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("lost slot claim maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		h := NewEnrollmentHandler(uc, nil, "")

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(usecase.CreatedEnrollment{}, usecase.ErrActiveLinkExists)

		r := gin.New()
		r.POST("/v1/enrollments", h.CreateEnrollment)

		w := postJSON(r, "/v1/enrollments", enrollmentBody())
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if !bytes.Contains(w.Body.Bytes(), []byte("ACTIVE_LINK_EXISTS")) {
			t.Fatalf("expected ACTIVE_LINK_EXISTS code, got %s", w.Body.String())
		}
	})

	t.Run("success exposes raw token and link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		h := NewEnrollmentHandler(uc, nil, "https://pay.clinic.example")

		now := time.Now().UTC()
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(usecase.CreatedEnrollment{
			Enrollment: entities.Enrollment{
				ID: "e-1", Status: entities.StatusCreated, TokenSuffix: "beef",
				AmountMinor: 15000, Currency: "BRL",
				CreatedAt: now, ExpiresAt: now.Add(48 * time.Hour),
			},
			RawToken: "rawtokenbeef",
		}, nil)

		r := gin.New()
		r.POST("/v1/enrollments", h.CreateEnrollment)

		w := postJSON(r, "/v1/enrollments", enrollmentBody())
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["token"] != "rawtokenbeef" {
			t.Fatalf("expected raw token in response, got %v", resp["token"])
		}
		if resp["payment_url"] != "https://pay.clinic.example/pay/rawtokenbeef" {
			t.Fatalf("unexpected payment url: %v", resp["payment_url"])
		}
	})
}

func TestEnrollmentHandler_ResolveLink(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid token maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		h := NewEnrollmentHandler(uc, nil, "")

		uc.EXPECT().ResolveByToken(gomock.Any(), "bad").
			Return(entities.Enrollment{}, "", usecase.ErrInvalidToken)

		r := gin.New()
		r.GET("/v1/enrollments/link/:token", h.ResolveLink)

		req := httptest.NewRequest(http.MethodGet, "/v1/enrollments/link/bad", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success hides crm identifiers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		h := NewEnrollmentHandler(uc, nil, "")

		uc.EXPECT().ResolveByToken(gomock.Any(), "tok").Return(entities.Enrollment{
			ID: "e-1", Status: entities.StatusOpened,
			CRMModule: "patients", CRMRecord: "rec-1",
			PatientName: "Ana Souza", PatientEmail: "ana@example.com",
			AmountMinor: 15000, Currency: "BRL",
			TermsURL: "https://clinic.example/terms/v3", TermsVersion: "v3",
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}, "policy text", nil)

		r := gin.New()
		r.GET("/v1/enrollments/link/:token", h.ResolveLink)

		req := httptest.NewRequest(http.MethodGet, "/v1/enrollments/link/tok", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if _, ok := resp["crm_record_id"]; ok {
			t.Fatalf("crm record id leaked into public projection")
		}
		if _, ok := resp["patient_email"]; ok {
			t.Fatalf("patient email leaked into public projection")
		}
		if resp["policy_text"] != "policy text" {
			t.Fatalf("expected policy text, got %v", resp["policy_text"])
		}
	})
}

func TestEnrollmentHandler_GetConsentDocument(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no document yet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		blobs := mock_interfaces.NewMockIBlobStore(ctrl)
		h := NewEnrollmentHandler(uc, blobs, "")

		uc.EXPECT().GetByID(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusOpened}, nil)

		r := gin.New()
		r.GET("/v1/enrollments/:id/consent-document", h.GetConsentDocument)

		req := httptest.NewRequest(http.MethodGet, "/v1/enrollments/e-1/consent-document", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("presigned url", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEnrollmentUseCase(ctrl)
		blobs := mock_interfaces.NewMockIBlobStore(ctrl)
		h := NewEnrollmentHandler(uc, blobs, "")

		uc.EXPECT().GetByID(gomock.Any(), "e-1").Return(entities.Enrollment{
			ID: "e-1", Status: entities.StatusPaid,
			ConsentDocumentRef: "consent-documents/e-1/evt_1.pdf",
		}, nil)
		blobs.EXPECT().PresignGet(gomock.Any(), "consent-documents/e-1/evt_1.pdf", consentDocumentTTL).
			Return("https://s3.example/presigned", nil)

		r := gin.New()
		r.GET("/v1/enrollments/:id/consent-document", h.GetConsentDocument)

		req := httptest.NewRequest(http.MethodGet, "/v1/enrollments/e-1/consent-document", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["url"] != "https://s3.example/presigned" {
			t.Fatalf("unexpected url: %v", resp["url"])
		}
	})
}
