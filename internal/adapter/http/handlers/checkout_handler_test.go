package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"paylink/internal/adapter/http/handlers/mocks"
	"paylink/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestCheckoutHandler_CreateSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		r := gin.New()
		r.POST("/v1/checkout", h.CreateSession)

		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("terms not accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
			Return("", usecase.ErrTermsNotAccepted)

		r := gin.New()
		r.POST("/v1/checkout", h.CreateSession)

		if w := postJSON(r, "/v1/checkout", map[string]any{"token": "tok"}); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("expired link maps to 410", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return("", usecase.ErrLinkExpired)

		r := gin.New()
		r.POST("/v1/checkout", h.CreateSession)

		body := map[string]any{"token": "tok", "terms_accepted": true}
		if w := postJSON(r, "/v1/checkout", body); w.Code != http.StatusGone {
			t.Fatalf("expected 410, got %d", w.Code)
		}
	})

	t.Run("already paid maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return("", usecase.ErrAlreadyPaid)

		r := gin.New()
		r.POST("/v1/checkout", h.CreateSession)

		body := map[string]any{"token": "tok", "terms_accepted": true}
		if w := postJSON(r, "/v1/checkout", body); w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success forwards client ip and agent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, in usecase.CreateSessionInput) (string, error) {
				if in.RawToken != "tok" || !in.TermsAccepted {
					t.Fatalf("unexpected input: %+v", in)
				}
				if in.ConsentUserAgent != "test-agent" {
					t.Fatalf("expected user agent from request, got %q", in.ConsentUserAgent)
				}
				return "https://pay.example/sess_1", nil
			})

		r := gin.New()
		r.POST("/v1/checkout", h.CreateSession)

		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(map[string]any{"token": "tok", "terms_accepted": true})
		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "test-agent")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response json: %v", err)
		}
		if resp["checkout_url"] != "https://pay.example/sess_1" {
			t.Fatalf("unexpected url: %v", resp["checkout_url"])
		}
	})

	t.Run("header user agent wins over payload fallback", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, in usecase.CreateSessionInput) (string, error) {
				if in.ConsentUserAgent != "header-agent" {
					t.Fatalf("expected header user agent, got %q", in.ConsentUserAgent)
				}
				return "https://pay.example/sess_2", nil
			})

		r := gin.New()
		r.POST("/v1/checkout", h.CreateSession)

		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(map[string]any{
			"token": "tok", "terms_accepted": true, "consent_user_agent": "payload-agent",
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", &buf)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "header-agent")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("payload user agent used when header absent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockICheckoutUseCase(ctrl)
		h := NewCheckoutHandler(uc)

		uc.EXPECT().CreateSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, in usecase.CreateSessionInput) (string, error) {
				if in.ConsentUserAgent != "payload-agent" {
					t.Fatalf("expected payload fallback, got %q", in.ConsentUserAgent)
				}
				return "https://pay.example/sess_3", nil
			})

		r := gin.New()
		r.POST("/v1/checkout", h.CreateSession)

		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(map[string]any{
			"token": "tok", "terms_accepted": true, "consent_user_agent": "payload-agent",
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/checkout", &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
