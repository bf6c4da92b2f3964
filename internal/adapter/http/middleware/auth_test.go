package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mock_interfaces "paylink/internal/usecase/interfaces/mocks"
	"paylink/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

func TestCRMAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "crm-secret"

	newRouter := func() *gin.Engine {
		r := gin.New()
		r.POST("/x", CRMAuth(secret, nil), okHandler)
		return r
	}

	t.Run("no credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("wrong api key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(CRMAPIKeyHeader, "nope")
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid api key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(CRMAPIKeyHeader, secret)
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("valid hmac signature", func(t *testing.T) {
		body := []byte(`{"crm_record_id":"rec-1"}`)
		req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader(body))
		req.Header.Set(CRMSignatureHeader, pkg.SignatureHeader(secret, time.Now().Unix(), body))
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("hmac over different body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/x", bytes.NewBufferString(`{"crm_record_id":"rec-2"}`))
		req.Header.Set(CRMSignatureHeader, pkg.SignatureHeader(secret, time.Now().Unix(), []byte(`{"crm_record_id":"rec-1"}`)))
		w := httptest.NewRecorder()
		newRouter().ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("unconfigured secret rejects everything", func(t *testing.T) {
		r := gin.New()
		r.POST("/x", CRMAuth("", nil), okHandler)
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(CRMAPIKeyHeader, "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", AdminAuth("admin-token"), okHandler)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(AdminTokenHeader, "admin-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		limiter := mock_interfaces.NewMockIRateLimiter(ctrl)
		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(true, nil)

		r := gin.New()
		r.GET("/x", RateLimit(limiter), okHandler)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("limited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		limiter := mock_interfaces.NewMockIRateLimiter(ctrl)
		limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(false, nil)

		r := gin.New()
		r.GET("/x", RateLimit(limiter), okHandler)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}
	})
}
