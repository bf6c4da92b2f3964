package middleware

import (
	"bytes"
	"crypto/subtle"
	"io"
	"log"
	"net/http"
	"time"

	"paylink/internal/usecase/interfaces"
	"paylink/pkg"

	"github.com/gin-gonic/gin"
)

const (
	// CRMSignatureHeader authenticates CRM ingress calls with the same
	// "t=<unix>,v1=<hex>" HMAC scheme the settlement webhook uses.
	CRMSignatureHeader = "X-CRM-Signature"
	// CRMAPIKeyHeader is the static-secret fallback for CRM plugins that
	// cannot compute an HMAC.
	CRMAPIKeyHeader = "X-CRM-Api-Key"

	AdminTokenHeader = "X-Admin-Token"
)

func abortUnauthorized(c *gin.Context, code, msg string) {
	appErr := pkg.NewDomainErrorSimple(code, msg, http.StatusUnauthorized)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

// CRMAuth verifies the CRM caller. An HMAC signature over the raw body is
// preferred; a constant-time match on the static API key is accepted as a
// fallback. The body is restored for the handler after reading.
func CRMAuth(secret string, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(c *gin.Context) {
		if secret == "" {
			log.Printf("[auth][middleware] CRM ingress secret not configured, rejecting")
			abortUnauthorized(c, "UNAUTHORIZED", "CRM authentication failed")
			return
		}

		if header := c.GetHeader(CRMSignatureHeader); header != "" {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				abortUnauthorized(c, "UNAUTHORIZED", "CRM authentication failed")
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))

			if err := pkg.VerifySignature(secret, header, body, now()); err != nil {
				log.Printf("[auth][middleware] CRM signature rejected err=%v", err)
				abortUnauthorized(c, "UNAUTHORIZED", "CRM authentication failed")
				return
			}
			c.Next()
			return
		}

		key := c.GetHeader(CRMAPIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			log.Printf("[auth][middleware] CRM api key rejected")
			abortUnauthorized(c, "UNAUTHORIZED", "CRM authentication failed")
			return
		}
		c.Next()
	}
}

// AdminAuth gates the operational read surface with a static token.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Admin authentication failed")
			return
		}
		got := c.GetHeader(AdminTokenHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			abortUnauthorized(c, "UNAUTHORIZED", "Admin authentication failed")
			return
		}
		c.Next()
	}
}

// RateLimit applies the store-backed fixed-window limiter keyed by client
// IP. Limiter backend errors fail open inside the limiter itself.
func RateLimit(limiter interfaces.IRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("[auth][middleware] rate limiter error key=%s err=%v", c.ClientIP(), err)
		}
		if !allowed {
			appErr := pkg.NewDomainErrorSimple("RATE_LIMITED", "Too many requests", http.StatusTooManyRequests)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Next()
	}
}
