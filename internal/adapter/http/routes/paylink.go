package routes

import (
	"net/http"
	"time"

	"paylink/internal/adapter/http/handlers"
	"paylink/internal/adapter/http/middleware"
	"paylink/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
)

const (
	PathEnrollments = "/enrollments"
	PathCheckout    = "/checkout"
	PathWebhooks    = "/webhooks"
)

type paylinkRouteDeps struct {
	enrollments *handlers.EnrollmentHandler
	checkout    *handlers.CheckoutHandler
	webhooks    *handlers.WebhookHandler
	limiter     interfaces.IRateLimiter
	crmSecret   string
	adminToken  string
	now         func() time.Time
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addPaylinkRoutes(rg *gin.RouterGroup, deps paylinkRouteDeps) {
	// CRM ingress: authenticated and rate limited.
	crmGroup := rg.Group(PathEnrollments)
	crmGroup.Use(middleware.RateLimit(deps.limiter), middleware.CRMAuth(deps.crmSecret, deps.now))
	{
		crmGroup.POST("", deps.enrollments.CreateEnrollment)
		crmGroup.POST("/:id/regenerate", deps.enrollments.RegenerateEnrollment)
		crmGroup.POST("/:id/sent", deps.enrollments.MarkSent)
	}

	// Admin read surface.
	adminGroup := rg.Group(PathEnrollments)
	adminGroup.Use(middleware.AdminAuth(deps.adminToken))
	{
		adminGroup.GET("/:id", deps.enrollments.GetEnrollment)
		adminGroup.GET("/:id/events", deps.enrollments.ListEnrollmentEvents)
		adminGroup.GET("/:id/consent-document", deps.enrollments.GetConsentDocument)
	}

	// Public patient surface: the token is the credential.
	rg.GET(PathEnrollments+"/link/:token", deps.enrollments.ResolveLink)
	rg.POST(PathCheckout, deps.checkout.CreateSession)

	// Processor callback: HMAC signature is the credential.
	rg.POST(PathWebhooks+"/settlement", deps.webhooks.HandleSettlement)
}
