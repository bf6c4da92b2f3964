package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	_ "paylink/docs" // This will be auto-generated
	"paylink/internal/adapter/http/handlers"
	repository2 "paylink/internal/adapter/persistence/repository"
	"paylink/internal/infrastructure/cache"
	"paylink/internal/infrastructure/crm"
	"paylink/internal/infrastructure/database"
	"paylink/internal/infrastructure/mail"
	"paylink/internal/infrastructure/payments"
	"paylink/internal/infrastructure/pdf"
	"paylink/internal/infrastructure/policy"
	"paylink/internal/infrastructure/storage"
	"paylink/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	enrollmentRepo := repository2.NewEnrollmentDynamoRepository(ddb)
	eventRepo := repository2.NewLifecycleEventDynamoRepository(ddb)
	ledger := repository2.NewSettlementLedgerDynamoRepository(ddb)

	blobs, err := storage.NewS3BlobStore(context.Background())
	if err != nil {
		log.Fatalf("Blob store not configured: %v", err)
	}
	crmClient := crm.NewCRMClient()
	policyFetcher := policy.NewHTTPPolicyFetcher()
	mailer := mail.NewSMTPMailer()
	renderer := pdf.NewConsentRenderer(os.Getenv("CONSENT_DOCUMENT_TITLE"))
	limiter := cache.NewRedisRateLimiter()

	gateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Fatalf("Checkout gateway not configured: %v", err)
	}

	enrollmentUseCase := usecase.NewEnrollmentUseCase(enrollmentRepo, eventRepo, crmClient, policyFetcher)
	checkoutUseCase := usecase.NewCheckoutUseCase(enrollmentRepo, eventRepo, gateway, blobs, crmClient)
	settlementUseCase := usecase.NewSettlementUseCase(enrollmentRepo, eventRepo, ledger, blobs, renderer, mailer, crmClient, policyFetcher)

	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentUseCase, blobs, os.Getenv("PUBLIC_BASE_URL"))
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUseCase)
	webhookHandler := handlers.NewWebhookHandler(settlementUseCase, os.Getenv("SETTLEMENT_WEBHOOK_SECRET"))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaylinkRoutes(v1, paylinkRouteDeps{
		enrollments: enrollmentHandler,
		checkout:    checkoutHandler,
		webhooks:    webhookHandler,
		limiter:     limiter,
		crmSecret:   os.Getenv("CRM_INGRESS_SECRET"),
		adminToken:  os.Getenv("ADMIN_API_TOKEN"),
		now:         time.Now,
	})
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
