package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	response "paylink/internal/adapter/http/dto/response"
	"paylink/internal/domain/entities"
	"paylink/internal/usecase"
	"paylink/pkg"

	"github.com/gin-gonic/gin"
)

// SignatureHeaderName carries the settlement callback signature in the
// "t=<unix>,v1=<hex>" format.
const SignatureHeaderName = "X-Settlement-Signature"

// WebhookHandler receives settlement callbacks from the payment processor.
// Only signature and parse failures are rejected; every verified event acks
// 200 so the processor stops retrying.

type WebhookHandler struct {
	usecase usecase.ISettlementUseCase
	secret  string
	now     func() time.Time
}

func NewWebhookHandler(uc usecase.ISettlementUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{usecase: uc, secret: secret, now: time.Now}
}

// HandleSettlement verifies the HMAC signature over the raw body, decodes
// the event envelope and hands it to the settlement use case.
func (h *WebhookHandler) HandleSettlement(c *gin.Context) {
	if h.secret == "" {
		// A missing secret must never degrade into accepting any signature:
		// an empty key would verify attacker-signed payloads.
		log.Printf("[webhook][handler] settlement secret not configured, rejecting")
		appErr := pkg.NewDomainErrorSimple("SIGNATURE_INVALID", "Signature verification failed", http.StatusUnauthorized)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		log.Printf("[webhook][handler] body read failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	header := c.GetHeader(SignatureHeaderName)
	if err := pkg.VerifySignature(h.secret, header, body, h.now()); err != nil {
		log.Printf("[webhook][handler] signature rejected err=%v", err)
		appErr := mapSignatureError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	var event entities.SettlementEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("[webhook][handler] envelope decode failed err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_EVENT", "Event envelope could not be decoded", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.usecase.Process(c.Request.Context(), event); err != nil {
		if errors.Is(err, usecase.ErrEventUnparseable) {
			log.Printf("[webhook][handler] unparseable event err=%v", err)
			appErr := pkg.NewDomainErrorSimple("INVALID_EVENT", "Event is missing id or type", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		// Transient persistence failures return 500 so the processor retries
		// with the same event id; the ledger keeps the retry idempotent.
		log.Printf("[webhook][handler] processing failed event_id=%s err=%v", event.ID, err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[webhook][handler] event acked event_id=%s type=%s", event.ID, event.Type)
	c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
}

func mapSignatureError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, pkg.ErrSignatureExpired):
		return pkg.NewDomainErrorSimple("SIGNATURE_EXPIRED", "Signature timestamp outside tolerance", http.StatusUnauthorized)
	default:
		return pkg.NewDomainErrorSimple("SIGNATURE_INVALID", "Signature verification failed", http.StatusUnauthorized)
	}
}
