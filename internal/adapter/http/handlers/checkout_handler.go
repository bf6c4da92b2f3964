package handlers

import (
	"errors"
	"log"
	"net/http"

	request "paylink/internal/adapter/http/dto/request"
	response "paylink/internal/adapter/http/dto/response"
	"paylink/internal/usecase"
	"paylink/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_CHECKOUT_INPUT", "Invalid checkout payload", http.StatusBadRequest)

// CheckoutHandler serves the public checkout endpoint: consent capture plus
// processor session creation.

type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// CreateSession records consent and returns the hosted session URL. Consent
// IP always comes from the request; the user agent does too unless the
// header is absent, in which case the payload fallback is used.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var payload request.CheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[checkout][handler] invalid payload err=%v", err)
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	userAgent := c.Request.UserAgent()
	if userAgent == "" {
		userAgent = payload.ConsentUserAgent
	}

	url, err := h.usecase.CreateSession(c.Request.Context(), usecase.CreateSessionInput{
		RawToken:         payload.Token,
		TermsAccepted:    payload.TermsAccepted,
		ConsentIP:        c.ClientIP(),
		ConsentUserAgent: userAgent,
		SignatureData:    payload.SignatureData,
	})
	if err != nil {
		log.Printf("[checkout][handler] create-session failed err=%v", err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create-session success")

	c.JSON(http.StatusOK, response.CheckoutResponse{CheckoutURL: url})
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrTermsNotAccepted):
		return pkg.NewDomainErrorSimple("TERMS_NOT_ACCEPTED", "Terms must be accepted before paying", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidSignatureData):
		return pkg.NewDomainErrorSimple("INVALID_SIGNATURE_DATA", "Signature image could not be decoded", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidToken):
		return pkg.NewDomainErrorSimple("LINK_INVALID", "This payment link is invalid or has expired", http.StatusNotFound)
	case errors.Is(err, usecase.ErrLinkExpired):
		return pkg.NewDomainErrorSimple("LINK_EXPIRED", "This payment link has expired", http.StatusGone)
	case errors.Is(err, usecase.ErrAlreadyPaid):
		return pkg.NewDomainErrorSimple("ALREADY_PAID", "This enrollment is already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrEnrollmentCanceled), errors.Is(err, usecase.ErrLinkNotPayable):
		return pkg.NewDomainErrorSimple("LINK_NOT_PAYABLE", "This payment link is no longer payable", http.StatusConflict)
	case errors.Is(err, usecase.ErrProcessorSession):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider could not create a session", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
