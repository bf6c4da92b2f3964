package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	request "paylink/internal/adapter/http/dto/request"
	response "paylink/internal/adapter/http/dto/response"
	"paylink/internal/usecase"
	"paylink/internal/usecase/interfaces"
	"paylink/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEnrollmentPayload = pkg.NewDomainErrorSimple("INVALID_ENROLLMENT_INPUT", "Invalid enrollment payload", http.StatusBadRequest)
)

const consentDocumentTTL = 15 * time.Minute

// EnrollmentHandler serves the CRM ingress (issue, regenerate, mark-sent),
// the public link resolution endpoint and the admin read surface.

type EnrollmentHandler struct {
	usecase       usecase.IEnrollmentUseCase
	blobs         interfaces.IBlobStore
	publicBaseURL string
}

func NewEnrollmentHandler(uc usecase.IEnrollmentUseCase, blobs interfaces.IBlobStore, publicBaseURL string) *EnrollmentHandler {
	return &EnrollmentHandler{usecase: uc, blobs: blobs, publicBaseURL: publicBaseURL}
}

// CreateEnrollment issues a payment link for a CRM record. Reissuing for a
// record with a live link rotates the token in place; a record with an
// in-flight payment is rejected.
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var payload request.EnrollmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[enrollment][handler] create invalid payload err=%v", err)
		c.JSON(errInvalidEnrollmentPayload.HTTPStatus, errInvalidEnrollmentPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		log.Printf("[enrollment][handler] create failed crm_record=%s err=%v", payload.CRMRecordID, err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[enrollment][handler] create success id=%s crm_record=%s suffix=%s", created.Enrollment.ID, payload.CRMRecordID, created.Enrollment.TokenSuffix)

	c.JSON(http.StatusCreated, response.FromCreatedEnrollment(created, h.publicBaseURL))
}

// RegenerateEnrollment rotates the token of a failed, expired or canceled
// enrollment, resetting it to created with a fresh deadline.
func (h *EnrollmentHandler) RegenerateEnrollment(c *gin.Context) {
	id := c.Param("id")
	var payload request.EnrollmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[enrollment][handler] regenerate invalid payload id=%s err=%v", id, err)
		c.JSON(errInvalidEnrollmentPayload.HTTPStatus, errInvalidEnrollmentPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Regenerate(c.Request.Context(), id, payload.ToInput())
	if err != nil {
		log.Printf("[enrollment][handler] regenerate failed id=%s err=%v", id, err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[enrollment][handler] regenerate success id=%s suffix=%s", id, created.Enrollment.TokenSuffix)

	c.JSON(http.StatusOK, response.FromCreatedEnrollment(created, h.publicBaseURL))
}

// MarkSent records that the CRM delivered the link to the patient.
func (h *EnrollmentHandler) MarkSent(c *gin.Context) {
	id := c.Param("id")

	enrollment, err := h.usecase.MarkSent(c.Request.Context(), id)
	if err != nil {
		log.Printf("[enrollment][handler] mark-sent failed id=%s err=%v", id, err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[enrollment][handler] mark-sent success id=%s status=%s", id, enrollment.Status)

	c.JSON(http.StatusOK, response.FromEnrollment(enrollment))
}

// ResolveLink is the public payment-page endpoint. It resolves the raw token
// to the patient-facing projection and flips created/sent to opened.
func (h *EnrollmentHandler) ResolveLink(c *gin.Context) {
	token := c.Param("token")

	enrollment, policyText, err := h.usecase.ResolveByToken(c.Request.Context(), token)
	if err != nil {
		log.Printf("[enrollment][handler] resolve failed err=%v", err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[enrollment][handler] resolve success id=%s status=%s", enrollment.ID, enrollment.Status)

	c.JSON(http.StatusOK, response.FromEnrollmentPublic(enrollment, policyText))
}

// GetEnrollment returns the full admin projection of one enrollment.
func (h *EnrollmentHandler) GetEnrollment(c *gin.Context) {
	id := c.Param("id")

	enrollment, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[enrollment][handler] get failed id=%s err=%v", id, err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromEnrollment(enrollment))
}

// ListEnrollmentEvents returns the enrollment's audit trail in append order.
func (h *EnrollmentHandler) ListEnrollmentEvents(c *gin.Context) {
	id := c.Param("id")

	events, err := h.usecase.ListEvents(c.Request.Context(), id)
	if err != nil {
		log.Printf("[enrollment][handler] list-events failed id=%s err=%v", id, err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromLifecycleEvents(events))
}

// GetConsentDocument returns a short-lived presigned URL for the stored
// consent PDF of a settled enrollment.
func (h *EnrollmentHandler) GetConsentDocument(c *gin.Context) {
	id := c.Param("id")

	enrollment, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[enrollment][handler] consent-document failed id=%s err=%v", id, err)
		appErr := mapEnrollmentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if enrollment.ConsentDocumentRef == "" {
		appErr := pkg.NewDomainErrorSimple("CONSENT_DOCUMENT_NOT_FOUND", "Consent document not available", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	url, err := h.blobs.PresignGet(c.Request.Context(), enrollment.ConsentDocumentRef, consentDocumentTTL)
	if err != nil {
		log.Printf("[enrollment][handler] consent-document presign failed id=%s err=%v", id, err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.ConsentDocumentResponse{URL: url, ExpiresIn: int(consentDocumentTTL.Seconds())})
}

func mapEnrollmentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCRMReference), errors.Is(err, usecase.ErrInvalidPatient), errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidToken):
		return pkg.NewDomainErrorSimple("LINK_INVALID", "This payment link is invalid or has expired", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEnrollmentNotFound):
		return pkg.NewDomainErrorSimple("ENROLLMENT_NOT_FOUND", "Enrollment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRegenerateNotAllowed):
		return pkg.NewDomainErrorSimple("REGENERATE_NOT_ALLOWED", "Enrollment cannot be regenerated in its current state", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentInFlight):
		return pkg.NewDomainErrorSimple("PAYMENT_IN_FLIGHT", "A payment is already in flight for this record", http.StatusConflict)
	case errors.Is(err, usecase.ErrActiveLinkExists):
		return pkg.NewDomainErrorSimple("ACTIVE_LINK_EXISTS", "An active payment link already exists for this record", http.StatusConflict)
	case errors.Is(err, usecase.ErrEnrollmentStaleUpdate):
		return pkg.NewDomainErrorSimple("CONFLICT", "Enrollment changed concurrently, retry", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
