package interfaces

import (
	"paylink/internal/domain/entities"
)

// IConsentRenderer produces the consent-document PDF binding patient
// identity, amount, policy version + content hash, full policy text,
// signature image and consent metadata. Rendering is best-effort and runs
// only after the financial transition is durable.

type IConsentRenderer interface {
	Render(e entities.Enrollment, policyText string, signaturePNG []byte) ([]byte, error)
}
