package interfaces

import (
	"context"

	"paylink/internal/domain/entities"
)

// IMailer sends the outbound payment-confirmation notification. The consent
// PDF is attached when available; a nil attachment sends the email without
// one.

type IMailer interface {
	SendPaymentConfirmation(ctx context.Context, e entities.Enrollment, consentPDF []byte) error
}
