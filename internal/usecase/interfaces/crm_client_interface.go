package interfaces

import (
	"context"

	"paylink/internal/domain/entities"
)

// ICRMClient propagates enrollment lifecycle changes onto the external CRM
// record identified by (crm_module, crm_record_id). Push runs after every
// externally meaningful transition; failures are a best-effort boundary,
// logged and retried implicitly by the next transition's push.

type ICRMClient interface {
	Push(ctx context.Context, e entities.Enrollment) error
}
