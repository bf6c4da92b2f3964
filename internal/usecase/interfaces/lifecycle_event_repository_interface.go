package interfaces

import (
	"context"

	"paylink/internal/domain/entities"
)

// ILifecycleEventRepository abstracts the append-only audit trail.

type ILifecycleEventRepository interface {
	Append(ctx context.Context, ev entities.LifecycleEvent) (entities.LifecycleEvent, error)
	ListByEnrollmentID(ctx context.Context, enrollmentID string) ([]entities.LifecycleEvent, error)
}
