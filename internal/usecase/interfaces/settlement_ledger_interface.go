package interfaces

import (
	"context"
	"errors"

	"paylink/internal/domain/entities"
)

// ErrEventAlreadyProcessed signals a benign uniqueness-constraint hit on the
// ledger: the event id was recorded by an earlier (possibly concurrent)
// delivery.
var ErrEventAlreadyProcessed = errors.New("settlement event already processed")

// ISettlementLedger is the idempotency ledger for processor callbacks.
//
// Record is the last step of webhook handling: it is written only after the
// state transition and side effects are durably applied, so a crash before
// the insert causes a safe (status-guarded) reprocessing on retry.

type ISettlementLedger interface {
	IsProcessed(ctx context.Context, eventID string) (bool, error)
	Record(ctx context.Context, ev entities.ProcessedSettlementEvent) error
}
