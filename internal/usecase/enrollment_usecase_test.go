package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"paylink/internal/domain/entities"
	"paylink/internal/usecase/interfaces"
	mock_interfaces "paylink/internal/usecase/interfaces/mocks"
	"paylink/pkg"

	"go.uber.org/mock/gomock"
)

func validCreateInput() CreateEnrollmentInput {
	return CreateEnrollmentInput{
		CRMModule:        "patients",
		CRMRecordID:      "rec-1",
		PatientName:      "Ana Souza",
		PatientEmail:     "ana@example.com",
		AmountMinor:      15000,
		Currency:         "brl",
		TermsURL:         "https://clinic.example/terms/v3",
		TermsVersion:     "v3",
		TermsContentHash: "abc123",
	}
}

func newEnrollmentDeps(t *testing.T) (*gomock.Controller, *mock_interfaces.MockIEnrollmentRepository, *mock_interfaces.MockILifecycleEventRepository, *mock_interfaces.MockICRMClient, *mock_interfaces.MockIPolicyFetcher) {
	ctrl := gomock.NewController(t)
	return ctrl,
		mock_interfaces.NewMockIEnrollmentRepository(ctrl),
		mock_interfaces.NewMockILifecycleEventRepository(ctrl),
		mock_interfaces.NewMockICRMClient(ctrl),
		mock_interfaces.NewMockIPolicyFetcher(ctrl)
}

func TestEnrollmentUseCase_Create(t *testing.T) {
	t.Run("invalid crm reference", func(t *testing.T) {
		uc := NewEnrollmentUseCase(nil, nil, nil, nil)
		in := validCreateInput()
		in.CRMRecordID = "   "
		_, err := uc.Create(context.Background(), in)
		if !errors.Is(err, ErrInvalidCRMReference) {
			t.Fatalf("expected ErrInvalidCRMReference, got %v", err)
		}
	})

	t.Run("invalid patient", func(t *testing.T) {
		uc := NewEnrollmentUseCase(nil, nil, nil, nil)
		in := validCreateInput()
		in.PatientEmail = ""
		_, err := uc.Create(context.Background(), in)
		if !errors.Is(err, ErrInvalidPatient) {
			t.Fatalf("expected ErrInvalidPatient, got %v", err)
		}
	})

	t.Run("invalid amount", func(t *testing.T) {
		uc := NewEnrollmentUseCase(nil, nil, nil, nil)
		in := validCreateInput()
		in.AmountMinor = 0
		_, err := uc.Create(context.Background(), in)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("payment in flight", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().FindActiveByCRMRecord(gomock.Any(), "patients", "rec-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusProcessing}, "", nil)

		_, err := uc.Create(context.Background(), validCreateInput())
		if !errors.Is(err, ErrPaymentInFlight) {
			t.Fatalf("expected ErrPaymentInFlight, got %v", err)
		}
	})

	t.Run("live enrollment rotates in place", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().FindActiveByCRMRecord(gomock.Any(), "patients", "rec-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusSent}, "", nil)
		repo.EXPECT().Regenerate(gomock.Any(), "e-1", gomock.Any(),
			entities.StatusCreated, entities.StatusSent, entities.StatusOpened).
			DoAndReturn(func(_ context.Context, id string, params interface{}, _ ...entities.EnrollmentStatus) (entities.Enrollment, error) {
				return entities.Enrollment{ID: id, Status: entities.StatusCreated, TokenSuffix: "1234"}, nil
			})
		events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(entities.LifecycleEvent{}, nil)
		crm.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Enrollment.ID != "e-1" || res.RawToken == "" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("rotate guard miss", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().FindActiveByCRMRecord(gomock.Any(), "patients", "rec-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusSent}, "", nil)
		repo.EXPECT().Regenerate(gomock.Any(), "e-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Enrollment{}, nil)

		_, err := uc.Create(context.Background(), validCreateInput())
		if !errors.Is(err, ErrEnrollmentStaleUpdate) {
			t.Fatalf("expected ErrEnrollmentStaleUpdate, got %v", err)
		}
	})

	t.Run("create success", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().FindActiveByCRMRecord(gomock.Any(), "patients", "rec-1").
			Return(entities.Enrollment{}, "", nil)
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Enrollment{}), "").DoAndReturn(
			func(_ context.Context, e entities.Enrollment, _ string) (entities.Enrollment, error) {
				if e.ID == "" || e.TokenHash == "" || len(e.TokenSuffix) != 4 {
					t.Fatalf("expected token material, got %+v", e)
				}
				if e.Status != entities.StatusCreated || e.Currency != "BRL" {
					t.Fatalf("unexpected enrollment: %+v", e)
				}
				if !e.ExpiresAt.After(e.CreatedAt.Add(47 * time.Hour)) {
					t.Fatalf("expected default 48h deadline, got %v", e.ExpiresAt)
				}
				return e, nil
			})
		events.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.LifecycleEvent) (entities.LifecycleEvent, error) {
				if ev.EventType != entities.EventEnrollmentCreated {
					t.Fatalf("expected created event, got %s", ev.EventType)
				}
				return ev, nil
			})
		crm.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.Create(context.Background(), validCreateInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.RawToken == "" {
			t.Fatalf("expected raw token")
		}
		if pkg.HashToken(res.RawToken) != res.Enrollment.TokenHash {
			t.Fatalf("token hash does not match raw token")
		}
	})

	t.Run("crm push failure does not block issuance", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().FindActiveByCRMRecord(gomock.Any(), "patients", "rec-1").Return(entities.Enrollment{}, "", nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), "").DoAndReturn(
			func(_ context.Context, e entities.Enrollment, _ string) (entities.Enrollment, error) { return e, nil })
		events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(entities.LifecycleEvent{}, nil)
		crm.EXPECT().Push(gomock.Any(), gomock.Any()).Return(errors.New("crm down"))

		if _, err := uc.Create(context.Background(), validCreateInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent create loses the active slot", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		// Both callers read no live enrollment; the storage claim breaks the
		// tie and the loser must not insert a second payable link.
		repo.EXPECT().FindActiveByCRMRecord(gomock.Any(), "patients", "rec-1").
			Return(entities.Enrollment{}, "", nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), "").
			Return(entities.Enrollment{}, interfaces.ErrActiveEnrollmentExists)

		_, err := uc.Create(context.Background(), validCreateInput())
		if !errors.Is(err, ErrActiveLinkExists) {
			t.Fatalf("expected ErrActiveLinkExists, got %v", err)
		}
	})

	t.Run("stale slot holder is replaced on create", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		// The slot still points at a terminal enrollment; its id is handed to
		// the insert so the conditional claim can take the slot over.
		repo.EXPECT().FindActiveByCRMRecord(gomock.Any(), "patients", "rec-1").
			Return(entities.Enrollment{}, "e-old", nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), "e-old").DoAndReturn(
			func(_ context.Context, e entities.Enrollment, _ string) (entities.Enrollment, error) { return e, nil })
		events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(entities.LifecycleEvent{}, nil)
		crm.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := uc.Create(context.Background(), validCreateInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEnrollmentUseCase_Regenerate(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").Return(entities.Enrollment{}, nil)

		_, err := uc.Regenerate(context.Background(), "e-1", CreateEnrollmentInput{})
		if !errors.Is(err, ErrEnrollmentNotFound) {
			t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
		}
	})

	t.Run("paid is not regenerable", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusPaid}, nil)

		_, err := uc.Regenerate(context.Background(), "e-1", CreateEnrollmentInput{})
		if !errors.Is(err, ErrRegenerateNotAllowed) {
			t.Fatalf("expected ErrRegenerateNotAllowed, got %v", err)
		}
	})

	t.Run("processing is not regenerable", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().GetByID(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusProcessing}, nil)

		_, err := uc.Regenerate(context.Background(), "e-1", CreateEnrollmentInput{})
		if !errors.Is(err, ErrRegenerateNotAllowed) {
			t.Fatalf("expected ErrRegenerateNotAllowed, got %v", err)
		}
	})

	t.Run("expired regenerates with inherited amount and policy", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		current := entities.Enrollment{
			ID: "e-1", Status: entities.StatusExpired,
			AmountMinor: 9900, Currency: "BRL",
			TermsURL: "https://clinic.example/terms/v3", TermsVersion: "v3", TermsContentHash: "abc123",
		}
		repo.EXPECT().GetByID(gomock.Any(), "e-1").Return(current, nil)
		repo.EXPECT().Regenerate(gomock.Any(), "e-1", gomock.Any(),
			entities.StatusFailed, entities.StatusExpired, entities.StatusCanceled).
			DoAndReturn(func(_ context.Context, id string, params interface{}, _ ...entities.EnrollmentStatus) (entities.Enrollment, error) {
				return entities.Enrollment{ID: id, Status: entities.StatusCreated, AmountMinor: 9900, Currency: "BRL", TokenSuffix: "9999"}, nil
			})
		events.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.LifecycleEvent) (entities.LifecycleEvent, error) {
				if ev.EventType != entities.EventEnrollmentRegenerated {
					t.Fatalf("expected regenerated event, got %s", ev.EventType)
				}
				return ev, nil
			})
		crm.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil)

		res, err := uc.Regenerate(context.Background(), "e-1", CreateEnrollmentInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Enrollment.Status != entities.StatusCreated || res.RawToken == "" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})

	t.Run("blocked when a newer link holds the slot", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		// Another enrollment re-claimed the record between the read and the
		// rotate; the conflict surfaces instead of minting a second link.
		repo.EXPECT().GetByID(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusExpired, AmountMinor: 9900, Currency: "BRL", TermsURL: "https://clinic.example/terms/v3", TermsContentHash: "abc123"}, nil)
		repo.EXPECT().Regenerate(gomock.Any(), "e-1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Enrollment{}, interfaces.ErrActiveEnrollmentExists)

		_, err := uc.Regenerate(context.Background(), "e-1", CreateEnrollmentInput{})
		if !errors.Is(err, ErrActiveLinkExists) {
			t.Fatalf("expected ErrActiveLinkExists, got %v", err)
		}
	})
}

func TestEnrollmentUseCase_ResolveByToken(t *testing.T) {
	const raw = "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef"

	t.Run("empty token", func(t *testing.T) {
		uc := NewEnrollmentUseCase(nil, nil, nil, nil)
		_, _, err := uc.ResolveByToken(context.Background(), "  ")
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().GetByTokenHash(gomock.Any(), pkg.HashToken(raw)).Return(entities.Enrollment{}, nil)

		_, _, err := uc.ResolveByToken(context.Background(), raw)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("lazy expiry on read", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		past := time.Now().UTC().Add(-time.Hour)
		repo.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusSent, ExpiresAt: past}, nil)
		repo.EXPECT().MarkExpired(gomock.Any(), "e-1",
			entities.StatusCreated, entities.StatusSent, entities.StatusOpened, entities.StatusProcessing).
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusExpired}, nil)
		events.EXPECT().Append(gomock.Any(), gomock.Any()).Return(entities.LifecycleEvent{}, nil)
		crm.EXPECT().Push(gomock.Any(), gomock.Any()).Return(nil)

		_, _, err := uc.ResolveByToken(context.Background(), raw)
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("sent flips to opened once", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		future := time.Now().UTC().Add(time.Hour)
		repo.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusSent, ExpiresAt: future, TermsURL: "https://clinic.example/terms/v3"}, nil)
		repo.EXPECT().MarkOpened(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusOpened, ExpiresAt: future, TermsURL: "https://clinic.example/terms/v3"}, nil)
		events.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.LifecycleEvent) (entities.LifecycleEvent, error) {
				if ev.EventType != entities.EventLinkOpened {
					t.Fatalf("expected link opened event, got %s", ev.EventType)
				}
				return ev, nil
			})
		policy.EXPECT().Fetch(gomock.Any(), "https://clinic.example/terms/v3").Return("the policy text", nil)

		e, text, err := uc.ResolveByToken(context.Background(), raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != entities.StatusOpened || text != "the policy text" {
			t.Fatalf("unexpected result: %+v text=%q", e, text)
		}
	})

	t.Run("concurrent open loses guard and re-reads", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		future := time.Now().UTC().Add(time.Hour)
		repo.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusCreated, ExpiresAt: future}, nil)
		repo.EXPECT().MarkOpened(gomock.Any(), "e-1").Return(entities.Enrollment{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusOpened, ExpiresAt: future}, nil)

		e, _, err := uc.ResolveByToken(context.Background(), raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != entities.StatusOpened {
			t.Fatalf("expected opened after re-read, got %s", e.Status)
		}
	})

	t.Run("opened replays without another open event", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		future := time.Now().UTC().Add(time.Hour)
		repo.EXPECT().GetByTokenHash(gomock.Any(), gomock.Any()).
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusOpened, ExpiresAt: future}, nil)

		e, _, err := uc.ResolveByToken(context.Background(), raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != entities.StatusOpened {
			t.Fatalf("unexpected status: %s", e.Status)
		}
	})
}

func TestEnrollmentUseCase_MarkSent(t *testing.T) {
	t.Run("guard miss reports current state", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().MarkSent(gomock.Any(), "e-1").Return(entities.Enrollment{}, nil)
		repo.EXPECT().GetByID(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusOpened}, nil)

		e, err := uc.MarkSent(context.Background(), "e-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != entities.StatusOpened {
			t.Fatalf("expected current status, got %s", e.Status)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl, repo, events, crm, policy := newEnrollmentDeps(t)
		defer ctrl.Finish()
		uc := NewEnrollmentUseCase(repo, events, crm, policy)

		repo.EXPECT().MarkSent(gomock.Any(), "e-1").
			Return(entities.Enrollment{ID: "e-1", Status: entities.StatusSent}, nil)

		e, err := uc.MarkSent(context.Background(), "e-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Status != entities.StatusSent {
			t.Fatalf("unexpected status: %s", e.Status)
		}
	})
}
