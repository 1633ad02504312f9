package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"attestflow/cases"
)

type fakeCreator struct {
	created *cases.CreateParams
	err     error
}

func (f *fakeCreator) Create(_ context.Context, params cases.CreateParams) (cases.Case, error) {
	if f.err != nil {
		return cases.Case{}, f.err
	}
	f.created = &params
	now := time.Now().UTC()
	return cases.Case{
		ID:        "ATT-2025-000001",
		Category:  params.Category,
		Status:    cases.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
		Documents: params.Documents,
		Fees:      cases.FeeFor(params.Category),
		Timeline:  []cases.TimelineEvent{{Date: now, Status: "Submitted", Description: "ok"}},
	}, nil
}

func completeSession(t *testing.T, m *Manager) *Session {
	t.Helper()
	session := m.Start()
	if err := session.SelectCategory(cases.CategoryMedical); err != nil {
		t.Fatalf("select category: %v", err)
	}
	session.AddFiles(FileUpload{Name: "Medical_Report.pdf", ContentType: "application/pdf", Size: 512})
	for session.Step() != StepReview {
		if err := session.Next(); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	return session
}

func TestConfirm_CreatesCaseAndDiscardsSession(t *testing.T) {
	creator := &fakeCreator{}
	m := NewManager(creator, zap.NewNop())
	session := completeSession(t, m)

	created, err := m.Confirm(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if created.Status != cases.StatusSubmitted {
		t.Fatalf("expected submitted, got %s", created.Status)
	}
	if creator.created == nil || creator.created.Category != cases.CategoryMedical {
		t.Fatalf("unexpected create params: %+v", creator.created)
	}
	if len(creator.created.Documents) != 1 || creator.created.Documents[0] != "Medical_Report.pdf" {
		t.Fatalf("unexpected documents: %v", creator.created.Documents)
	}

	// No resume-after-submit state.
	if _, err := m.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected discarded session, got %v", err)
	}
}

func TestConfirm_RejectedBeforeReviewStep(t *testing.T) {
	creator := &fakeCreator{}
	m := NewManager(creator, zap.NewNop())

	session := m.Start()
	_ = session.SelectCategory(cases.CategoryAcademic)

	if _, err := m.Confirm(context.Background(), session.ID); !errors.Is(err, ErrNotAtReview) {
		t.Fatalf("expected ErrNotAtReview, got %v", err)
	}

	// The session survives a failed confirmation.
	if _, err := m.Get(session.ID); err != nil {
		t.Fatalf("session must survive gate failure: %v", err)
	}
}

func TestConfirm_KeepsSessionOnStoreError(t *testing.T) {
	creator := &fakeCreator{err: errors.New("store down")}
	m := NewManager(creator, zap.NewNop())
	session := completeSession(t, m)

	if _, err := m.Confirm(context.Background(), session.ID); err == nil {
		t.Fatal("expected store error to propagate")
	}
	if _, err := m.Get(session.ID); err != nil {
		t.Fatalf("session must survive store failure: %v", err)
	}
}

func TestConfirm_UnknownSession(t *testing.T) {
	m := NewManager(&fakeCreator{}, zap.NewNop())

	if _, err := m.Confirm(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStart_UniqueSessions(t *testing.T) {
	m := NewManager(&fakeCreator{}, zap.NewNop())

	a := m.Start()
	b := m.Start()
	if a.ID == b.ID {
		t.Fatal("sessions must have distinct ids")
	}
	if a.Step() != StepCategory {
		t.Fatalf("new session must start at step 1, got %d", a.Step())
	}
}
