package status

import (
	"errors"
	"testing"
	"time"

	"surgitrack-backend/internal/models"
)

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func TestApply_StampsStartOnFirstInProgress(t *testing.T) {
	reg := DefaultRegistry()

	cmd := ApplyTransition{Kind: KindPatient, EntityID: 7, TargetStatus: "in_surgery", ActorID: 1}
	cur := Snapshot{Status: "waiting"}

	out, err := Apply(reg, cmd, cur, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.NewStatus != "in_surgery" {
		t.Fatalf("expected status in_surgery, got %q", out.NewStatus)
	}
	if out.StartedAt == nil || !out.StartedAt.Equal(testNow) {
		t.Fatalf("expected StartedAt %v, got %v", testNow, out.StartedAt)
	}
	if out.EndedAt != nil {
		t.Fatalf("expected no EndedAt, got %v", out.EndedAt)
	}
}

func TestApply_DoesNotRestampStart(t *testing.T) {
	reg := DefaultRegistry()
	started := testNow.Add(-time.Hour)

	cmd := ApplyTransition{Kind: KindPatient, EntityID: 7, TargetStatus: "in_surgery", ActorID: 1}
	cur := Snapshot{Status: "recovering", StartedAt: &started}

	out, err := Apply(reg, cmd, cur, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.StartedAt != nil {
		t.Fatalf("expected StartedAt untouched on re-entry, got %v", out.StartedAt)
	}
}

func TestApply_StampsEndOnFirstTerminal(t *testing.T) {
	reg := DefaultRegistry()
	started := testNow.Add(-time.Hour)

	cmd := ApplyTransition{Kind: KindPatient, EntityID: 7, TargetStatus: "recovering", ActorID: 1}
	cur := Snapshot{Status: "in_surgery", StartedAt: &started}

	out, err := Apply(reg, cmd, cur, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.EndedAt == nil || !out.EndedAt.Equal(testNow) {
		t.Fatalf("expected EndedAt %v, got %v", testNow, out.EndedAt)
	}

	// moving on to a second terminal status must not overwrite it
	ended := *out.EndedAt
	cmd.TargetStatus = "returning"
	cur = Snapshot{Status: "recovering", StartedAt: &started, EndedAt: &ended}
	out, err = Apply(reg, cmd, cur, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.EndedAt != nil {
		t.Fatalf("expected EndedAt untouched on second terminal status, got %v", out.EndedAt)
	}
}

func TestApply_NotStartedStampsNothing(t *testing.T) {
	reg := DefaultRegistry()

	cmd := ApplyTransition{Kind: KindSurgery, EntityID: 3, TargetStatus: "cancelled", ActorID: 1}
	out, err := Apply(reg, cmd, Snapshot{Status: "registered"}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.StartedAt != nil || out.EndedAt != nil {
		t.Fatalf("expected no timestamps for cancelled, got start=%v end=%v", out.StartedAt, out.EndedAt)
	}
}

func TestApply_RejectsUnknownStatus(t *testing.T) {
	reg := DefaultRegistry()

	cmd := ApplyTransition{Kind: KindPatient, EntityID: 7, TargetStatus: "discharged", ActorID: 1}
	_, err := Apply(reg, cmd, Snapshot{Status: "waiting"}, testNow)
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	// kinds have separate vocabularies
	cmd = ApplyTransition{Kind: KindPatient, EntityID: 7, TargetStatus: "completed", ActorID: 1}
	_, err = Apply(reg, cmd, Snapshot{Status: "waiting"}, testNow)
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for surgery-only status, got %v", err)
	}
}

func TestApply_BuildsHistoryRecord(t *testing.T) {
	reg := DefaultRegistry()

	cmd := ApplyTransition{Kind: KindSurgery, EntityID: 12, TargetStatus: "in_surgery", ActorID: 5, Note: "OR 3 ready"}
	out, err := Apply(reg, cmd, Snapshot{Status: "waiting"}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := out.History
	if h.EntityType != "surgery" || h.EntityID != 12 {
		t.Fatalf("unexpected entity: %s/%d", h.EntityType, h.EntityID)
	}
	if h.OldStatus == nil || *h.OldStatus != "waiting" {
		t.Fatalf("expected old status waiting, got %v", h.OldStatus)
	}
	if h.NewStatus != "in_surgery" {
		t.Fatalf("expected new status in_surgery, got %q", h.NewStatus)
	}
	if h.ChangedBy == nil || *h.ChangedBy != 5 {
		t.Fatalf("expected changed_by 5, got %v", h.ChangedBy)
	}
	if !h.ChangedAt.Equal(testNow) {
		t.Fatalf("expected changed_at %v, got %v", testNow, h.ChangedAt)
	}
	if h.Notes != "OR 3 ready" {
		t.Fatalf("expected notes carried, got %q", h.Notes)
	}
}

func TestApply_NilOldStatusOnFirstTransition(t *testing.T) {
	reg := DefaultRegistry()

	cmd := ApplyTransition{Kind: KindPatient, EntityID: 1, TargetStatus: "waiting", ActorID: 2}
	out, err := Apply(reg, cmd, Snapshot{}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.History.OldStatus != nil {
		t.Fatalf("expected nil old status, got %q", *out.History.OldStatus)
	}
}
