package status

import (
	"fmt"
	"time"

	"surgitrack-backend/internal/models"
)

// Snapshot is the transition-relevant state of an entity before the change
type Snapshot struct {
	Status    string
	StartedAt *time.Time
	EndedAt   *time.Time
}

// ApplyTransition is a request to move one entity to a target status
type ApplyTransition struct {
	Kind         Kind
	EntityID     uint
	TargetStatus string
	ActorID      uint
	Note         string
}

// Outcome describes everything a transition must persist: the new status,
// timestamps to stamp (nil when already set) and the history row to append
type Outcome struct {
	NewStatus string
	StartedAt *time.Time
	EndedAt   *time.Time
	History   models.StatusHistory
}

// Apply validates cmd against the registry and computes the resulting state.
// It performs no I/O; callers persist the outcome in one unit of work.
// Timestamps are stamped only on the first entry into their category, so
// re-entering in_surgery or a terminal status never overwrites them.
func Apply(reg *Registry, cmd ApplyTransition, cur Snapshot, now time.Time) (Outcome, error) {
	if !reg.IsValid(cmd.Kind, cmd.TargetStatus) {
		return Outcome{}, fmt.Errorf("%w: %q is not a valid %s status", models.ErrInvalidStatus, cmd.TargetStatus, cmd.Kind)
	}

	out := Outcome{NewStatus: cmd.TargetStatus}

	category, _ := reg.Category(cmd.Kind, cmd.TargetStatus)
	switch category {
	case CategoryInProgress:
		if cur.StartedAt == nil {
			t := now
			out.StartedAt = &t
		}
	case CategoryTerminal:
		if cur.EndedAt == nil {
			t := now
			out.EndedAt = &t
		}
	}

	var oldStatus *string
	if cur.Status != "" {
		s := cur.Status
		oldStatus = &s
	}
	actorID := cmd.ActorID
	out.History = models.StatusHistory{
		EntityType: string(cmd.Kind),
		EntityID:   cmd.EntityID,
		OldStatus:  oldStatus,
		NewStatus:  cmd.TargetStatus,
		ChangedBy:  &actorID,
		ChangedAt:  now,
		Notes:      cmd.Note,
	}

	return out, nil
}
