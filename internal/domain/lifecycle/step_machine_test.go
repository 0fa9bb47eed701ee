package lifecycle

import (
	"errors"
	"testing"
	"time"

	"copiadora_xpto/internal/domain/entities"
)

func ptrInt64(v int64) *int64 { return &v }

var fixedNow = time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

func newMachine() *StepMachine {
	return NewStepMachine(ResponsableOnly).WithClock(func() time.Time { return fixedNow })
}

func TestStepMachine_Start(t *testing.T) {
	owner := entities.Actor{UserID: 5, Role: entities.RoleUser}

	t.Run("pending step owned by actor", func(t *testing.T) {
		step := entities.Step{ID: "st-1", ServiceID: "svc-1", ResponsableID: ptrInt64(5), Status: entities.StepStatusPending}
		updated, ev, err := newMachine().Apply(owner, step, ActionStart, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.StepStatusInProgress {
			t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
		}
		if updated.DatetimeStart == nil || !updated.DatetimeStart.Equal(fixedNow) {
			t.Fatalf("expected datetime_start to be set")
		}
		if updated.DatetimeConclusion != nil {
			t.Fatalf("datetime_conclusion must stay unset")
		}
		if ev.Kind != entities.StepEventStarted || ev.ServiceID != "svc-1" || ev.From != entities.StepStatusPending || ev.To != entities.StepStatusInProgress {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if step.Status != entities.StepStatusPending {
			t.Fatalf("input step must not be mutated")
		}
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(7), Status: entities.StepStatusPending}
		updated, _, err := newMachine().Apply(owner, step, ActionStart, "")
		if !errors.Is(err, entities.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
		if updated.Status != entities.StepStatusPending || updated.DatetimeStart != nil {
			t.Fatalf("step must not change on failure: %+v", updated)
		}
	})

	t.Run("admin has no bypass", func(t *testing.T) {
		step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(7), Status: entities.StepStatusPending}
		_, _, err := newMachine().Apply(entities.Actor{UserID: 1, Role: entities.RoleAdmin}, step, ActionStart, "")
		if !errors.Is(err, entities.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("unassigned step is forbidden", func(t *testing.T) {
		step := entities.Step{ID: "st-1", Status: entities.StepStatusPending}
		_, _, err := newMachine().Apply(owner, step, ActionStart, "")
		if !errors.Is(err, entities.ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	for _, status := range []entities.StepStatus{entities.StepStatusInProgress, entities.StepStatusConcluded, entities.StepStatusCancelled} {
		t.Run("invalid from "+string(status), func(t *testing.T) {
			step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(5), Status: status}
			updated, _, err := newMachine().Apply(owner, step, ActionStart, "")
			if !errors.Is(err, entities.ErrInvalidTransition) {
				t.Fatalf("expected invalid transition, got %v", err)
			}
			if updated.Status != status {
				t.Fatalf("status changed on failure")
			}
		})
	}
}

func TestStepMachine_Conclude(t *testing.T) {
	owner := entities.Actor{UserID: 5}
	step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(5), Status: entities.StepStatusInProgress}

	updated, ev, err := newMachine().Apply(owner, step, ActionConclude, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != entities.StepStatusConcluded || updated.DatetimeConclusion == nil {
		t.Fatalf("unexpected step: %+v", updated)
	}
	if ev.Kind != entities.StepEventConcluded {
		t.Fatalf("unexpected event kind %s", ev.Kind)
	}

	pending := entities.Step{ID: "st-2", ResponsableID: ptrInt64(5), Status: entities.StepStatusPending}
	if _, _, err := newMachine().Apply(owner, pending, ActionConclude, ""); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestStepMachine_Cancel(t *testing.T) {
	owner := entities.Actor{UserID: 5}

	t.Run("reason required", func(t *testing.T) {
		step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(5), Status: entities.StepStatusPending}
		updated, _, err := newMachine().Apply(owner, step, ActionCancel, "   ")
		if !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if updated.Status != entities.StepStatusPending || updated.ReasonCancellament != "" {
			t.Fatalf("step must not change: %+v", updated)
		}
	})

	t.Run("from in progress", func(t *testing.T) {
		step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(5), Status: entities.StepStatusInProgress}
		updated, ev, err := newMachine().Apply(owner, step, ActionCancel, " toner missing ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.StepStatusCancelled || updated.ReasonCancellament != "toner missing" {
			t.Fatalf("unexpected step: %+v", updated)
		}
		if ev.Kind != entities.StepEventCancelled {
			t.Fatalf("unexpected event kind %s", ev.Kind)
		}
	})

	t.Run("concluded cannot be cancelled", func(t *testing.T) {
		step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(5), Status: entities.StepStatusConcluded}
		if _, _, err := newMachine().Apply(owner, step, ActionCancel, "late"); !errors.Is(err, entities.ErrInvalidTransition) {
			t.Fatalf("expected invalid transition, got %v", err)
		}
	})
}

func TestStepMachine_ConcludedIsTerminal(t *testing.T) {
	owner := entities.Actor{UserID: 5}
	step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(5), Status: entities.StepStatusConcluded}
	for _, action := range []StepAction{ActionStart, ActionConclude, ActionCancel} {
		updated, _, err := newMachine().Apply(owner, step, action, "reason")
		if err == nil {
			t.Fatalf("%s: expected error", action)
		}
		if updated.Status != entities.StepStatusConcluded {
			t.Fatalf("%s: status changed to %s", action, updated.Status)
		}
	}
}

func TestStepMachine_CustomPolicy(t *testing.T) {
	allowAdmins := func(actor entities.Actor, step entities.Step) bool {
		return actor.IsAdmin() || ResponsableOnly(actor, step)
	}
	m := NewStepMachine(allowAdmins).WithClock(func() time.Time { return fixedNow })
	step := entities.Step{ID: "st-1", ResponsableID: ptrInt64(7), Status: entities.StepStatusPending}

	if _, _, err := m.Apply(entities.Actor{UserID: 1, Role: entities.RoleAdmin}, step, ActionStart, ""); err != nil {
		t.Fatalf("expected swapped policy to allow admin, got %v", err)
	}
}

func TestNext(t *testing.T) {
	cases := []struct {
		from   entities.StepStatus
		action StepAction
		to     entities.StepStatus
		ok     bool
	}{
		{entities.StepStatusPending, ActionStart, entities.StepStatusInProgress, true},
		{entities.StepStatusPending, ActionConclude, "", false},
		{entities.StepStatusPending, ActionCancel, entities.StepStatusCancelled, true},
		{entities.StepStatusInProgress, ActionConclude, entities.StepStatusConcluded, true},
		{entities.StepStatusInProgress, ActionStart, "", false},
		{entities.StepStatusCancelled, ActionCancel, "", false},
		{entities.StepStatusConcluded, ActionCancel, "", false},
	}
	for _, tc := range cases {
		got, ok := Next(tc.from, tc.action)
		if ok != tc.ok || got != tc.to {
			t.Fatalf("Next(%s, %s) = %s, %v; want %s, %v", tc.from, tc.action, got, ok, tc.to, tc.ok)
		}
	}
}
