package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"copiadora_xpto/internal/domain/entities"
)

// StepAction is a command applied to a step.
type StepAction string

const (
	ActionStart    StepAction = "start"
	ActionConclude StepAction = "conclude"
	ActionCancel   StepAction = "cancel"
)

var (
	ErrReasonRequired = entities.NewError(entities.ErrValidation, "reason for cancellation is required")
	ErrNotResponsable = entities.NewError(entities.ErrForbidden, "only the responsable assigned to this step can change it")
)

// stepTransitions lists every allowed (status, action) pair. Anything missing
// is an invalid transition.
var stepTransitions = map[entities.StepStatus]map[StepAction]entities.StepStatus{
	entities.StepStatusPending: {
		ActionStart:  entities.StepStatusInProgress,
		ActionCancel: entities.StepStatusCancelled,
	},
	entities.StepStatusInProgress: {
		ActionConclude: entities.StepStatusConcluded,
		ActionCancel:   entities.StepStatusCancelled,
	},
}

var actionEvents = map[StepAction]entities.StepEventKind{
	ActionStart:    entities.StepEventStarted,
	ActionConclude: entities.StepEventConcluded,
	ActionCancel:   entities.StepEventCancelled,
}

var transitionMessages = map[StepAction]string{
	ActionStart:    "step can only be started if it is pending",
	ActionConclude: "step can only be concluded if it is in progress",
	ActionCancel:   "step can only be cancelled if it is pending or in progress",
}

// StepMachine applies actions to steps. It knows nothing about the parent
// service; callers react to the returned event.
type StepMachine struct {
	canMutate MutationPolicy
	now       func() time.Time
}

func NewStepMachine(policy MutationPolicy) *StepMachine {
	if policy == nil {
		policy = ResponsableOnly
	}
	return &StepMachine{canMutate: policy, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock returns a copy of the machine using the given clock.
func (m *StepMachine) WithClock(now func() time.Time) *StepMachine {
	cp := *m
	cp.now = now
	return &cp
}

// CanMutate exposes the ownership policy to operations that touch a step
// without transitioning it (notes, images).
func (m *StepMachine) CanMutate(actor entities.Actor, step entities.Step) bool {
	return m.canMutate(actor, step)
}

// Next returns the status reached by applying action to status.
func Next(status entities.StepStatus, action StepAction) (entities.StepStatus, bool) {
	next, ok := stepTransitions[status][action]
	return next, ok
}

// Apply runs the ownership check, validates the transition and returns the
// mutated copy of step. The input step is never modified.
func (m *StepMachine) Apply(actor entities.Actor, step entities.Step, action StepAction, reason string) (entities.Step, entities.StepStatusChanged, error) {
	if !m.canMutate(actor, step) {
		return step, entities.StepStatusChanged{}, ErrNotResponsable
	}

	reason = strings.TrimSpace(reason)
	if action == ActionCancel && reason == "" {
		return step, entities.StepStatusChanged{}, ErrReasonRequired
	}

	next, ok := Next(step.Status, action)
	if !ok {
		msg, known := transitionMessages[action]
		if !known {
			msg = fmt.Sprintf("unknown step action %q", action)
		}
		return step, entities.StepStatusChanged{}, entities.NewError(entities.ErrInvalidTransition, msg)
	}

	now := m.now()
	updated := step
	updated.Status = next
	updated.UpdatedAt = now
	switch next {
	case entities.StepStatusInProgress:
		updated.DatetimeStart = &now
	case entities.StepStatusConcluded:
		updated.DatetimeConclusion = &now
	case entities.StepStatusCancelled:
		updated.ReasonCancellament = reason
	}

	event := entities.StepStatusChanged{
		Kind:       actionEvents[action],
		StepID:     step.ID,
		ServiceID:  step.ServiceID,
		From:       step.Status,
		To:         next,
		OccurredAt: now,
	}
	return updated, event, nil
}
