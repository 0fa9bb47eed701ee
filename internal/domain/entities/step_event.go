package entities

import "time"

type StepEventKind string

const (
	StepEventStarted       StepEventKind = "step.started"
	StepEventConcluded     StepEventKind = "step.concluded"
	StepEventCancelled     StepEventKind = "step.cancelled"
	StepEventStepsReplaced StepEventKind = "service.steps_replaced"
	StepEventServiceEdited StepEventKind = "service.edited"
)

// StepStatusChanged is emitted by the step state machine after a successful
// transition. ServiceID is empty for orphan steps.
type StepStatusChanged struct {
	Kind       StepEventKind
	StepID     string
	ServiceID  string
	From       StepStatus
	To         StepStatus
	OccurredAt time.Time
}
