package entities

import "time"

// StepStatus is the lifecycle of a single step of a service.
//
//	PENDING -> IN_PROGRESS -> CONCLUDED
//	PENDING | IN_PROGRESS  -> CANCELLED
//
// CONCLUDED and CANCELLED are terminal.
type StepStatus string

const (
	StepStatusPending    StepStatus = "PENDING"
	StepStatusInProgress StepStatus = "IN_PROGRESS"
	StepStatusConcluded  StepStatus = "CONCLUDED"
	StepStatusCancelled  StepStatus = "CANCELLED"
)

func (s StepStatus) IsTerminal() bool {
	return s == StepStatusConcluded || s == StepStatusCancelled
}

// Step is an atomic unit of work inside a service.
//
// A step without ServiceID is a category template: it is copied into services
// but never transitions itself.
type Step struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Observation        string     `json:"observation,omitempty"`
	ResponsableClient  string     `json:"responsable_client,omitempty"`
	ServiceID          string     `json:"service_id,omitempty"`
	CategoryID         string     `json:"category_id,omitempty"`
	ResponsableID      *int64     `json:"responsable_id,omitempty"`
	Status             StepStatus `json:"status"`
	DatetimeStart      *time.Time `json:"datetime_start,omitempty"`
	DatetimeConclusion *time.Time `json:"datetime_conclusion,omitempty"`
	DatetimeExpiration *time.Time `json:"datetime_expiration,omitempty"`
	ReasonCancellament string     `json:"reason_cancellament,omitempty"`
	Images             []Image    `json:"images,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (s Step) IsTemplate() bool {
	return s.ServiceID == ""
}

// IsOverdue reports whether the step passed its deadline without being concluded.
// Cancelled steps past their deadline still count.
func (s Step) IsOverdue(now time.Time) bool {
	if s.DatetimeExpiration == nil {
		return false
	}
	return s.DatetimeExpiration.Before(now) && s.Status != StepStatusConcluded
}
