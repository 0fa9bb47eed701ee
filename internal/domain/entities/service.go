package entities

import "time"

// ServiceStatus represents the lifecycle of a service (work order).
//
// Domain notes:
//   - PENDING is the initial state; it is promoted to IN_PROGRESS as soon as
//     one of its steps starts.
//   - CONCLUDED and CANCELLED are only ever set manually and are final for the
//     automatic derivation.
type ServiceStatus string

const (
	ServiceStatusPending    ServiceStatus = "PENDING"
	ServiceStatusInProgress ServiceStatus = "IN_PROGRESS"
	ServiceStatusConcluded  ServiceStatus = "CONCLUDED"
	ServiceStatusCancelled  ServiceStatus = "CANCELLED"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceStatusPending, ServiceStatusInProgress, ServiceStatusConcluded, ServiceStatusCancelled:
		return true
	}
	return false
}

func (s ServiceStatus) IsTerminal() bool {
	return s == ServiceStatusConcluded || s == ServiceStatusCancelled
}

// Service is a work order for a client, composed of ordered steps.
//
// Storage model (DynamoDB):
//   - PK: id
//   - steps live in their own table (GSI service_id-index)
//
// Client, Category, ClientCopyMachine and Steps are joined on read and never
// persisted with the service item.
type Service struct {
	ID                  string        `json:"id"`
	ClientID            string        `json:"client_id,omitempty"`
	CategoryID          string        `json:"category_id,omitempty"`
	ClientCopyMachineID string        `json:"client_copy_machine_id,omitempty"`
	Description         string        `json:"description,omitempty"`
	Status              ServiceStatus `json:"status"`
	Priority            string        `json:"priority,omitempty"`
	ReasonCancellament  string        `json:"reason_cancellament,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`

	Client            *Client            `json:"client,omitempty"`
	Category          *Category          `json:"category,omitempty"`
	ClientCopyMachine *ClientCopyMachine `json:"clientCopyMachine,omitempty"`
	Steps             []Step             `json:"steps,omitempty"`
}

// ServiceStats is the point-in-time health breakdown of all services.
type ServiceStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Overdue    int `json:"overdue"`
	ThisWeek   int `json:"thisWeek"`
	ThisMonth  int `json:"thisMonth"`
}
