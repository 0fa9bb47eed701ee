package interfaces

import (
	"context"
	"copiadora_xpto/internal/domain/entities"
)

// ServiceFilter holds the filters that apply to columns of the service item
// itself. Empty fields are not applied.
type ServiceFilter struct {
	CategoryID          string
	ClientID            string
	ClientCopyMachineID string
}

// StepChanges is a reconciliation of a service's steps applied atomically
// together with the service write.
type StepChanges struct {
	Create []entities.Step
	Update []entities.Step
	Delete []string
}

func (c StepChanges) IsEmpty() bool {
	return len(c.Create) == 0 && len(c.Update) == 0 && len(c.Delete) == 0
}

// IServiceRepository abstracts persistence for Service and the steps it owns.
//
// Lookups return a zero Service (empty ID) and nil error when nothing matches.

type IServiceRepository interface {
	Create(ctx context.Context, s entities.Service, steps []entities.Step) (entities.Service, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]entities.Service, error)
	Update(ctx context.Context, s entities.Service, changes StepChanges) (entities.Service, error)
	Delete(ctx context.Context, id string, stepIDs []string) error
	CountByCategoryID(ctx context.Context, categoryID string) (int, error)
}
