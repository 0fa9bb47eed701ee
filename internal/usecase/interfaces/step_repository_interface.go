package interfaces

import (
	"context"
	"copiadora_xpto/internal/domain/entities"
	"errors"
)

// ErrConcurrentUpdate is returned when a conditional write lost a race.
var ErrConcurrentUpdate = entities.NewError(entities.ErrConflict, "the record was modified concurrently, retry the operation")

// StepTransition is a step status change plus the derived service write, if
// any. Both are committed in one transaction; the step write is conditioned on
// PreviousStatus and the service write on the service still being PENDING.
type StepTransition struct {
	Step           entities.Step
	PreviousStatus entities.StepStatus
	Service        *entities.Service
}

// IStepRepository abstracts persistence for Step.
//
// Lookups return a zero Step (empty ID) and nil error when nothing matches.

type IStepRepository interface {
	GetByID(ctx context.Context, id string) (entities.Step, error)
	ListByServiceID(ctx context.Context, serviceID string) ([]entities.Step, error)
	ListByResponsable(ctx context.Context, userID int64) ([]entities.Step, error)
	ListTemplatesByCategoryID(ctx context.Context, categoryID string) ([]entities.Step, error)
	ListAll(ctx context.Context) ([]entities.Step, error)
	UpdateNotes(ctx context.Context, step entities.Step) (entities.Step, error)
	CommitTransition(ctx context.Context, t StepTransition) error
	ClearResponsable(ctx context.Context, userID int64) (int, error)
}

// IsConcurrentUpdate reports whether err came from a lost conditional write.
func IsConcurrentUpdate(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}
