package interfaces

import (
	"context"
	"copiadora_xpto/internal/domain/entities"
	"time"
)

// ICategoryRepository persists categories and their step templates.
type ICategoryRepository interface {
	Create(ctx context.Context, c entities.Category, templates []entities.Step) (entities.Category, error)
	GetByID(ctx context.Context, id string) (entities.Category, error)
	GetByIDs(ctx context.Context, ids []string) ([]entities.Category, error)
	List(ctx context.Context) ([]entities.Category, error)
	Update(ctx context.Context, c entities.Category, changes StepChanges) (entities.Category, error)
	Delete(ctx context.Context, id string, templateIDs []string) error
}

// IClientRepository is the read side of the clients subsystem.
type IClientRepository interface {
	GetByID(ctx context.Context, id string) (entities.Client, error)
	GetByIDs(ctx context.Context, ids []string) ([]entities.Client, error)
	Count(ctx context.Context) (int, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}

// ICopyMachineRepository is the read side of the equipment subsystem.
type ICopyMachineRepository interface {
	GetByID(ctx context.Context, id string) (entities.ClientCopyMachine, error)
	GetByIDs(ctx context.Context, ids []string) ([]entities.ClientCopyMachine, error)
}
