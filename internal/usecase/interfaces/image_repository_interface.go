package interfaces

import (
	"context"
	"copiadora_xpto/internal/domain/entities"
)

type IImageRepository interface {
	Create(ctx context.Context, img entities.Image) (entities.Image, error)
	GetByID(ctx context.Context, id string) (entities.Image, error)
	ListByStepID(ctx context.Context, stepID string) ([]entities.Image, error)
	Delete(ctx context.Context, id string) error
}

// IImageStorage stores image bytes and hands back the path to record.
type IImageStorage interface {
	Store(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}
