package memory

import (
	"context"
	"fmt"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

type imageRepository struct {
	s *Store
}

var _ interfaces.IImageRepository = (*imageRepository)(nil)

func (r *imageRepository) Create(ctx context.Context, img entities.Image) (entities.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.images[img.ID]; exists {
		return entities.Image{}, fmt.Errorf("image already exists: %s", img.ID)
	}
	r.s.images[img.ID] = img
	return img, nil
}

func (r *imageRepository) GetByID(ctx context.Context, id string) (entities.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.images[id], nil
}

func (r *imageRepository) ListByStepID(ctx context.Context, stepID string) ([]entities.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.Image, 0)
	for _, img := range r.s.images {
		if img.StepID == stepID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *imageRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.images, id)
	return nil
}
