package memory

import (
	"context"
	"fmt"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

type categoryRepository struct {
	s *Store
}

var _ interfaces.ICategoryRepository = (*categoryRepository)(nil)

func copyCategory(c entities.Category) entities.Category {
	c.Steps = nil
	return c
}

func (r *categoryRepository) Create(ctx context.Context, c entities.Category, templates []entities.Step) (entities.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.categories[c.ID]; exists {
		return entities.Category{}, fmt.Errorf("category already exists: %s", c.ID)
	}
	if err := r.s.applyStepChanges(interfaces.StepChanges{Create: templates}, nil); err != nil {
		return entities.Category{}, err
	}
	r.s.categories[c.ID] = copyCategory(c)
	return copyCategory(c), nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (entities.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return copyCategory(r.s.categories[id]), nil
}

func (r *categoryRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok {
			out = append(out, copyCategory(c))
		}
	}
	return out, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]entities.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, copyCategory(c))
	}
	return out, nil
}

func (r *categoryRepository) Update(ctx context.Context, c entities.Category, changes interfaces.StepChanges) (entities.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[c.ID]; !ok {
		return entities.Category{}, interfaces.ErrConcurrentUpdate
	}
	isTemplate := func(st entities.Step) bool { return st.IsTemplate() && st.CategoryID == c.ID }
	if err := r.s.applyStepChanges(changes, isTemplate); err != nil {
		return entities.Category{}, err
	}
	r.s.categories[c.ID] = copyCategory(c)
	return copyCategory(c), nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string, templateIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return interfaces.ErrConcurrentUpdate
	}
	for _, sid := range templateIDs {
		delete(r.s.steps, sid)
	}
	delete(r.s.categories, id)
	return nil
}
