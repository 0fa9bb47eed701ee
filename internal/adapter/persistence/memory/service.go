package memory

import (
	"context"
	"fmt"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

type serviceRepository struct {
	s *Store
}

var _ interfaces.IServiceRepository = (*serviceRepository)(nil)

func (r *serviceRepository) Create(ctx context.Context, svc entities.Service, steps []entities.Step) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.services[svc.ID]; exists {
		return entities.Service{}, fmt.Errorf("service already exists: %s", svc.ID)
	}
	for _, st := range steps {
		if _, exists := r.s.steps[st.ID]; exists {
			return entities.Service{}, fmt.Errorf("step already exists: %s", st.ID)
		}
	}

	r.s.services[svc.ID] = copyService(svc)
	for _, st := range steps {
		r.s.steps[st.ID] = copyStep(st)
	}
	return copyService(svc), nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (entities.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	svc, ok := r.s.services[id]
	if !ok {
		return entities.Service{}, nil
	}
	return copyService(svc), nil
}

func (r *serviceRepository) List(ctx context.Context, filter interfaces.ServiceFilter) ([]entities.Service, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		if filter.CategoryID != "" && svc.CategoryID != filter.CategoryID {
			continue
		}
		if filter.ClientID != "" && svc.ClientID != filter.ClientID {
			continue
		}
		if filter.ClientCopyMachineID != "" && svc.ClientCopyMachineID != filter.ClientCopyMachineID {
			continue
		}
		out = append(out, copyService(svc))
	}
	return out, nil
}

func (r *serviceRepository) Update(ctx context.Context, svc entities.Service, changes interfaces.StepChanges) (entities.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[svc.ID]; !ok {
		return entities.Service{}, interfaces.ErrConcurrentUpdate
	}
	if err := r.s.applyStepChanges(changes, func(st entities.Step) bool { return st.ServiceID == svc.ID }); err != nil {
		return entities.Service{}, err
	}
	r.s.services[svc.ID] = copyService(svc)
	return copyService(svc), nil
}

func (r *serviceRepository) Delete(ctx context.Context, id string, stepIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return interfaces.ErrConcurrentUpdate
	}
	for _, stepID := range stepIDs {
		delete(r.s.steps, stepID)
	}
	delete(r.s.services, id)
	return nil
}

func (r *serviceRepository) CountByCategoryID(ctx context.Context, categoryID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, svc := range r.s.services {
		if svc.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// applyStepChanges validates the whole change set before writing anything.
// Callers must hold the write lock.
func (s *Store) applyStepChanges(changes interfaces.StepChanges, owned func(entities.Step) bool) error {
	for _, st := range changes.Create {
		if _, exists := s.steps[st.ID]; exists {
			return fmt.Errorf("step already exists: %s", st.ID)
		}
	}
	for _, st := range changes.Update {
		cur, ok := s.steps[st.ID]
		if !ok || !owned(cur) {
			return interfaces.ErrConcurrentUpdate
		}
	}
	for _, id := range changes.Delete {
		cur, ok := s.steps[id]
		if !ok || !owned(cur) {
			return interfaces.ErrConcurrentUpdate
		}
	}

	for _, id := range changes.Delete {
		delete(s.steps, id)
	}
	for _, st := range changes.Update {
		// Status and its timestamps belong to the step machine.
		cur := s.steps[st.ID]
		st.Status = cur.Status
		st.DatetimeStart = cur.DatetimeStart
		st.DatetimeConclusion = cur.DatetimeConclusion
		st.ReasonCancellament = cur.ReasonCancellament
		st.CreatedAt = cur.CreatedAt
		s.steps[st.ID] = copyStep(st)
	}
	for _, st := range changes.Create {
		s.steps[st.ID] = copyStep(st)
	}
	return nil
}
