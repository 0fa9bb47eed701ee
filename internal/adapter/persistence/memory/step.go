package memory

import (
	"context"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

type stepRepository struct {
	s *Store
}

var _ interfaces.IStepRepository = (*stepRepository)(nil)

func (r *stepRepository) GetByID(ctx context.Context, id string) (entities.Step, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.steps[id]
	if !ok {
		return entities.Step{}, nil
	}
	return copyStep(st), nil
}

func (r *stepRepository) ListByServiceID(ctx context.Context, serviceID string) ([]entities.Step, error) {
	return r.filter(func(st entities.Step) bool {
		return serviceID != "" && st.ServiceID == serviceID
	}), nil
}

func (r *stepRepository) ListByResponsable(ctx context.Context, userID int64) ([]entities.Step, error) {
	return r.filter(func(st entities.Step) bool {
		return st.ResponsableID != nil && *st.ResponsableID == userID
	}), nil
}

func (r *stepRepository) ListTemplatesByCategoryID(ctx context.Context, categoryID string) ([]entities.Step, error) {
	return r.filter(func(st entities.Step) bool {
		return st.IsTemplate() && st.CategoryID == categoryID
	}), nil
}

func (r *stepRepository) ListAll(ctx context.Context) ([]entities.Step, error) {
	return r.filter(func(entities.Step) bool { return true }), nil
}

func (r *stepRepository) UpdateNotes(ctx context.Context, step entities.Step) (entities.Step, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.steps[step.ID]
	if !ok {
		return entities.Step{}, nil
	}
	cur.Observation = step.Observation
	cur.ResponsableClient = step.ResponsableClient
	cur.UpdatedAt = step.UpdatedAt
	r.s.steps[cur.ID] = cur
	return copyStep(cur), nil
}

func (r *stepRepository) CommitTransition(ctx context.Context, t interfaces.StepTransition) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.steps[t.Step.ID]
	if !ok || cur.Status != t.PreviousStatus {
		return interfaces.ErrConcurrentUpdate
	}
	if t.Service != nil {
		svc, ok := r.s.services[t.Service.ID]
		if !ok || svc.Status != entities.ServiceStatusPending {
			return interfaces.ErrConcurrentUpdate
		}
	}

	r.s.steps[t.Step.ID] = copyStep(t.Step)
	if t.Service != nil {
		svc := r.s.services[t.Service.ID]
		svc.Status = t.Service.Status
		svc.UpdatedAt = t.Service.UpdatedAt
		r.s.services[svc.ID] = svc
	}
	return nil
}

func (r *stepRepository) ClearResponsable(ctx context.Context, userID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	n := 0
	for id, st := range r.s.steps {
		if st.ResponsableID == nil || *st.ResponsableID != userID {
			continue
		}
		st.ResponsableID = nil
		st.UpdatedAt = now
		r.s.steps[id] = st
		n++
	}
	return n, nil
}

func (r *stepRepository) filter(keep func(entities.Step) bool) []entities.Step {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.Step, 0)
	for _, st := range r.s.steps {
		if keep(st) {
			out = append(out, copyStep(st))
		}
	}
	sortSteps(out)
	return out
}
