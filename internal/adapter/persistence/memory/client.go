package memory

import (
	"context"
	"time"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

// PutClient seeds a client. Clients are owned by another subsystem and only
// read here.
func (s *Store) PutClient(c entities.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = copyClient(c)
}

// PutCopyMachine seeds a client copy machine.
func (s *Store) PutCopyMachine(m entities.ClientCopyMachine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machines[m.ID] = copyMachine(m)
}

type clientRepository struct {
	s *Store
}

var _ interfaces.IClientRepository = (*clientRepository)(nil)

func (r *clientRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.clients[id]
	if !ok {
		return entities.Client{}, nil
	}
	return copyClient(c), nil
}

func (r *clientRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.Client, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.Client, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.s.clients[id]; ok {
			out = append(out, copyClient(c))
		}
	}
	return out, nil
}

func (r *clientRepository) Count(ctx context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.clients), nil
}

func (r *clientRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, c := range r.s.clients {
		if !c.CreatedAt.Before(from) && c.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

type copyMachineRepository struct {
	s *Store
}

var _ interfaces.ICopyMachineRepository = (*copyMachineRepository)(nil)

func (r *copyMachineRepository) GetByID(ctx context.Context, id string) (entities.ClientCopyMachine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.machines[id]
	if !ok {
		return entities.ClientCopyMachine{}, nil
	}
	return copyMachine(m), nil
}

func (r *copyMachineRepository) GetByIDs(ctx context.Context, ids []string) ([]entities.ClientCopyMachine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.ClientCopyMachine, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.s.machines[id]; ok {
			out = append(out, copyMachine(m))
		}
	}
	return out, nil
}
