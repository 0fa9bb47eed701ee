package memory

import (
	"context"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

type dashboardStatsRepository struct {
	s *Store
}

var _ interfaces.IDashboardStatsRepository = (*dashboardStatsRepository)(nil)

func (r *dashboardStatsRepository) Get(ctx context.Context, year, month int) (entities.DashboardStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.snapshots[snapshotKey{year, month}], nil
}

func (r *dashboardStatsRepository) Upsert(ctx context.Context, stats entities.DashboardStats) (entities.DashboardStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := snapshotKey{stats.Year, stats.Month}
	if prev, ok := r.s.snapshots[key]; ok && !prev.CreatedAt.IsZero() {
		stats.CreatedAt = prev.CreatedAt
	}
	r.s.snapshots[key] = stats
	return stats, nil
}

func (r *dashboardStatsRepository) ListAll(ctx context.Context) ([]entities.DashboardStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]entities.DashboardStats, 0, len(r.s.snapshots))
	for _, st := range r.s.snapshots {
		out = append(out, st)
	}
	return out, nil
}
