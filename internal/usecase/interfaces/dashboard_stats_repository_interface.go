package interfaces

import (
	"context"
	"copiadora_xpto/internal/domain/entities"
)

// IDashboardStatsRepository stores monthly snapshots keyed by (year, month).
type IDashboardStatsRepository interface {
	Get(ctx context.Context, year, month int) (entities.DashboardStats, error)
	Upsert(ctx context.Context, s entities.DashboardStats) (entities.DashboardStats, error)
	ListAll(ctx context.Context) ([]entities.DashboardStats, error)
}
