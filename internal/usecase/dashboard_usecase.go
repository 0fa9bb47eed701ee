package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"copiadora_xpto/internal/domain/analytics"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

// IDashboardUseCase serves the monthly statistics snapshot.
//
// Only the current month is ever computed. Past months are read as they were
// last written.
type IDashboardUseCase interface {
	GetStats(ctx context.Context, force bool) (entities.DashboardStats, error)
	GetStatsForMonth(ctx context.Context, year, month int) (*entities.DashboardStats, error)
	ListHistory(ctx context.Context) ([]entities.DashboardStats, error)
}

type DashboardUseCase struct {
	snapshots interfaces.IDashboardStatsRepository
	services  IServiceUseCase
	clients   interfaces.IClientRepository
	loc       *time.Location
	now       func() time.Time
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(snapshots interfaces.IDashboardStatsRepository, services IServiceUseCase, clients interfaces.IClientRepository, loc *time.Location) *DashboardUseCase {
	return &DashboardUseCase{
		snapshots: snapshots,
		services:  services,
		clients:   clients,
		loc:       resolveLocation(loc),
		now:       systemClock,
	}
}

func (u *DashboardUseCase) GetStats(ctx context.Context, force bool) (entities.DashboardStats, error) {
	now := u.now().In(u.loc)
	year, month := now.Year(), int(now.Month())

	existing, err := u.snapshots.Get(ctx, year, month)
	if err != nil {
		return entities.DashboardStats{}, err
	}
	if !force && !existing.IsZero() {
		return existing, nil
	}

	log.Printf("[dashboard][usecase] computing snapshot year=%d month=%d force=%t", year, month, force)
	services, err := u.services.GetStats(ctx)
	if err != nil {
		log.Printf("[dashboard][usecase] service stats failed err=%v", err)
		return entities.DashboardStats{}, err
	}
	clients, err := u.clientStats(ctx, now)
	if err != nil {
		log.Printf("[dashboard][usecase] client stats failed err=%v", err)
		return entities.DashboardStats{}, err
	}

	ts := now.UTC()
	snapshot := entities.DashboardStats{
		Year:      year,
		Month:     month,
		Clients:   clients,
		Services:  services,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if !existing.IsZero() {
		snapshot.CreatedAt = existing.CreatedAt
	}

	saved, err := u.snapshots.Upsert(ctx, snapshot)
	if err != nil {
		log.Printf("[dashboard][usecase] upsert failed year=%d month=%d err=%v", year, month, err)
		return entities.DashboardStats{}, err
	}
	return saved, nil
}

// GetStatsForMonth returns nil when no snapshot was ever taken for the month.
func (u *DashboardUseCase) GetStatsForMonth(ctx context.Context, year, month int) (*entities.DashboardStats, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}
	if year < 1 {
		return nil, ErrInvalidYear
	}
	s, err := u.snapshots.Get(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if s.IsZero() {
		return nil, nil
	}
	return &s, nil
}

// ListHistory orders snapshots by year, then month, most recent first.
func (u *DashboardUseCase) ListHistory(ctx context.Context) ([]entities.DashboardStats, error) {
	list, err := u.snapshots.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Year != list[j].Year {
			return list[i].Year > list[j].Year
		}
		return list[i].Month > list[j].Month
	})
	return list, nil
}

func (u *DashboardUseCase) clientStats(ctx context.Context, now time.Time) (entities.ClientStats, error) {
	total, err := u.clients.Count(ctx)
	if err != nil {
		return entities.ClientStats{}, err
	}
	from := analytics.StartOfMonth(now)
	newThisMonth, err := u.clients.CountCreatedBetween(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return entities.ClientStats{}, err
	}
	return entities.ClientStats{Total: total, NewThisMonth: newThisMonth}, nil
}
