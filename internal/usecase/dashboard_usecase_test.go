package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"copiadora_xpto/internal/domain/entities"
	mock_interfaces "copiadora_xpto/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type fakeServiceStats struct {
	IServiceUseCase
	stats entities.ServiceStats
	calls int
}

func (f *fakeServiceStats) GetStats(context.Context) (entities.ServiceStats, error) {
	f.calls++
	return f.stats, nil
}

func newDashboardUseCase(t *testing.T) (*DashboardUseCase, *mock_interfaces.MockIDashboardStatsRepository, *mock_interfaces.MockIClientRepository, *fakeServiceStats) {
	ctrl := gomock.NewController(t)
	snapshots := mock_interfaces.NewMockIDashboardStatsRepository(ctrl)
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	services := &fakeServiceStats{stats: entities.ServiceStats{Total: 4, Pending: 4}}
	uc := NewDashboardUseCase(snapshots, services, clients, time.UTC)
	uc.now = func() time.Time { return fixedNow }
	return uc, snapshots, clients, services
}

func TestDashboardUseCase_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("serves cached snapshot", func(t *testing.T) {
		uc, snapshots, _, services := newDashboardUseCase(t)
		cached := entities.DashboardStats{Year: 2026, Month: 10, Services: entities.ServiceStats{Total: 1}}
		snapshots.EXPECT().Get(gomock.Any(), 2026, 10).Return(cached, nil)

		got, err := uc.GetStats(ctx, false)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got.Services.Total != 1 || services.calls != 0 {
			t.Fatalf("expected cached snapshot without recompute")
		}
	})

	t.Run("computes and upserts on miss", func(t *testing.T) {
		uc, snapshots, clients, _ := newDashboardUseCase(t)
		snapshots.EXPECT().Get(gomock.Any(), 2026, 10).Return(entities.DashboardStats{}, nil)
		clients.EXPECT().Count(gomock.Any()).Return(12, nil)
		clients.EXPECT().CountCreatedBetween(gomock.Any(),
			time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
		).Return(3, nil)
		snapshots.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.DashboardStats) (entities.DashboardStats, error) {
				if s.Year != 2026 || s.Month != 10 || s.Clients.Total != 12 || s.Clients.NewThisMonth != 3 || s.Services.Total != 4 {
					t.Fatalf("unexpected snapshot: %+v", s)
				}
				return s, nil
			},
		)

		if _, err := uc.GetStats(ctx, false); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	})

	t.Run("force recomputes and keeps created_at", func(t *testing.T) {
		uc, snapshots, clients, services := newDashboardUseCase(t)
		created := fixedNow.AddDate(0, 0, -10)
		snapshots.EXPECT().Get(gomock.Any(), 2026, 10).Return(entities.DashboardStats{Year: 2026, Month: 10, CreatedAt: created}, nil)
		clients.EXPECT().Count(gomock.Any()).Return(1, nil)
		clients.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
		snapshots.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, s entities.DashboardStats) (entities.DashboardStats, error) {
				if !s.CreatedAt.Equal(created) || !s.UpdatedAt.Equal(fixedNow) {
					t.Fatalf("unexpected timestamps: %+v", s)
				}
				return s, nil
			},
		)

		if _, err := uc.GetStats(ctx, true); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if services.calls != 1 {
			t.Fatalf("expected one recompute, got %d", services.calls)
		}
	})

	t.Run("store error", func(t *testing.T) {
		uc, snapshots, _, _ := newDashboardUseCase(t)
		snapshots.EXPECT().Get(gomock.Any(), 2026, 10).Return(entities.DashboardStats{}, errors.New("db"))

		if _, err := uc.GetStats(ctx, false); err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

func TestDashboardUseCase_GetStatsForMonth(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid month", func(t *testing.T) {
		uc, _, _, _ := newDashboardUseCase(t)
		for _, m := range []int{0, 13} {
			if _, err := uc.GetStatsForMonth(ctx, 2026, m); !errors.Is(err, ErrInvalidMonth) {
				t.Fatalf("month %d: expected ErrInvalidMonth, got %v", m, err)
			}
		}
	})

	t.Run("absent month is nil", func(t *testing.T) {
		uc, snapshots, _, _ := newDashboardUseCase(t)
		snapshots.EXPECT().Get(gomock.Any(), 2025, 2).Return(entities.DashboardStats{}, nil)

		got, err := uc.GetStatsForMonth(ctx, 2025, 2)
		if err != nil || got != nil {
			t.Fatalf("expected nil snapshot, got %+v err=%v", got, err)
		}
	})

	t.Run("historical month is never recomputed", func(t *testing.T) {
		uc, snapshots, _, services := newDashboardUseCase(t)
		snapshots.EXPECT().Get(gomock.Any(), 2025, 2).Return(entities.DashboardStats{Year: 2025, Month: 2}, nil)

		got, err := uc.GetStatsForMonth(ctx, 2025, 2)
		if err != nil || got == nil || got.Month != 2 {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
		if services.calls != 0 {
			t.Fatalf("historical reads must not recompute")
		}
	})
}

func TestDashboardUseCase_ListHistory(t *testing.T) {
	uc, snapshots, _, _ := newDashboardUseCase(t)
	snapshots.EXPECT().ListAll(gomock.Any()).Return([]entities.DashboardStats{
		{Year: 2025, Month: 12},
		{Year: 2026, Month: 2},
		{Year: 2026, Month: 10},
		{Year: 2025, Month: 1},
	}, nil)

	got, err := uc.ListHistory(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := [][2]int{{2026, 10}, {2026, 2}, {2025, 12}, {2025, 1}}
	for i, w := range want {
		if got[i].Year != w[0] || got[i].Month != w[1] {
			t.Fatalf("position %d: expected %v, got %d/%d", i, w, got[i].Year, got[i].Month)
		}
	}
}
