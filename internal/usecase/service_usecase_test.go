package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"copiadora_xpto/internal/adapter/persistence/memory"
	"copiadora_xpto/internal/domain/analytics"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/infrastructure/storage"
)

type scenario struct {
	store    *memory.Store
	images   *storage.MemoryImageStore
	services *ServiceUseCase
	steps    *StepUseCase
	clock    time.Time
}

func newScenario(t *testing.T) *scenario {
	t.Helper()
	s := &scenario{store: memory.New(), images: storage.NewMemoryImageStore(), clock: fixedNow}
	now := func() time.Time { return s.clock }

	s.services = NewServiceUseCase(ServiceUseCaseDeps{
		Services:   s.store.Services(),
		Steps:      s.store.Steps(),
		Images:     s.store.Images(),
		Storage:    s.images,
		Categories: s.store.Categories(),
		Clients:    s.store.Clients(),
		Machines:   s.store.CopyMachines(),
	}, analytics.ModeLatestStep, time.UTC)
	s.services.now = now

	s.steps = NewStepUseCase(s.store.Steps(), s.store.Services(), s.store.Images(), s.images, nil, time.UTC)
	s.steps.now = now

	city := func(id string) *entities.Address {
		return &entities.Address{ID: "addr-" + id, Neighborhood: &entities.Neighborhood{ID: "n-" + id, City: &entities.City{ID: id}}}
	}
	s.store.PutClient(entities.Client{ID: "client-1", Name: "Acme", Address: city("city-1")})
	s.store.PutClient(entities.Client{ID: "client-2", Name: "Globex", Address: city("city-2")})
	s.store.PutCopyMachine(entities.ClientCopyMachine{ID: "ccm-1", ClientID: "client-1", AcquisitionType: entities.AcquisitionTypeRent})
	s.store.PutCopyMachine(entities.ClientCopyMachine{ID: "ccm-2", ClientID: "client-2", AcquisitionType: entities.AcquisitionTypeSold})
	if _, err := s.store.Categories().Create(context.Background(), entities.Category{ID: "cat-2", Name: "Maintenance"}, nil); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return s
}

func (s *scenario) create(t *testing.T, in CreateServiceInput) entities.Service {
	t.Helper()
	svc, err := s.services.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	return svc
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{2, 500, 2, 100},
		{1, -1, 1, 1},
		{4, 100, 4, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d limit=%d", tt.page, tt.limit), func(t *testing.T) {
			p, l := NormalizePage(tt.page, tt.limit)
			if p != tt.wantPage || l != tt.wantLimit {
				t.Fatalf("expected (%d,%d), got (%d,%d)", tt.wantPage, tt.wantLimit, p, l)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	if got := TotalPages(25, 10); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := TotalPages(0, 10); got != 1 {
		t.Fatalf("expected 1 for empty result, got %d", got)
	}
	if got := TotalPages(20, 10); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestServiceUseCase_FindAllPagination(t *testing.T) {
	s := newScenario(t)
	for i := 0; i < 25; i++ {
		s.clock = fixedNow.Add(time.Duration(i) * time.Minute)
		s.create(t, CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2", Description: fmt.Sprintf("svc-%02d", i)})
	}

	page, err := s.services.FindAll(context.Background(), ServiceQuery{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if page.Total != 25 || page.TotalPages != 3 || len(page.Data) != 10 {
		t.Fatalf("unexpected page: total=%d totalPages=%d len=%d", page.Total, page.TotalPages, len(page.Data))
	}
	if page.Data[0].Description != "svc-24" {
		t.Fatalf("expected newest first, got %s", page.Data[0].Description)
	}
	if page.Data[0].Client == nil || page.Data[0].Category == nil {
		t.Fatalf("expected joined client and category")
	}

	last, _ := s.services.FindAll(context.Background(), ServiceQuery{Page: 3, Limit: 10})
	if len(last.Data) != 5 || last.Data[4].Description != "svc-00" {
		t.Fatalf("unexpected last page: %d items", len(last.Data))
	}

	clamped, _ := s.services.FindAll(context.Background(), ServiceQuery{Limit: 500})
	if clamped.Limit != 100 || clamped.Page != 1 || len(clamped.Data) != 25 {
		t.Fatalf("expected clamp to 100, got limit=%d page=%d", clamped.Limit, clamped.Page)
	}

	beyond, _ := s.services.FindAll(context.Background(), ServiceQuery{Page: 9, Limit: 10})
	if len(beyond.Data) != 0 || beyond.Total != 25 {
		t.Fatalf("expected empty page beyond the end, got %d", len(beyond.Data))
	}
}

func TestServiceUseCase_FindAllFilters(t *testing.T) {
	s := newScenario(t)
	s.create(t, CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2", ClientCopyMachineID: "ccm-1"})
	s.create(t, CreateServiceInput{ClientID: "client-2", CategoryID: "cat-2", ClientCopyMachineID: "ccm-2"})
	s.create(t, CreateServiceInput{ClientID: "client-2", CategoryID: "cat-2"})

	tests := []struct {
		name string
		q    ServiceQuery
		want int
	}{
		{"no filter", ServiceQuery{}, 3},
		{"client", ServiceQuery{ClientID: "client-2"}, 2},
		{"machine", ServiceQuery{ClientCopyMachineID: "ccm-1"}, 1},
		{"city", ServiceQuery{CityID: "city-2"}, 2},
		{"acquisition", ServiceQuery{AcquisitionType: entities.AcquisitionTypeSold}, 1},
		{"city and acquisition", ServiceQuery{CityID: "city-1", AcquisitionType: entities.AcquisitionTypeSold}, 0},
		{"unknown category", ServiceQuery{CategoryID: "cat-x"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.services.FindAll(context.Background(), tt.q)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if page.Total != tt.want || len(page.Data) != tt.want {
				t.Fatalf("expected %d, got total=%d len=%d", tt.want, page.Total, len(page.Data))
			}
		})
	}

	_, err := s.services.FindAll(context.Background(), ServiceQuery{AcquisitionType: "LEASE"})
	if !errors.Is(err, ErrInvalidAcquisitionType) {
		t.Fatalf("expected ErrInvalidAcquisitionType, got %v", err)
	}
}

func TestServiceUseCase_CreateRoundTrip(t *testing.T) {
	s := newScenario(t)
	created := s.create(t, CreateServiceInput{
		ClientID:   "client-1",
		CategoryID: "cat-2",
		Steps: []StepInput{
			{Name: "Inspect", Description: "check rollers"},
			{Name: "Replace toner", Description: "black cartridge"},
		},
	})

	got, err := s.services.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != entities.ServiceStatusPending {
		t.Fatalf("expected PENDING, got %s", got.Status)
	}
	if len(got.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(got.Steps))
	}
	want := []StepInput{{Name: "Inspect", Description: "check rollers"}, {Name: "Replace toner", Description: "black cartridge"}}
	for i, st := range got.Steps {
		if st.Name != want[i].Name || st.Description != want[i].Description || st.Status != entities.StepStatusPending {
			t.Fatalf("step %d mismatch: %+v", i, st)
		}
		if st.ServiceID != created.ID || st.CategoryID != "cat-2" {
			t.Fatalf("step %d not linked: %+v", i, st)
		}
	}
}

func TestServiceUseCase_CreateValidation(t *testing.T) {
	s := newScenario(t)
	tests := []struct {
		name string
		in   CreateServiceInput
		want error
	}{
		{"missing client", CreateServiceInput{CategoryID: "cat-2"}, ErrClientRequired},
		{"missing category", CreateServiceInput{ClientID: "client-1"}, ErrCategoryRequired},
		{"unknown client", CreateServiceInput{ClientID: "nope", CategoryID: "cat-2"}, ErrClientNotFound},
		{"unknown category", CreateServiceInput{ClientID: "client-1", CategoryID: "nope"}, ErrCategoryNotFound},
		{"unknown machine", CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2", ClientCopyMachineID: "nope"}, ErrCopyMachineNotFound},
		{"unnamed step", CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2", Steps: []StepInput{{Name: " "}}}, ErrStepNameRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.services.Create(context.Background(), tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	page, _ := s.services.FindAll(context.Background(), ServiceQuery{})
	if page.Total != 0 {
		t.Fatalf("failed creates must not persist, got %d", page.Total)
	}
}

func TestScenario_StartPromotesService(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	svc := s.create(t, CreateServiceInput{
		ClientID:   "client-1",
		CategoryID: "cat-2",
		Steps:      []StepInput{{Name: "Inspect", ResponsableID: int64Ptr(5)}},
	})
	stepID := svc.Steps[0].ID
	user := entities.Actor{UserID: 5, Role: entities.RoleUser}

	started, err := s.steps.Start(ctx, user, stepID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if started.Status != entities.StepStatusInProgress || started.DatetimeStart == nil {
		t.Fatalf("unexpected step: %+v", started)
	}
	got, _ := s.services.GetByID(ctx, svc.ID)
	if got.Status != entities.ServiceStatusInProgress {
		t.Fatalf("expected service IN_PROGRESS, got %s", got.Status)
	}

	_, err = s.steps.Start(ctx, user, stepID)
	if !errors.Is(err, entities.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestScenario_FailedTransitionsDoNotMutate(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	svc := s.create(t, CreateServiceInput{
		ClientID:   "client-1",
		CategoryID: "cat-2",
		Steps:      []StepInput{{Name: "Inspect", ResponsableID: int64Ptr(5)}, {Name: "Clean", ResponsableID: int64Ptr(5)}},
	})
	stepID := svc.Steps[0].ID
	before, _ := s.steps.GetByID(ctx, stepID)

	if _, err := s.steps.Start(ctx, entities.Actor{UserID: 6}, stepID); !errors.Is(err, entities.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := s.steps.Cancel(ctx, entities.Actor{UserID: 5}, stepID, ""); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
	if _, err := s.steps.Conclude(ctx, entities.Actor{UserID: 5}, stepID); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	after, _ := s.steps.GetByID(ctx, stepID)
	if after.Status != before.Status || after.DatetimeStart != nil || !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("step mutated by failed calls: %+v", after)
	}
	got, _ := s.services.GetByID(ctx, svc.ID)
	if got.Status != entities.ServiceStatusPending {
		t.Fatalf("service mutated by failed calls: %s", got.Status)
	}
}

func TestScenario_ManualStatusIsNotOverridden(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	svc := s.create(t, CreateServiceInput{
		ClientID:   "client-1",
		CategoryID: "cat-2",
		Steps:      []StepInput{{Name: "Inspect", ResponsableID: int64Ptr(5)}, {Name: "Clean", ResponsableID: int64Ptr(5)}},
	})
	concluded := entities.ServiceStatusConcluded
	if _, err := s.services.Update(ctx, svc.ID, UpdateServiceInput{Status: &concluded}); err != nil {
		t.Fatalf("manual update: %v", err)
	}

	if _, err := s.steps.Start(ctx, entities.Actor{UserID: 5}, svc.Steps[0].ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, _ := s.services.GetByID(ctx, svc.ID)
	if got.Status != entities.ServiceStatusConcluded {
		t.Fatalf("expected CONCLUDED to stick, got %s", got.Status)
	}
}

func TestServiceUseCase_UpdateReconcilesSteps(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	svc := s.create(t, CreateServiceInput{
		ClientID:   "client-1",
		CategoryID: "cat-2",
		Steps: []StepInput{
			{Name: "Inspect", ResponsableID: int64Ptr(5)},
			{Name: "Clean", ResponsableID: int64Ptr(5)},
		},
	})
	keep, drop := svc.Steps[0], svc.Steps[1]

	if _, err := s.steps.Start(ctx, entities.Actor{UserID: 5}, keep.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.steps.AttachImage(ctx, entities.Actor{UserID: 5}, drop.ID, ImageUpload{FileName: "a.png", ContentType: "image/png", Data: []byte{1}}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	steps := []StepInput{
		{ID: keep.ID, Name: "Inspect rollers", ResponsableID: int64Ptr(5)},
		{Name: "Deliver report"},
	}
	updated, err := s.services.Update(ctx, svc.ID, UpdateServiceInput{Steps: &steps})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(updated.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(updated.Steps))
	}

	kept, _ := s.steps.GetByID(ctx, keep.ID)
	if kept.Name != "Inspect rollers" || kept.Status != entities.StepStatusInProgress || kept.DatetimeStart == nil {
		t.Fatalf("kept step lost its state: %+v", kept)
	}
	if gone, _ := s.store.Steps().GetByID(ctx, drop.ID); gone.ID != "" {
		t.Fatalf("dropped step still stored")
	}
	if s.images.Len() != 0 {
		t.Fatalf("images of dropped step must be purged, %d left", s.images.Len())
	}
	if updated.Status != entities.ServiceStatusInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", updated.Status)
	}

	bad := []StepInput{{ID: "not-a-step", Name: "x"}}
	if _, err := s.services.Update(ctx, svc.ID, UpdateServiceInput{Steps: &bad}); !errors.Is(err, ErrUnknownStepID) {
		t.Fatalf("expected ErrUnknownStepID, got %v", err)
	}
}

func TestServiceUseCase_UpdateCancellation(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	svc := s.create(t, CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2"})

	cancelled := entities.ServiceStatusCancelled
	if _, err := s.services.Update(ctx, svc.ID, UpdateServiceInput{Status: &cancelled}); !errors.Is(err, ErrServiceReasonRequired) {
		t.Fatalf("expected ErrServiceReasonRequired, got %v", err)
	}

	reason := "client closed"
	got, err := s.services.Update(ctx, svc.ID, UpdateServiceInput{Status: &cancelled, ReasonCancellament: &reason})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != entities.ServiceStatusCancelled || got.ReasonCancellament != reason {
		t.Fatalf("unexpected service: %+v", got)
	}

	pending := entities.ServiceStatusPending
	got, _ = s.services.Update(ctx, svc.ID, UpdateServiceInput{Status: &pending})
	if got.ReasonCancellament != "" {
		t.Fatalf("reason must be cleared, got %q", got.ReasonCancellament)
	}

	invalid := entities.ServiceStatus("ARCHIVED")
	if _, err := s.services.Update(ctx, svc.ID, UpdateServiceInput{Status: &invalid}); !errors.Is(err, ErrInvalidServiceStatus) {
		t.Fatalf("expected ErrInvalidServiceStatus, got %v", err)
	}
}

func TestServiceUseCase_Remove(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	svc := s.create(t, CreateServiceInput{
		ClientID:   "client-1",
		CategoryID: "cat-2",
		Steps:      []StepInput{{Name: "Inspect", ResponsableID: int64Ptr(5)}},
	})
	if _, err := s.steps.AttachImage(ctx, entities.Actor{UserID: 5}, svc.Steps[0].ID, ImageUpload{FileName: "a.png", ContentType: "image/png", Data: []byte{1}}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := s.services.Remove(ctx, svc.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := s.services.GetByID(ctx, svc.ID); !errors.Is(err, ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
	if st, _ := s.store.Steps().GetByID(ctx, svc.Steps[0].ID); st.ID != "" {
		t.Fatalf("step must be removed")
	}
	if s.images.Len() != 0 {
		t.Fatalf("stored images must be removed")
	}
	if imgs, _ := s.store.Images().ListByStepID(ctx, svc.Steps[0].ID); len(imgs) != 0 {
		t.Fatalf("image records must be removed")
	}
	if err := s.services.Remove(ctx, svc.ID); !errors.Is(err, entities.ErrNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

func TestServiceUseCase_GetStats(t *testing.T) {
	s := newScenario(t)
	ctx := context.Background()
	expired := fixedNow.Add(-time.Hour)

	s.create(t, CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2"})
	done := s.create(t, CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2", Steps: []StepInput{{Name: "Only", ResponsableID: int64Ptr(5)}}})
	s.create(t, CreateServiceInput{ClientID: "client-1", CategoryID: "cat-2", Steps: []StepInput{
		{Name: "Late 1", DatetimeExpiration: &expired},
		{Name: "Late 2", DatetimeExpiration: &expired},
	}})

	if _, err := s.steps.Start(ctx, entities.Actor{UserID: 5}, done.Steps[0].ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.clock = fixedNow.Add(time.Minute)
	if _, err := s.steps.Conclude(ctx, entities.Actor{UserID: 5}, done.Steps[0].ID); err != nil {
		t.Fatalf("conclude: %v", err)
	}

	stats, err := s.services.GetStats(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if stats.Total != 3 || stats.Pending != 2 || stats.Completed != 1 || stats.InProgress != 0 || stats.Cancelled != 0 {
		t.Fatalf("unexpected breakdown: %+v", stats)
	}
	if stats.Pending+stats.InProgress+stats.Completed+stats.Cancelled != stats.Total {
		t.Fatalf("breakdown must sum to total: %+v", stats)
	}
	if stats.Overdue != 1 {
		t.Fatalf("expected overdue counted once per service, got %d", stats.Overdue)
	}
	if stats.ThisWeek != 3 || stats.ThisMonth != 3 {
		t.Fatalf("unexpected windows: %+v", stats)
	}
}
