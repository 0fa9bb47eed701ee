package analytics

import (
	"testing"
	"time"

	"copiadora_xpto/internal/domain/entities"
)

var now = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) // Wednesday

func at(d time.Duration) time.Time { return now.Add(d) }

func ptrTime(t time.Time) *time.Time { return &t }

func TestLatestStepBreakdown(t *testing.T) {
	services := []entities.Service{{ID: "empty"}, {ID: "done"}, {ID: "mixed"}, {ID: "weird"}}
	steps := []entities.Step{
		{ID: "a", ServiceID: "done", Status: entities.StepStatusConcluded, UpdatedAt: at(-time.Hour)},
		{ID: "b", ServiceID: "mixed", Status: entities.StepStatusConcluded, UpdatedAt: at(-3 * time.Hour)},
		{ID: "c", ServiceID: "mixed", Status: entities.StepStatusInProgress, UpdatedAt: at(-time.Hour)},
		{ID: "d", ServiceID: "mixed", Status: entities.StepStatusCancelled, UpdatedAt: at(-2 * time.Hour)},
		{ID: "e", ServiceID: "weird", Status: entities.StepStatus("ON_HOLD"), UpdatedAt: at(-time.Hour)},
		{ID: "tpl", CategoryID: "cat-1", Status: entities.StepStatusConcluded, UpdatedAt: at(0)},
		{ID: "ghost", ServiceID: "deleted", Status: entities.StepStatusConcluded, UpdatedAt: at(0)},
	}

	b := LatestStepBreakdown(services, steps)
	if b.Pending != 2 || b.InProgress != 1 || b.Completed != 1 || b.Cancelled != 0 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
	if b.Total() != len(services) {
		t.Fatalf("breakdown must partition services: %d != %d", b.Total(), len(services))
	}
}

func TestLatestStepBreakdown_TiesCountOnce(t *testing.T) {
	services := []entities.Service{{ID: "svc"}}
	ts := at(-time.Hour)
	steps := []entities.Step{
		{ID: "a", ServiceID: "svc", Status: entities.StepStatusConcluded, UpdatedAt: ts},
		{ID: "b", ServiceID: "svc", Status: entities.StepStatusCancelled, UpdatedAt: ts},
	}
	if b := LatestStepBreakdown(services, steps); b.Total() != 1 {
		t.Fatalf("tied steps must not double count: %+v", b)
	}
}

func TestServiceStatusBreakdown(t *testing.T) {
	services := []entities.Service{
		{ID: "1", Status: entities.ServiceStatusPending},
		{ID: "2", Status: entities.ServiceStatusInProgress},
		{ID: "3", Status: entities.ServiceStatusConcluded},
		{ID: "4", Status: entities.ServiceStatusCancelled},
		{ID: "5", Status: ""},
	}
	b := ServiceStatusBreakdown(services)
	if b.Pending != 2 || b.InProgress != 1 || b.Completed != 1 || b.Cancelled != 1 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
}

func TestCountOverdue(t *testing.T) {
	services := []entities.Service{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}
	past := ptrTime(at(-24 * time.Hour))
	future := ptrTime(at(24 * time.Hour))
	steps := []entities.Step{
		{ServiceID: "s1", Status: entities.StepStatusPending, DatetimeExpiration: past},
		{ServiceID: "s1", Status: entities.StepStatusInProgress, DatetimeExpiration: past},
		{ServiceID: "s2", Status: entities.StepStatusConcluded, DatetimeExpiration: past},
		{ServiceID: "s2", Status: entities.StepStatusPending, DatetimeExpiration: future},
		{ServiceID: "s3", Status: entities.StepStatusCancelled, DatetimeExpiration: past},
		{ServiceID: "s3", Status: entities.StepStatusPending},
	}
	if got := CountOverdue(services, steps, now); got != 2 {
		t.Fatalf("expected 2 overdue services, got %d", got)
	}
}

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC), time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC), time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC), time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		if got := StartOfWeek(tc.in); !got.Equal(tc.want) {
			t.Fatalf("StartOfWeek(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestComputeServiceStats(t *testing.T) {
	services := []entities.Service{
		{ID: "s1", Status: entities.ServiceStatusPending, CreatedAt: at(-time.Hour)},
		{ID: "s2", Status: entities.ServiceStatusInProgress, CreatedAt: time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)},
		{ID: "s3", Status: entities.ServiceStatusConcluded, CreatedAt: time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "s4", Status: entities.ServiceStatusPending, CreatedAt: time.Date(2026, 9, 30, 9, 0, 0, 0, time.UTC)},
	}
	steps := []entities.Step{
		{ServiceID: "s2", Status: entities.StepStatusInProgress, UpdatedAt: at(-time.Hour)},
		{ServiceID: "s3", Status: entities.StepStatusConcluded, UpdatedAt: at(-time.Hour)},
		{ServiceID: "s4", Status: entities.StepStatusPending, UpdatedAt: at(-time.Hour), DatetimeExpiration: ptrTime(at(-time.Minute))},
	}

	legacy := ComputeServiceStats(services, steps, now, ModeLatestStep)
	want := entities.ServiceStats{Total: 4, Pending: 2, InProgress: 1, Completed: 1, Overdue: 1, ThisWeek: 2, ThisMonth: 3}
	if legacy != want {
		t.Fatalf("latest-step stats = %+v, want %+v", legacy, want)
	}
	if legacy.Pending+legacy.InProgress+legacy.Completed+legacy.Cancelled != legacy.Total {
		t.Fatalf("counters must add up to total")
	}

	byStatus := ComputeServiceStats(services, steps, now, ModeServiceStatus)
	if byStatus.Pending != 2 || byStatus.InProgress != 1 || byStatus.Completed != 1 {
		t.Fatalf("unexpected service-status stats: %+v", byStatus)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeLatestStep {
		t.Fatalf("expected default latest_step, got %s %v", m, err)
	}
	if m, err := ParseMode("service_status"); err != nil || m != ModeServiceStatus {
		t.Fatalf("expected service_status, got %s %v", m, err)
	}
	if _, err := ParseMode("nope"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
