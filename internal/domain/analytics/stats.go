// Package analytics computes service health counters by scanning current
// services and steps. Nothing here is incremental: statuses change from many
// entry points, so every figure is recomputed on demand.
package analytics

import (
	"fmt"
	"time"

	"copiadora_xpto/internal/domain/entities"
)

// Mode selects how a service's health is classified.
type Mode string

const (
	// ModeLatestStep classifies a service by its most recently updated step.
	ModeLatestStep Mode = "latest_step"
	// ModeServiceStatus trusts service.status directly.
	ModeServiceStatus Mode = "service_status"
)

func ParseMode(v string) (Mode, error) {
	switch Mode(v) {
	case "", ModeLatestStep:
		return ModeLatestStep, nil
	case ModeServiceStatus:
		return ModeServiceStatus, nil
	}
	return "", fmt.Errorf("unknown stats mode %q", v)
}

// Breakdown is the status partition of all services. The four counters always
// add up to the number of services.
type Breakdown struct {
	Pending    int
	InProgress int
	Completed  int
	Cancelled  int
}

func (b Breakdown) Total() int {
	return b.Pending + b.InProgress + b.Completed + b.Cancelled
}

func (b *Breakdown) addStep(status entities.StepStatus) {
	switch status {
	case entities.StepStatusInProgress:
		b.InProgress++
	case entities.StepStatusConcluded:
		b.Completed++
	case entities.StepStatusCancelled:
		b.Cancelled++
	default:
		b.Pending++
	}
}

func (b *Breakdown) addService(status entities.ServiceStatus) {
	switch status {
	case entities.ServiceStatusInProgress:
		b.InProgress++
	case entities.ServiceStatusConcluded:
		b.Completed++
	case entities.ServiceStatusCancelled:
		b.Cancelled++
	default:
		b.Pending++
	}
}

// LatestSteps returns, per service id, the step with the greatest UpdatedAt.
// On equal timestamps the first step scanned wins, so ties are not
// deterministic across storage backends. Template steps and steps of unknown
// services are ignored.
func LatestSteps(services []entities.Service, steps []entities.Step) map[string]entities.Step {
	known := make(map[string]struct{}, len(services))
	for _, s := range services {
		known[s.ID] = struct{}{}
	}

	latest := make(map[string]entities.Step)
	for _, st := range steps {
		if st.IsTemplate() {
			continue
		}
		if _, ok := known[st.ServiceID]; !ok {
			continue
		}
		cur, ok := latest[st.ServiceID]
		if !ok || st.UpdatedAt.After(cur.UpdatedAt) {
			latest[st.ServiceID] = st
		}
	}
	return latest
}

// LatestStepBreakdown classifies each service by the status of its latest
// step. Services without steps count as pending.
func LatestStepBreakdown(services []entities.Service, steps []entities.Step) Breakdown {
	var b Breakdown
	latest := LatestSteps(services, steps)
	for _, st := range latest {
		b.addStep(st.Status)
	}
	if withoutSteps := len(services) - len(latest); withoutSteps > 0 {
		b.Pending += withoutSteps
	}
	return b
}

// ServiceStatusBreakdown classifies each service by its own status field.
func ServiceStatusBreakdown(services []entities.Service) Breakdown {
	var b Breakdown
	for _, s := range services {
		b.addService(s.Status)
	}
	return b
}

// CountOverdue counts distinct services with at least one non-concluded step
// whose deadline is before now.
func CountOverdue(services []entities.Service, steps []entities.Step, now time.Time) int {
	known := make(map[string]struct{}, len(services))
	for _, s := range services {
		known[s.ID] = struct{}{}
	}

	overdue := make(map[string]struct{})
	for _, st := range steps {
		if st.IsTemplate() || !st.IsOverdue(now) {
			continue
		}
		if _, ok := known[st.ServiceID]; ok {
			overdue[st.ServiceID] = struct{}{}
		}
	}
	return len(overdue)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of t's ISO week. Sunday belongs to the
// week that started six days earlier.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	distanceToMonday := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -distanceToMonday)
}

// StartOfMonth returns the first day of t's month at 00:00.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// InRange reports from <= t <= to.
func InRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

func countCreatedBetween(services []entities.Service, from, to time.Time) int {
	n := 0
	for _, s := range services {
		if InRange(s.CreatedAt, from, to) {
			n++
		}
	}
	return n
}

// ComputeServiceStats builds the full counter set at instant now. now's
// location defines where weeks and months start.
func ComputeServiceStats(services []entities.Service, steps []entities.Step, now time.Time, mode Mode) entities.ServiceStats {
	var b Breakdown
	if mode == ModeServiceStatus {
		b = ServiceStatusBreakdown(services)
	} else {
		b = LatestStepBreakdown(services, steps)
	}

	return entities.ServiceStats{
		Total:      len(services),
		Pending:    b.Pending,
		InProgress: b.InProgress,
		Completed:  b.Completed,
		Cancelled:  b.Cancelled,
		Overdue:    CountOverdue(services, steps, now),
		ThisWeek:   countCreatedBetween(services, StartOfWeek(now), now),
		ThisMonth:  countCreatedBetween(services, StartOfMonth(now), now),
	}
}
