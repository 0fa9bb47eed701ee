// Package memory keeps every aggregate in process memory behind a single lock.
// It backs STORAGE_DRIVER=memory and the multi-entity use case tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"
)

// Store holds all tables. One mutex covers every map so multi-table writes
// are atomic, like a DynamoDB transaction.
type Store struct {
	mu sync.RWMutex

	services   map[string]entities.Service
	steps      map[string]entities.Step
	images     map[string]entities.Image
	categories map[string]entities.Category
	clients    map[string]entities.Client
	machines   map[string]entities.ClientCopyMachine
	snapshots  map[snapshotKey]entities.DashboardStats

	now func() time.Time
}

type snapshotKey struct {
	year  int
	month int
}

func New() *Store {
	return &Store{
		services:   make(map[string]entities.Service),
		steps:      make(map[string]entities.Step),
		images:     make(map[string]entities.Image),
		categories: make(map[string]entities.Category),
		clients:    make(map[string]entities.Client),
		machines:   make(map[string]entities.ClientCopyMachine),
		snapshots:  make(map[snapshotKey]entities.DashboardStats),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Services() interfaces.IServiceRepository {
	return &serviceRepository{s}
}

func (s *Store) Steps() interfaces.IStepRepository {
	return &stepRepository{s}
}

func (s *Store) Images() interfaces.IImageRepository {
	return &imageRepository{s}
}

func (s *Store) Categories() interfaces.ICategoryRepository {
	return &categoryRepository{s}
}

func (s *Store) Clients() interfaces.IClientRepository {
	return &clientRepository{s}
}

func (s *Store) CopyMachines() interfaces.ICopyMachineRepository {
	return &copyMachineRepository{s}
}

func (s *Store) DashboardStats() interfaces.IDashboardStatsRepository {
	return &dashboardStatsRepository{s}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyStep(st entities.Step) entities.Step {
	if st.ResponsableID != nil {
		v := *st.ResponsableID
		st.ResponsableID = &v
	}
	st.DatetimeStart = copyTime(st.DatetimeStart)
	st.DatetimeConclusion = copyTime(st.DatetimeConclusion)
	st.DatetimeExpiration = copyTime(st.DatetimeExpiration)
	// Images live in their own table.
	st.Images = nil
	return st
}

func copyService(svc entities.Service) entities.Service {
	svc.Client = nil
	svc.Category = nil
	svc.ClientCopyMachine = nil
	svc.Steps = nil
	return svc
}

func copyClient(c entities.Client) entities.Client {
	if c.Address == nil {
		return c
	}
	addr := *c.Address
	if addr.Neighborhood != nil {
		n := *addr.Neighborhood
		if n.City != nil {
			city := *n.City
			if city.State != nil {
				st := *city.State
				city.State = &st
			}
			n.City = &city
		}
		addr.Neighborhood = &n
	}
	c.Address = &addr
	return c
}

func copyMachine(m entities.ClientCopyMachine) entities.ClientCopyMachine {
	if m.CatalogCopyMachine != nil {
		cat := *m.CatalogCopyMachine
		m.CatalogCopyMachine = &cat
	}
	return m
}

// sortSteps keeps the creation order of a service's steps.
func sortSteps(steps []entities.Step) {
	sort.SliceStable(steps, func(i, j int) bool {
		if !steps[i].CreatedAt.Equal(steps[j].CreatedAt) {
			return steps[i].CreatedAt.Before(steps[j].CreatedAt)
		}
		return steps[i].ID < steps[j].ID
	})
}
