package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"copiadora_xpto/internal/domain/analytics"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/domain/lifecycle"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	stepLoadConcurrency = 8
)

// ServiceQuery filters and paginates the service listing. Zero values mean
// "not filtered"; Page and Limit fall back to 1 and DefaultPageLimit.
type ServiceQuery struct {
	CategoryID          string
	ClientID            string
	ClientCopyMachineID string
	CityID              string
	AcquisitionType     entities.AcquisitionType
	Page                int
	Limit               int
}

type ServicePage struct {
	Data       []entities.Service `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

// StepInput defines a step nested in a service payload. ID is only
// meaningful on update, where it selects an existing step.
type StepInput struct {
	ID                 string
	Name               string
	Description        string
	Observation        string
	ResponsableClient  string
	ResponsableID      *int64
	DatetimeExpiration *time.Time
}

type CreateServiceInput struct {
	ClientID            string
	CategoryID          string
	ClientCopyMachineID string
	Description         string
	Priority            string
	Steps               []StepInput
}

// UpdateServiceInput merges provided (non-nil) fields. A non-nil Steps
// reconciles the step collection by id.
type UpdateServiceInput struct {
	ClientID            *string
	CategoryID          *string
	ClientCopyMachineID *string
	Description         *string
	Priority            *string
	Status              *entities.ServiceStatus
	ReasonCancellament  *string
	Steps               *[]StepInput
}

// IServiceUseCase aggregates services with their client, category, equipment
// and steps.
type IServiceUseCase interface {
	FindAll(ctx context.Context, q ServiceQuery) (ServicePage, error)
	GetByID(ctx context.Context, id string) (entities.Service, error)
	Create(ctx context.Context, in CreateServiceInput) (entities.Service, error)
	Update(ctx context.Context, id string, in UpdateServiceInput) (entities.Service, error)
	Remove(ctx context.Context, id string) error
	GetStats(ctx context.Context) (entities.ServiceStats, error)
}

type ServiceUseCase struct {
	services   interfaces.IServiceRepository
	steps      interfaces.IStepRepository
	images     interfaces.IImageRepository
	storage    interfaces.IImageStorage
	categories interfaces.ICategoryRepository
	clients    interfaces.IClientRepository
	machines   interfaces.ICopyMachineRepository
	statsMode  analytics.Mode
	loc        *time.Location
	now        func() time.Time
}

var _ IServiceUseCase = (*ServiceUseCase)(nil)

type ServiceUseCaseDeps struct {
	Services   interfaces.IServiceRepository
	Steps      interfaces.IStepRepository
	Images     interfaces.IImageRepository
	Storage    interfaces.IImageStorage
	Categories interfaces.ICategoryRepository
	Clients    interfaces.IClientRepository
	Machines   interfaces.ICopyMachineRepository
}

func NewServiceUseCase(deps ServiceUseCaseDeps, statsMode analytics.Mode, loc *time.Location) *ServiceUseCase {
	if statsMode == "" {
		statsMode = analytics.ModeLatestStep
	}
	return &ServiceUseCase{
		services:   deps.Services,
		steps:      deps.Steps,
		images:     deps.Images,
		storage:    deps.Storage,
		categories: deps.Categories,
		clients:    deps.Clients,
		machines:   deps.Machines,
		statsMode:  statsMode,
		loc:        resolveLocation(loc),
		now:        systemClock,
	}
}

// NormalizePage applies the page defaults: page >= 1, limit in [1, MaxPageLimit].
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}

// TotalPages is ceil(total/limit), never below 1.
func TotalPages(total, limit int) int {
	if limit < 1 || total <= 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

func (u *ServiceUseCase) FindAll(ctx context.Context, q ServiceQuery) (ServicePage, error) {
	if q.AcquisitionType != "" && !q.AcquisitionType.Valid() {
		return ServicePage{}, ErrInvalidAcquisitionType
	}
	page, limit := NormalizePage(q.Page, q.Limit)

	candidates, err := u.services.List(ctx, interfaces.ServiceFilter{
		CategoryID:          strings.TrimSpace(q.CategoryID),
		ClientID:            strings.TrimSpace(q.ClientID),
		ClientCopyMachineID: strings.TrimSpace(q.ClientCopyMachineID),
	})
	if err != nil {
		return ServicePage{}, err
	}

	var (
		clients  map[string]entities.Client
		machines map[string]entities.ClientCopyMachine
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		clients, err = u.loadClients(gctx, candidates)
		return err
	})
	g.Go(func() (err error) {
		machines, err = u.loadMachines(gctx, candidates)
		return err
	})
	if err := g.Wait(); err != nil {
		return ServicePage{}, err
	}

	cityID := strings.TrimSpace(q.CityID)
	filtered := candidates[:0]
	for _, svc := range candidates {
		if cityID != "" {
			c, ok := clients[svc.ClientID]
			if !ok || c.CityID() != cityID {
				continue
			}
		}
		if q.AcquisitionType != "" {
			m, ok := machines[svc.ClientCopyMachineID]
			if !ok || m.AcquisitionType != q.AcquisitionType {
				continue
			}
		}
		filtered = append(filtered, svc)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	pageData := append([]entities.Service(nil), filtered[start:end]...)

	categories, err := u.loadCategories(ctx, pageData)
	if err != nil {
		return ServicePage{}, err
	}
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(stepLoadConcurrency)
	for i := range pageData {
		svc := &pageData[i]
		if c, ok := clients[svc.ClientID]; ok {
			svc.Client = &c
		}
		if m, ok := machines[svc.ClientCopyMachineID]; ok {
			svc.ClientCopyMachine = &m
		}
		if c, ok := categories[svc.CategoryID]; ok {
			svc.Category = &c
		}
		g.Go(func() error {
			steps, err := u.steps.ListByServiceID(gctx, svc.ID)
			if err != nil {
				return err
			}
			svc.Steps = steps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ServicePage{}, err
	}

	return ServicePage{
		Data:       pageData,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

func (u *ServiceUseCase) GetByID(ctx context.Context, id string) (entities.Service, error) {
	svc, err := u.load(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	return u.join(ctx, svc)
}

func (u *ServiceUseCase) Create(ctx context.Context, in CreateServiceInput) (entities.Service, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.ClientCopyMachineID = strings.TrimSpace(in.ClientCopyMachineID)
	log.Printf("[service][usecase] create start client_id=%q category_id=%q steps=%d", in.ClientID, in.CategoryID, len(in.Steps))

	if in.ClientID == "" {
		return entities.Service{}, ErrClientRequired
	}
	if in.CategoryID == "" {
		return entities.Service{}, ErrCategoryRequired
	}
	if err := u.ensureReferences(ctx, in.ClientID, in.CategoryID, in.ClientCopyMachineID); err != nil {
		return entities.Service{}, err
	}
	for _, s := range in.Steps {
		if strings.TrimSpace(s.Name) == "" {
			return entities.Service{}, ErrStepNameRequired
		}
	}

	now := u.now().UTC()
	svc := entities.Service{
		ID:                  uuid.NewString(),
		ClientID:            in.ClientID,
		CategoryID:          in.CategoryID,
		ClientCopyMachineID: in.ClientCopyMachineID,
		Description:         in.Description,
		Priority:            in.Priority,
		Status:              entities.ServiceStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	steps := make([]entities.Step, 0, len(in.Steps))
	for i, def := range in.Steps {
		// Keep insertion order observable through created_at.
		steps = append(steps, newServiceStep(svc, def, now.Add(time.Duration(i)*time.Microsecond)))
	}

	created, err := u.services.Create(ctx, svc, steps)
	if err != nil {
		log.Printf("[service][usecase] create failed err=%v", err)
		return entities.Service{}, err
	}
	log.Printf("[service][usecase] create success service_id=%s steps=%d", created.ID, len(steps))
	return u.GetByID(ctx, created.ID)
}

func (u *ServiceUseCase) Update(ctx context.Context, id string, in UpdateServiceInput) (entities.Service, error) {
	svc, err := u.load(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	log.Printf("[service][usecase] update start service_id=%s", svc.ID)

	if in.ClientID != nil {
		v := strings.TrimSpace(*in.ClientID)
		if v == "" {
			return entities.Service{}, ErrClientRequired
		}
		if err := u.ensureReferences(ctx, v, "", ""); err != nil {
			return entities.Service{}, err
		}
		svc.ClientID = v
	}
	if in.CategoryID != nil {
		v := strings.TrimSpace(*in.CategoryID)
		if v == "" {
			return entities.Service{}, ErrCategoryRequired
		}
		if err := u.ensureReferences(ctx, "", v, ""); err != nil {
			return entities.Service{}, err
		}
		svc.CategoryID = v
	}
	if in.ClientCopyMachineID != nil {
		v := strings.TrimSpace(*in.ClientCopyMachineID)
		if err := u.ensureReferences(ctx, "", "", v); err != nil {
			return entities.Service{}, err
		}
		svc.ClientCopyMachineID = v
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Priority != nil {
		svc.Priority = *in.Priority
	}
	if in.ReasonCancellament != nil {
		svc.ReasonCancellament = strings.TrimSpace(*in.ReasonCancellament)
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return entities.Service{}, ErrInvalidServiceStatus
		}
		svc.Status = *in.Status
	}
	if svc.Status == entities.ServiceStatusCancelled {
		if svc.ReasonCancellament == "" {
			return entities.Service{}, ErrServiceReasonRequired
		}
	} else {
		svc.ReasonCancellament = ""
	}

	now := u.now().UTC()
	current, err := u.steps.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return entities.Service{}, err
	}

	var changes interfaces.StepChanges
	finalSteps := current
	event := entities.StepEventServiceEdited
	if in.Steps != nil {
		changes, finalSteps, err = reconcileSteps(svc, current, *in.Steps, now)
		if err != nil {
			return entities.Service{}, err
		}
		event = entities.StepEventStepsReplaced
	}

	if next, ok := lifecycle.DeriveServiceStatus(svc.Status, event, finalSteps); ok {
		log.Printf("[service][usecase] status derived service_id=%s from=%s to=%s", svc.ID, svc.Status, next)
		svc.Status = next
	}
	svc.UpdatedAt = now

	if _, err := u.services.Update(ctx, stripJoins(svc), changes); err != nil {
		log.Printf("[service][usecase] update failed service_id=%s err=%v", svc.ID, err)
		return entities.Service{}, err
	}
	purgeStepImages(ctx, u.images, u.storage, changes.Delete)

	log.Printf("[service][usecase] update success service_id=%s created=%d updated=%d deleted=%d",
		svc.ID, len(changes.Create), len(changes.Update), len(changes.Delete))
	return u.GetByID(ctx, svc.ID)
}

func (u *ServiceUseCase) Remove(ctx context.Context, id string) error {
	svc, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	steps, err := u.steps.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return err
	}
	stepIDs := make([]string, 0, len(steps))
	for _, st := range steps {
		stepIDs = append(stepIDs, st.ID)
	}

	if err := u.services.Delete(ctx, svc.ID, stepIDs); err != nil {
		log.Printf("[service][usecase] remove failed service_id=%s err=%v", svc.ID, err)
		return err
	}
	purgeStepImages(ctx, u.images, u.storage, stepIDs)
	log.Printf("[service][usecase] removed service_id=%s steps=%d", svc.ID, len(stepIDs))
	return nil
}

func (u *ServiceUseCase) GetStats(ctx context.Context) (entities.ServiceStats, error) {
	services, err := u.services.List(ctx, interfaces.ServiceFilter{})
	if err != nil {
		return entities.ServiceStats{}, err
	}
	steps, err := u.steps.ListAll(ctx)
	if err != nil {
		return entities.ServiceStats{}, err
	}
	return analytics.ComputeServiceStats(services, steps, u.now().In(u.loc), u.statsMode), nil
}

func (u *ServiceUseCase) load(ctx context.Context, id string) (entities.Service, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Service{}, ErrInvalidID
	}
	svc, err := u.services.GetByID(ctx, id)
	if err != nil {
		return entities.Service{}, err
	}
	if svc.ID == "" {
		return entities.Service{}, ErrServiceNotFound
	}
	return svc, nil
}

func (u *ServiceUseCase) join(ctx context.Context, svc entities.Service) (entities.Service, error) {
	if svc.ClientID != "" {
		c, err := u.clients.GetByID(ctx, svc.ClientID)
		if err != nil {
			return entities.Service{}, err
		}
		if c.ID != "" {
			svc.Client = &c
		}
	}
	if svc.CategoryID != "" {
		c, err := u.categories.GetByID(ctx, svc.CategoryID)
		if err != nil {
			return entities.Service{}, err
		}
		if c.ID != "" {
			svc.Category = &c
		}
	}
	if svc.ClientCopyMachineID != "" {
		m, err := u.machines.GetByID(ctx, svc.ClientCopyMachineID)
		if err != nil {
			return entities.Service{}, err
		}
		if m.ID != "" {
			svc.ClientCopyMachine = &m
		}
	}

	steps, err := u.steps.ListByServiceID(ctx, svc.ID)
	if err != nil {
		return entities.Service{}, err
	}
	if u.images != nil {
		for i := range steps {
			imgs, err := u.images.ListByStepID(ctx, steps[i].ID)
			if err != nil {
				return entities.Service{}, err
			}
			steps[i].Images = sortImages(imgs)
		}
	}
	svc.Steps = steps
	return svc, nil
}

// ensureReferences checks that every non-empty id points at an existing row.
func (u *ServiceUseCase) ensureReferences(ctx context.Context, clientID, categoryID, machineID string) error {
	if clientID != "" {
		c, err := u.clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		if c.ID == "" {
			return fmt.Errorf("%w (id %s)", ErrClientNotFound, clientID)
		}
	}
	if categoryID != "" {
		c, err := u.categories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if c.ID == "" {
			return fmt.Errorf("%w (id %s)", ErrCategoryNotFound, categoryID)
		}
	}
	if machineID != "" {
		m, err := u.machines.GetByID(ctx, machineID)
		if err != nil {
			return err
		}
		if m.ID == "" {
			return fmt.Errorf("%w (id %s)", ErrCopyMachineNotFound, machineID)
		}
	}
	return nil
}

func (u *ServiceUseCase) loadClients(ctx context.Context, services []entities.Service) (map[string]entities.Client, error) {
	ids := distinct(services, func(s entities.Service) string { return s.ClientID })
	out := make(map[string]entities.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := u.clients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

func (u *ServiceUseCase) loadMachines(ctx context.Context, services []entities.Service) (map[string]entities.ClientCopyMachine, error) {
	ids := distinct(services, func(s entities.Service) string { return s.ClientCopyMachineID })
	out := make(map[string]entities.ClientCopyMachine, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := u.machines.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		out[m.ID] = m
	}
	return out, nil
}

func (u *ServiceUseCase) loadCategories(ctx context.Context, services []entities.Service) (map[string]entities.Category, error) {
	ids := distinct(services, func(s entities.Service) string { return s.CategoryID })
	out := make(map[string]entities.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := u.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

func distinct(services []entities.Service, key func(entities.Service) string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, s := range services {
		k := key(s)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, k)
	}
	return ids
}

func newServiceStep(svc entities.Service, def StepInput, createdAt time.Time) entities.Step {
	return entities.Step{
		ID:                 uuid.NewString(),
		Name:               strings.TrimSpace(def.Name),
		Description:        def.Description,
		Observation:        def.Observation,
		ResponsableClient:  def.ResponsableClient,
		ServiceID:          svc.ID,
		CategoryID:         svc.CategoryID,
		ResponsableID:      def.ResponsableID,
		Status:             entities.StepStatusPending,
		DatetimeExpiration: def.DatetimeExpiration,
		CreatedAt:          createdAt,
		UpdatedAt:          createdAt,
	}
}

// reconcileSteps diffs the requested step definitions against the stored
// steps. Known ids keep their status, timestamps and images; unknown ids are
// rejected; stored steps not mentioned are deleted.
func reconcileSteps(svc entities.Service, current []entities.Step, defs []StepInput, now time.Time) (interfaces.StepChanges, []entities.Step, error) {
	byID := make(map[string]entities.Step, len(current))
	for _, st := range current {
		byID[st.ID] = st
	}

	var changes interfaces.StepChanges
	kept := make(map[string]struct{}, len(defs))
	final := make([]entities.Step, 0, len(defs))
	for i, def := range defs {
		if strings.TrimSpace(def.Name) == "" {
			return interfaces.StepChanges{}, nil, ErrStepNameRequired
		}
		id := strings.TrimSpace(def.ID)
		if id == "" {
			st := newServiceStep(svc, def, now.Add(time.Duration(i)*time.Microsecond))
			changes.Create = append(changes.Create, st)
			final = append(final, st)
			continue
		}

		existing, ok := byID[id]
		if !ok {
			return interfaces.StepChanges{}, nil, fmt.Errorf("%w (id %s)", ErrUnknownStepID, id)
		}
		if _, dup := kept[id]; dup {
			continue
		}
		kept[id] = struct{}{}

		existing.Name = strings.TrimSpace(def.Name)
		existing.Description = def.Description
		existing.Observation = def.Observation
		existing.ResponsableClient = def.ResponsableClient
		existing.ResponsableID = def.ResponsableID
		existing.DatetimeExpiration = def.DatetimeExpiration
		existing.Images = nil
		existing.UpdatedAt = now
		changes.Update = append(changes.Update, existing)
		final = append(final, existing)
	}

	for _, st := range current {
		if _, ok := kept[st.ID]; !ok {
			changes.Delete = append(changes.Delete, st.ID)
		}
	}
	return changes, final, nil
}

func stripJoins(svc entities.Service) entities.Service {
	svc.Client = nil
	svc.Category = nil
	svc.ClientCopyMachine = nil
	svc.Steps = nil
	return svc
}
