package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// TemplateInput is a step template attached to a category. ID selects an
// existing template on update.
type TemplateInput struct {
	ID          string
	Name        string
	Description string
}

type CategoryInput struct {
	Name        string
	Description string
	Steps       []TemplateInput
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	Steps       *[]TemplateInput
}

type ICategoryUseCase interface {
	Create(ctx context.Context, in CategoryInput) (entities.Category, error)
	List(ctx context.Context) ([]entities.Category, error)
	GetByID(ctx context.Context, id string) (entities.Category, error)
	Update(ctx context.Context, id string, in UpdateCategoryInput) (entities.Category, error)
	Delete(ctx context.Context, id string) error
}

type CategoryUseCase struct {
	categories interfaces.ICategoryRepository
	steps      interfaces.IStepRepository
	services   interfaces.IServiceRepository
	now        func() time.Time
}

var _ ICategoryUseCase = (*CategoryUseCase)(nil)

func NewCategoryUseCase(categories interfaces.ICategoryRepository, steps interfaces.IStepRepository, services interfaces.IServiceRepository) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, steps: steps, services: services, now: systemClock}
}

func (u *CategoryUseCase) Create(ctx context.Context, in CategoryInput) (entities.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return entities.Category{}, ErrCategoryNameRequired
	}
	now := u.now().UTC()
	c := entities.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	templates := make([]entities.Step, 0, len(in.Steps))
	for i, def := range in.Steps {
		if strings.TrimSpace(def.Name) == "" {
			return entities.Category{}, ErrStepNameRequired
		}
		templates = append(templates, newTemplate(c.ID, def, now.Add(time.Duration(i)*time.Microsecond)))
	}

	created, err := u.categories.Create(ctx, c, templates)
	if err != nil {
		log.Printf("[category][usecase] create failed name=%q err=%v", name, err)
		return entities.Category{}, err
	}
	log.Printf("[category][usecase] created category_id=%s templates=%d", created.ID, len(templates))
	created.Steps = templates
	return created, nil
}

func (u *CategoryUseCase) List(ctx context.Context) ([]entities.Category, error) {
	list, err := u.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list, nil
}

func (u *CategoryUseCase) GetByID(ctx context.Context, id string) (entities.Category, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return entities.Category{}, err
	}
	templates, err := u.steps.ListTemplatesByCategoryID(ctx, c.ID)
	if err != nil {
		return entities.Category{}, err
	}
	c.Steps = templates
	return c, nil
}

func (u *CategoryUseCase) Update(ctx context.Context, id string, in UpdateCategoryInput) (entities.Category, error) {
	c, err := u.load(ctx, id)
	if err != nil {
		return entities.Category{}, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return entities.Category{}, ErrCategoryNameRequired
		}
		c.Name = name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	now := u.now().UTC()
	c.UpdatedAt = now

	var changes interfaces.StepChanges
	if in.Steps != nil {
		current, err := u.steps.ListTemplatesByCategoryID(ctx, c.ID)
		if err != nil {
			return entities.Category{}, err
		}
		changes, err = reconcileTemplates(c.ID, current, *in.Steps, now)
		if err != nil {
			return entities.Category{}, err
		}
	}

	c.Steps = nil
	if _, err := u.categories.Update(ctx, c, changes); err != nil {
		log.Printf("[category][usecase] update failed category_id=%s err=%v", c.ID, err)
		return entities.Category{}, err
	}
	log.Printf("[category][usecase] updated category_id=%s", c.ID)
	return u.GetByID(ctx, c.ID)
}

// Delete refuses to remove a category still referenced by services.
func (u *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	n, err := u.services.CountByCategoryID(ctx, c.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("[category][usecase] delete blocked category_id=%s services=%d", c.ID, n)
		return fmt.Errorf("%w (%d services)", ErrCategoryInUse, n)
	}

	templates, err := u.steps.ListTemplatesByCategoryID(ctx, c.ID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(templates))
	for _, t := range templates {
		ids = append(ids, t.ID)
	}
	if err := u.categories.Delete(ctx, c.ID, ids); err != nil {
		log.Printf("[category][usecase] delete failed category_id=%s err=%v", c.ID, err)
		return err
	}
	log.Printf("[category][usecase] deleted category_id=%s templates=%d", c.ID, len(ids))
	return nil
}

func (u *CategoryUseCase) load(ctx context.Context, id string) (entities.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Category{}, ErrInvalidID
	}
	c, err := u.categories.GetByID(ctx, id)
	if err != nil {
		return entities.Category{}, err
	}
	if c.ID == "" {
		return entities.Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func newTemplate(categoryID string, def TemplateInput, createdAt time.Time) entities.Step {
	return entities.Step{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(def.Name),
		Description: def.Description,
		CategoryID:  categoryID,
		Status:      entities.StepStatusPending,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func reconcileTemplates(categoryID string, current []entities.Step, defs []TemplateInput, now time.Time) (interfaces.StepChanges, error) {
	byID := make(map[string]entities.Step, len(current))
	for _, t := range current {
		byID[t.ID] = t
	}

	var changes interfaces.StepChanges
	kept := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if strings.TrimSpace(def.Name) == "" {
			return interfaces.StepChanges{}, ErrStepNameRequired
		}
		id := strings.TrimSpace(def.ID)
		if id == "" {
			changes.Create = append(changes.Create, newTemplate(categoryID, def, now.Add(time.Duration(i)*time.Microsecond)))
			continue
		}
		existing, ok := byID[id]
		if !ok {
			return interfaces.StepChanges{}, fmt.Errorf("%w (id %s)", ErrUnknownStepID, id)
		}
		if _, dup := kept[id]; dup {
			continue
		}
		kept[id] = struct{}{}
		existing.Name = strings.TrimSpace(def.Name)
		existing.Description = def.Description
		existing.UpdatedAt = now
		changes.Update = append(changes.Update, existing)
	}
	for _, t := range current {
		if _, ok := kept[t.ID]; !ok {
			changes.Delete = append(changes.Delete, t.ID)
		}
	}
	return changes, nil
}
