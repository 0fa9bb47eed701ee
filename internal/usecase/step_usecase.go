package usecase

import (
	"context"
	"log"
	"path"
	"sort"
	"strings"
	"time"

	"copiadora_xpto/internal/domain/analytics"
	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/domain/lifecycle"
	"copiadora_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	StepFilterCreatedToday = "created_today"
	StepFilterExpiresToday = "expires_today"
)

// StepNotes carries the free-text fields a responsable may edit. Nil fields
// are left untouched.
type StepNotes struct {
	Observation       *string
	ResponsableClient *string
}

// ImageUpload is a file received for a step.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// IStepUseCase exposes step operations.
//
// Reads are open to any authenticated actor; every write requires the actor to
// be the step's responsable (see lifecycle.MutationPolicy).
type IStepUseCase interface {
	ListMySteps(ctx context.Context, actor entities.Actor, filter string) ([]entities.Step, error)
	GetByID(ctx context.Context, id string) (entities.Step, error)
	UpdateNotes(ctx context.Context, actor entities.Actor, id string, notes StepNotes) (entities.Step, error)
	Start(ctx context.Context, actor entities.Actor, id string) (entities.Step, error)
	Conclude(ctx context.Context, actor entities.Actor, id string) (entities.Step, error)
	Cancel(ctx context.Context, actor entities.Actor, id string, reason string) (entities.Step, error)
	AttachImage(ctx context.Context, actor entities.Actor, id string, upload ImageUpload) (entities.Image, error)
	ListImages(ctx context.Context, id string) ([]entities.Image, error)
	DeleteImage(ctx context.Context, actor entities.Actor, id string, imageID string) error
	UnassignUser(ctx context.Context, userID int64) (int, error)
}

type StepUseCase struct {
	steps   interfaces.IStepRepository
	images  interfaces.IImageRepository
	storage interfaces.IImageStorage
	machine *lifecycle.StepMachine
	deriver *ServiceStatusDeriver
	loc     *time.Location
	now     func() time.Time
}

var _ IStepUseCase = (*StepUseCase)(nil)

func NewStepUseCase(
	steps interfaces.IStepRepository,
	services interfaces.IServiceRepository,
	images interfaces.IImageRepository,
	storage interfaces.IImageStorage,
	policy lifecycle.MutationPolicy,
	loc *time.Location,
) *StepUseCase {
	u := &StepUseCase{
		steps:   steps,
		images:  images,
		storage: storage,
		deriver: NewServiceStatusDeriver(services, steps),
		loc:     resolveLocation(loc),
		now:     systemClock,
	}
	u.machine = lifecycle.NewStepMachine(policy).WithClock(func() time.Time { return u.now().UTC() })
	return u
}

func (u *StepUseCase) ListMySteps(ctx context.Context, actor entities.Actor, filter string) ([]entities.Step, error) {
	filter = strings.TrimSpace(filter)
	if filter != "" && filter != StepFilterCreatedToday && filter != StepFilterExpiresToday {
		return nil, ErrInvalidStepFilter
	}

	steps, err := u.steps.ListByResponsable(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	today := analytics.StartOfDay(u.now().In(u.loc))
	tomorrow := today.AddDate(0, 0, 1)
	inToday := func(t time.Time) bool {
		return !t.Before(today) && t.Before(tomorrow)
	}

	out := make([]entities.Step, 0, len(steps))
	for _, st := range steps {
		switch filter {
		case StepFilterCreatedToday:
			if !inToday(st.CreatedAt) {
				continue
			}
		case StepFilterExpiresToday:
			if st.DatetimeExpiration == nil || !inToday(*st.DatetimeExpiration) {
				continue
			}
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (u *StepUseCase) GetByID(ctx context.Context, id string) (entities.Step, error) {
	step, err := u.load(ctx, id)
	if err != nil {
		return entities.Step{}, err
	}
	if u.images != nil {
		imgs, err := u.images.ListByStepID(ctx, step.ID)
		if err != nil {
			return entities.Step{}, err
		}
		step.Images = sortImages(imgs)
	}
	return step, nil
}

func (u *StepUseCase) UpdateNotes(ctx context.Context, actor entities.Actor, id string, notes StepNotes) (entities.Step, error) {
	step, err := u.load(ctx, id)
	if err != nil {
		return entities.Step{}, err
	}
	if !u.machine.CanMutate(actor, step) {
		log.Printf("[step][usecase] update-notes forbidden step_id=%s user_id=%d", step.ID, actor.UserID)
		return entities.Step{}, lifecycle.ErrNotResponsable
	}

	if notes.Observation != nil {
		step.Observation = *notes.Observation
	}
	if notes.ResponsableClient != nil {
		step.ResponsableClient = *notes.ResponsableClient
	}
	step.UpdatedAt = u.now().UTC()

	updated, err := u.steps.UpdateNotes(ctx, step)
	if err != nil {
		log.Printf("[step][usecase] update-notes failed step_id=%s err=%v", step.ID, err)
		return entities.Step{}, err
	}
	if updated.ID == "" {
		return entities.Step{}, ErrStepNotFound
	}
	return updated, nil
}

func (u *StepUseCase) Start(ctx context.Context, actor entities.Actor, id string) (entities.Step, error) {
	return u.transition(ctx, actor, id, lifecycle.ActionStart, "")
}

func (u *StepUseCase) Conclude(ctx context.Context, actor entities.Actor, id string) (entities.Step, error) {
	return u.transition(ctx, actor, id, lifecycle.ActionConclude, "")
}

func (u *StepUseCase) Cancel(ctx context.Context, actor entities.Actor, id string, reason string) (entities.Step, error) {
	return u.transition(ctx, actor, id, lifecycle.ActionCancel, reason)
}

// transition is read-step -> validate -> derive service -> commit both
// writes in one transaction.
func (u *StepUseCase) transition(ctx context.Context, actor entities.Actor, id string, action lifecycle.StepAction, reason string) (entities.Step, error) {
	log.Printf("[step][usecase] %s start step_id=%q user_id=%d", action, id, actor.UserID)
	step, err := u.load(ctx, id)
	if err != nil {
		return entities.Step{}, err
	}

	updated, event, err := u.machine.Apply(actor, step, action, reason)
	if err != nil {
		log.Printf("[step][usecase] %s rejected step_id=%s status=%s user_id=%d err=%v", action, step.ID, step.Status, actor.UserID, err)
		return entities.Step{}, err
	}

	svc, err := u.deriver.Handle(ctx, event, updated)
	if err != nil {
		log.Printf("[step][usecase] %s derivation failed step_id=%s err=%v", action, step.ID, err)
		return entities.Step{}, err
	}

	if err := u.steps.CommitTransition(ctx, interfaces.StepTransition{
		Step:           updated,
		PreviousStatus: step.Status,
		Service:        svc,
	}); err != nil {
		log.Printf("[step][usecase] %s commit failed step_id=%s err=%v", action, step.ID, err)
		return entities.Step{}, err
	}

	log.Printf("[step][usecase] %s success step_id=%s status=%s service_promoted=%t", action, updated.ID, updated.Status, svc != nil)
	return updated, nil
}

func (u *StepUseCase) AttachImage(ctx context.Context, actor entities.Actor, id string, upload ImageUpload) (entities.Image, error) {
	step, err := u.load(ctx, id)
	if err != nil {
		return entities.Image{}, err
	}
	if !u.machine.CanMutate(actor, step) {
		return entities.Image{}, lifecycle.ErrNotResponsable
	}
	if len(upload.Data) == 0 {
		return entities.Image{}, ErrImageRequired
	}
	if !strings.HasPrefix(strings.ToLower(upload.ContentType), "image/") {
		return entities.Image{}, ErrImageType
	}

	imageID := uuid.NewString()
	key := "steps/" + step.ID + "/" + imageID + strings.ToLower(path.Ext(upload.FileName))
	storedPath, err := u.storage.Store(ctx, key, upload.Data, upload.ContentType)
	if err != nil {
		log.Printf("[image][usecase] store failed step_id=%s err=%v", step.ID, err)
		return entities.Image{}, err
	}

	img, err := u.images.Create(ctx, entities.Image{
		ID:        imageID,
		Path:      storedPath,
		StepID:    step.ID,
		CreatedAt: u.now().UTC(),
	})
	if err != nil {
		log.Printf("[image][usecase] record failed step_id=%s path=%s err=%v", step.ID, storedPath, err)
		if delErr := u.storage.Delete(ctx, storedPath); delErr != nil {
			log.Printf("[image][usecase] rollback delete failed path=%s err=%v", storedPath, delErr)
		}
		return entities.Image{}, err
	}
	log.Printf("[image][usecase] attached step_id=%s image_id=%s size=%d", step.ID, img.ID, len(upload.Data))
	return img, nil
}

func (u *StepUseCase) ListImages(ctx context.Context, id string) ([]entities.Image, error) {
	step, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	imgs, err := u.images.ListByStepID(ctx, step.ID)
	if err != nil {
		return nil, err
	}
	return sortImages(imgs), nil
}

func (u *StepUseCase) DeleteImage(ctx context.Context, actor entities.Actor, id string, imageID string) error {
	step, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if !u.machine.CanMutate(actor, step) {
		return lifecycle.ErrNotResponsable
	}

	imageID = strings.TrimSpace(imageID)
	if imageID == "" {
		return ErrInvalidID
	}
	img, err := u.images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img.ID == "" || img.StepID != step.ID {
		return ErrImageNotFound
	}

	if err := u.storage.Delete(ctx, img.Path); err != nil {
		log.Printf("[image][usecase] storage delete failed image_id=%s path=%s err=%v", img.ID, img.Path, err)
		return err
	}
	if err := u.images.Delete(ctx, img.ID); err != nil {
		return err
	}
	log.Printf("[image][usecase] deleted step_id=%s image_id=%s", step.ID, img.ID)
	return nil
}

// UnassignUser clears responsable_id on every step of a deleted user. The
// steps themselves are kept.
func (u *StepUseCase) UnassignUser(ctx context.Context, userID int64) (int, error) {
	if userID <= 0 {
		return 0, ErrInvalidID
	}
	n, err := u.steps.ClearResponsable(ctx, userID)
	if err != nil {
		log.Printf("[step][usecase] unassign failed user_id=%d err=%v", userID, err)
		return 0, err
	}
	log.Printf("[step][usecase] unassigned user_id=%d steps=%d", userID, n)
	return n, nil
}

func (u *StepUseCase) load(ctx context.Context, id string) (entities.Step, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Step{}, ErrInvalidID
	}
	step, err := u.steps.GetByID(ctx, id)
	if err != nil {
		return entities.Step{}, err
	}
	if step.ID == "" {
		return entities.Step{}, ErrStepNotFound
	}
	return step, nil
}

func sortImages(imgs []entities.Image) []entities.Image {
	sort.SliceStable(imgs, func(i, j int) bool {
		return imgs[i].CreatedAt.After(imgs[j].CreatedAt)
	})
	return imgs
}
