package usecase

import (
	"context"
	"log"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/domain/lifecycle"
	"copiadora_xpto/internal/usecase/interfaces"
)

// ServiceStatusDeriver consumes StepStatusChanged events and decides whether
// the owning service must change status. It returns the service write to be
// committed in the same transaction as the step; it never writes itself.
type ServiceStatusDeriver struct {
	services interfaces.IServiceRepository
	steps    interfaces.IStepRepository
}

func NewServiceStatusDeriver(services interfaces.IServiceRepository, steps interfaces.IStepRepository) *ServiceStatusDeriver {
	return &ServiceStatusDeriver{services: services, steps: steps}
}

// Handle returns nil when the service keeps its status or the step is orphan.
func (d *ServiceStatusDeriver) Handle(ctx context.Context, ev entities.StepStatusChanged, changed entities.Step) (*entities.Service, error) {
	if ev.ServiceID == "" {
		return nil, nil
	}

	svc, err := d.services.GetByID(ctx, ev.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.ID == "" {
		log.Printf("[service][deriver] owning service missing service_id=%s step_id=%s", ev.ServiceID, ev.StepID)
		return nil, nil
	}

	siblings, err := d.steps.ListByServiceID(ctx, ev.ServiceID)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i := range siblings {
		if siblings[i].ID == changed.ID {
			siblings[i] = changed
			replaced = true
		}
	}
	if !replaced {
		siblings = append(siblings, changed)
	}

	next, ok := lifecycle.DeriveServiceStatus(svc.Status, ev.Kind, siblings)
	if !ok {
		return nil, nil
	}
	log.Printf("[service][deriver] status derived service_id=%s from=%s to=%s event=%s", svc.ID, svc.Status, next, ev.Kind)

	svc.Status = next
	svc.UpdatedAt = ev.OccurredAt
	return &svc, nil
}
