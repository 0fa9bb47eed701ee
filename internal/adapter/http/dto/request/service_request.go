package request

import (
	"strings"
	"time"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase"
)

// StepRequest defines a step inside a service payload. ID is only read on
// update.
type StepRequest struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Observation        string     `json:"observation"`
	ResponsableClient  string     `json:"responsable_client"`
	ResponsableID      *int64     `json:"responsable_id"`
	DatetimeExpiration *time.Time `json:"datetime_expiration"`
}

func (r StepRequest) toInput() usecase.StepInput {
	return usecase.StepInput{
		ID:                 strings.TrimSpace(r.ID),
		Name:               r.Name,
		Description:        r.Description,
		Observation:        r.Observation,
		ResponsableClient:  r.ResponsableClient,
		ResponsableID:      r.ResponsableID,
		DatetimeExpiration: r.DatetimeExpiration,
	}
}

func toStepInputs(in []StepRequest) []usecase.StepInput {
	out := make([]usecase.StepInput, 0, len(in))
	for _, s := range in {
		out = append(out, s.toInput())
	}
	return out
}

type CreateServiceRequest struct {
	ClientID            string        `json:"client_id" binding:"required"`
	CategoryID          string        `json:"category_id" binding:"required"`
	ClientCopyMachineID string        `json:"client_copy_machine_id"`
	Description         string        `json:"description"`
	Priority            string        `json:"priority"`
	Steps               []StepRequest `json:"steps"`
}

func (r CreateServiceRequest) ToInput() usecase.CreateServiceInput {
	return usecase.CreateServiceInput{
		ClientID:            r.ClientID,
		CategoryID:          r.CategoryID,
		ClientCopyMachineID: r.ClientCopyMachineID,
		Description:         r.Description,
		Priority:            r.Priority,
		Steps:               toStepInputs(r.Steps),
	}
}

// UpdateServiceRequest is a partial update. Sending "steps" replaces the step
// collection: entries with an id are updated, entries without one are
// created and missing steps are removed.
type UpdateServiceRequest struct {
	ClientID            *string        `json:"client_id"`
	CategoryID          *string        `json:"category_id"`
	ClientCopyMachineID *string        `json:"client_copy_machine_id"`
	Description         *string        `json:"description"`
	Priority            *string        `json:"priority"`
	Status              *string        `json:"status"`
	ReasonCancellament  *string        `json:"reason_cancellament"`
	Steps               *[]StepRequest `json:"steps"`
}

func (r UpdateServiceRequest) ToInput() usecase.UpdateServiceInput {
	in := usecase.UpdateServiceInput{
		ClientID:            r.ClientID,
		CategoryID:          r.CategoryID,
		ClientCopyMachineID: r.ClientCopyMachineID,
		Description:         r.Description,
		Priority:            r.Priority,
		ReasonCancellament:  r.ReasonCancellament,
	}
	if r.Status != nil {
		status := entities.ServiceStatus(strings.ToUpper(strings.TrimSpace(*r.Status)))
		in.Status = &status
	}
	if r.Steps != nil {
		steps := toStepInputs(*r.Steps)
		in.Steps = &steps
	}
	return in
}

// ServiceQueryRequest binds the listing query string. Non-numeric page or
// limit fail binding.
type ServiceQueryRequest struct {
	CategoryID          string `form:"category_id"`
	ClientID            string `form:"client_id"`
	ClientCopyMachineID string `form:"client_copy_machine_id"`
	CityID              string `form:"city_id"`
	AcquisitionType     string `form:"acquisition_type"`
	Page                int    `form:"page"`
	Limit               int    `form:"limit"`
}

func (r ServiceQueryRequest) ToQuery() usecase.ServiceQuery {
	return usecase.ServiceQuery{
		CategoryID:          strings.TrimSpace(r.CategoryID),
		ClientID:            strings.TrimSpace(r.ClientID),
		ClientCopyMachineID: strings.TrimSpace(r.ClientCopyMachineID),
		CityID:              strings.TrimSpace(r.CityID),
		AcquisitionType:     entities.AcquisitionType(strings.ToUpper(strings.TrimSpace(r.AcquisitionType))),
		Page:                r.Page,
		Limit:               r.Limit,
	}
}
