package response

import (
	"time"

	"copiadora_xpto/internal/domain/entities"
	"copiadora_xpto/internal/usecase"
)

type ServiceResponse struct {
	ID                  string                      `json:"id"`
	ClientID            *string                     `json:"client_id"`
	CategoryID          *string                     `json:"category_id"`
	ClientCopyMachineID *string                     `json:"client_copy_machine_id"`
	Description         string                      `json:"description"`
	Status              string                      `json:"status"`
	Priority            string                      `json:"priority"`
	ReasonCancellament  *string                     `json:"reason_cancellament"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
	Client              *entities.Client            `json:"client"`
	Category            *CategoryResponse           `json:"category"`
	ClientCopyMachine   *entities.ClientCopyMachine `json:"clientCopyMachine"`
	Steps               []StepResponse              `json:"steps"`
}

func FromService(s entities.Service) ServiceResponse {
	out := ServiceResponse{
		ID:                  s.ID,
		ClientID:            nullable(s.ClientID),
		CategoryID:          nullable(s.CategoryID),
		ClientCopyMachineID: nullable(s.ClientCopyMachineID),
		Description:         s.Description,
		Status:              string(s.Status),
		Priority:            s.Priority,
		ReasonCancellament:  nullable(s.ReasonCancellament),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Client:              s.Client,
		ClientCopyMachine:   s.ClientCopyMachine,
		Steps:               FromSteps(s.Steps),
	}
	if s.Category != nil {
		c := FromCategory(*s.Category)
		out.Category = &c
	}
	return out
}

type ServicePageResponse struct {
	Data       []ServiceResponse `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

func FromServicePage(p usecase.ServicePage) ServicePageResponse {
	data := make([]ServiceResponse, 0, len(p.Data))
	for _, s := range p.Data {
		data = append(data, FromService(s))
	}
	return ServicePageResponse{Data: data, Total: p.Total, Page: p.Page, Limit: p.Limit, TotalPages: p.TotalPages}
}
