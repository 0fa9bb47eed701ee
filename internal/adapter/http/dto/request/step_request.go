package request

import "copiadora_xpto/internal/usecase"

// UpdateStepRequest edits the free-text fields of a step. Omitted fields are
// kept.
type UpdateStepRequest struct {
	Observation       *string `json:"observation"`
	ResponsableClient *string `json:"responsable_client"`
}

func (r UpdateStepRequest) ToNotes() usecase.StepNotes {
	return usecase.StepNotes{Observation: r.Observation, ResponsableClient: r.ResponsableClient}
}

// CancelStepRequest carries the cancellation reason. An empty reason is
// rejected by the use case.
type CancelStepRequest struct {
	Reason string `json:"reason"`
}
