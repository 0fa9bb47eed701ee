package request

import "copiadora_xpto/internal/usecase"

type TemplateRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toTemplateInputs(in []TemplateRequest) []usecase.TemplateInput {
	out := make([]usecase.TemplateInput, 0, len(in))
	for _, t := range in {
		out = append(out, usecase.TemplateInput{ID: t.ID, Name: t.Name, Description: t.Description})
	}
	return out
}

type CreateCategoryRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Steps       []TemplateRequest `json:"steps"`
}

func (r CreateCategoryRequest) ToInput() usecase.CategoryInput {
	return usecase.CategoryInput{Name: r.Name, Description: r.Description, Steps: toTemplateInputs(r.Steps)}
}

// UpdateCategoryRequest is a partial update; "steps" replaces the templates.
type UpdateCategoryRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Steps       *[]TemplateRequest `json:"steps"`
}

func (r UpdateCategoryRequest) ToInput() usecase.UpdateCategoryInput {
	in := usecase.UpdateCategoryInput{Name: r.Name, Description: r.Description}
	if r.Steps != nil {
		steps := toTemplateInputs(*r.Steps)
		in.Steps = &steps
	}
	return in
}
