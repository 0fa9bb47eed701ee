package response

import (
	"time"

	"copiadora_xpto/internal/domain/entities"
)

type ImageResponse struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	StepID    string    `json:"step_id"`
	CreatedAt time.Time `json:"created_at"`
}

func FromImage(img entities.Image) ImageResponse {
	return ImageResponse{ID: img.ID, Path: img.Path, StepID: img.StepID, CreatedAt: img.CreatedAt}
}

func FromImages(images []entities.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, FromImage(img))
	}
	return out
}

type StepResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Observation        string          `json:"observation"`
	ResponsableClient  string          `json:"responsable_client"`
	ServiceID          *string         `json:"service_id"`
	CategoryID         *string         `json:"category_id"`
	ResponsableID      *int64          `json:"responsable_id"`
	Status             string          `json:"status"`
	DatetimeStart      *time.Time      `json:"datetime_start"`
	DatetimeConclusion *time.Time      `json:"datetime_conclusion"`
	DatetimeExpiration *time.Time      `json:"datetime_expiration"`
	ReasonCancellament *string         `json:"reason_cancellament"`
	Images             []ImageResponse `json:"images"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func FromStep(s entities.Step) StepResponse {
	return StepResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Description:        s.Description,
		Observation:        s.Observation,
		ResponsableClient:  s.ResponsableClient,
		ServiceID:          nullable(s.ServiceID),
		CategoryID:         nullable(s.CategoryID),
		ResponsableID:      s.ResponsableID,
		Status:             string(s.Status),
		DatetimeStart:      s.DatetimeStart,
		DatetimeConclusion: s.DatetimeConclusion,
		DatetimeExpiration: s.DatetimeExpiration,
		ReasonCancellament: nullable(s.ReasonCancellament),
		Images:             FromImages(s.Images),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func FromSteps(steps []entities.Step) []StepResponse {
	out := make([]StepResponse, 0, len(steps))
	for _, s := range steps {
		out = append(out, FromStep(s))
	}
	return out
}

type UnassignResponse struct {
	UserID int64 `json:"user_id"`
	Steps  int   `json:"steps"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
