package entities

import "time"

// Image is a file attached to a step. Only the storage path is recorded.
type Image struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	StepID    string    `json:"step_id"`
	CreatedAt time.Time `json:"created_at"`
}
