package entities

import "errors"

// Error kinds shared by every layer. Handlers translate them to HTTP statuses.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
)

// DomainError is a user-facing error classified by one of the kinds above.
type DomainError struct {
	Kind error
	Msg  string
}

func NewError(kind error, msg string) error {
	return &DomainError{Kind: kind, Msg: msg}
}

func (e *DomainError) Error() string {
	return e.Msg
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}
