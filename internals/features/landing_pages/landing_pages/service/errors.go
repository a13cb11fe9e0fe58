package service

import "errors"

// Messages shown to editors verbatim.
const (
	MsgTitleTooShort = "Title must be at least 3 characters long"
	MsgInvalidSlug   = "URL must contain only lowercase letters, numbers, and hyphens"
	MsgSlugTaken     = "This URL is already taken. Please choose a different one."
	MsgNotFound      = "Landing page not found"
)

var (
	ErrLandingPageNotFound = errors.New(MsgNotFound)
	ErrSlugTaken           = errors.New(MsgSlugTaken)
)

// ValidationError is a field-scoped rejection. It never reaches the store.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
