package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	ErrSelfInquiry  = fmt.Errorf("%w: you cannot inquire about your own listing", ErrForbidden)
	ErrAlreadySaved = fmt.Errorf("%w: listing already saved", ErrConflict)
)

// Invalid builds a caller-fixable validation error.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound builds an ErrNotFound naming the missing entity.
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// StoreError is an infrastructural failure of the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
