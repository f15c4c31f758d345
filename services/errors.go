package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/restaurant-booking/repository"
)

type ErrorKind string

const (
	KindValidation       ErrorKind = "VALIDATION_ERROR"
	KindInvalidItem      ErrorKind = "INVALID_ITEM"
	KindInvalidStatus    ErrorKind = "INVALID_STATUS"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindForbidden        ErrorKind = "FORBIDDEN"
	KindUnauthorized     ErrorKind = "UNAUTHORIZED"
	KindConflict         ErrorKind = "CONFLICT"
	KindCapacityExceeded ErrorKind = "CAPACITY_EXCEEDED"
	KindUnavailable      ErrorKind = "UNAVAILABLE"
)

// Error is a domain failure the HTTP layer can map to a status code.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) with(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// KindOf returns the kind of a domain error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// storeError maps data access sentinels onto domain errors.
func storeError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return newError(KindNotFound, "%s not found", entity)
	case errors.Is(err, repository.ErrDuplicate):
		return newError(KindConflict, "%s already exists", entity)
	}
	return err
}
