package service

import (
	"errors"
	"strings"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrProgramNotFound    = errors.New("program not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyEnrolled    = errors.New("client already enrolled in program")
	ErrNotEnrolled        = errors.New("client not enrolled in program")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError lists the problems with an input, one message per field.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
	order  []string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Fields[field] = msg
}

// orNil returns nil when nothing was added, so callers can return it directly.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error joins the messages in the order they were found.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, f := range e.order {
		parts = append(parts, e.Fields[f])
	}
	return strings.Join(parts, " ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
