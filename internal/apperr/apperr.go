// Package apperr defines the error kinds shared by all layers. Services
// return errors tagged with a kind; handlers translate kinds into HTTP
// status codes and user-facing messages at the boundary only.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary translation.
type Kind int

const (
	// Unknown is the zero kind for errors that carry no classification.
	Unknown Kind = iota
	// Validation marks a rejected field value.
	Validation
	// NotFound marks a missing row or an external lookup with no match.
	NotFound
	// Duplicate marks an insert that would violate per-user title uniqueness.
	Duplicate
	// Transport marks a connectivity or protocol failure against an
	// external service.
	Transport
	// Parse marks an AI reply that did not contain a usable list.
	Parse
	// Storage marks an unreachable or misbehaving database.
	Storage
)

// Error carries a kind, a message safe to show to the user and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a user-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err, or Unknown if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// MessageOf returns the user-facing message of err, or fallback if err
// carries none.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
