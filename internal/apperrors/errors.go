// Package apperrors defines the closed set of error kinds the core raises.
// Controllers return these; the handler layer maps them to transport status
// codes. The core itself never encodes HTTP semantics.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindValidation Kind = iota
	KindDuplicateSubmission
	KindInvalidState
	KindNotFound
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateSubmission:
		return "duplicate_submission"
	case KindInvalidState:
		return "invalid_state"
	case KindNotFound:
		return "not_found"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// MissingFields builds a validation error that enumerates every offending
// field, so callers see the full list in one round trip.
func MissingFields(fields []string) *Error {
	return Validation(fmt.Sprintf("missing or invalid fields: %s", strings.Join(fields, ", ")))
}

func DuplicateSubmission(msg string) *Error {
	return &Error{Kind: KindDuplicateSubmission, Message: msg}
}

func InvalidState(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Persistence wraps an underlying store failure. The original error stays
// attached for logging; callers only ever see the generic message.
func Persistence(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

// KindOf reports the kind of err when it is (or wraps) an *Error. Unknown
// errors are treated as persistence failures by callers.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindPersistence, false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
