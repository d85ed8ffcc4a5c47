package biz

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure classes the use cases can report
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindProvider
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindProvider:
		return "provider"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is a classified failure with the entity it concerns
type Error struct {
	Kind   Kind
	Entity string
	ID     string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Reason
	if e.Entity != "" {
		if e.ID != "" {
			msg = fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Reason)
		} else {
			msg = fmt.Sprintf("%s: %s", e.Entity, e.Reason)
		}
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Configuration reports missing or invalid settings
func Configuration(reason string) *Error {
	return &Error{Kind: KindConfiguration, Reason: reason}
}

// Provider reports a failed call to the metadata provider
func Provider(reason string, err error) *Error {
	return &Error{Kind: KindProvider, Entity: "provider", Reason: reason, Err: err}
}

func NotFound(entity, id string, err error) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Reason: "not found", Err: err}
}

func Conflict(entity, id, reason string, err error) *Error {
	return &Error{Kind: KindConflict, Entity: entity, ID: id, Reason: reason, Err: err}
}

func Validation(field, reason string) *Error {
	return &Error{Kind: KindValidation, Entity: field, Reason: reason}
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
