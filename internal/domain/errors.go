package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error so callers can map it to an externally
// visible outcome without inspecting rule codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAlreadyExists
	KindInvariantViolation
	KindUnauthorized
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindInvariantViolation:
		return "invariant_violation"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a business-rule failure. Code is a stable dotted rule identifier
// (e.g. "organization.owner.lastOwner"); Message is human readable.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidation(code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewAlreadyExists(code, format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyExists, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewRuleViolation reports a broken aggregate or cross-aggregate invariant.
func NewRuleViolation(code, format string, args ...any) *Error {
	return &Error{Kind: KindInvariantViolation, Code: code, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorized(code, format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewConflict reports a concurrent-update collision. The caller is expected
// to retry the whole transaction or surface the failure as transient.
func NewConflict(code, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindUnknown for non-domain errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// CodeOf returns the rule code of err, or "" for non-domain errors.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
