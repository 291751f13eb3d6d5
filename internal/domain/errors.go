package domain

import "errors"

// Kind classifies an outcome so the transport boundary can render it
// without knowing which operation produced it.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindNotFoundOrForbidden
	KindConflict
	KindValidation
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFoundOrForbidden:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a typed operation outcome. Reason is safe to show to the caller.
type Error struct {
	Kind   Kind
	Reason string
	Fields map[string]string
}

func (e *Error) Error() string {
	return e.Reason
}

func NewError(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// ValidationFailure builds a validation outcome carrying per-field messages.
func ValidationFailure(reason string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Reason: reason, Fields: fields}
}

// KindOf reports the outcome kind of err; unknown errors are internal.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
