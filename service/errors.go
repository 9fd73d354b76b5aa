package service

import "errors"

// Kind classifies a service failure so the HTTP layer can pick a status code.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindBusinessRule
	KindUpstream
	KindAuthentication
	KindUnauthorized
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBusinessRule:
		return "business_rule"
	case KindUpstream:
		return "upstream"
	case KindAuthentication:
		return "authentication"
	case KindUnauthorized:
		return "unauthorized"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error carries a client-safe Message; Err is the internal cause and is never shown to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the Kind of err, or 0 when err is not a service error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
