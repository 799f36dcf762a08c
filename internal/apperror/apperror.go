package apperror

import "errors"

// Kind describes a stable error category that can be mapped to HTTP status codes.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindConnectivity  Kind = "connectivity"
	KindDuplicate     Kind = "duplicate"
	KindConflict      Kind = "conflict"
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindStorage       Kind = "storage"
)

// Error is a typed error with a stable Kind and a human-readable message.
// Msg should be safe to return to clients for every kind except Storage,
// which handlers replace with a generic message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func New(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Configuration(msg string, err error) error { return New(KindConfiguration, msg, err) }
func Connectivity(msg string, err error) error  { return New(KindConnectivity, msg, err) }
func Duplicate(msg string, err error) error     { return New(KindDuplicate, msg, err) }
func Conflict(msg string, err error) error      { return New(KindConflict, msg, err) }
func Validation(msg string, err error) error    { return New(KindValidation, msg, err) }
func NotFound(msg string, err error) error      { return New(KindNotFound, msg, err) }
func Storage(msg string, err error) error       { return New(KindStorage, msg, err) }

func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
