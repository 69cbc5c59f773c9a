package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of a tuition operation.
type Kind int

const (
	// KindInternal is a local persistence or unexpected failure.
	KindInternal Kind = iota
	// KindValidation is malformed or incomplete input, detected before any I/O.
	KindValidation
	// KindNotFound means the referenced tuition does not exist.
	KindNotFound
	// KindAlreadyExists is a tuition name uniqueness violation.
	KindAlreadyExists
	// KindConflict is an enrollment state that forbids the operation.
	KindConflict
	// KindUpstream is a failed call to the student or payment service.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAlreadyExists:
		return "already_exists"
	case KindConflict:
		return "conflict"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Reason narrows a KindConflict failure.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonAlreadyEnrolled
	ReasonNotEnrolled
)

// Upstream identifies a collaborating service.
type Upstream string

const (
	UpstreamStudent Upstream = "student"
	UpstreamPayment Upstream = "payment"
)

// Error is the single failure type returned by TuitionService.
type Error struct {
	Kind    Kind
	Reason  Reason
	Service Upstream
	// Body is the raw response of the failing upstream, nil when the call
	// never got an answer.
	Body []byte
	// Timeout is set when an upstream call ran out of time.
	Timeout bool
	Op      string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Service != "" {
		msg += " (" + string(e.Service) + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts the *Error from err. Anything else is reported as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindInternal, Err: err}
}

func validationError(op, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Err: errors.New(msg)}
}

func notFoundError(op, tuitionID string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Err: fmt.Errorf("tuition %q not found", tuitionID)}
}

func alreadyExistsError(op, name string) *Error {
	return &Error{Kind: KindAlreadyExists, Op: op, Err: fmt.Errorf("tuition %q already exists", name)}
}

func conflictError(op string, reason Reason, err error) *Error {
	return &Error{Kind: KindConflict, Reason: reason, Op: op, Err: err}
}

func internalError(op string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Err: err}
}
