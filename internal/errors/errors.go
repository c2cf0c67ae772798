package errors

import (
	"errors"
)

// Common error values for the authentication client
var (
	// Validation errors (never reach the network)
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingFields      = errors.New("required fields missing")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidDocument    = errors.New("invalid document")
	ErrUnsupportedGrant   = errors.New("unsupported grant type")

	// Protocol errors
	ErrMalformedToken   = errors.New("malformed token")
	ErrMissingCode      = errors.New("missing authorization code")
	ErrProviderRejected = errors.New("identity provider reported an error")

	// Session errors
	ErrNoSession         = errors.New("no session")
	ErrUserInfoMissing   = errors.New("user info not found")
	ErrSubmissionPending = errors.New("submission already in progress")

	// Navigation errors
	ErrNotFound = errors.New("not found")
)

// Kind classifies a failure for reporting purposes.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindTransport
	KindClient
	KindServer
	KindProtocol
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindProtocol:
		return "protocol"
	}
	return "unknown"
}

// Kinded is implemented by errors that know their own Kind.
type Kinded interface {
	Kind() Kind
}

type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }
func (e *kindError) Kind() Kind    { return e.kind }

// Validation marks err as a client-side validation failure.
func Validation(err error) error {
	return &kindError{kind: KindValidation, err: err}
}

// Protocol marks err as a protocol failure (bad token, bad callback parameters, provider error).
func Protocol(err error) error {
	return &kindError{kind: KindProtocol, err: err}
}

// KindOf returns the Kind of the first error in err's chain that carries one.
func KindOf(err error) Kind {
	var k Kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
