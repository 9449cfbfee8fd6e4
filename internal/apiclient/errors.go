package apiclient

import (
	"errors"
	"fmt"
)

// Kind classifies a RequestError.
type Kind int

const (
	KindUnexpected     Kind = iota + 1 // free-text failure detected by the client
	KindWrapped                        // failure reported by another layer (transport, decoder)
	KindServerResponse                 // non-2xx status
)

func (k Kind) String() string {
	switch k {
	case KindUnexpected:
		return "unexpected"
	case KindWrapped:
		return "wrapped"
	case KindServerResponse:
		return "server_response"
	default:
		return "unknown"
	}
}

// Codes reported by Code for the non-HTTP kinds.
const (
	CodeUnexpected = -1
	CodeWrapped    = -2
)

// RequestError is the only error type returned by Client.
//
// Two errors are equal when they have the same kind and the same rendered
// description (or status code). The wrapped cause is kept for errors.Unwrap
// but never takes part in equality.
type RequestError struct {
	Kind        Kind
	Description string
	StatusCode  int

	cause error
}

// Unexpected returns a RequestError carrying free text.
func Unexpected(description string) *RequestError {
	return &RequestError{Kind: KindUnexpected, Description: description}
}

// Wrapped returns a RequestError rendering err's description.
func Wrapped(err error) *RequestError {
	desc := "<nil>"
	if err != nil {
		desc = err.Error()
	}
	return &RequestError{Kind: KindWrapped, Description: desc, cause: err}
}

// ServerResponse returns a RequestError for a non-2xx status code.
func ServerResponse(code int) *RequestError {
	return &RequestError{Kind: KindServerResponse, StatusCode: code}
}

// Code returns -1 for Unexpected, -2 for Wrapped, or the HTTP status.
func (e *RequestError) Code() int {
	switch e.Kind {
	case KindUnexpected:
		return CodeUnexpected
	case KindWrapped:
		return CodeWrapped
	default:
		return e.StatusCode
	}
}

// Error returns the human-readable message shown to users.
func (e *RequestError) Error() string {
	if e.Kind == KindServerResponse {
		return fmt.Sprintf("A data request error occurred. (code: %d)", e.StatusCode)
	}
	return e.Description
}

func (e *RequestError) Unwrap() error {
	return e.cause
}

// Equal reports whether e and other describe the same failure.
func (e *RequestError) Equal(other *RequestError) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Kind != other.Kind {
		return false
	}
	if e.Kind == KindServerResponse {
		return e.StatusCode == other.StatusCode
	}
	return e.Description == other.Description
}

// Is makes errors.Is use Equal semantics.
func (e *RequestError) Is(target error) bool {
	t, ok := target.(*RequestError)
	return ok && e.Equal(t)
}

// AsRequestError returns err as a *RequestError. Errors of any other type
// become Unexpected with the original description. A nil err returns nil.
func AsRequestError(err error) *RequestError {
	if err == nil {
		return nil
	}
	var re *RequestError
	if errors.As(err, &re) {
		return re
	}
	return Unexpected(err.Error())
}
