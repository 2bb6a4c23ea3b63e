package apiclient

import (
	"errors"
	"net/http"
)

// Kind classifies a failed backend operation for display policy.
type Kind string

const (
	// KindValidation covers bad input the backend (or the client, before
	// sending) rejected.
	KindValidation Kind = "validation"
	// KindAuth covers missing or invalid credentials and sessions.
	KindAuth Kind = "auth"
	// KindRequest covers any other non-2xx backend response.
	KindRequest Kind = "request"
	// KindNetwork covers transport failures before a response arrived.
	KindNetwork Kind = "network"
)

// Error is a typed backend error carrying a human-readable message for
// direct display. Status is zero for network errors.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ValidationError builds a client-side validation failure that blocked a
// request from being sent.
func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// AuthError builds a client-side authentication failure (missing session).
func AuthError(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), cause: err}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindRequest
	}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
