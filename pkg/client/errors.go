package client

import (
	"errors"
	"fmt"
	"net/http"
)

// CodeNetwork marks failures where no HTTP response arrived.
const CodeNetwork = "network_error"

// APIError is returned for every failed call.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func statusIs(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func IsNotFound(err error) bool     { return statusIs(err, http.StatusNotFound) }
func IsConflict(err error) bool     { return statusIs(err, http.StatusConflict) }
func IsUnauthorized(err error) bool { return statusIs(err, http.StatusUnauthorized) }

// IsNetwork reports whether err happened before any response was received.
func IsNetwork(err error) bool { return statusIs(err, 0) }

// HasCode reports whether err is an API error with the given code.
func HasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
