package bible

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout marks a backend call that exceeded its deadline, as opposed
	// to a network failure or an error response.
	ErrTimeout = errors.New("backend timeout")

	// ErrMissingAPIKey indicates a backend client was used without its
	// credential configured.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrUnsupportedTranslation indicates a translation code with no known
	// backend identifier. Surfaced before any backend call.
	ErrUnsupportedTranslation = errors.New("unsupported translation")
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

// ValidationError is a missing required call parameter, caught before any
// network call is made.
type ValidationError struct {
	Param string
}

func (e *ValidationError) Error() string {
	return "missing required parameter: " + e.Param
}
