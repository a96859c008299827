package remote

import (
	"fmt"
	"net/http"

	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/record"
)

// APIError represents an error response from the directory API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("directory API error %d: %s", e.StatusCode, e.Message)
}

// UserMessage is the server-provided message shown in notifications.
func (e *APIError) UserMessage() string {
	return e.Message
}

// Unwrap maps the status code onto the directory sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return directory.ErrNotFound
	case e.StatusCode == http.StatusBadRequest:
		return directory.ErrValidation
	case e.StatusCode >= 500:
		return directory.ErrUnavailable
	default:
		return nil
	}
}

// errorResponse is the JSON structure for API errors.
type errorResponse struct {
	Message string `json:"message"`
}

type recordsResponse struct {
	Records []record.Summary `json:"records"`
}

type picklistResponse struct {
	Values []directory.PicklistValue `json:"values"`
}
