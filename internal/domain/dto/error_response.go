package dto

import (
	"time"

	"github.com/guttosm/portfoli/internal/domain/result"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message      string              `json:"message" example:"invalid operation: duplicate holding"`
	ErrorDetails string              `json:"error_details,omitempty" example:"portfolio already holds NASDAQ:AAPL"`
	FieldErrors  map[string][]string `json:"field_errors,omitempty"`
	Timestamp    time.Time           `json:"timestamp" example:"2024-03-15T10:30:00Z"`
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds a response stamped with the current time.
// err, if present, becomes ErrorDetails.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// FromResultError renders a use-case failure. The underlying cause is never
// exposed; the categorised message is.
func FromResultError(e *result.Error) ErrorResponse {
	resp := NewErrorResponse(e.Message, nil)
	resp.FieldErrors = e.FieldErrors
	return resp
}
