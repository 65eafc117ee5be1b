package dto

import "time"

// ErrorResponse is the standardized JSON error body returned by every endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid date"`               // Human readable summary
	ErrorDetails string    `json:"error,omitempty" example:"invalid date: \"x\""` // Underlying error, if any
	RequestID    string    `json:"request_id,omitempty" example:"3f1c2a9e-8d4b-4c1e-9a57-0b6f7e2d1c44"`
	Timestamp    time.Time `json:"timestamp"` // When the error was produced
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
// err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// WithRequestID returns a copy of e tagged with the request id.
func (e ErrorResponse) WithRequestID(id string) ErrorResponse {
	e.RequestID = id
	return e
}

// Error lets an ErrorResponse travel through c.Error.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
