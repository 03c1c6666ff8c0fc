package dto

import (
	"time"
)

// APIResponse is the standard envelope for successful responses. Warning
// carries the "succeeded with warning" outcome of operations whose
// secondary dependent write failed after the primary write succeeded.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Warning   string       `json:"warning,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewAPIResponse wraps a payload in the standard envelope.
func NewAPIResponse(data interface{}) APIResponse {
	return APIResponse{
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewAPIResponseWithWarning wraps a payload that succeeded partially.
func NewAPIResponseWithWarning(data interface{}, warning string) APIResponse {
	return APIResponse{
		Data:      data,
		Warning:   warning,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a bare confirmation message
type SuccessResponse struct {
	Message string `json:"message"`
}
