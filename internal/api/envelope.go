package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// envelope is the uniform JSON wrapper for every API response. Clients
// switch on success and read either data or error, never both.
type envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps every response body in the standard envelope.
// Registered as a huma transformer so handlers return plain DTOs.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		return &envelope{
			Success: false,
			Error:   apiErr,
		}, nil
	}

	// huma surfaces its own validation failures as ErrorModel.
	if humaErr, ok := v.(*huma.ErrorModel); ok {
		return &envelope{
			Success: false,
			Error: &APIError{
				status:  humaErr.Status,
				Code:    statusToCode(humaErr.Status),
				Message: humaErr.Title,
				Details: humaErr.Errors,
			},
		}, nil
	}

	if !strings.HasPrefix(status, "2") {
		return &envelope{
			Success: false,
			Error: &APIError{
				Code:    statusToCode(statusCodeFromString(status)),
				Message: "request failed",
			},
		}, nil
	}

	return &envelope{
		Success: true,
		Data:    v,
	}, nil
}

// statusCodeFromString parses a three-digit status string; malformed
// input maps to 500.
func statusCodeFromString(status string) int {
	if len(status) != 3 {
		return 500
	}
	code := 0
	for _, r := range status {
		if r < '0' || r > '9' {
			return 500
		}
		code = code*10 + int(r-'0')
	}
	return code
}
