package shopify

import (
	"encoding/json"
	"fmt"
)

// APIError is a non-2xx response from the Shopify Admin API. Body holds the
// structured errors object when the response carried one, otherwise the raw
// response text.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.Status, e.Body)
}

// ParseError is a 2xx response whose body could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// newAPIError extracts the "errors" object from an error response body when
// the body is valid JSON; unparseable bodies are preserved verbatim.
func newAPIError(status int, body []byte) *APIError {
	var parsed struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return &APIError{Status: status, Body: string(parsed.Errors)}
	}
	return &APIError{Status: status, Body: string(body)}
}
