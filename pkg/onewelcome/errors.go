package onewelcome

import (
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/sellvation/onewelcome/pkg/onewelcome/internal/wire"
)

// ============================================================================
// Error Taxonomy
// ============================================================================

// ValidationError is returned when a required key is missing or malformed
// while parsing a vendor payload. Field names the offending key.
type ValidationError = wire.ValidationError

// maxBodySnippet bounds the response body kept on an APIError.
const maxBodySnippet = 512

// APIError is returned when the API answers with a status outside 200, 201
// and 204.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Message is the vendor error message when the body carries one
	Message string

	// Body is the start of the response body
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("onewelcome: API request failed with status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("onewelcome: API request failed with status %d", e.StatusCode)
}

// newAPIError builds an APIError from a raw response body, picking the vendor
// message out of the common error shapes.
func newAPIError(status int, body []byte) *APIError {
	snippet := string(body)
	if len(snippet) > maxBodySnippet {
		cut := maxBodySnippet
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}

	var message string
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error_description", "message", "detail", "error"} {
			if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
				message = r.Str
				break
			}
		}
	}

	return &APIError{StatusCode: status, Message: message, Body: snippet}
}

// TransportError is returned when the request could not be completed at the
// transport level: connection refused, TLS failure, timeout or cancellation.
type TransportError struct {
	// Op describes what was being attempted (e.g. "GET example.com/v1/users")
	Op  string
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("onewelcome: transport failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error { return e.Err }

// SerializationError is returned when JSON that must be well formed is not.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("onewelcome: malformed JSON: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error { return e.Err }

// TokenAcquisitionError wraps any failure while exchanging credentials for a
// bearer token.
type TokenAcquisitionError struct {
	Err error
}

// Error implements the error interface.
func (e *TokenAcquisitionError) Error() string {
	return fmt.Sprintf("onewelcome: error obtaining token: %v", e.Err)
}

// Unwrap returns the original cause.
func (e *TokenAcquisitionError) Unwrap() error { return e.Err }

// UnexpectedResponseError is returned when a successful response carries a
// body that cannot be used, such as a token response without access_token.
type UnexpectedResponseError struct {
	Reason string
}

// Error implements the error interface.
func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("onewelcome: unexpected response: %s", e.Reason)
}
