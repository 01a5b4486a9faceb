package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized is returned for any 401-class response. The session layer
// treats it as "access expired" and forcibly logs the operator out.
var ErrUnauthorized = errors.New("backend rejected the access token")

// RequestError is a non-401 failure from the backend, carrying the HTTP
// status and the backend's detail message when one was present.
type RequestError struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// FieldError is one entry of the backend's structured validation response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is the backend's per-field validation failure, a sequence
// of {field, message} pairs shown next to the offending form fields.
type ValidationError []FieldError

// Error implements the error interface.
func (v ValidationError) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByField returns the message for a field, or "" when the field passed.
func (v ValidationError) ByField(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Detail extracts the backend's detail message from err, falling back to the
// given message when the error carries none. This mirrors how every page
// prefers the backend's own wording over a canned string.
func Detail(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Detail != "" {
		return re.Detail
	}
	return fallback
}

// decodeDetail pulls {"detail": "..."} out of an error response body.
// FastAPI-style backends also put structured objects under detail; anything
// that is not a plain string is ignored.
func decodeDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err != nil {
		return ""
	}
	return s
}

// decodeFieldErrors parses the register endpoint's [{field, message}] array.
func decodeFieldErrors(body []byte) (ValidationError, bool) {
	var fields []FieldError
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return nil, false
	}
	for _, fe := range fields {
		if fe.Field == "" {
			return nil, false
		}
	}
	return ValidationError(fields), true
}
