package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// InternalError is the base kind for failures raised while talking to a
// forecast provider. It carries only a human-readable message.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string { return e.Message }

// RequestError reports a failure before any provider response was obtained.
type RequestError struct {
	InternalError
	Err error
}

// NewRequestError builds a RequestError for the named provider.
func NewRequestError(provider string, err error) *RequestError {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &RequestError{
		InternalError: InternalError{
			Message: fmt.Sprintf("Unexpected error when trying to communicate to %s: %s", provider, msg),
		},
		Err: err,
	}
}

// Unwrap exposes both the base kind and the transport cause.
func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{&e.InternalError}
	}
	return []error{&e.InternalError, e.Err}
}

// ResponseError reports a non-success status returned by the provider.
type ResponseError struct {
	InternalError
	Status int
	Body   []byte
}

// NewResponseError builds a ResponseError for the named provider.
func NewResponseError(provider string, status int, body []byte) *ResponseError {
	return &ResponseError{
		InternalError: InternalError{
			Message: fmt.Sprintf("Unexpected error when returned by the %s service: Error: %s Code: %d",
				provider, serializeBody(body), status),
		},
		Status: status,
		Body:   body,
	}
}

func (e *ResponseError) Unwrap() error { return &e.InternalError }

// serializeBody renders a response body as compact JSON. Bodies that are not
// JSON are rendered as a JSON string.
func serializeBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	quoted, _ := json.Marshal(string(trimmed))
	return string(quoted)
}
