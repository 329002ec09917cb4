package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// errorBody is the collaborator's error shape. Field messages are optional
// and only present on validation rejections.
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

// FromHTTP maps a non-2xx collaborator response to the local taxonomy.
// 401 means the token is no longer honored and forces a full logout upstream.
func FromHTTP(status int, body []byte) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = parsed.Error
	}

	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrAuthExpired, http.StatusText(status))
	case status >= 400 && status < 500 && len(parsed.Fields) > 0:
		return &ValidationError{Fields: parsed.Fields}
	case status >= 400:
		return &ServerError{Status: status, Message: message}
	}
	return nil
}

// UserMessage converts any core error into the string surfaced to the UI.
// Retry policy belongs to the caller; no message promises an automatic retry.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}

	var server *ServerError
	if errors.As(err, &server) {
		if server.Message != "" {
			return server.Message
		}
		return "Something went wrong on our side. Please try again later."
	}

	switch {
	case errors.Is(err, ErrSessionExpired), errors.Is(err, ErrAuthExpired):
		return "Session expired. Please login again."
	case errors.Is(err, ErrUnreachable):
		return "Could not reach the server. Please try again."
	case errors.Is(err, ErrNotAuthenticated):
		return "Please login first."
	}
	return "Something went wrong. Please try again."
}
