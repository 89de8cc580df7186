package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// TransportError means no response was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api call failed: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Error is a non-2xx response. Message is the server's message, if any.
type Error struct {
	Status  int
	Message string
	Body    []byte
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api call failed: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api call failed: status %d", e.Status)
}

// Unauthorized reports a rejected or expired token.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// htmlError matches the message line of the backend's default HTML error page.
var htmlError = regexp.MustCompile(`Error:\s*(.*?)<br>`)

func newError(status int, body []byte) *Error {
	return &Error{Status: status, Message: messageFrom(body), Body: body}
}

func messageFrom(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	text := string(body)
	if strings.Contains(text, "<html") {
		if m := htmlError.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ErrorMessage picks the text to show the user for a failed call: the
// server's message when there is one, otherwise fallback.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsMessage reports whether err is a server failure carrying exactly msg.
func IsMessage(err error, msg string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Message == msg
}
