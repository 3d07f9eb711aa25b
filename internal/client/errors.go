package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrSessionExpired matches any error caused by the backend rejecting the
// session's token with 401.
var ErrSessionExpired = errors.New("session expired")

// ErrResponseTooLarge is returned when a response body exceeds the
// client's buffering limit.
var ErrResponseTooLarge = errors.New("response too large")

// ErrTokenNotStored means the server issued a token but the session could
// not keep it. The auth call still returns the server's response.
var ErrTokenNotStored = errors.New("access token issued but not stored")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Body is the raw response body
	Body []byte
	// Detail is the server's "detail" message when the body carries one
	Detail string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// SessionExpiredError is returned for 401 responses after the session's
// token has been cleared. It matches ErrSessionExpired and unwraps to the
// underlying *APIError.
type SessionExpiredError struct {
	Err *APIError
}

func (e *SessionExpiredError) Error() string {
	return "session expired: " + e.Err.Error()
}

func (e *SessionExpiredError) Is(target error) bool {
	return target == ErrSessionExpired
}

func (e *SessionExpiredError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// parseDetail extracts the message from a {"detail": ...} body. Validation
// failures carry a list of {loc, msg} objects instead of a string.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if len(item.Loc) == 0 {
				msgs = append(msgs, item.Msg)
				continue
			}
			loc := make([]string, len(item.Loc))
			for i, part := range item.Loc {
				loc[i] = fmt.Sprint(part)
			}
			msgs = append(msgs, strings.Join(loc, ".")+": "+item.Msg)
		}
		return strings.Join(msgs, "; ")
	}

	return string(envelope.Detail)
}
