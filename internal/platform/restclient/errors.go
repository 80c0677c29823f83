package restclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "climblog/internal/platform/errors"
)

// APIError is a non-2xx backend response. Detail holds the server-provided
// message, empty when the body carried none.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.Status)
}

// Is lets errors.Is(err, apperrors.ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == apperrors.ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Detail extracts the server message from err, if err is an APIError.
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail, true
	}
	return "", false
}

// decodeDetail understands {"detail": "msg"} and the validation form
// {"detail": [{"msg": "..."}]}.
func decodeDetail(raw []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
