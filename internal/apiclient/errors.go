package apiclient

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/zeroco/company-console/internal/errors"
)

// errorBody is the backend's error envelope. Validation failures carry a field map.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// responseError converts a non-2xx response into an AppError. The message is the
// body's message field, else the field errors joined as "field: msg; field: msg",
// else empty so callers substitute their own fallback.
func responseError(status int, raw []byte) *apperrors.AppError {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apperrors.FromStatus(status, "")
	}
	appErr := apperrors.FromStatus(status, body.message())
	if len(body.Errors) == 1 {
		for name := range body.Errors {
			appErr.Field = name
		}
	}
	return appErr
}

// ExtractMessage returns the best human-readable message in an error body, or "".
// Non-JSON bodies yield "".
func ExtractMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.message()
}

func (b errorBody) message() string {
	if msg := strings.TrimSpace(b.Message); msg != "" {
		return msg
	}
	if len(b.Errors) == 0 {
		return ""
	}
	return "Validation failed: " + JoinFieldErrors(b.Errors)
}

// JoinFieldErrors renders a field map sorted by field name.
func JoinFieldErrors(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, fields[name]))
	}
	return strings.Join(parts, "; ")
}
