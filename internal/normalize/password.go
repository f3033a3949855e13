package normalize

import (
	"strings"

	"schoolapp-backend-go/internal/legacy"
)

// PasswordChangeResult is the normalized updatestudentpw payload. MatchedKey
// records which response key signalled success, so callers can log when the
// backend used one of its alternate spellings.
type PasswordChangeResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	MatchedKey string `json:"-"`
}

// PasswordResultFrom detects success across the keys the backend has been
// observed to use: Status=="Success", status=="success", message=="success",
// or a true success flag. Checked in that order; the first match wins. On
// failure the message comes from message, error or Message.
func PasswordResultFrom(payload any) (*PasswordChangeResult, error) {
	m, ok := asMap(payload)
	if !ok {
		return nil, legacy.ErrMissingField("password change result")
	}

	checks := []struct {
		key   string
		match func(any) bool
	}{
		{"Status", func(v any) bool { return asString(v) == "Success" }},
		{"status", func(v any) bool { return strings.EqualFold(asString(v), "success") }},
		{"message", func(v any) bool { return strings.EqualFold(asString(v), "success") }},
		{"success", func(v any) bool { b, ok := v.(bool); return ok && b }},
	}
	for _, check := range checks {
		if v, exists := m[check.key]; exists && check.match(v) {
			return &PasswordChangeResult{Success: true, MatchedKey: check.key}, nil
		}
	}

	message := firstString(m, "message", "error", "Message")
	if message == "" {
		message = "Password change failed"
	}
	return &PasswordChangeResult{Success: false, Message: message}, nil
}
