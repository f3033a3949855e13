package legacy

import "errors"

// FailureKind identifies why a legacy endpoint call could not produce a
// usable payload. Every value is recoverable by a manual retry.
type FailureKind string

const (
	FailNetwork           FailureKind = "network"
	FailHTMLErrorPage     FailureKind = "html_error_page"
	FailMalformedJSON     FailureKind = "malformed_json"
	FailEmptyBody         FailureKind = "empty_body"
	FailMissingField      FailureKind = "missing_field"
	FailSessionIncomplete FailureKind = "session_incomplete"
)

// Error carries the failure kind alongside a message suitable for direct
// display in the app's error modal.
type Error struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ErrNetwork(err error) error {
	return &Error{
		Kind:    FailNetwork,
		Message: "Failed to reach the school server. Please check your connection.",
		Err:     err,
	}
}

func ErrHTMLErrorPage() error {
	return &Error{
		Kind:    FailHTMLErrorPage,
		Message: "Server returned HTML instead of JSON. Please try again later.",
	}
}

func ErrMalformedJSON() error {
	return &Error{
		Kind:    FailMalformedJSON,
		Message: "Invalid server response format",
	}
}

func ErrEmptyBody() error {
	return &Error{
		Kind:    FailEmptyBody,
		Message: "Server returned an empty response",
	}
}

func ErrMissingField(what string) error {
	return &Error{
		Kind:    FailMissingField,
		Message: "No " + what + " found in server response",
	}
}

func ErrSessionIncomplete() error {
	return &Error{
		Kind:    FailSessionIncomplete,
		Message: "Branch or Student ID missing",
	}
}

// KindOf extracts the failure kind from err, or FailMalformedJSON when err
// did not originate in this package (normalizers returning plain errors are
// treated as shape problems in the server's payload).
func KindOf(err error) FailureKind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return FailMalformedJSON
}
