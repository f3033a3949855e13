package normalize

import "strings"

// PaymentStatus is the closed set of payment gateway outcomes.
type PaymentStatus string

const (
	PaymentSuccess   PaymentStatus = "success"
	PaymentFailure   PaymentStatus = "failure"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentUnknown   PaymentStatus = "unknown"
)

// PaymentOutcome is the parsed result of a payment gateway response page.
type PaymentOutcome struct {
	Status PaymentStatus `json:"status"`
	Detail string        `json:"detail,omitempty"`
}

// PaymentOutcomeFromHTML sniffs the gateway's response page for its outcome
// keywords. Success is checked before failure because failure pages sometimes
// mention "successful transactions" in boilerplate.
func PaymentOutcomeFromHTML(body string) PaymentOutcome {
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "success"):
		return PaymentOutcome{Status: PaymentSuccess}
	case strings.Contains(lower, "failure") || strings.Contains(lower, "failed"):
		return PaymentOutcome{Status: PaymentFailure}
	case strings.Contains(lower, "aborted") || strings.Contains(lower, "cancel"):
		return PaymentOutcome{Status: PaymentCancelled}
	default:
		return PaymentOutcome{Status: PaymentUnknown}
	}
}
