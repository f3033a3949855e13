package normalize

import "testing"

func TestPaymentOutcomeFromHTML(t *testing.T) {
	cases := map[string]PaymentStatus{
		"<html><body>Transaction Successful</body></html>": PaymentSuccess,
		"<html>Payment Failure, contact support</html>":    PaymentFailure,
		"Transaction Aborted by user":                      PaymentCancelled,
		"You have cancelled the payment":                   PaymentCancelled,
		"<html>random page</html>":                         PaymentUnknown,
	}
	for body, want := range cases {
		if got := PaymentOutcomeFromHTML(body); got.Status != want {
			t.Fatalf("PaymentOutcomeFromHTML(%q) = %s, want %s", body, got.Status, want)
		}
	}
}

func TestPaymentSuccessBeatsFailureBoilerplate(t *testing.T) {
	body := "Payment Success. Note: failed transactions are refunded in 7 days."
	if got := PaymentOutcomeFromHTML(body); got.Status != PaymentSuccess {
		t.Fatalf("got %s, want success", got.Status)
	}
}
