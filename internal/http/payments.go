package httpapi

import (
	"encoding/json"
	"net/http"

	"schoolapp-backend-go/internal/normalize"
	"schoolapp-backend-go/internal/services"
)

type paymentOutcomeRequest struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}

// PaymentOutcome records the result of a fee payment attempt. The app can
// send the gateway's response page HTML for sniffing, or an explicit status
// when it already knows the outcome. A successful payment makes the cached
// fee schedule stale, so the fee controller is invalidated and the outcome
// is pushed over the event socket.
func (s *Server) PaymentOutcome(w http.ResponseWriter, r *http.Request) {
	var req paymentOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var outcome normalize.PaymentOutcome
	switch normalize.PaymentStatus(req.Status) {
	case normalize.PaymentSuccess, normalize.PaymentFailure, normalize.PaymentCancelled:
		outcome = normalize.PaymentOutcome{Status: normalize.PaymentStatus(req.Status)}
	default:
		if req.Body == "" {
			WriteError(w, http.StatusBadRequest, "status or body is required")
			return
		}
		outcome = normalize.PaymentOutcomeFromHTML(req.Body)
	}

	loginID := CurrentLoginID(r)
	if outcome.Status == normalize.PaymentSuccess {
		s.fees.Invalidate(loginID)
	}
	s.Hub.Publish(services.Event{
		Type:    "payment",
		LoginID: loginID,
		Payload: outcome,
	})
	WriteJSON(w, http.StatusOK, outcome)
}
