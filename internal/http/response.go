package httpapi

import (
	"encoding/json"
	"net/http"

	"schoolapp-backend-go/internal/resource"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// SnapshotError is the error half of a snapshot envelope.
type SnapshotError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SnapshotResponse wraps a controller snapshot for the wire. Resource state
// travels in the payload; the HTTP status stays 200 because a failed
// upstream fetch is a result, not a gateway failure.
type SnapshotResponse struct {
	Status string         `json:"status"`
	Data   any            `json:"data"`
	Error  *SnapshotError `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

func WriteSnapshot[T any](w http.ResponseWriter, snap resource.Snapshot[T]) {
	body := SnapshotResponse{Status: string(snap.Status)}
	if snap.Status == resource.StatusSuccess {
		body.Data = snap.Data
	}
	if snap.Status == resource.StatusError {
		body.Error = &SnapshotError{Kind: string(snap.ErrorKind), Message: snap.ErrorMessage}
	}
	WriteJSON(w, http.StatusOK, body)
}
