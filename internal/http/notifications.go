package httpapi

import (
	"net/http"

	"schoolapp-backend-go/internal/normalize"
	"schoolapp-backend-go/internal/resource"

	"github.com/go-chi/chi/v5"
)

// Notifications merges the upstream circulars with the user's read marks.
// Read state lives only in the gateway store; the legacy backend has no
// notion of it.
func (s *Server) Notifications(w http.ResponseWriter, r *http.Request) {
	s.serveNotifications(w, r, false)
}

func (s *Server) NotificationsRetry(w http.ResponseWriter, r *http.Request) {
	s.serveNotifications(w, r, true)
}

func (s *Server) serveNotifications(w http.ResponseWriter, r *http.Request, force bool) {
	loginID := CurrentLoginID(r)
	ctrl := s.notifications.Get(loginID)
	var snap resource.Snapshot[[]normalize.NotificationItem]
	if force || r.URL.Query().Get("refresh") == "1" {
		snap = ctrl.RefreshWait(r.Context())
	} else {
		snap = ctrl.EnsureWait(r.Context())
	}
	if snap.Status == resource.StatusSuccess {
		readIDs, err := s.Store.ReadIDs(loginID)
		if err != nil {
			s.Log.WithError(err).Warn("read marks unavailable")
		}
		overlaid := make([]normalize.NotificationItem, len(snap.Data))
		for i, item := range snap.Data {
			item.Read = readIDs[item.ID]
			overlaid[i] = item
		}
		snap.Data = overlaid
	}
	WriteSnapshot(w, snap)
}

func (s *Server) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	loginID := CurrentLoginID(r)
	notificationID := chi.URLParam(r, "notificationId")
	if notificationID == "" {
		WriteError(w, http.StatusBadRequest, "notification id is required")
		return
	}
	if err := s.Store.MarkRead(loginID, notificationID); err != nil {
		s.Log.WithError(err).Error("mark read failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
