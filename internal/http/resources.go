package httpapi

import (
	"net/http"

	"schoolapp-backend-go/internal/normalize"
	"schoolapp-backend-go/internal/resource"
	"schoolapp-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

// serveSnapshot answers a resource read. A plain GET returns whatever state
// the controller holds, loading only when nothing is published yet; that
// keeps an error state visible until the client asks for a retry.
// ?refresh=1 and the retry endpoints force a new load.
func serveSnapshot[T any](s *Server, w http.ResponseWriter, r *http.Request, name string, ctrl *resource.Controller[T], force bool) {
	var snap resource.Snapshot[T]
	if force || r.URL.Query().Get("refresh") == "1" {
		snap = ctrl.RefreshWait(r.Context())
		s.Hub.Publish(services.Event{
			Type:    "resource:" + name,
			LoginID: CurrentLoginID(r),
			Payload: map[string]string{"status": string(snap.Status)},
		})
	} else {
		snap = ctrl.EnsureWait(r.Context())
	}
	WriteSnapshot(w, snap)
}

func (s *Server) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	ctrl := s.attendanceYear.Get(CurrentLoginID(r))
	serveSnapshot(s, w, r, "attendanceSummary", ctrl, false)
}

func (s *Server) AttendanceSummaryRetry(w http.ResponseWriter, r *http.Request) {
	ctrl := s.attendanceYear.Get(CurrentLoginID(r))
	serveSnapshot(s, w, r, "attendanceSummary", ctrl, true)
}

func (s *Server) AttendanceMonth(w http.ResponseWriter, r *http.Request) {
	key := CurrentLoginID(r) + "|" + chi.URLParam(r, "monthVal")
	serveSnapshot(s, w, r, "attendanceMonth", s.attendanceMonth.Get(key), false)
}

func (s *Server) AttendanceMonthRetry(w http.ResponseWriter, r *http.Request) {
	key := CurrentLoginID(r) + "|" + chi.URLParam(r, "monthVal")
	serveSnapshot(s, w, r, "attendanceMonth", s.attendanceMonth.Get(key), true)
}

func (s *Server) Fees(w http.ResponseWriter, r *http.Request) {
	serveSnapshot(s, w, r, "fees", s.fees.Get(CurrentLoginID(r)), false)
}

func (s *Server) FeesRetry(w http.ResponseWriter, r *http.Request) {
	serveSnapshot(s, w, r, "fees", s.fees.Get(CurrentLoginID(r)), true)
}

// FeeDue serves the dashboard badge. Any failure degrades to a null amount
// so the badge disappears instead of blocking the home screen.
func (s *Server) FeeDue(w http.ResponseWriter, r *http.Request) {
	snap := s.fees.Get(CurrentLoginID(r)).EnsureWait(r.Context())
	var due *float64
	if snap.Status == resource.StatusSuccess && snap.Data != nil {
		outstanding := snap.Data.Total.Due
		due = &outstanding
	}
	WriteJSON(w, http.StatusOK, map[string]*float64{"feeDue": due})
}

// Exams serves the full result set, optionally narrowed to one exam type
// (?type=S|U|T|C). Filtering happens on the snapshot copy; the controller
// always caches the complete set so switching tabs needs no refetch.
func (s *Server) Exams(w http.ResponseWriter, r *http.Request) {
	s.serveExams(w, r, false)
}

func (s *Server) ExamsRetry(w http.ResponseWriter, r *http.Request) {
	s.serveExams(w, r, true)
}

func (s *Server) serveExams(w http.ResponseWriter, r *http.Request, force bool) {
	ctrl := s.exams.Get(CurrentLoginID(r))
	var snap resource.Snapshot[*normalize.ExamResultSet]
	if force || r.URL.Query().Get("refresh") == "1" {
		snap = ctrl.RefreshWait(r.Context())
	} else {
		snap = ctrl.EnsureWait(r.Context())
	}
	examType := r.URL.Query().Get("type")
	if examType != "" && snap.Status == resource.StatusSuccess && snap.Data != nil {
		filtered := &normalize.ExamResultSet{TypeLabels: snap.Data.TypeLabels}
		for _, group := range snap.Data.Groups {
			if group.Code == examType {
				filtered.Groups = append(filtered.Groups, group)
			}
		}
		snap.Data = filtered
	}
	WriteSnapshot(w, snap)
}

// Activities is school-wide, not per student, so every caller shares one
// controller. It is also mounted publicly for the pre-login home screen.
func (s *Server) Activities(w http.ResponseWriter, r *http.Request) {
	serveSnapshot(s, w, r, "activities", s.activities.Get("all"), false)
}

func (s *Server) Profile(w http.ResponseWriter, r *http.Request) {
	serveSnapshot(s, w, r, "profile", s.profile.Get(CurrentLoginID(r)), false)
}

func (s *Server) ProfileRetry(w http.ResponseWriter, r *http.Request) {
	serveSnapshot(s, w, r, "profile", s.profile.Get(CurrentLoginID(r)), true)
}

func (s *Server) SchoolInfo(w http.ResponseWriter, r *http.Request) {
	serveSnapshot(s, w, r, "school", s.school.Get("school"), false)
}
