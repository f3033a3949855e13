package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"schoolapp-backend-go/internal/config"
	"schoolapp-backend-go/internal/legacy"
	"schoolapp-backend-go/internal/normalize"
	"schoolapp-backend-go/internal/resource"
	"schoolapp-backend-go/internal/services"
	"schoolapp-backend-go/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Server struct {
	DB       *sqlx.DB
	Config   config.Config
	Tokens   services.TokenService
	Hub      *services.EventHub
	Store    session.Store
	Legacy   *legacy.Client
	Log      *logrus.Logger
	Validate *validator.Validate

	attendanceYear  *resource.Group[*normalize.AttendanceYear]
	attendanceMonth *resource.Group[*normalize.AttendanceMonth]
	fees            *resource.Group[*normalize.FeeSchedule]
	exams           *resource.Group[*normalize.ExamResultSet]
	activities      *resource.Group[[]normalize.ActivityItem]
	notifications   *resource.Group[[]normalize.NotificationItem]
	profile         *resource.Group[*normalize.StudentProfile]
	school          *resource.Group[*normalize.SchoolInfo]
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.EventHub, store session.Store, client *legacy.Client, log *logrus.Logger) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	s := &Server{
		DB:       db,
		Config:   cfg,
		Tokens:   tokens,
		Hub:      hub,
		Store:    store,
		Legacy:   client,
		Log:      log,
		Validate: validator.New(),
	}

	s.attendanceYear = resource.NewGroup(func(key string) *resource.Controller[*normalize.AttendanceYear] {
		return resource.NewController(func(ctx context.Context) (*normalize.AttendanceYear, error) {
			sess, err := s.completeSession(key)
			if err != nil {
				return nil, err
			}
			payload, err := s.Legacy.AttendanceSummary(ctx, sess.StudentID)
			if err != nil {
				return nil, err
			}
			return normalize.AttendanceYearFrom(payload)
		})
	})
	s.attendanceMonth = resource.NewGroup(func(key string) *resource.Controller[*normalize.AttendanceMonth] {
		loginID, monthVal := splitKey(key)
		return resource.NewController(func(ctx context.Context) (*normalize.AttendanceMonth, error) {
			sess, err := s.completeSession(loginID)
			if err != nil {
				return nil, err
			}
			payload, err := s.Legacy.MonthAttendance(ctx, sess.StudentID, sess.Branch, monthVal)
			if err != nil {
				return nil, err
			}
			return normalize.AttendanceMonthFrom(payload, monthVal)
		})
	})
	s.fees = resource.NewGroup(func(key string) *resource.Controller[*normalize.FeeSchedule] {
		return resource.NewController(func(ctx context.Context) (*normalize.FeeSchedule, error) {
			sess, err := s.completeSession(key)
			if err != nil {
				return nil, err
			}
			payload, err := s.Legacy.Fees(ctx, sess.StudentID, sess.Branch)
			if err != nil {
				return nil, err
			}
			return normalize.FeeScheduleFrom(payload)
		})
	})
	s.exams = resource.NewGroup(func(key string) *resource.Controller[*normalize.ExamResultSet] {
		return resource.NewController(func(ctx context.Context) (*normalize.ExamResultSet, error) {
			sess, err := s.completeSession(key)
			if err != nil {
				return nil, err
			}
			// The backend wants an examType but answers with every
			// type regardless; one fetch caches the full set.
			payload, err := s.Legacy.ExamResults(ctx, sess.StudentID, sess.Branch, "S")
			if err != nil {
				return nil, err
			}
			return normalize.ExamResultSetFrom(payload)
		})
	})
	s.activities = resource.NewGroup(func(string) *resource.Controller[[]normalize.ActivityItem] {
		return resource.NewController(func(ctx context.Context) ([]normalize.ActivityItem, error) {
			payload, err := s.Legacy.Activities(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.ActivitiesFrom(payload)
		})
	})
	s.notifications = resource.NewGroup(func(key string) *resource.Controller[[]normalize.NotificationItem] {
		return resource.NewController(func(ctx context.Context) ([]normalize.NotificationItem, error) {
			sess, err := s.completeSession(key)
			if err != nil {
				return nil, err
			}
			payload, err := s.Legacy.Circulars(ctx, sess.StudentID, sess.Branch)
			if err != nil {
				return nil, err
			}
			return normalize.NotificationsFrom(payload)
		})
	})
	s.profile = resource.NewGroup(func(key string) *resource.Controller[*normalize.StudentProfile] {
		return resource.NewController(func(ctx context.Context) (*normalize.StudentProfile, error) {
			sess, err := s.completeSession(key)
			if err != nil {
				return nil, err
			}
			payload, err := s.Legacy.Profile(ctx, sess.StudentID, sess.Branch)
			if err != nil {
				return nil, err
			}
			return normalize.StudentProfileFrom(payload)
		})
	})
	s.school = resource.NewGroup(func(string) *resource.Controller[*normalize.SchoolInfo] {
		return resource.NewController(func(ctx context.Context) (*normalize.SchoolInfo, error) {
			payload, err := s.Legacy.HomePage(ctx)
			if err != nil {
				return nil, err
			}
			return normalize.SchoolInfoFrom(payload)
		})
	})
	return s
}

// completeSession loads the stored session for loginID and refuses to hand
// out a partial one. An incomplete or missing session stops the resource
// load before any upstream request is made.
func (s *Server) completeSession(loginID string) (*session.Session, error) {
	sess, err := s.Store.Load(loginID)
	if err != nil {
		return nil, err
	}
	if !sess.Complete() {
		return nil, legacy.ErrSessionIncomplete()
	}
	return sess, nil
}

// EvictIdleControllers drops controllers not touched within maxIdle. Called
// from the cron scheduler.
func (s *Server) EvictIdleControllers(maxIdle time.Duration) int {
	total := 0
	total += s.attendanceYear.EvictIdle(maxIdle)
	total += s.attendanceMonth.EvictIdle(maxIdle)
	total += s.fees.EvictIdle(maxIdle)
	total += s.exams.EvictIdle(maxIdle)
	total += s.notifications.EvictIdle(maxIdle)
	total += s.profile.EvictIdle(maxIdle)
	return total
}

// dropUserControllers forgets every per-user controller on logout.
func (s *Server) dropUserControllers(loginID string) {
	s.attendanceYear.Drop(loginID)
	s.attendanceMonth.Drop(loginID)
	s.fees.Drop(loginID)
	s.exams.Drop(loginID)
	s.notifications.Drop(loginID)
	s.profile.Drop(loginID)
}

func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.Log))
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)

		api.Route("/public", func(pub chi.Router) {
			pub.Get("/school", s.SchoolInfo)
			pub.Get("/activities", s.Activities)
		})

		api.Group(func(private chi.Router) {
			private.Use(WithAuth(s.Tokens))
			private.Post("/auth/logout", s.Logout)

			private.Route("/attendance", func(att chi.Router) {
				att.Get("/summary", s.AttendanceSummary)
				att.Post("/summary/retry", s.AttendanceSummaryRetry)
				att.Get("/months/{monthVal}", s.AttendanceMonth)
				att.Post("/months/{monthVal}/retry", s.AttendanceMonthRetry)
			})
			private.Route("/fees", func(fees chi.Router) {
				fees.Get("/", s.Fees)
				fees.Post("/retry", s.FeesRetry)
				fees.Get("/due", s.FeeDue)
			})
			private.Get("/exams", s.Exams)
			private.Post("/exams/retry", s.ExamsRetry)
			private.Get("/activities", s.Activities)
			private.Route("/notifications", func(notif chi.Router) {
				notif.Get("/", s.Notifications)
				notif.Post("/retry", s.NotificationsRetry)
				notif.Post("/{notificationId}/read", s.MarkNotificationRead)
			})
			private.Get("/profile", s.Profile)
			private.Post("/profile/retry", s.ProfileRetry)
			private.Post("/password", s.ChangePassword)
			private.Post("/payments/outcome", s.PaymentOutcome)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Get("/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/events", s.EventSocket)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func splitKey(key string) (string, string) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return key, ""
}
