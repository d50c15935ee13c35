package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"

	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/domain/presence"
	"github.com/codekids/academy-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth          AuthServiceInterface
	Courses       *service.CourseService
	Enrollments   *service.EnrollmentService
	ClassSessions *service.ClassSessionService
	PasswordReset *service.PasswordResetService
	Presence      *presence.Store
	DB            *sql.DB
	// Optional: per-client request throttle applied in front of the mux.
	Throttle *Throttler
	// Configuration
	CallbackURL   string
	SecureCookies bool
	Logger        *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := NewAuthHandlers(AuthHandlersOptions{
		Auth:          services.Auth,
		Logger:        services.Logger,
		CallbackURL:   services.CallbackURL,
		SecureCookies: services.SecureCookies,
	})
	courseHandlers := NewCourseHandlers(services.Courses, services.Logger)
	enrollmentHandlers := NewEnrollmentHandlers(services.Enrollments, services.Logger)
	classSessionHandlers := NewClassSessionHandlers(services.ClassSessions, services.Logger)
	presenceHandlers := NewPresenceHandlers(services.Presence)
	resetHandlers := NewPasswordResetHandlers(services.PasswordReset, services.Logger)
	healthHandlers := NewHealthHandlers(services.DB)

	registerAuthRoutes(mux, authHandlers)
	registerCourseRoutes(mux, courseHandlers, services.Auth)
	registerEnrollmentRoutes(mux, enrollmentHandlers, services.Auth)
	registerClassSessionRoutes(mux, classSessionHandlers, services.Auth)
	registerPresenceRoutes(mux, presenceHandlers, services.Auth)
	mux.HandleFunc("POST /api/password-reset", resetHandlers.Request)
	mux.HandleFunc("GET /healthz", healthHandlers.Healthz)
	mux.HandleFunc("HEAD /healthz", healthHandlers.Healthz)
	mux.HandleFunc("GET /readyz", healthHandlers.Readyz)

	if services.Throttle != nil {
		return services.Throttle.Middleware(mux)
	}
	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// registerCourseRoutes wires the catalog. Reads are public with optional
// session pickup so staff see disabled courses; writes are admin only.
func registerCourseRoutes(mux *http.ServeMux, h *CourseHandlers, auth AuthServiceInterface) {
	public := OptionalAuth(auth)
	adminOnly := RequireRoles(auth, domainauth.RoleAdmin)

	mux.Handle("GET /api/courses", public(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/courses/{id}", public(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/courses", adminOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/courses/{id}", adminOnly(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/courses/{id}", adminOnly(http.HandlerFunc(h.Delete)))
}

func registerEnrollmentRoutes(mux *http.ServeMux, h *EnrollmentHandlers, auth AuthServiceInterface) {
	parentOnly := RequireRoles(auth, domainauth.RoleParent)
	// Reads admit staff as well; the service scopes parents to their own rows.
	readers := RequireRoles(auth, domainauth.RoleParent, domainauth.RoleSupport)

	mux.Handle("POST /api/enrollments", parentOnly(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/enrollments", readers(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/enrollments/{id}", readers(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/enrollments/{id}/cancel", readers(http.HandlerFunc(h.Cancel)))
}

func registerClassSessionRoutes(mux *http.ServeMux, h *ClassSessionHandlers, auth AuthServiceInterface) {
	anySession := RequireAuth(auth)
	instructorOnly := RequireRoles(auth, domainauth.RoleInstructor)

	mux.Handle("GET /api/class-sessions", anySession(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/class-sessions/{id}", anySession(http.HandlerFunc(h.Get)))
	mux.Handle("POST /api/class-sessions", instructorOnly(http.HandlerFunc(h.Create)))
	mux.Handle("PUT /api/class-sessions/{id}", instructorOnly(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/class-sessions/{id}", instructorOnly(http.HandlerFunc(h.Delete)))
}

func registerPresenceRoutes(mux *http.ServeMux, h *PresenceHandlers, auth AuthServiceInterface) {
	// Heartbeats are anonymous-friendly but pick up a session when present.
	public := OptionalAuth(auth)
	staffOnly := RequireRoles(auth, domainauth.RoleSupport)

	mux.Handle("POST /api/presence/heartbeat", public(http.HandlerFunc(h.Heartbeat)))
	mux.Handle("POST /api/presence/leave", public(http.HandlerFunc(h.Leave)))
	mux.Handle("GET /api/presence/active", staffOnly(http.HandlerFunc(h.Active)))
}
