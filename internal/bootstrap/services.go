package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/codekids/academy-api/config"
	"github.com/codekids/academy-api/internal/adapters/email"
	"github.com/codekids/academy-api/internal/adapters/payment"
	redisadapter "github.com/codekids/academy-api/internal/adapters/redis"
	"github.com/codekids/academy-api/internal/data"
	"github.com/codekids/academy-api/internal/domain/presence"
	"github.com/codekids/academy-api/internal/domain/ratelimit"
	"github.com/codekids/academy-api/internal/service"
)

// ServiceContainer holds all application services and shared state built at
// startup.
type ServiceContainer struct {
	Auth          *service.AuthService
	Courses       *service.CourseService
	Enrollments   *service.EnrollmentService
	ClassSessions *service.ClassSessionService
	PasswordReset *service.PasswordResetService
	Presence      *presence.Store
}

// ServicesConfig contains dependencies for building the service container.
type ServicesConfig struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildServices wires repositories, adapters, and services.
func BuildServices(cfg ServicesConfig) ServiceContainer {
	userRepo := data.NewUserRepo(cfg.DB)
	courseRepo := data.NewCourseRepo(cfg.DB)
	enrollmentRepo := data.NewEnrollmentRepo(cfg.DB)
	classSessionRepo := data.NewClassSessionRepo(cfg.DB)

	authSvc := BuildAuthService(AuthConfig{
		Auth:        cfg.Config.Auth,
		RedisClient: cfg.RedisClient,
		Users:       userRepo,
		Logger:      cfg.Logger,
	})

	courseSvc := service.NewCourseService(service.CourseServiceOptions{
		CourseRepo: courseRepo,
	})

	enrollmentSvc := service.NewEnrollmentService(service.EnrollmentServiceOptions{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		Payments:       payment.NewDevProvider(cfg.Logger),
	})

	classSessionSvc := service.NewClassSessionService(service.ClassSessionServiceOptions{
		SessionRepo: classSessionRepo,
		CourseRepo:  courseRepo,
	})

	resetSvc := service.NewPasswordResetService(service.PasswordResetServiceOptions{
		Users:    userRepo,
		Tokens:   redisadapter.NewResetTokenStore(cfg.RedisClient),
		Email:    email.NewConsoleSender(cfg.Logger),
		Limiter:  ratelimit.New(cfg.Config.Limits.ResetMaxRequests, cfg.Config.Limits.ResetWindow),
		TokenTTL: cfg.Config.Limits.ResetTokenTTL,
	})

	return ServiceContainer{
		Auth:          authSvc,
		Courses:       courseSvc,
		Enrollments:   enrollmentSvc,
		ClassSessions: classSessionSvc,
		PasswordReset: resetSvc,
		Presence:      presence.NewStore(presence.WithTTL(cfg.Config.Limits.PresenceTTL)),
	}
}
