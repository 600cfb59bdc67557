package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/student-records-api/internal/application/auth"
	"github.com/student-records-api/internal/application/course"
	"github.com/student-records-api/internal/application/enrollment"
	"github.com/student-records-api/internal/application/mark"
	"github.com/student-records-api/internal/application/otp"
	"github.com/student-records-api/internal/application/student"
	"github.com/student-records-api/internal/application/user"
	"github.com/student-records-api/internal/config"
	"github.com/student-records-api/internal/infrastructure/postgres"
	"github.com/student-records-api/internal/pkg/clock"
	"github.com/student-records-api/internal/pkg/hash"
	"github.com/student-records-api/internal/transport/http/handler"
	appmiddleware "github.com/student-records-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router. ctx bounds the rate
// limiter's background cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) (http.Handler, error) {
	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Applied to the public auth endpoints only.
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	c := deps.Clock
	if c == nil {
		c = clock.System{}
	}
	passwords := hash.NewBcrypt(deps.PasswordHashCost)

	credentials := postgres.NewCredentialRepo(deps.DB)
	students := postgres.NewStudentRepo(deps.DB)
	courses := postgres.NewCourseRepo(deps.DB)

	otpAuth := otp.NewAuthenticator(otp.Deps{
		Store:    credentials,
		Hasher:   hash.NewBcrypt(deps.OTPHashCost),
		Notifier: deps.Mailer,
		Clock:    c,
		TTL:      cfg.OTPTTL,
	})
	authSvc, err := auth.NewService(auth.ServiceDeps{
		Store:     credentials,
		OTP:       otpAuth,
		Passwords: passwords,
		Tokens:    deps.JWTProvider,
		Clock:     c,
	})
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	userSvc := user.NewService(user.ServiceDeps{Store: credentials, Passwords: passwords, Clock: c})
	studentSvc := student.NewService(students, c)
	courseSvc := course.NewService(courses, c)
	enrollmentSvc := enrollment.NewService(enrollment.ServiceDeps{
		Enrollments: postgres.NewEnrollmentRepo(deps.DB),
		Students:    students,
		Courses:     courses,
	})
	markSvc := mark.NewService(mark.ServiceDeps{
		Marks:    postgres.NewMarkRepo(deps.DB),
		Students: students,
		Courses:  courses,
	})

	var pinger handler.Pinger
	if deps.DB != nil {
		pinger = deps.DB
	}
	healthH := handler.NewHealthHandler(pinger)
	authH := handler.NewAuthHandler(authSvc)
	profileH := handler.NewProfileHandler(userSvc)
	studentH := handler.NewStudentHandler(studentSvc)
	courseH := handler.NewCourseHandler(courseSvc)
	enrollmentH := handler.NewEnrollmentHandler(enrollmentSvc)
	markH := handler.NewMarkHandler(markSvc)

	r.Get("/health-check/{action}", healthH.Ping)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(sensitiveRL.Limit)
			r.Post("/auth/signup", authH.Signup)
			r.Post("/auth/verify-otp-and-register", authH.VerifyOTPAndRegister)
			r.Post("/auth/login", authH.Login)
			r.Post("/auth/forgot-password", authH.ForgotPassword)
			r.Post("/auth/reset-password", authH.ResetPassword)
		})

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Get("/auth/profile", profileH.Get)
			r.Put("/auth/profile", profileH.Update)
			r.Delete("/auth/profile", profileH.Delete)

			r.Get("/students", studentH.List)
			r.Post("/students", studentH.Create)
			r.Get("/students/{id}", studentH.Get)
			r.Put("/students/{id}", studentH.Update)
			r.Delete("/students/{id}", studentH.Delete)

			r.Get("/courses", courseH.List)
			r.Post("/courses", courseH.Create)
			r.Delete("/courses/{id}", courseH.Delete)

			r.Get("/enrollments", enrollmentH.List)
			r.Post("/enrollments", enrollmentH.Create)
			r.Delete("/enrollments/{id}", enrollmentH.Delete)

			r.Get("/marks", markH.List)
			r.Post("/marks", markH.Create)
			r.Put("/marks/{id}", markH.Update)
			r.Delete("/marks/{id}", markH.Delete)
		})
	})

	return r, nil
}
