// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
  - Authorization guards (role and permission checks) are applied here at
    mount time; handlers stay guard-free and only expose route groups.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/acadex-platform/acadex/internal/academics/college"
	"github.com/acadex-platform/acadex/internal/academics/curriculum"
	"github.com/acadex-platform/acadex/internal/academics/department"
	"github.com/acadex-platform/acadex/internal/academics/subject"
	"github.com/acadex-platform/acadex/internal/academics/university"
	"github.com/acadex-platform/acadex/internal/academics/year"
	"github.com/acadex-platform/acadex/internal/content/file"
	"github.com/acadex-platform/acadex/internal/platform/config"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	"github.com/acadex-platform/acadex/internal/platform/middleware"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/questionbank"
	"github.com/acadex-platform/acadex/internal/users/account"
	"github.com/acadex-platform/acadex/internal/users/auth"
	"github.com/acadex-platform/acadex/internal/users/permission"
)

// PermCurriculumManage gates curriculum mutations. Seeded by migration
// and granted to the doctor and leader roles; revocable per user.
const PermCurriculumManage = "curriculum.manage"

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles registration, login, and session rotation.
	Auth *auth.Handler

	// Account handles self-service profiles and admin user management.
	Account *account.Handler

	// Permission handles the admin permission catalogue and grants.
	Permission *permission.Handler

	// University through Curriculum handle the academic catalogue tree.
	University *university.Handler
	College    *college.Handler
	Department *department.Handler
	Year       *year.Handler
	Subject    *subject.Handler
	Curriculum *curriculum.Handler

	// File handles course documents and ratings.
	File *file.Handler

	// QuestionBank handles MCQ banks and Excel import/export.
	QuestionBank *questionbank.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(
	context context.Context,
	cfg *config.Config,
	log *slog.Logger,
	verifier middleware.TokenVerifier,
	resolver middleware.PermissionResolver,
	h Handlers,
) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Catalogue reads are public: the registration and login flows
		// present universities, departments, and years before any
		// session exists.
		api.Mount("/universities", h.University.PublicRoutes())
		api.Mount("/colleges", h.College.PublicRoutes())
		api.Mount("/departments", h.Department.PublicRoutes())
		api.Mount("/years", h.Year.PublicRoutes())
		api.Mount("/subjects", h.Subject.PublicRoutes())
		api.Mount("/curricula", h.Curriculum.PublicRoutes())

		// Authenticated surfaces.
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)

			authed.Mount("/users", h.Account.Routes())
			authed.Mount("/files", h.File.Routes())
			authed.Mount("/question-banks", h.QuestionBank.Routes())

			// Content management for teaching staff.
			authed.Group(func(staff chi.Router) {
				staff.Use(middleware.RequireRole(sec.RoleDoctor))

				staff.Mount("/staff/files", h.File.StaffRoutes())
				staff.Mount("/staff/question-banks", h.QuestionBank.StaffRoutes())
			})

			// Curriculum mutations are permission-gated rather than
			// role-gated so individual doctors can be granted or
			// revoked without a role change.
			authed.Group(func(staff chi.Router) {
				staff.Use(middleware.RequirePermission(resolver, PermCurriculumManage))

				staff.Mount("/staff/curricula", h.Curriculum.StaffRoutes())
			})

			// Subject management for department leaders.
			authed.Group(func(leaders chi.Router) {
				leaders.Use(middleware.RequireRole(sec.RoleLeader))

				leaders.Mount("/staff/subjects", h.Subject.StaffRoutes())
			})

			// Administrative surfaces.
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireRole(sec.RoleAdmin))

				admin.Mount("/admin/users", h.Account.AdminRoutes())
				admin.Mount("/admin/permissions", h.Permission.Routes())
				admin.Mount("/admin/universities", h.University.AdminRoutes())
				admin.Mount("/admin/colleges", h.College.AdminRoutes())
				admin.Mount("/admin/departments", h.Department.AdminRoutes())
				admin.Mount("/admin/years", h.Year.AdminRoutes())
			})
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
