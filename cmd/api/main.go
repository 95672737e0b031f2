// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

// Command api is the entry point for the Acadex HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Connect to object storage (S3-compatible).
//  6. Run database migrations (idempotent).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acadex-platform/acadex/internal/academics/college"
	"github.com/acadex-platform/acadex/internal/academics/curriculum"
	"github.com/acadex-platform/acadex/internal/academics/department"
	"github.com/acadex-platform/acadex/internal/academics/subject"
	"github.com/acadex-platform/acadex/internal/academics/university"
	"github.com/acadex-platform/acadex/internal/academics/year"
	"github.com/acadex-platform/acadex/internal/api"
	"github.com/acadex-platform/acadex/internal/content/file"
	"github.com/acadex-platform/acadex/internal/content/image"
	"github.com/acadex-platform/acadex/internal/platform/config"
	"github.com/acadex-platform/acadex/internal/platform/constants"
	"github.com/acadex-platform/acadex/internal/platform/migration"
	pgstore "github.com/acadex-platform/acadex/internal/platform/postgres"
	redisstore "github.com/acadex-platform/acadex/internal/platform/redis"
	"github.com/acadex-platform/acadex/internal/platform/sec"
	"github.com/acadex-platform/acadex/internal/platform/storage"
	"github.com/acadex-platform/acadex/internal/questionbank"
	"github.com/acadex-platform/acadex/internal/users/account"
	"github.com/acadex-platform/acadex/internal/users/auth"
	"github.com/acadex-platform/acadex/internal/users/permission"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "acadex"))
	slog.SetDefault(log)

	log.Info("[Acadex] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "acadex"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Object Storage ─────────────────────────────────────────────────
	objectStorage, err := storage.NewMinioStorage(startupCtx, storage.MinioOptions{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		UseSSL:    cfg.S3UseSSL,
	}, log)
	must(log, err, "connect to object storage")

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckStorage: func() error {
			return objectStorage.Ping(context.Background())
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────

	// Users: authentication, accounts, permissions.
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	// Expired refresh sessions accumulate because revocation is soft.
	// Purge them on a fixed cadence for the lifetime of the server.
	go func() {
		ticker := time.NewTicker(constants.SessionPurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-serverCtx.Done():
				return
			case <-ticker.C:
				if perr := sessionRepository.DeleteExpired(serverCtx); perr != nil {
					log.Error("session_purge_failed", slog.Any("error", perr))
				}
			}
		}
	}()

	accountRepository := account.NewAccountRepository(pool)
	profileRepository := account.NewProfileRepository(pool)
	accountService := account.NewService(accountRepository, profileRepository, sessionRepository, objectStorage, log)
	accountHandler := account.NewHandler(accountService)

	permissionRepository := permission.NewPostgresRepository(pool)
	permissionService := permission.NewService(permissionRepository, log)
	permissionHandler := permission.NewHandler(permissionService, userRepository)

	// Content: images back university logos, files carry course documents.
	imageRepository := image.NewPostgresRepository(pool)
	imageService := image.NewService(imageRepository, objectStorage, log)

	fileRepository := file.NewFileRepository(pool)
	ratingRepository := file.NewRatingRepository(pool)
	fileService := file.NewService(fileRepository, ratingRepository, objectStorage, log)
	fileHandler := file.NewHandler(fileService)

	// Academics: the catalogue tree from university down to curriculum.
	universityRepository := university.NewPostgresRepository(pool)
	universityService := university.NewService(universityRepository, imageService, log)
	universityHandler := university.NewHandler(universityService)

	collegeRepository := college.NewPostgresRepository(pool)
	collegeHandler := college.NewHandler(college.NewService(collegeRepository, log))

	departmentRepository := department.NewPostgresRepository(pool)
	departmentHandler := department.NewHandler(department.NewService(departmentRepository, log))

	yearRepository := year.NewPostgresRepository(pool)
	yearHandler := year.NewHandler(year.NewService(yearRepository, log))

	subjectRepository := subject.NewPostgresRepository(pool)
	subjectHandler := subject.NewHandler(subject.NewService(subjectRepository, log))

	curriculumRepository := curriculum.NewPostgresRepository(pool)
	curriculumService := curriculum.NewService(curriculumRepository, objectStorage, log)
	curriculumHandler := curriculum.NewHandler(curriculumService)

	// Question banks.
	bankRepository := questionbank.NewPostgresBankRepository(pool)
	questionRepository := questionbank.NewPostgresQuestionRepository(pool)
	questionBankHandler := questionbank.NewHandler(questionbank.NewService(bankRepository, questionRepository, log))

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Account:      accountHandler,
		Permission:   permissionHandler,
		University:   universityHandler,
		College:      collegeHandler,
		Department:   departmentHandler,
		Year:         yearHandler,
		Subject:      subjectHandler,
		Curriculum:   curriculumHandler,
		File:         fileHandler,
		QuestionBank: questionBankHandler,
	}

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, permissionService, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
