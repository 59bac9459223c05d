// Package main implements the entry point for the vocadrill API
// server, which generates vocabulary quizzes, grades submissions, and
// maintains each user's wrong-answer review notes.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danbi/vocadrill/internal/cache"
	"github.com/danbi/vocadrill/internal/config"
	"github.com/danbi/vocadrill/internal/platform/logger"
	"github.com/danbi/vocadrill/internal/platform/postgres"
	"github.com/danbi/vocadrill/internal/service/auth"
	"github.com/danbi/vocadrill/internal/service/grading"
	"github.com/danbi/vocadrill/internal/service/notes"
	"github.com/danbi/vocadrill/internal/service/quizgen"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires configuration, storage, services, and the HTTP server, then
// blocks until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := runMigrations(db, cfg, appLogger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session cache plus its background sweeper. The sweeper stops
	// with the server context.
	papers := cache.NewLRUCache(
		time.Duration(cfg.Cache.TTLMinutes)*time.Minute,
		cfg.Cache.MaxEntries)
	if cfg.Cache.SweepIntervalMinutes > 0 {
		go papers.StartSweeper(ctx,
			time.Duration(cfg.Cache.SweepIntervalMinutes)*time.Minute,
			appLogger)
	}

	// Stores
	wordStore := postgres.NewWordStore(db, appLogger)
	attemptStore := postgres.NewAttemptStore(db, appLogger)
	noteStore := postgres.NewNoteStore(db, appLogger)

	// Services
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	var audit quizgen.AuditRepository
	if cfg.Quiz.AuditEnabled {
		audit = postgres.NewQuizAuditStore(db, appLogger)
	}

	generator := quizgen.NewQuizGenerationService(
		wordStore, noteStore, audit, papers,
		quizgen.Config{
			DefaultCount:   cfg.Quiz.DefaultCount,
			DistractorPool: cfg.Quiz.DistractorPool,
		},
		appLogger)

	grader := grading.NewGradingService(
		db, papers,
		grading.NewAttemptRepositoryAdapter(attemptStore),
		grading.NewNoteRepositoryAdapter(noteStore),
		appLogger)

	noteService := notes.NewNoteService(noteStore, appLogger)

	router := setupRouter(generator, grader, noteService, jwtService, appLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	appLogger.Info("server stopped")
	return nil
}
