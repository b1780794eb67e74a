package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mwhitford/caseflow/internal/config"
	"github.com/mwhitford/caseflow/internal/domain/caselookup"
	"github.com/mwhitford/caseflow/internal/domain/claim"
	"github.com/mwhitford/caseflow/internal/domain/evaluation"
	"github.com/mwhitford/caseflow/internal/domain/parentcase"
	"github.com/mwhitford/caseflow/internal/domain/report"
	"github.com/mwhitford/caseflow/internal/domain/user"
	"github.com/mwhitford/caseflow/internal/notify"
	"github.com/mwhitford/caseflow/internal/sqlite"
	"github.com/mwhitford/caseflow/internal/transport/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(db)
	tokenRepo := sqlite.NewTokenRepository(db)
	activeRepo := sqlite.NewActiveClaimRepository(db)
	completeRepo := sqlite.NewCompleteClaimRepository(db)
	reviewedRepo := sqlite.NewReviewedClaimRepository(db)
	parentCaseRepo := sqlite.NewParentCaseRepository(db)
	evaluationRepo := sqlite.NewEvaluationRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	// Notification delivery is fire and forget. When no NATS URL is
	// configured the services run with a no-op publisher.
	var publisher notify.Publisher = notify.Noop{}
	if cfg.NATS.URL != "" {
		nats, err := notify.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			logger.Warn("notifications disabled", "error", err)
		} else {
			defer nats.Close()
			publisher = nats
		}
	}

	userSvc := user.NewService(userRepo, tokenRepo, logger)
	claimSvc := claim.NewService(activeRepo, completeRepo, reviewedRepo, userRepo, publisher, logger)
	lookupSvc := caselookup.NewService(activeRepo, completeRepo, reviewedRepo, logger)
	parentCaseSvc := parentcase.NewService(parentCaseRepo, logger)
	evaluationSvc := evaluation.NewService(evaluationRepo, evaluationRepo, userRepo, logger)
	reportSvc := report.NewService(reportRepo, userRepo, logger)

	router := rest.NewRouter(rest.Services{
		Users:       userSvc,
		Claims:      claimSvc,
		Lookup:      lookupSvc,
		ParentCases: parentCaseSvc,
		Evaluations: evaluationSvc,
		Reports:     reportSvc,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
