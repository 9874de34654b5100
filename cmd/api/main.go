package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/trustners-ux/trustner-platform-sub000/internal/config"
	"github.com/trustners-ux/trustner-platform-sub000/internal/handler"
	"github.com/trustners-ux/trustner-platform-sub000/internal/integrations/ratefeed"
	"github.com/trustners-ux/trustner-platform-sub000/internal/middleware"
	"github.com/trustners-ux/trustner-platform-sub000/internal/repository"
	"github.com/trustners-ux/trustner-platform-sub000/internal/scheduler"
	"github.com/trustners-ux/trustner-platform-sub000/internal/service"
	"github.com/trustners-ux/trustner-platform-sub000/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatalf("Failed to prepare schema: %v", err)
	}
	mailer := email.NewSender(cfg, logger)
	rates := ratefeed.NewClient(cfg.RateFeedURL, logger)
	svc := service.NewService(repo, mailer, rates, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Analyses fall back to the default debt return until the feed answers
	if err := svc.RefreshBenchmarkRate(ctx); err != nil {
		logger.Warnf("Starting without benchmark rate: %v", err)
	}

	jobs, err := scheduler.New(cfg, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to configure scheduler: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	// Setup router
	r := handler.NewRouter(h, middleware.AuthMiddleware(cfg), middleware.LoggingMiddleware(logger))

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
