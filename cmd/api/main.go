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

	"github.com/Dan9191/credit-report-service/internal/config"
	"github.com/Dan9191/credit-report-service/internal/handler"
	"github.com/Dan9191/credit-report-service/internal/repository"
	"github.com/Dan9191/credit-report-service/internal/scheduler"
	"github.com/Dan9191/credit-report-service/internal/service"
	"github.com/Dan9191/credit-report-service/internal/storage"
	"github.com/Dan9191/credit-report-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize record store
	var repo repository.Store
	switch cfg.Store {
	case config.StoreMemory:
		logger.Warn("Using in-memory record store; records are lost on restart")
		repo = repository.NewMemoryRepository()
	default:
		db, err := openDB(cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := repository.RunMigrations(context.Background(), db); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		repo = repository.NewPGRepository(db)
	}

	// Initialize layers
	uploads := storage.NewLocalStore(cfg.UploadDir)
	var notifier service.Notifier
	if cfg.NotificationsEnabled() {
		notifier = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, uploads, notifier, logger, cfg)
	h := handler.NewHandler(svc, logger, cfg.MaxUploadBytes)

	if cfg.UploadRetention > 0 {
		retention, err := scheduler.NewRetention(cfg.RetentionSchedule, cfg.UploadRetention, uploads, logger)
		if err != nil {
			logger.Fatalf("Failed to schedule upload retention: %v", err)
		}
		retention.Start()
		defer retention.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg.CORSAllowOrigins, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
