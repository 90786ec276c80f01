package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/lib/pq"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_to_text/internal/archive"
	"github.com/Vovarama1992/voice_to_text/internal/config"
	"github.com/Vovarama1992/voice_to_text/internal/delivery"
	"github.com/Vovarama1992/voice_to_text/internal/journal"
	"github.com/Vovarama1992/voice_to_text/internal/notificator"
	"github.com/Vovarama1992/voice_to_text/internal/transcription"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// =========================================================================
	// JOURNAL (optional, postgres)
	// =========================================================================

	var (
		db          *sql.DB
		journalRepo journal.Repo
	)
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db ping failed: %v", err)
		}
		if err := journal.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("journal schema: %v", err)
		}
		journalRepo = journal.NewRepo(db)
	}

	// =========================================================================
	// ARCHIVE (optional, S3) / ADMIN ALERTS (optional, telegram)
	// =========================================================================

	var s3Client archive.Client
	if cfg.S3.Enabled() {
		s3Client, err = archive.NewS3Client(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
	}

	var alerts notificator.Notificator
	if cfg.TelegramToken != "" {
		infra, err := notificator.NewInfra(cfg.TelegramToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Fatalf("failed to init telegram: %v", err)
		}
		alerts = infra
	}

	// =========================================================================
	// TRANSCRIPTION PIPELINE
	// =========================================================================

	transcriber := transcription.NewService(
		transcription.NewRequestBuilder(cfg.OpenAIKey),
		transcription.NewHTTPClient(cfg.TranscriptionURL, &http.Client{}),
		zl,
	)

	handler := delivery.NewTranscriptionHandler(
		transcriber,
		journal.NewService(journalRepo, zl),
		archive.NewService(s3Client),
		notificator.NewService(alerts),
		zl,
		delivery.HandlerOptions{
			UploadDir: cfg.UploadDir,
			MaxSize:   cfg.MaxUploadSize,
			CSRFToken: cfg.CSRFToken,
		},
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-CSRF-Token"},
	}))

	delivery.RegisterRoutes(r, handler, cfg.RatePerMinute)

	// =========================================================================
	// START SERVER
	// =========================================================================

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "listening at " + srv.Addr,
			Service: "voice_to_text",
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if db != nil {
		err = multierr.Append(err, db.Close())
	}
	if err != nil {
		zl.Log(logger.LogEntry{Level: "error", Message: "shutdown", Service: "voice_to_text", Error: err})
	}
}
