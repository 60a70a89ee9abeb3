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

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/joho/godotenv"

	"github.com/jleuth/future-search/internal/adapter/driven/identity"
	"github.com/jleuth/future-search/internal/adapter/driven/perplexity"
	sqliteadapter "github.com/jleuth/future-search/internal/adapter/driven/sqlite"
	"github.com/jleuth/future-search/internal/adapter/driven/timeapi"
	"github.com/jleuth/future-search/internal/adapter/driven/vault"
	httphandler "github.com/jleuth/future-search/internal/adapter/driving/http"
	"github.com/jleuth/future-search/internal/application"
	"github.com/jleuth/future-search/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on a missing or malformed secret key).
	// A .env file is a development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"provider_url", cfg.ProviderURL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	v, err := vault.New(cfg.SecretKey)
	if err != nil {
		return err
	}

	historyStore := sqliteadapter.NewHistoryRepo(db)
	credentialStore := sqliteadapter.NewAPIKeyRepo(db)
	provider := perplexity.NewClient(cfg.ProviderURL, cfg.ProviderTimeout)
	timeSource := timeapi.NewClient(cfg.TimeAPIURL, cfg.TimeAPITimeout)

	// 6. Wire application services.
	logger := slog.Default()
	keySvc := application.NewKeyService(credentialStore, v, logger)
	historySvc := application.NewHistoryService(historyStore, logger)
	answerSvc := application.NewAnswerService(keySvc, provider, timeSource, logger)

	// 7. Create HTTP handler and register routes.
	apiHandler := httphandler.NewHandler(historySvc, keySvc, answerSvc, logger)
	handler := httphandler.NewServeMux(apiHandler, identity.NewHeaderProvider(), logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("futuresearch started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout to drain in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
