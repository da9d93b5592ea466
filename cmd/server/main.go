// Command server runs the report generation HTTP API.
//
// Startup order: load .env (optional), parse configuration, configure
// logging and tracing, open the database, wire the external providers
// (payments, LLM, object storage), then serve until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gfvrho/go-report-backend/internal/auth"
	"github.com/gfvrho/go-report-backend/internal/config"
	httpapi "github.com/gfvrho/go-report-backend/internal/http"
	"github.com/gfvrho/go-report-backend/internal/llm"
	"github.com/gfvrho/go-report-backend/internal/observability"
	"github.com/gfvrho/go-report-backend/internal/payment"
	"github.com/gfvrho/go-report-backend/internal/repo"
	"github.com/gfvrho/go-report-backend/internal/storage"
	"github.com/gfvrho/go-report-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		ct, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(ct); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database failed")
	}

	store, err := storage.NewS3Store(ctx, storage.S3Config{
		Bucket:    cfg.S3.Bucket,
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("object store setup failed")
	}

	publisher := &storage.Publisher{
		Store:     store,
		KeyPrefix: cfg.S3.KeyPrefix,
		URLTTL:    cfg.S3.PresignTTL,
		Log:       log.Logger,
	}

	generator := &llm.Generator{
		Primary:    llm.NewOpenAIClient(cfg.LLM.OpenAIKey, cfg.LLM.OpenAIBaseURL, cfg.LLM.OpenAIModel, cfg.LLM.Timeout),
		Enrichment: llm.NewPerplexityClient(cfg.LLM.PerplexityKey, cfg.LLM.PerplexityURL, cfg.LLM.PerplexityModel, cfg.LLM.Timeout),
		Log:        log.Logger,
	}

	verifier := payment.NewStripeVerifier(cfg.Stripe.APIKey, cfg.Stripe.BaseURL, cfg.Stripe.Timeout)

	tokens := &auth.Manager{Secret: []byte(cfg.JWT.Secret), TTL: cfg.JWT.TTL}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Dependencies{
		DB:        db,
		Tokens:    tokens,
		Payments:  verifier,
		Generator: generator,
		Publisher: publisher,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		ct, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ct); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
		log.Info().Msg("server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}
}
