// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/gfvrho/go-report-backend/internal/auth"
	"github.com/gfvrho/go-report-backend/internal/config"
	"github.com/gfvrho/go-report-backend/internal/domain"
	"github.com/gfvrho/go-report-backend/internal/http/handlers"
	"github.com/gfvrho/go-report-backend/internal/http/middleware"
	"github.com/gfvrho/go-report-backend/internal/repo"
	"github.com/gfvrho/go-report-backend/internal/services"
)

// Dependencies carries the externally constructed collaborators the router
// needs. The repositories are wired internally via shims over the repo
// package free functions.
type Dependencies struct {
	DB        *gorm.DB
	Tokens    *auth.Manager
	Payments  services.PaymentVerifier
	Generator services.ContentGenerator
	Publisher services.DocumentPublisher
}

// reportRepoShim adapts the repository free functions to the
// services.ReportRepo interface expected by ReportService. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type reportRepoShim struct{}

// CreateReport proxies repo.CreateReport.
func (reportRepoShim) CreateReport(ctx context.Context, db *gorm.DB, userID string, tier int, pdfURL, paymentStatus string) (*domain.Report, error) {
	return repo.CreateReport(ctx, db, userID, tier, pdfURL, paymentStatus)
}

// GetReport proxies repo.GetReport.
func (reportRepoShim) GetReport(ctx context.Context, db *gorm.DB, id string) (*domain.Report, error) {
	return repo.GetReport(ctx, db, id)
}

// ListReports proxies repo.ListReports.
func (reportRepoShim) ListReports(ctx context.Context, db *gorm.DB, userID string) ([]domain.Report, error) {
	return repo.ListReports(ctx, db, userID)
}

// userRepoShim adapts the user repository free functions to services.UserRepo.
type userRepoShim struct{}

// CreateUser proxies repo.CreateUser.
func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, email, username, passwordHash string) (*domain.User, error) {
	return repo.CreateUser(ctx, db, email, username, passwordHash)
}

// GetUser proxies repo.GetUser.
func (userRepoShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

// GetUserByEmail proxies repo.GetUserByEmail.
func (userRepoShim) GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmail(ctx, db, email)
}

// UpdateUser proxies repo.UpdateUser.
func (userRepoShim) UpdateUser(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	return repo.UpdateUser(ctx, db, id, fields)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, health and metrics endpoints, and then mounts
// the public API.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
func RegisterRoutes(r *gin.Engine, deps Dependencies, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db/providers
	reportSvc := services.NewReportService(deps.DB, reportRepoShim{}, deps.Payments, deps.Generator, deps.Publisher)
	reportSvc.MaxTier = cfg.MaxTier
	authSvc := services.NewAuthService(deps.DB, userRepoShim{}, deps.Tokens)
	userSvc := services.NewUserService(deps.DB, userRepoShim{})
	h := handlers.New(reportSvc, authSvc, userSvc)

	requireAuth := middleware.RequireAuth(middleware.TokenParserFunc(func(raw string) (string, error) {
		claims, err := deps.Tokens.Parse(raw)
		if err != nil {
			return "", err
		}
		return claims.UserID, nil
	}))

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Accounts (no auth)
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// Reports (auth required)
		reports := api.Group("/report", requireAuth)
		reports.POST("/create", h.CreateReport)
		reports.GET("/all", h.ListReports)
		reports.GET("/:id", h.GetReport)

		// Profile (auth required)
		user := api.Group("/user", requireAuth)
		user.GET("/me", h.GetProfile)
		user.PUT("/me", h.UpdateProfile)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
