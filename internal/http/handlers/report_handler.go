// Report HTTP handlers.
//
// This file exposes REST endpoints for report resources:
//   - POST /report/create   (run the generation pipeline)
//   - GET  /report/:id      (fetch one report, owner only)
//   - GET  /report/all      (list own reports, ETag support)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gfvrho/go-report-backend/internal/domain"
	"github.com/gfvrho/go-report-backend/internal/http/middleware"
	"github.com/gfvrho/go-report-backend/internal/repo"
	"github.com/gfvrho/go-report-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ReportService defines report lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ReportService interface {
	// Create runs the full pipeline and returns the persisted report.
	Create(ctx context.Context, userID string, tier int, marketData map[string]string) (*domain.Report, error)
	// Get returns a single report, enforcing ownership.
	Get(ctx context.Context, userID, reportID string) (*domain.Report, error)
	// List returns all reports owned by the user, newest first.
	List(ctx context.Context, userID string) ([]domain.Report, error)
}

// AuthService defines account operations consumed by HTTP handlers.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserService defines profile operations consumed by HTTP handlers.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd services.ProfileUpdate) (*domain.User, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for reports, accounts, and profiles.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	reportSvc ReportService
	authSvc   AuthService
	userSvc   UserService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(reportSvc ReportService, authSvc AuthService, userSvc UserService) *Handlers {
	return &Handlers{reportSvc: reportSvc, authSvc: authSvc, userSvc: userSvc}
}

// userID extracts the authenticated user id from Gin context (set by the
// auth middleware). Empty means the middleware did not run.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

//
// DTOs
//

// CreateReportRequest is the JSON payload for creating a report.
type CreateReportRequest struct {
	// Tier selects the report depth; paid tiers require a verified payment.
	Tier *int `json:"tier" binding:"required"`
	// MarketData optionally adds caller-supplied context to generation.
	MarketData map[string]string `json:"market_data"`
}

//
// Handlers
//

// CreateReport runs the report pipeline for the authenticated user and
// returns the persisted report on success.
func (h *Handlers) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Tier == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "tier is required")
		return
	}

	report, err := h.reportSvc.Create(c.Request.Context(), userID(c), *req.Tier, req.MarketData)
	if err != nil {
		outcome := "error"
		if errors.Is(err, services.ErrPaymentRequired) {
			outcome = "payment_required"
		}
		middleware.ObserveReportCreation(*req.Tier, outcome)
		status, code, msg := mapServiceError(err)
		fail(c, status, code, msg)
		return
	}
	middleware.ObserveReportCreation(*req.Tier, "created")
	ok(c, http.StatusCreated, report)
}

// GetReport fetches a single report owned by the authenticated user.
// Reports owned by other users yield 403; unknown ids yield 404.
func (h *Handlers) GetReport(c *gin.Context) {
	report, err := h.reportSvc.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		status, code, msg := mapServiceError(err)
		fail(c, status, code, msg)
		return
	}
	ok(c, http.StatusOK, report)
}

// ListReports returns every report owned by the authenticated user,
// newest first, as a bare JSON array. Supports weak ETag via
// If-None-Match and may return 304.
func (h *Handlers) ListReports(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.reportSvc.(*services.ReportService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ReportsStats(ctx, db, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"reports:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	reports, err := h.reportSvc.List(ctx, uid)
	if err != nil {
		status, code, msg := mapServiceError(err)
		fail(c, status, code, msg)
		return
	}
	ok(c, http.StatusOK, reports)
}
