// Package services – ReportService
//
// This file implements ReportService, the orchestrator behind report
// creation and retrieval. Creating a report runs a fixed pipeline:
// validate the requested tier, verify payment entitlement for paid tiers,
// generate the report text, publish it as a watermarked PDF, and persist
// the resulting record. Each stage failure maps to a distinct sentinel
// error so handlers can answer with the right status code.
//
// Observability: public methods are OpenTelemetry-instrumented; spans
// carry user and tier identifiers.
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gfvrho/go-report-backend/internal/domain"
)

// firstPaidTier is the lowest tier that requires a verified payment.
const firstPaidTier = 2

// watermarkFormat stamps every page of a generated document.
const watermarkFormat = "gfvrho Tier %d Report"

// PaymentVerifier checks whether a user has paid for a given tier.
type PaymentVerifier interface {
	// Verify reports whether a completed payment exists for userID at tier.
	// A false result with nil error means "checked, not paid".
	Verify(ctx context.Context, userID string, tier int) (bool, error)
}

// ContentGenerator produces the textual body of a report.
type ContentGenerator interface {
	Generate(ctx context.Context, tier int, userData, marketData map[string]string) (string, error)
}

// DocumentPublisher renders content into a watermarked document, stores it
// and returns a URL granting read access.
type DocumentPublisher interface {
	Publish(ctx context.Context, content, watermark string) (string, error)
}

// ReportRepo defines the repository contract required by ReportService.
type ReportRepo interface {
	CreateReport(ctx context.Context, db *gorm.DB, userID string, tier int, pdfURL, paymentStatus string) (*domain.Report, error)
	GetReport(ctx context.Context, db *gorm.DB, id string) (*domain.Report, error)
	ListReports(ctx context.Context, db *gorm.DB, userID string) ([]domain.Report, error)
}

// ReportService coordinates payment verification, content generation,
// document publishing and persistence for reports.
type ReportService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the report repository used by this service.
	Repo ReportRepo

	Payments  PaymentVerifier
	Generator ContentGenerator
	Publisher DocumentPublisher

	// MaxTier caps the accepted tier range (1..MaxTier).
	MaxTier int
}

// NewReportService constructs a ReportService with the default tier range.
func NewReportService(db *gorm.DB, r ReportRepo, pay PaymentVerifier, gen ContentGenerator, pub DocumentPublisher) *ReportService {
	return &ReportService{
		DB:        db,
		Repo:      r,
		Payments:  pay,
		Generator: gen,
		Publisher: pub,
		MaxTier:   3,
	}
}

// Create runs the full report pipeline for userID at the requested tier
// and returns the persisted record. Tiers below the paid threshold skip
// payment verification entirely. marketData is optional caller-supplied
// context forwarded to generation.
func (s *ReportService) Create(ctx context.Context, userID string, tier int, marketData map[string]string) (*domain.Report, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("report.tier", tier),
		),
	)
	defer span.End()

	if tier < 1 || tier > s.MaxTier {
		return nil, fmt.Errorf("%w: tier %d out of range 1..%d", ErrInvalidTier, tier, s.MaxTier)
	}

	paymentStatus := domain.PaymentStatusFree
	if tier >= firstPaidTier {
		paid, err := s.Payments.Verify(ctx, userID, tier)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentCheck, err)
		}
		if !paid {
			return nil, fmt.Errorf("%w: tier %d", ErrPaymentRequired, tier)
		}
		paymentStatus = domain.PaymentStatusPaid
	}

	userData := map[string]string{"user_id": userID}
	content, err := s.Generator.Generate(ctx, tier, userData, marketData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	watermark := fmt.Sprintf(watermarkFormat, tier)
	pdfURL, err := s.Publisher.Publish(ctx, content, watermark)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	report, err := s.Repo.CreateReport(ctx, s.DB, userID, tier, pdfURL, paymentStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return report, nil
}

// Get returns the report with the given id, enforcing ownership.
// A missing report yields ErrReportNotFound; a report owned by another
// user yields ErrReportForbidden.
func (s *ReportService) Get(ctx context.Context, userID, reportID string) (*domain.Report, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("report.id", reportID),
		),
	)
	defer span.End()

	report, err := s.Repo.GetReport(ctx, s.DB, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.UserID != userID {
		return nil, ErrReportForbidden
	}
	return report, nil
}

// List returns every report owned by userID, newest first. The result is
// never nil so callers can serialize it as an empty array.
func (s *ReportService) List(ctx context.Context, userID string) ([]domain.Report, error) {
	tr := otel.Tracer("services/ReportService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	return s.Repo.ListReports(ctx, s.DB, userID)
}
