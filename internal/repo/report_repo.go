// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Report
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a report is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - An insert referencing a nonexistent user fails with the driver's
//     foreign-key violation; callers classify it via IsIntegrityViolation.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gfvrho/go-report-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateReport inserts a new Report row owned by userID. The report ID is a
// randomly generated UUID (string), and CreatedAt is set to UTC. Referential
// integrity is enforced here: inserting with a userID that does not reference
// an existing user fails with a foreign-key violation.
//
// A report is only ever inserted with its document URL already known; there
// is no code path that writes a row without one.
func CreateReport(ctx context.Context, db *gorm.DB, userID string, tier int, pdfURL, paymentStatus string) (*domain.Report, error) {
	r := &domain.Report{
		ID:            uuid.NewString(),
		UserID:        userID,
		Tier:          tier,
		PDFURL:        pdfURL,
		PaymentStatus: paymentStatus,
		CreatedAt:     time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetReport fetches a single report by its ID regardless of owner. Ownership
// is checked by the service layer so that "exists but foreign" and "does not
// exist" map to distinct outcomes. Returns ErrNotFound when missing.
func GetReport(ctx context.Context, db *gorm.DB, id string) (*domain.Report, error) {
	var r domain.Report
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReports returns all reports belonging to userID, ordered by creation
// time descending (most recent first). It returns an empty slice if the user
// has no reports, never nil. On DB error, it returns the error.
func ListReports(ctx context.Context, db *gorm.DB, userID string) ([]domain.Report, error) {
	out := []domain.Report{}
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// IsIntegrityViolation reports whether err looks like a relational-integrity
// failure (foreign-key or check constraint) in a driver-agnostic way.
//
// SQLite typically: "FOREIGN KEY constraint failed" / "constraint failed"
// Postgres typically: "violates foreign key constraint"
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") ||
		strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "violates foreign key")
}
