package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gfvrho/go-report-backend/internal/domain"
)

func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	// Single connection so the PRAGMA applies to every statement.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, username string) *domain.User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, email, username, "$2a$10$hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestCreateReport_Success(t *testing.T) {
	db := newRepoDB(t)
	u := seedUser(t, db, "a@example.com", "alice")

	start := time.Now().UTC().Add(-time.Minute)
	r, err := CreateReport(context.Background(), db, u.ID, 2, "https://storage/abc123.pdf", domain.PaymentStatusPaid)
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if r.ID == "" || r.UserID != u.ID || r.Tier != 2 {
		t.Fatalf("unexpected Report fields: %+v", r)
	}
	if r.PDFURL != "https://storage/abc123.pdf" || r.PaymentStatus != domain.PaymentStatusPaid {
		t.Fatalf("unexpected document/payment fields: %+v", r)
	}
	if r.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset/really old: %v", r.CreatedAt)
	}

	// round-trip
	got, err := GetReport(context.Background(), db, r.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.Tier != r.Tier || got.PDFURL != r.PDFURL || got.PaymentStatus != r.PaymentStatus {
		t.Fatalf("round-trip mismatch: %+v vs %+v", got, r)
	}
}

func TestCreateReport_UnknownUser_IntegrityViolation(t *testing.T) {
	db := newRepoDB(t)

	_, err := CreateReport(context.Background(), db, "no-such-user", 1, "https://storage/x.pdf", domain.PaymentStatusFree)
	if err == nil {
		t.Fatal("expected FK violation for unknown user, got nil")
	}
	if !IsIntegrityViolation(err) {
		t.Fatalf("IsIntegrityViolation(%v) = false, want true", err)
	}
}

func TestGetReport_NotFound(t *testing.T) {
	db := newRepoDB(t)

	_, err := GetReport(context.Background(), db, "999")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListReports_OrderDescendingAndFilter(t *testing.T) {
	db := newRepoDB(t)
	u := seedUser(t, db, "a@example.com", "alice")
	other := seedUser(t, db, "b@example.com", "bob")

	// Seed with known CreatedAt so order is deterministic.
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) // oldest
	t2 := t1.Add(1 * time.Hour)
	for i, ts := range []time.Time{t1, t2} {
		r := &domain.Report{
			ID:            uuid.NewString(),
			UserID:        u.ID,
			Tier:          i + 1,
			PDFURL:        fmt.Sprintf("https://storage/%d.pdf", i),
			PaymentStatus: domain.PaymentStatusFree,
			CreatedAt:     ts,
		}
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed report: %v", err)
		}
	}
	// Foreign user's report must not leak into the listing.
	if err := db.Create(&domain.Report{
		ID: uuid.NewString(), UserID: other.ID, Tier: 1,
		PDFURL: "https://storage/other.pdf", PaymentStatus: domain.PaymentStatusFree,
		CreatedAt: t2.Add(time.Hour),
	}).Error; err != nil {
		t.Fatalf("seed foreign report: %v", err)
	}

	got, err := ListReports(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatalf("expected descending creation order, got %v then %v", got[0].CreatedAt, got[1].CreatedAt)
	}
}

func TestListReports_EmptyIsNotNil(t *testing.T) {
	db := newRepoDB(t)
	u := seedUser(t, db, "a@example.com", "alice")

	got, err := ListReports(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestReportsStats(t *testing.T) {
	db := newRepoDB(t)
	u := seedUser(t, db, "a@example.com", "alice")

	count, maxTS, err := ReportsStats(context.Background(), db, u.ID)
	if err != nil || count != 0 || maxTS != nil {
		t.Fatalf("empty stats: count=%d maxTS=%v err=%v", count, maxTS, err)
	}

	ts := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	if err := db.Create(&domain.Report{
		ID: uuid.NewString(), UserID: u.ID, Tier: 1,
		PDFURL: "https://storage/a.pdf", PaymentStatus: domain.PaymentStatusFree,
		CreatedAt: ts,
	}).Error; err != nil {
		t.Fatalf("seed report: %v", err)
	}

	count, maxTS, err = ReportsStats(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 1 || maxTS == nil || !maxTS.Equal(ts) {
		t.Fatalf("unexpected stats: count=%d maxTS=%v", count, maxTS)
	}
}
