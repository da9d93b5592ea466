// Package domain defines the persistence models for users and reports.
// These types are mapped with GORM and form the core data layer of the
// gfvrho report backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Payment status values stored on a Report. The orchestrator sets the value
// explicitly from the verification outcome; it is never inferred later.
const (
	// PaymentStatusFree marks a tier-1 report: the free tier never consults
	// the payment provider and is treated as satisfied.
	PaymentStatusFree = "free"
	// PaymentStatusPaid marks a paid-tier report whose payment the provider
	// confirmed before content generation began.
	PaymentStatusPaid = "paid"
	// PaymentStatusPending and PaymentStatusUnpaid complete the enumeration;
	// the create workflow never persists a report with these values (an
	// unpaid request fails before any content is generated).
	PaymentStatusPending = "pending"
	PaymentStatusUnpaid  = "unpaid"
)

// User represents an account that owns zero or more reports.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Email / Username: unique identity fields, both indexed.
//   - PasswordHash: bcrypt hash of the credential; never serialized.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type User struct {
	ID           string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Email        string         `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Username     string         `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	PasswordHash string         `json:"-"          gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Report represents one generated deliverable. A report row is persisted only
// after its PDF has been rendered and published, so PDFURL is always set on
// rows created by the orchestrator. Reports are immutable once written;
// regeneration produces a new row.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID: foreign key to the owning user (indexed; referential
//     integrity enforced by the store at write time).
//   - Tier: report depth, 1 = free, >= 2 = paid.
//   - PDFURL: presigned URL of the published document. The stored value may
//     outlive the URL's validity window; that is an accepted tradeoff.
//   - PaymentStatus: one of the PaymentStatus* constants.
//   - CreatedAt: set at persistence time, immutable thereafter.
type Report struct {
	ID            string         `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string         `json:"user_id"        gorm:"type:char(36);not null;index:idx_user_reports,priority:1"`
	Tier          int            `json:"tier"           gorm:"not null;check:tier >= 1"`
	PDFURL        string         `json:"pdf_url"        gorm:"type:text;not null"`
	PaymentStatus string         `json:"payment_status" gorm:"type:varchar(16);not null;check:payment_status IN ('free','paid','pending','unpaid')"`
	CreatedAt     time.Time      `json:"created_at"     gorm:"index:idx_user_reports,priority:2"`
	DeletedAt     gorm.DeletedAt `json:"-"              gorm:"index"`

	// User is the owning account. Reports are cascade-deleted if their
	// owner is removed.
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Report.
func (Report) TableName() string { return "reports" }
