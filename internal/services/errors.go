// Package services – shared error values
//
// Sentinel errors returned by the service layer for predictable failure
// cases, so HTTP handlers can map them to status codes consistently.
// Errors wrapping an upstream cause use fmt.Errorf("%w: %v", Sentinel, err)
// and remain matchable with errors.Is.
package services

import "errors"

var (
	// ErrInvalidTier indicates a tier outside the supported range.
	ErrInvalidTier = errors.New("invalid tier")

	// ErrPaymentRequired indicates the payment check completed and found
	// no valid payment for the requested tier.
	ErrPaymentRequired = errors.New("payment required")

	// ErrPaymentCheck indicates the payment provider could not be
	// consulted, so entitlement is unknown.
	ErrPaymentCheck = errors.New("payment verification failed")

	// ErrGenerationFailed indicates report content generation failed.
	ErrGenerationFailed = errors.New("report generation failed")

	// ErrPublishFailed indicates the rendered document could not be
	// stored or linked.
	ErrPublishFailed = errors.New("report publish failed")

	// ErrPersistenceFailed indicates the report record could not be saved.
	ErrPersistenceFailed = errors.New("report persistence failed")

	// ErrReportNotFound indicates the requested report does not exist.
	ErrReportNotFound = errors.New("report not found")

	// ErrReportForbidden indicates the report exists but belongs to
	// another user.
	ErrReportForbidden = errors.New("report access forbidden")

	// ErrUserNotFound indicates the user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser indicates the email or username is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
