// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Symbolic error code constants are mapped to HTTP responses via the `fail()`
// helper. These codes give clients a stable, machine-readable taxonomy that
// supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, unauthorized, forbidden) mirror common
//     HTTP status semantics.
//   - Domain-specific codes (e.g., payment_required, generation_failed) are
//     reserved for pipeline errors that status alone cannot convey.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gfvrho/go-report-backend/internal/services"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeForbidden    = "forbidden"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "too_many_requests"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodePaymentRequired   = "payment_required"
	ErrCodePaymentCheck      = "payment_check_failed"
	ErrCodeGenerationFailed  = "generation_failed"
	ErrCodePublishFailed     = "publish_failed"
	ErrCodePersistenceFailed = "persistence_failed"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
)

// mapServiceError translates service-layer sentinel errors into an HTTP
// status, error code and client-safe message. Unknown errors fall through
// to a generic 500 so internals never leak to clients.
func mapServiceError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, services.ErrInvalidTier):
		return http.StatusBadRequest, ErrCodeBadRequest, "requested tier is not offered"
	case errors.Is(err, services.ErrPaymentRequired):
		return http.StatusBadRequest, ErrCodePaymentRequired, "payment not verified for requested tier"
	case errors.Is(err, services.ErrPaymentCheck):
		return http.StatusBadGateway, ErrCodePaymentCheck, "payment verification unavailable"
	case errors.Is(err, services.ErrGenerationFailed):
		return http.StatusBadGateway, ErrCodeGenerationFailed, "report generation failed"
	case errors.Is(err, services.ErrPublishFailed):
		return http.StatusBadGateway, ErrCodePublishFailed, "report upload failed"
	case errors.Is(err, services.ErrPersistenceFailed):
		return http.StatusInternalServerError, ErrCodePersistenceFailed, "report could not be saved"
	case errors.Is(err, services.ErrReportNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "Report not found"
	case errors.Is(err, services.ErrReportForbidden):
		return http.StatusForbidden, ErrCodeForbidden, "report belongs to another user"
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "user not found"
	case errors.Is(err, services.ErrDuplicateUser):
		return http.StatusConflict, ErrCodeConflict, "email or username already registered"
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeUnauthorized, "invalid email or password"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "internal error"
	}
}
