// Profile HTTP handlers.
//
// This file exposes REST endpoints for the authenticated user's profile:
//   - GET /user/me
//   - PUT /user/me
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gfvrho/go-report-backend/internal/services"
)

// UpdateProfileRequest is the JSON payload for profile updates. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=1,max=80"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
}

// GetProfile returns the authenticated user's profile.
func (h *Handlers) GetProfile(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), userID(c))
	if err != nil {
		status, code, msg := mapServiceError(err)
		fail(c, status, code, msg)
		return
	}
	ok(c, http.StatusOK, user)
}

// UpdateProfile applies partial updates to the authenticated user's
// profile and returns the refreshed resource.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID(c), services.ProfileUpdate{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		status, code, msg := mapServiceError(err)
		fail(c, status, code, msg)
		return
	}
	ok(c, http.StatusOK, user)
}
