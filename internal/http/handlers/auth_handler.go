// Account HTTP handlers.
//
// This file exposes REST endpoints for registration and login:
//   - POST /auth/register
//   - POST /auth/login
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gfvrho/go-report-backend/internal/domain"
)

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=1,max=80"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse wraps a bearer token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates a new account and returns the user resource.
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email, username and password (8+ chars) are required")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		status, code, msg := mapServiceError(err)
		fail(c, status, code, msg)
		return
	}
	ok(c, http.StatusCreated, user)
}

// Login checks credentials and returns a signed bearer token.
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		return
	}

	token, user, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status, code, msg := mapServiceError(err)
		fail(c, status, code, msg)
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: token, User: user})
}
