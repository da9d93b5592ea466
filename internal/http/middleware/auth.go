// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RequireAuth, the bearer-token gate in front of all
// protected endpoints. It parses the Authorization header, validates the
// token, and stores the authenticated user id in the Gin context under the
// "userID" key for downstream handlers and the rate limiter.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenParser validates a raw bearer token and returns the user id it
// identifies.
type TokenParser interface {
	ParseUserID(raw string) (string, error)
}

// TokenParserFunc adapts a plain function to the TokenParser interface.
type TokenParserFunc func(raw string) (string, error)

// ParseUserID implements TokenParser.
func (f TokenParserFunc) ParseUserID(raw string) (string, error) { return f(raw) }

// RequireAuth returns a Gin middleware that rejects requests without a valid
// "Authorization: Bearer <token>" header.
//
// On success the authenticated user id is stored under "userID". On failure
// the request is aborted with a 401 and the standard error envelope:
//
//	HTTP/1.1 401 Unauthorized
//	{
//	  "request_id": "<uuid>",
//	  "code":       "unauthorized",
//	  "error":      "missing or invalid bearer token"
//	}
func RequireAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			unauthorized(c)
			return
		}

		userID, err := parser.ParseUserID(raw)
		if err != nil || userID == "" {
			unauthorized(c)
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
// Returns "" when the scheme is not Bearer or the value is empty.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"error":      "missing or invalid bearer token",
	})
}
