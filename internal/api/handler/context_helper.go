package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ronnaro/ata-academica-plus/pkg/response"
)

// MustGetUserID extracts the authenticated user id injected by the JWT
// middleware. Writes a 401 and returns false when missing; the caller should
// return immediately.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return s, true
}

// sessionToken pulls the token id and expiry the middleware stored, for
// logout revocation.
func sessionToken(c *gin.Context) (jti string, expiresAt time.Time) {
	jti = c.GetString("jti")
	if v, exists := c.Get("token_exp"); exists {
		if t, ok := v.(time.Time); ok {
			expiresAt = t
		}
	}
	return jti, expiresAt
}
