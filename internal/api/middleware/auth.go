package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ronnaro/ata-academica-plus/internal/service"
	"github.com/ronnaro/ata-academica-plus/pkg/jwt"
	"github.com/ronnaro/ata-academica-plus/pkg/redis"
	"github.com/ronnaro/ata-academica-plus/pkg/response"
)

// RoleResolver resolves a user's role from the profiles directory. The token
// role is never trusted for authorization decisions.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID string) (string, error)
}

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>. rdb may be nil; revocation checks are then
// skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "wrong token type")
			c.Abort()
			return
		}

		if rdb != nil {
			if revoked, err := rdb.IsRevoked(c.Request.Context(), claims.ID); err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}

// RequireCoordinator gates the admin surface. The role comes from the
// directory lookup on every request, so a revoked coordinator loses access
// without waiting for token expiry. The decision itself is service.Decide, so
// HTTP enforcement and the gate table can never drift apart.
func RequireCoordinator(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := service.AuthState{State: service.StateUnauthenticated}
		userID := c.GetString("user_id")
		if userID != "" {
			role, err := resolver.ResolveRole(c.Request.Context(), userID)
			if err == nil {
				state = service.AuthState{State: service.StateAuthenticated, Role: role}
			}
		}

		switch service.Decide(state, true) {
		case service.DecisionRender:
			c.Set("role", state.Role)
			c.Next()
		case service.DecisionRedirectDashboard:
			response.Forbidden(c, 10003, "coordinator role required")
			c.Abort()
		default:
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
		}
	}
}
