package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUser     = "user"
	ContextClaims   = "claims"
)

// Authenticator is satisfied by *user.Auth.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

func AuthMiddleware(a Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "unauthenticated", httperr.MessageFor("unauthenticated"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", httperr.MessageFor("invalid_token"))
			return
		}

		u, claims, err := a.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Respond(c, log, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, u.ID)
		c.Set(ContextUserRole, u.Role)
		c.Set(ContextUser, u)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).IsAdmin() {
			httperr.Abort(c, http.StatusForbidden, "admin_only", httperr.MessageFor("admin_only"))
			return
		}
		c.Next()
	}
}

func ActorFrom(c *gin.Context) identity.Actor {
	return identity.Actor{
		UserID: c.GetUint(ContextUserID),
		Role:   c.GetString(ContextUserRole),
	}
}

func UserFrom(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func ClaimsFrom(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
