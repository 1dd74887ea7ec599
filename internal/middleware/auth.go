package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"hotel-booking-api/internal/authz"
	"hotel-booking-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// ActorLoader resolves a token subject into an authorization actor
type ActorLoader interface {
	LoadActor(ctx context.Context, userID uint) (authz.Actor, error)
}

// AuthMiddleware validates the JWT access token from the Authorization header and
// stores the caller's actor in the context
func AuthMiddleware(tokens *utils.TokenIssuer, actors ActorLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not authorized to access this route")
			c.Abort()
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not authorized to access this route")
			c.Abort()
			return
		}

		actor, err := actors.LoadActor(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole admits only callers holding one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not authorized to access this route")
			c.Abort()
			return
		}

		if !slices.Contains(roles, actor.Role) {
			utils.ErrorResponse(c, http.StatusForbidden, "User role "+actor.Role+" is not authorized to access this route")
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActorFrom returns the actor stored by AuthMiddleware
func ActorFrom(c *gin.Context) (authz.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}
