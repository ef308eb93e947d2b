package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"aerozone_backend/internal/models"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// StoreScopeResolver attaches the caller's approved store to a principal.
type StoreScopeResolver interface {
	ResolveStoreScope(ctx context.Context, p models.Principal) (models.Principal, error)
}

// PrincipalFromContext returns the principal stored by AuthMiddleware.
func PrincipalFromContext(c *gin.Context) (models.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authorization header required", ""))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid authorization header format. Use Bearer <token>", ""))
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", err.Error()))
			return
		}

		c.Set(principalKey, models.Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the principal's role is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
			return
		}
		if !p.HasRole(allowedRoles...) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden,
				"You do not have permission to access this resource", "Required roles: "+strings.Join(allowedRoles, ", ")))
			return
		}
		c.Next()
	}
}

// StoreScopeMiddleware resolves the store owner's approved store into the principal.
// Must run after AuthMiddleware.
func StoreScopeMiddleware(resolver StoreScopeResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
			return
		}

		scoped, err := resolver.ResolveStoreScope(c.Request.Context(), p)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrStoreNotApproved):
				utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "An approved store is required", err.Error()))
			default:
				utils.LogError(err, "Failed to resolve store scope", map[string]interface{}{"user_id": p.UserID})
				utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable, "Failed to resolve store", ""))
			}
			return
		}

		c.Set(principalKey, scoped)
		c.Next()
	}
}
