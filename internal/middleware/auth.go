package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/auth"
	"github.com/monocle-dev/companies/internal/types"
	"github.com/monocle-dev/companies/internal/utils"
	log "github.com/sirupsen/logrus"
)

// AuthMiddleware verifies the bearer token, rejects revoked tokens and
// stores the caller's Principal on the context.
func AuthMiddleware(tokens *auth.TokenService, revoker auth.Revoker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utils.BearerToken(ctx.GetHeader("Authorization"))

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := tokens.VerifyJWT(tokenString)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		revoked, err := revoker.IsRevoked(ctx.Request.Context(), claims.ID)

		if err != nil {
			log.WithError(err).Error("Failed to check token revocation")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if revoked {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		ctx.Set(types.ContextPrincipalKey, auth.PrincipalFromClaims(claims))
		ctx.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(checker auth.RoleChecker, role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		principal, err := utils.GetCurrentPrincipal(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		ok, err := checker.HasRole(ctx.Request.Context(), principal, role)

		if err != nil {
			log.WithError(err).WithField("user_id", principal.UserID).Error("Failed to check role")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied: " + role + " role required"})
			return
		}

		ctx.Next()
	}
}
