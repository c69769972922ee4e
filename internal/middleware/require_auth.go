// Package middleware contains the request pipeline stages shared by every route group
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// RequireAuth verifies the access token from the token cookie or the Bearer header,
// rejects revoked tokens and stores the caller identity and claims in the context.
// A nil blacklist skips the revocation check.
func RequireAuth(verifier auth.TokenVerifier, blacklist auth.JwtBlacklistStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractToken(ctx)
		if err != nil {
			utilities.AbortWithError(ctx, apperror.Unauthenticated("Authentication invalid"))
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				utilities.AbortWithError(ctx, apperror.Unauthenticated("Access token expired"))
			case errors.Is(err, jwt.ErrTokenInvalidIssuer):
				utilities.AbortWithError(ctx, apperror.Unauthenticated("Invalid token issuer"))
			default:
				utilities.AbortWithError(ctx, apperror.Unauthenticated("Authentication invalid"))
			}
			return
		}

		if blacklist != nil {
			revoked, err := blacklist.IsBlacklisted(ctx.Request.Context(), claims.ID)
			if err != nil {
				utilities.AbortWithError(ctx, apperror.Internal(err))
				return
			}
			if revoked {
				utilities.AbortWithError(ctx, apperror.Unauthenticated("Token has been revoked"))
				return
			}
		}

		ctx.Set(utilities.ClaimsKey, claims)
		ctx.Set(utilities.IdentityKey, claims.Identity())
		ctx.Next()
	}
}

// CheckRole will protect endpoint from user that is not a specific roles
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, err := utilities.ExtractIdentity(ctx)
		if err != nil {
			utilities.AbortWithError(ctx, apperror.Unauthenticated(err.Error()))
			return
		}

		if !utilities.Contains(roles, identity.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "User doesn't have permission to access",
			})
			return
		}
		ctx.Next()
	}
}
