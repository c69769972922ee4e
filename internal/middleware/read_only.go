package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/policy"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// RejectReadOnly stops the demo account before any mutating handler runs.
// Must be placed after RequireAuth.
func RejectReadOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, err := utilities.ExtractIdentity(ctx)
		if err != nil {
			utilities.AbortWithError(ctx, apperror.Unauthenticated(err.Error()))
			return
		}
		if err := policy.CheckMutation(identity); err != nil {
			utilities.AbortWithError(ctx, err)
			return
		}
		ctx.Next()
	}
}
