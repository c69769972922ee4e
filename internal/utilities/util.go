// Package utilities contain utility code that use across the package
package utilities

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/policy"
)

// IdentityKey is the gin context key holding the authenticated policy.Identity
const IdentityKey = "identity"

// ClaimsKey is the gin context key holding the verified token claims
const ClaimsKey = "claims"

// ErrorResponse type for swagger docs
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// MessageResponse type for swagger docs
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractIdentity extracts the caller identity from Gin context.
func ExtractIdentity(c *gin.Context) (policy.Identity, error) {
	v, ok := c.Get(IdentityKey)
	if !ok || v == nil {
		return policy.Identity{}, errors.New("User information not provided")
	}

	identity, ok := v.(policy.Identity)
	if !ok {
		return policy.Identity{}, errors.New("Failed to assert type")
	}
	return identity, nil
}

// AbortWithError writes err as an ErrorResponse and stops the handler chain.
// Internal causes are attached to c.Errors for the request logger, never to the body.
func AbortWithError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.Kind == apperror.KindInternal {
		_ = c.Error(appErr)
	}
	c.AbortWithStatusJSON(appErr.Status(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}
