// Package auth issues and verifies access tokens and serves the account endpoints.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/policy"
)

// JwtIssuer is the iss claim of every token we sign
const JwtIssuer = "Job-Tracking-App"

// Claims is the access token payload
type Claims struct {
	Role string `json:"role"`
	// Restricted marks the read-only demo account.
	Restricted bool `json:"restricted,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the caller described by the claims
func (c *Claims) Identity() policy.Identity {
	return policy.Identity{
		UserID:       c.Subject,
		Role:         c.Role,
		IsRestricted: c.Restricted,
	}
}

// TokenVerifier turns a signed token into its claims
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// TokenManager signs and verifies HS256 tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

var _ TokenVerifier = (*TokenManager)(nil)

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime of issued tokens
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for user
func (m *TokenManager) Issue(user *model.User) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Role:       user.Role,
		Restricted: user.IsDemo,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    JwtIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("Failed to sign token: %s", err)
	}
	return signed, claims, nil
}

// Verify checks signature, expiry and issuer.
func (m *TokenManager) Verify(encodedToken string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(encodedToken, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("Invalid token")
	}
	if !claims.VerifyIssuer(JwtIssuer, true) {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, errors.New("Invalid token claims")
	}
	return claims, nil
}
