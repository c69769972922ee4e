package utilities

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the name of the cookie carrying the access token
const TokenCookie = "token"

// ExtractBearerToken returns the token of an "Authorization: Bearer" header
func ExtractBearerToken(c *gin.Context) (string, error) {

	const BearerSchema = "Bearer "
	authHeader := c.GetHeader("Authorization")

	if len(authHeader) <= len(BearerSchema) || authHeader[:len(BearerSchema)] != BearerSchema {
		return "", fmt.Errorf("Invalid authorization header")
	}

	return authHeader[len(BearerSchema):], nil

}

// ExtractToken returns the access token from the token cookie, falling back to the bearer header.
func ExtractToken(c *gin.Context) (string, error) {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	token, err := ExtractBearerToken(c)
	if err != nil {
		return "", fmt.Errorf("Authentication invalid")
	}
	return token, nil
}
