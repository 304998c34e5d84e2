package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"notevault/utils"
)

// ContextUserIDKey is where the authenticator leaves the verified claim.
// Handlers read it with c.GetString; an empty value means anonymous.
const ContextUserIDKey = "user_id"

// TokenRevocations is the blacklist capability the authenticator consults
// before accepting an otherwise valid token.
type TokenRevocations interface {
	IsRevoked(ctx context.Context, token string) bool
}

type AuthConfig struct {
	Secret string
	Issuer string
	// Blacklist is optional; nil disables revocation checks.
	Blacklist TokenRevocations
}

// RequireAuth is the per-route deployment: a request without a valid bearer
// token never reaches the handler.
func RequireAuth(cfg AuthConfig) gin.HandlerFunc {
	return authenticate(cfg, true)
}

// OptionalAuth is the global deployment: anonymous requests pass through
// with no claim attached, but a bearer token that is present and fails
// verification is still rejected outright.
func OptionalAuth(cfg AuthConfig) gin.HandlerFunc {
	return authenticate(cfg, false)
}

func authenticate(cfg AuthConfig, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			if required {
				abortUnauthorized(c, "Missing or invalid token")
				return
			}
			// Anonymous request, no claim attached.
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Check if token has been revoked
		if cfg.Blacklist != nil && cfg.Blacklist.IsRevoked(c.Request.Context(), tokenString) {
			abortUnauthorized(c, "Token has been invalidated")
			return
		}

		// Validate the token
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		})

		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}

		// Extract and validate claims
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["user_id"] == nil || claims["exp"] == nil {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		// Refresh tokens never authorize API calls
		if tokenType, exists := claims["type"]; exists && tokenType == "refresh" {
			abortUnauthorized(c, "Invalid token type")
			return
		}

		// Check expiration
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				abortUnauthorized(c, "Token has expired")
				return
			}
		}

		// Verify issuer if configured
		if iss, ok := claims["iss"].(string); ok && cfg.Issuer != "" && iss != cfg.Issuer {
			abortUnauthorized(c, "Invalid token issuer")
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}

		// Attach the verified claim for the handlers, exactly once.
		c.Set(ContextUserIDKey, userID)

		if iat, ok := claims["iat"].(float64); ok {
			c.Set("token_issued_at", time.Unix(int64(iat), 0))
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	utils.Unauthorized(c, message)
	c.Abort()
}
