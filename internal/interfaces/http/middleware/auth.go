package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"suburbia-skate.backend/pkg/jwt"
	"suburbia-skate.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SessionHeader carries a server-side session ID instead of a bearer token
	SessionHeader = "X-Session-ID"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// WalletAddressKey is the context key for the principal's wallet
	WalletAddressKey = "walletAddress"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
)

// AuthMiddleware authenticates either a bearer access token or a stored
// session. The session path resolves the access token server side, so the
// same claims flow through both.
func AuthMiddleware(jwtService *jwt.JWTService, sessionStore *redis.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""

		if sessionID := c.GetHeader(SessionHeader); sessionID != "" && sessionStore != nil {
			session, err := sessionStore.GetSession(c.Request.Context(), sessionID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid or expired session",
				})
				return
			}
			token = session.AccessToken
		}

		if token == "" {
			authHeader := c.GetHeader(AuthorizationHeader)
			if authHeader == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Authorization header is required",
				})
				return
			}
			if !strings.HasPrefix(authHeader, BearerPrefix) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Invalid authorization format. Use: Bearer <token>",
				})
				return
			}
			token = strings.TrimPrefix(authHeader, BearerPrefix)
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(WalletAddressKey, claims.WalletAddress)
		c.Set(UserEmailKey, claims.Email)

		c.Next()
	}
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetWalletAddress gets the wallet address from context
func GetWalletAddress(c *gin.Context) (string, bool) {
	addr, exists := c.Get(WalletAddressKey)
	if !exists {
		return "", false
	}
	return addr.(string), true
}
