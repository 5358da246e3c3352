package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"suburbia-skate.backend/pkg/jwt"
	"suburbia-skate.backend/pkg/redis"
)

const testEncryptionKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newAuthRouter(t *testing.T, jwtService *jwt.JWTService, sessionStore *redis.SessionStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(jwtService, sessionStore), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		wallet, _ := GetWalletAddress(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "wallet": wallet})
	})
	return r
}

func TestAuthMiddleware_BearerToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "7Np41oeYqPefeNQEHSv1UDhYrehxin3NStELsSKCT4K2", "tony@example.com")
	require.NoError(t, err)

	r := newAuthRouter(t, jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
	require.Contains(t, w.Body.String(), "7Np41oeY")
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", time.Hour, 24*time.Hour)
	r := newAuthRouter(t, jwtService, nil)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", "Authorization header is required"},
		{"wrong scheme", "Basic abc", "Invalid authorization format"},
		{"garbage token", BearerPrefix + "not-a-jwt", "Invalid token"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(AuthorizationHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Contains(t, w.Body.String(), tc.want)
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	jwtService := jwt.NewJWTService("secret", -time.Minute, 24*time.Hour)
	pair, err := jwtService.GenerateTokenPair(uuid.New(), "addr", "a@b.c")
	require.NoError(t, err)

	r := newAuthRouter(t, jwtService, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddleware_Session(t *testing.T) {
	startMiniRedis(t)

	jwtService := jwt.NewJWTService("secret", time.Hour, 24*time.Hour)
	sessionStore, err := redis.NewSessionStore(testEncryptionKey)
	require.NoError(t, err)

	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "wallet-addr", "tony@example.com")
	require.NoError(t, err)

	err = sessionStore.CreateSession(context.Background(), "sess-1", &redis.SessionData{
		AccessToken:   pair.AccessToken,
		RefreshToken:  pair.RefreshToken,
		WalletAddress: "wallet-addr",
	}, time.Hour)
	require.NoError(t, err)

	r := newAuthRouter(t, jwtService, sessionStore)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, "sess-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(SessionHeader, "unknown")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid or expired session")
}
