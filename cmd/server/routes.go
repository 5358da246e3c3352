package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"suburbia-skate.backend/internal/interfaces/http/handlers"
	"suburbia-skate.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	boardHandler   *handlers.BoardHandler
	mintHandler    *handlers.MintHandler
	walletHandler  *handlers.WalletHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/logout", d.authHandler.Logout)
		}

		// Profile routes (protected)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.GET("/me", d.profileHandler.GetMe)
			users.PUT("/me", d.profileHandler.UpdateMe)
		}

		// Board catalog (public read, protected favorites)
		boards := v1.Group("/boards")
		{
			boards.GET("", d.boardHandler.List)
			boards.GET("/:id", d.boardHandler.Get)
			boards.GET("/mint/:mintAddress", d.boardHandler.GetByMint)
		}
		boardFavorites := v1.Group("/boards")
		boardFavorites.Use(d.authMiddleware)
		{
			boardFavorites.POST("/:id/favorite", d.boardHandler.Favorite)
			boardFavorites.DELETE("/:id/favorite", d.boardHandler.Unfavorite)
		}

		// Mint workflow (protected)
		mints := v1.Group("/mints")
		mints.Use(d.authMiddleware)
		{
			mints.POST("", middleware.IdempotencyMiddleware(), d.mintHandler.Mint)
			mints.GET("", d.mintHandler.ListRecords)
		}

		// Wallet routes (protected)
		wallets := v1.Group("/wallets")
		wallets.Use(d.authMiddleware)
		{
			wallets.GET("/balance", d.walletHandler.Balance)
			wallets.POST("/airdrop", d.walletHandler.Airdrop)
			wallets.POST("/transfer", d.walletHandler.Transfer)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Session-ID, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
