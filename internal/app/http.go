package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/micr0xy/NomadConnect/internal/auth"
	"github.com/micr0xy/NomadConnect/internal/auth/handler"
	"github.com/micr0xy/NomadConnect/internal/auth/provider"
	"github.com/micr0xy/NomadConnect/internal/auth/provider/google"
	"github.com/micr0xy/NomadConnect/internal/auth/token"
	"github.com/micr0xy/NomadConnect/internal/config"
	"github.com/micr0xy/NomadConnect/internal/logger"
	"github.com/micr0xy/NomadConnect/internal/middleware"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpire)
	authService := auth.NewService(infra.Users, tokens)

	var oauthProviders []provider.OAuthProvider
	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
		)
		if err != nil {
			return nil, nil, err
		}
		oauthProviders = append(oauthProviders, googleProvider)
	} else {
		logger.Warn("google oauth not configured, id-token verification disabled", nil)
	}

	registry := provider.NewRegistry(oauthProviders...)

	authHandler := handler.NewHandler(authService, registry, cfg)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", map[string]any{
			"panic": recovered,
			"path":  c.Request.URL.Path,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	}))

	// the cookie transport needs credentialed CORS from the client origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ----------------------------
	// Routes
	// ----------------------------

	authHandler.RegisterRoutes(router, middleware.GinRequireAuth(authMiddleware))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Server is running",
			"timestamp": time.Now().UTC(),
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return infra.Client.Disconnect(disconnectCtx)
	}, nil
}
