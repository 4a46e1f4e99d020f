package handler

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/micr0xy/NomadConnect/internal/auth"
	"github.com/micr0xy/NomadConnect/internal/auth/provider"
	"github.com/micr0xy/NomadConnect/internal/config"
	"github.com/micr0xy/NomadConnect/internal/session"
)

type Handler struct {
	auth      *auth.Service
	providers *provider.Registry

	cookieTTL    time.Duration
	secureCookie bool
	exposeErrors bool
	clientURL    string
}

func NewHandler(
	authService *auth.Service,
	providers *provider.Registry,
	cfg config.Config,
) *Handler {
	return &Handler{
		auth:         authService,
		providers:    providers,
		cookieTTL:    cfg.JWTExpire,
		secureCookie: cfg.IsProduction(),
		exposeErrors: !cfg.IsProduction(),
		clientURL:    cfg.ClientURL,
	}
}

// RegisterRoutes mounts the authentication endpoints. requireAuth
// guards the session check; every other route is public.
func (h *Handler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	api := r.Group("/api/auth")

	api.POST("/signup", h.Signup)
	api.POST("/login", h.Login)
	api.POST("/google", h.GoogleAuth)
	api.POST("/logout", h.Logout)
	api.GET("/checkauth", requireAuth, h.CheckAuth)

	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)

	for _, route := range r.Routes() {
		log.Printf("[ROUTE] %s %s", route.Method, route.Path)
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	session.SetCookie(c.Writer, token, h.cookieTTL, session.CookieOptions{
		Secure: h.secureCookie,
	})
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure: h.secureCookie,
	})
}
