package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/micr0xy/NomadConnect/internal/middleware"
)

// CheckAuth runs behind the auth middleware and re-checks the session
// against the user store, so a valid token whose subject has since
// been deleted reports "User not found" rather than success.
func (h *Handler) CheckAuth(c *gin.Context) {
	tok, ok := middleware.SessionTokenFromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	u, err := h.auth.CheckSession(c.Request.Context(), tok)
	if err != nil {
		h.respondAuthError(c, err, "Authorization check failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token is valid",
		"user":    u,
	})
}
