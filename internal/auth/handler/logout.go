package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout clears the session cookie. There is no server-side state to
// tear down, so the client is always left logged out.
func (h *Handler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}
