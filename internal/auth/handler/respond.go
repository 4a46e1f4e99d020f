package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/micr0xy/NomadConnect/internal/auth"
	"github.com/micr0xy/NomadConnect/internal/logger"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondInternal emits the uniform 500 envelope. Raw error detail is
// attached only outside production.
func (h *Handler) respondInternal(c *gin.Context, message string, err error) {
	logger.Error(message, map[string]any{
		"error": err.Error(),
		"path":  c.Request.URL.Path,
	})

	body := gin.H{
		"success": false,
		"message": message,
	}
	if h.exposeErrors {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// respondAuthError maps controller errors onto the HTTP taxonomy.
// fallback is the operation's generic 500 message.
func (h *Handler) respondAuthError(c *gin.Context, err error, fallback string) {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(c, http.StatusConflict, "Email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, auth.ErrUserNotFound):
		respondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, auth.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, "Not authenticated")
	default:
		h.respondInternal(c, fallback, err)
	}
}
