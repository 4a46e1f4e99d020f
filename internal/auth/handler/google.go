package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/micr0xy/NomadConnect/internal/auth"
	"github.com/micr0xy/NomadConnect/internal/logger"
)

type googleRequest struct {
	GoogleID  string `json:"googleId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Picture   string `json:"picture"`

	// Credential optionally carries the raw Google ID token. When the
	// google provider is configured it is verified independently and
	// its claims take precedence over the posted profile fields.
	Credential string `json:"credential"`
}

func (h *Handler) GoogleAuth(c *gin.Context) {
	var req googleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Google credentials")
		return
	}

	in := auth.GoogleInput{
		GoogleID:  req.GoogleID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Picture:   req.Picture,
	}

	if req.Credential != "" {
		p, err := h.providers.Get("google")
		if err == nil {
			identity, verr := p.VerifyIDToken(c.Request.Context(), req.Credential)
			if verr != nil {
				respondError(c, http.StatusUnauthorized, "Google authentication failed")
				return
			}
			in = auth.GoogleInput{
				GoogleID:  identity.ProviderUserID,
				Email:     identity.Email,
				FirstName: identity.FirstName,
				LastName:  identity.LastName,
				Picture:   identity.Picture,
			}
		} else {
			logger.Warn("google credential supplied but no provider configured", nil)
		}
	}

	u, token, err := h.auth.GoogleAuth(c.Request.Context(), in)
	if err != nil {
		h.respondAuthError(c, err, "Google authentication failed")
		return
	}

	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Google authentication successful",
		"user":    u,
		"token":   token,
	})
}
