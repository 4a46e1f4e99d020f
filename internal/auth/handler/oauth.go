package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/micr0xy/NomadConnect/internal/logger"
)

// oauthLogin starts the server-side authorization-code flow for the
// named provider.
func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unknown OAuth provider")
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

// oauthCallback finishes the code flow: state check, code exchange,
// independent ID-token verification inside the provider, then the
// same account-linking path as the JSON endpoint.
func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unknown OAuth provider")
		return
	}

	if !validateState(c) {
		respondError(c, http.StatusUnauthorized, "Invalid OAuth state")
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})

		// a consent denial is not authentication; send the user back
		c.Redirect(http.StatusFound, h.clientURL+"/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		respondError(c, http.StatusBadRequest, "Missing authorization code")
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		respondError(c, http.StatusUnauthorized, "Missing PKCE verifier")
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Google authentication failed")
		return
	}

	u, token, err := h.auth.GoogleAuthIdentity(c.Request.Context(), identity)
	if err != nil {
		h.respondAuthError(c, err, "Google authentication failed")
		return
	}

	h.setSessionCookie(c, token)

	log.Printf("[LOGIN_SUCCESS] user_id=%s provider=%s ip=%s",
		u.ID.Hex(),
		providerName,
		c.ClientIP(),
	)

	c.Redirect(http.StatusFound, h.clientURL)
}
