package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/micr0xy/NomadConnect/internal/auth/token"
	"github.com/micr0xy/NomadConnect/internal/session"
)

// unexported, collision-proof context keys
type userIDContextKeyType struct{}
type emailContextKeyType struct{}
type sessionTokenContextKeyType struct{}

var (
	userIDKey       = userIDContextKeyType{}
	emailKey        = emailContextKeyType{}
	sessionTokenKey = sessionTokenContextKeyType{}
)

// UserIDFromContext extracts the authenticated user ID from context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// EmailFromContext extracts the authenticated email from context.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

// SessionTokenFromContext extracts the verified raw session token,
// for handlers that re-check the session against the user store.
func SessionTokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(sessionTokenKey).(string)
	return tok, ok
}

type AuthMiddleware struct {
	Tokens *token.Service
}

func NewAuthMiddleware(tokens *token.Service) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

// RequireAuth verifies the session token cookie and attaches the
// subject's id, email, and the raw token to the request context.
// Every rejection answers 401 with the uniform envelope; expiry,
// tampering, and other verification failures get distinct messages.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := session.TokenFromRequest(r)
		if tok == "" {
			unauthorized(w, "No token provided. Please login first.")
			return
		}

		claims, err := a.Tokens.Verify(tok)
		if err != nil {
			switch {
			case errors.Is(err, token.ErrExpired):
				unauthorized(w, "Token has expired. Please login again.")
			case errors.Is(err, token.ErrInvalid):
				unauthorized(w, "Invalid token. Please login again.")
			default:
				unauthorized(w, "Authentication failed.")
			}
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, emailKey, claims.Email)
		ctx = context.WithValue(ctx, sessionTokenKey, tok)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
