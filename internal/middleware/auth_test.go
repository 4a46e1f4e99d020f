package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micr0xy/NomadConnect/internal/auth/token"
	"github.com/micr0xy/NomadConnect/internal/session"
)

func newProtectedHandler(t *testing.T, tokens *token.Service) http.Handler {
	t.Helper()

	mw := NewAuthMiddleware(tokens)
	return mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)

		tok, ok := SessionTokenFromContext(r.Context())
		require.True(t, ok)
		require.NotEmpty(t, tok)

		_, _ = w.Write([]byte(userID))
	}))
}

func TestRequireAuth_NoCookie(t *testing.T) {
	t.Parallel()

	handler := newProtectedHandler(t, token.NewService("secret", time.Hour))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/checkauth", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No token provided. Please login first.")
}

func TestRequireAuth_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := token.NewService("secret", time.Hour)
	handler := newProtectedHandler(t, tokens)

	tok, err := tokens.Issue("user-1", "u@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/checkauth", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	issued := token.NewService("secret", time.Minute, token.WithClock(func() time.Time {
		return now.Add(-2 * time.Minute)
	}))
	tok, err := issued.Issue("user-1", "u@x.com")
	require.NoError(t, err)

	handler := newProtectedHandler(t, token.NewService("secret", time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/checkauth", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired. Please login again.")
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	t.Parallel()

	handler := newProtectedHandler(t, token.NewService("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/checkauth", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "garbage"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token. Please login again.")
}

func TestRequireAuth_NotYetValidToken(t *testing.T) {
	t.Parallel()

	handler := newProtectedHandler(t, token.NewService("secret", time.Hour))

	// correctly signed but carrying a future nbf, so verification
	// fails for a reason that is neither expiry nor tampering
	now := time.Now()
	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
		},
		UserID: "user-1",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/checkauth", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication failed.")
}
