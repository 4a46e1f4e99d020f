package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret", time.Hour)

	tok, err := svc.Issue("user-123", "ann@x.com")
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ann@x.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "issued tokens carry a jti")
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := &now

	svc := NewService("secret", 30*time.Minute, WithClock(func() time.Time {
		return *clock
	}))

	tok, err := svc.Issue("u1", "u1@x.com")
	require.NoError(t, err)

	// accepted immediately
	_, err = svc.Verify(tok)
	require.NoError(t, err)

	// advance past the TTL
	later := now.Add(31 * time.Minute)
	clock = &later

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewService("right-secret", time.Hour).Issue("u2", "u2@x.com")
	require.NoError(t, err)

	_, err = NewService("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)

	tok, err := svc.Issue("u3", "u3@x.com")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// flip one byte of the signature segment
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)

	_, err := svc.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_DisallowedAlgorithm(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u5",
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerify_NotYetValid(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(2 * time.Hour)),
		},
		UserID: "u6",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("secret"))
	require.NoError(t, err)

	// well-formed and correctly signed, rejected for another reason
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrUnverifiable)
}
