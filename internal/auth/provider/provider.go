package provider

import (
	"context"

	"github.com/micr0xy/NomadConnect/internal/auth"
)

// OAuthProvider defines the contract every external auth provider
// must implement. Implementations return identity facts only and
// must not perform user creation, linking, or session management.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider credentials
	// and returns a normalized identity. No auth decisions are made here.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)

	// VerifyIDToken independently verifies a raw ID token assertion
	// (signature, audience, issuer) and returns a normalized identity.
	VerifyIDToken(
		ctx context.Context,
		rawIDToken string,
	) (*auth.Identity, error)
}
