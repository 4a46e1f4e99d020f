package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/micr0xy/NomadConnect/internal/auth/credentials"
	"github.com/micr0xy/NomadConnect/internal/auth/token"
	"github.com/micr0xy/NomadConnect/internal/user"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Service orchestrates credential checks, token issuance, and
// account linking. It holds no state of its own: the user store is
// the single source of truth, and tokens are stateless.
type Service struct {
	store  user.Store
	tokens *token.Service
}

func NewService(store user.Store, tokens *token.Service) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
	}
}

type SignupInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type GoogleInput struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// Signup registers a new password account. Validation runs before any
// store access and reports the first failing condition: missing
// fields, then password mismatch, then password length, then email
// syntax.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*user.User, string, error) {

	if in.FirstName == "" || in.LastName == "" || in.Email == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return nil, "", validationErr("Please provide all required fields")
	}
	if in.Password != in.ConfirmPassword {
		return nil, "", validationErr("Passwords do not match")
	}
	if len(in.Password) < 8 {
		return nil, "", validationErr("Password must be at least 8 characters long")
	}
	if !emailPattern.MatchString(user.NormalizeEmail(in.Email)) {
		return nil, "", validationErr("Please provide a valid email")
	}

	existing, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("signup: lookup failed: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	u := user.New(user.Profile{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Password:     in.Password,
		AuthProvider: user.ProviderEmail,
	})

	u, err = s.store.Create(ctx, u)
	if errors.Is(err, user.ErrDuplicate) {
		// lost the race to a concurrent signup; same outcome as the pre-check
		return nil, "", ErrEmailTaken
	}
	if err != nil {
		return nil, "", fmt.Errorf("signup: create failed: %w", err)
	}

	tok, err := s.tokens.Issue(u.ID.Hex(), u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("signup: token issue failed: %w", err)
	}

	return u, tok, nil
}

// Login authenticates a password account. An unknown email and a
// wrong password produce the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {

	if email == "" || password == "" {
		return nil, "", validationErr("Please provide email and password")
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("login: lookup failed: %w", err)
	}
	if u == nil || u.PasswordHash == "" {
		// no such account, or a google-only account with no password set
		return nil, "", ErrInvalidCredentials
	}

	ok, err := credentials.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return nil, "", fmt.Errorf("login: verify failed: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID.Hex(), u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("login: token issue failed: %w", err)
	}

	return u, tok, nil
}

// GoogleAuth logs a user in from a Google identity assertion. An
// existing account with the same email is linked on first use; a
// linked account passes through untouched; an unknown email creates a
// new record with no password hash. The password hash of a linked
// account is never modified, so password login keeps working.
func (s *Service) GoogleAuth(ctx context.Context, in GoogleInput) (*user.User, string, error) {

	if in.GoogleID == "" || in.Email == "" {
		return nil, "", validationErr("Missing Google credentials")
	}

	u, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("google auth: lookup failed: %w", err)
	}

	if u == nil {
		created := user.New(user.Profile{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			GoogleID:     in.GoogleID,
			AuthProvider: user.ProviderGoogle,
			ProfileImage: in.Picture,
		})

		u, err = s.store.Create(ctx, created)
		if errors.Is(err, user.ErrDuplicate) {
			// a concurrent request created the account first; fall
			// through to the linking path against the winner's record
			u, err = s.store.FindByEmail(ctx, in.Email)
			if err != nil {
				return nil, "", fmt.Errorf("google auth: lookup after race failed: %w", err)
			}
			if u == nil {
				return nil, "", fmt.Errorf("google auth: record vanished after duplicate key")
			}
		} else if err != nil {
			return nil, "", fmt.Errorf("google auth: create failed: %w", err)
		}
	}

	if u.GoogleID == "" {
		u.GoogleID = in.GoogleID
		u.AuthProvider = user.ProviderGoogle

		u, err = s.store.Save(ctx, u)
		if err != nil {
			return nil, "", fmt.Errorf("google auth: link failed: %w", err)
		}
	}

	tok, err := s.tokens.Issue(u.ID.Hex(), u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("google auth: token issue failed: %w", err)
	}

	return u, tok, nil
}

// GoogleAuthIdentity adapts a provider-verified identity to GoogleAuth.
func (s *Service) GoogleAuthIdentity(ctx context.Context, identity *Identity) (*user.User, string, error) {
	if identity == nil {
		return nil, "", validationErr("Missing Google credentials")
	}
	return s.GoogleAuth(ctx, GoogleInput{
		GoogleID:  identity.ProviderUserID,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Picture:   identity.Picture,
	})
}

// CheckSession verifies a session token and loads its subject. Any
// token rejection maps to ErrUnauthenticated; a valid token whose
// subject no longer exists maps to ErrUserNotFound.
func (s *Service) CheckSession(ctx context.Context, tokenString string) (*user.User, error) {

	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return s.UserByID(ctx, claims.UserID)
}

// UserByID loads a user by id, mapping a miss to ErrUserNotFound.
func (s *Service) UserByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
