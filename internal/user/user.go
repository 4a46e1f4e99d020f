package user

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth provider tags. A user has a password hash iff the provider is email.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// User is the persisted identity record. PasswordHash is tagged out of
// JSON so it can never cross the API boundary.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"`
	GoogleID     string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	AuthProvider string             `bson:"authProvider" json:"authProvider"`
	Bio          string             `bson:"bio" json:"bio"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Password holds a pending plaintext set by the caller. The store
	// hashes it exactly once on Create/Save and clears it; it is never
	// persisted or serialized.
	Password string `bson:"-" json:"-"`
}

// Profile carries the fully-optional inputs for account creation.
// Zero values invoke the documented defaults in New.
type Profile struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	GoogleID     string
	AuthProvider string
	ProfileImage string
}

// New builds an unpersisted user from a profile, applying default rules:
// a missing first name falls back to the local part of the email, a
// missing last name stays empty, and the provider defaults to email.
func New(p Profile) *User {
	firstName := p.FirstName
	if firstName == "" {
		firstName = localPart(p.Email)
	}

	provider := p.AuthProvider
	if provider == "" {
		provider = ProviderEmail
	}

	return &User{
		FirstName:    firstName,
		LastName:     p.LastName,
		Email:        NormalizeEmail(p.Email),
		GoogleID:     p.GoogleID,
		AuthProvider: provider,
		ProfileImage: p.ProfileImage,
		Password:     p.Password,
	}
}

// NormalizeEmail lowercases and trims an email address. All store
// lookups and writes go through this, which keeps the uniqueness
// invariant case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
