package user

import (
	"context"
	"errors"
)

// ErrDuplicate reports a write rejected by a uniqueness constraint
// (email or googleId). A race between two concurrent signups resolves
// here: the store rejects the second writer.
var ErrDuplicate = errors.New("user: duplicate key")

// Store is the persistence boundary for user records.
//
// Find methods return (nil, nil) when no record matches. Create and
// Save hash a pending plaintext Password exactly once, storing the
// digest in PasswordHash and clearing the plaintext; a record whose
// Password is empty is written as-is, so an already-hashed value is
// never re-hashed.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Save(ctx context.Context, u *User) (*User, error)
}
