package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/micr0xy/NomadConnect/internal/auth/credentials"
)

const collectionName = "users"

// MongoStore persists user records in a MongoDB collection.
type MongoStore struct {
	users *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{users: db.Collection(collectionName)}
}

// EnsureIndexes creates the uniqueness indexes the store relies on:
// a unique index on email and a sparse unique index on googleId.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return fmt.Errorf("user: ensure indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.users.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user: find by email: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a syntactically invalid id cannot match any record
		return nil, nil
	}

	var u User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user: find by id: %w", err)
	}
	return &u, nil
}

func (s *MongoStore) Create(ctx context.Context, u *User) (*User, error) {
	if err := hashPendingPassword(u); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u.Email = NormalizeEmail(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now

	res, err := s.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("user: create: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return u, nil
}

func (s *MongoStore) Save(ctx context.Context, u *User) (*User, error) {
	if u.ID.IsZero() {
		return nil, errors.New("user: save requires a persisted record")
	}

	if err := hashPendingPassword(u); err != nil {
		return nil, err
	}

	u.Email = NormalizeEmail(u.Email)
	u.UpdatedAt = time.Now().UTC()

	_, err := s.users.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("user: save: %w", err)
	}
	return u, nil
}

// hashPendingPassword hashes the transient plaintext exactly when it
// was set. Records without a pending plaintext pass through untouched,
// so a stored digest is never hashed twice.
func hashPendingPassword(u *User) error {
	if u.Password == "" {
		return nil
	}

	hash, err := credentials.HashPassword(u.Password)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.Password = ""
	return nil
}
