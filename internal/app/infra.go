package app

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/micr0xy/NomadConnect/internal/config"
	"github.com/micr0xy/NomadConnect/internal/logger"
	"github.com/micr0xy/NomadConnect/internal/user"
)

type Infra struct {
	Client *mongo.Client
	Users  *user.MongoStore
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	users := user.NewMongoStore(client.Database(cfg.MongoDatabase))
	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	return &Infra{
		Client: client,
		Users:  users,
	}, nil
}
