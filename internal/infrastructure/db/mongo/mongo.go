package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/registryhq/birth-registry/internal/infrastructure/config"
)

const (
	connectTimeout  = 10 * time.Second
	defaultDatabase = "birth_registry"
)

// withDefaults fills in the database name when the configuration leaves it
// empty, so repositories never end up bound to the driver's "" database.
func withDefaults(cfg config.MongoConfig) config.MongoConfig {
	if cfg.Database == "" {
		cfg.Database = defaultDatabase
	}
	return cfg
}

// Connect establishes a MongoDB client from the service configuration,
// verifies connectivity with a ping, and returns both the client and the
// registry database handle.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	cfg = withDefaults(cfg)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
