// Package mongo implements the document store behind the user and material
// repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout  = 10 * time.Second
	queryTimeout    = 10 * time.Second
	defaultDatabase = "crusher_material_sewa"
)

// Store bundles the Mongo client with the platform database the users and
// materials collections live in. It owns the client; call Close on shutdown.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens the document store and verifies the primary is reachable
// before any repository touches it. An empty database name falls back to
// defaultDatabase.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	if database == "" {
		database = defaultDatabase
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect document store: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping document store: %w", err)
	}

	return &Store{Client: client, DB: client.Database(database)}, nil
}

// Ping reports whether the document store is still reachable. Used by the
// readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
