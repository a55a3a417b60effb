// Package repository provides MongoDB-backed persistence for the service.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const serverSelectionTimeout = 5 * time.Second

// Connect opens a MongoDB client with bounded timeouts so that a store outage
// surfaces as a fast failure rather than a hang.
func Connect(ctx context.Context, uri string, opTimeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetTimeout(opTimeout))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}
