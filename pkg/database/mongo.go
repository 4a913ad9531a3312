package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultMongoDatabase mirrors the driver's own default when the URL has no path.
const defaultMongoDatabase = "test"

type mongoDriver struct {
	uri    string
	name   string
	client *mongo.Client
}

func (d *mongoDriver) Connect(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(d.uri).
		SetServerSelectionTimeout(connectTimeout))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}

	d.client = client
	return nil
}

func (d *mongoDriver) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *mongoDriver) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

func (d *mongoDriver) database() *mongo.Database {
	name := d.name
	if name == "" {
		name = defaultMongoDatabase
	}
	return d.client.Database(name)
}

// Mongo returns the configured MongoDB database. It fails with ErrNotConnected
// before the first successful connect and when the target is not MongoDB.
func (s *Store) Mongo() (*mongo.Database, error) {
	if !s.connected.Load() {
		return nil, ErrNotConnected
	}
	d, ok := s.driver.(*mongoDriver)
	if !ok {
		return nil, fmt.Errorf("database is %s, not mongodb", s.target.Kind())
	}
	return d.database(), nil
}
