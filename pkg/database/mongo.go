// Package database manages the MongoDB connection for Vastra.
//
// Call Connect() once at boot, then grab collections anywhere:
//
//	users := database.Collection("users")
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/logger"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect establishes the MongoDB connection and pings the server.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetMaxPoolSize(50)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())
	logger.Info("database: connected", "db", config.MongoDB())
	return nil
}

// Client returns the underlying mongo client. Nil before Connect().
func Client() *mongo.Client { return client }

// DB returns the application database handle.
func DB() *mongo.Database { return db }

// Collection returns a handle to the named collection.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// Disconnect closes the connection. Call on shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

// Ping checks connectivity, used by the health endpoint.
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("database: not connected")
	}
	return client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the indexes the application relies on.
// Safe to call repeatedly; Mongo treats existing indexes as no-ops.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		"categories": {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		},
		"products": {
			{Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}}},
			{Keys: bson.D{{Key: "categories", Value: 1}}},
			{Keys: bson.D{{Key: "variants.sku", Value: 1}}},
		},
		"carts": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
		},
		"orders": {
			{Keys: bson.D{{Key: "payment.transaction_id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"otps": {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("database: indexes for %s: %w", coll, err)
		}
		logger.Info("database: indexes ensured", "collection", coll, "count", len(models))
	}
	return nil
}
