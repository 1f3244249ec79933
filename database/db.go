package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"oasis/config"
	"oasis/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MemoryURL selects the in-process store instead of MongoDB.
const MemoryURL = "memory://"

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// UsesMemoryStore reports whether the configured DATABASE_URL selects the in-memory store.
func UsesMemoryStore() bool {
	return strings.HasPrefix(config.AppConfig.DatabaseURL, MemoryURL)
}

// InitDB initializes the MongoDB connection and returns the application database.
func InitDB() (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	MongoClient = client
	utils.GetLogger().Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
	return client.Database(config.AppConfig.DatabaseName), nil
}

// CloseDB disconnects the global client, if any.
func CloseDB(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
