package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"cupid-backend/internal/config"
)

// MongoDB là wrapper quản lý client và lifecycle của database.
// Driver tự quản lý connection pool; wrapper chỉ lo connect/retry/close.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Config   config.MongoConfig
}

func NewMongoDB(cfg config.MongoConfig) *MongoDB {
	return &MongoDB{Config: cfg}
}

// Connect thực hiện retry logic với delay giữa các lần thử.
// Connect + Ping để chắc chắn server thực sự reachable (Connect của driver
// không tự verify).
func (db *MongoDB) Connect(ctx context.Context) error {
	var lastErr error

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		log.Printf("[DATABASE] Connection attempt %d/%d", attempt, db.Config.MaxRetries)

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(db.Config.URI))

		if err == nil {
			err = client.Ping(connectCtx, readpref.Primary())
			if err == nil {
				cancel()
				db.Client = client
				db.Database = client.Database(db.Config.Database)
				log.Printf("[DATABASE] Successfully connected on attempt %d", attempt)
				return nil
			}
			// Ping failed - connection không stable
			client.Disconnect(connectCtx)
		}
		cancel()

		lastErr = err
		log.Printf("[DATABASE] Attempt %d failed: %v", attempt, lastErr)

		if attempt < db.Config.MaxRetries {
			time.Sleep(db.Config.RetryDelay)
		}
	}

	return fmt.Errorf("failed to connect to mongodb after %d attempts: %w", db.Config.MaxRetries, lastErr)
}

// HealthCheck ping database, dùng cho health endpoint
func (db *MongoDB) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("mongodb client is not connected")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close disconnect client khi shutdown
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}
