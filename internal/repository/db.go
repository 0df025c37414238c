package repository

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/asklio/procurement/internal/common"
)

// Open connects a Mongo client and verifies the connection. The client is
// constructed here, once, and handed to the repositories that need it;
// nothing in this package memoizes a global handle.
func Open(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*mongo.Client, error) {
	logger.Info("connecting to database", "database", cfg.Database)

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()

	client, err := mongo.Connect(dialCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, common.WrapError(err, "connect mongodb")
	}

	if err := client.Ping(dialCtx, readpref.Primary()); err != nil {
		logger.Error("database ping failed", "error", err)
		return nil, common.WrapError(err, "ping mongodb")
	}

	logger.Info("successfully connected to database")
	return client, nil
}
