package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/ustinerary/planner/internal/config"
	"github.com/ustinerary/planner/internal/store"
	"github.com/ustinerary/planner/migrations"
)

// openStore builds the key-value backend selected by STORE_BACKEND. The
// returned cleanup releases its connections.
func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		db := stdlib.OpenDBFromPool(pool)
		applied, err := migrations.Up(ctx, db)
		_ = db.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("database connection established", "migrations_applied", len(applied))
		return store.NewPostgres(pool), pool.Close, nil

	case config.BackendRedis:
		client, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis store connected")
		return store.NewRedis(client, store.DefaultRedisPrefix), func() { _ = client.Close() }, nil

	default:
		logger.Info("using in-memory store", "quota_bytes", cfg.StoreQuotaBytes)
		return store.NewMemory(cfg.StoreQuotaBytes), func() {}, nil
	}
}

// openRedis parses url and verifies the server answers.
func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
