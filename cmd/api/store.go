package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mwork/studiofinder/internal/config"
	"github.com/mwork/studiofinder/internal/pkg/database"
	"github.com/mwork/studiofinder/internal/pkg/storage"
)

var errUnknownDriver = errors.New("unknown booking store driver")

// newBlobStore builds the booking blob backend selected by
// BOOKING_STORE. The returned func releases resources it opened.
func newBlobStore(ctx context.Context, cfg *config.Config, redisClient *redis.Client) (storage.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.BookingStoreDriver {
	case "memory":
		log.Warn().Msg("Bookings are kept in memory and lost on restart")
		return storage.NewMemoryStore(), noop, nil

	case "file", "":
		store, err := storage.NewLocalStorage(cfg.BookingStoreDir)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case "redis":
		if redisClient == nil {
			return nil, noop, errors.New("BOOKING_STORE=redis requires REDIS_URL")
		}
		return storage.NewRedisStore(redisClient), noop, nil

	case "postgres":
		db, err := database.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		store := storage.NewPostgresStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			database.ClosePostgres(db)
			return nil, noop, err
		}
		return store, func() { database.ClosePostgres(db) }, nil

	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case "r2":
		store, err := storage.NewR2Store(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	default:
		return nil, noop, fmt.Errorf("%w: %q", errUnknownDriver, cfg.BookingStoreDriver)
	}
}
