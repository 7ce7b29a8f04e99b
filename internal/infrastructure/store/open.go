package store

import (
	"context"
	"fmt"
)

// Backend names accepted by Open
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
)

type Options struct {
	Backend       string
	FilePath      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
	AWSRegion     string
	DynamoTable   string
}

// Open connects the selected backend. The returned close func releases any
// connection it opened and is never nil.
func Open(ctx context.Context, opts Options) (KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case BackendFile, "":
		return NewFileStore(opts.FilePath), noop, nil

	case BackendMemory:
		return NewMemoryStore(), noop, nil

	case BackendRedis:
		client, err := NewRedisClient(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisStore(client, DefaultRedisPrefix), client.Close, nil

	case BackendPostgres:
		db, err := ConnectPostgres(opts.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		s := NewPostgresStore(db)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		return s, db.Close, nil

	case BackendDynamoDB:
		client, err := NewDynamoDBClient(ctx, opts.AWSRegion)
		if err != nil {
			return nil, noop, err
		}
		return NewDynamoStore(client, opts.DynamoTable), noop, nil
	}

	return nil, noop, fmt.Errorf("unknown backend %q", opts.Backend)
}
