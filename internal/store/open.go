package store

import (
	"context"
	"fmt"

	"newsdesk/db"
	"newsdesk/internal/config"
)

// Open connects the configured backend and returns it with a close func.
// When the backend cannot be opened the error is returned alongside a memory
// store so callers can keep going with session-only state.
func Open(ctx context.Context, cfg config.StoreConfig) (KeyValueStore, func(), error) {
	s, closeFn, err := open(ctx, cfg)
	if err != nil {
		return NewMemoryStore(), func() {}, fmt.Errorf("%w: %s: %v", ErrUnavailable, cfg.Driver, err)
	}
	return s, closeFn, nil
}

func open(ctx context.Context, cfg config.StoreConfig) (KeyValueStore, func(), error) {
	switch cfg.Driver {
	case config.StoreMemory:
		return NewMemoryStore(), func() {}, nil

	case config.StoreBolt:
		s, err := NewBoltStore(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case config.StoreRedis:
		if err := db.ConnectRedis(ctx, cfg.RedisURL); err != nil {
			db.CloseRedis()
			return nil, nil, err
		}
		return NewRedisStore(db.Redis, cfg.KeyPrefix), db.CloseRedis, nil

	case config.StorePostgres:
		if err := db.Connect(cfg.PostgresURL); err != nil {
			db.Close()
			return nil, nil, err
		}
		s := NewPostgresStore(db.DB)
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrating kv_store: %w", err)
		}
		return s, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
