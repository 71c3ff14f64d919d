// Package store provides the key/value capability the payout ledger persists
// through, with memory, bbolt, redis and postgres backends.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("key not found")
	ErrUnavailable = errors.New("storage unavailable")
)

type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report whether the medium is
// reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Durabler is implemented by backends that can say whether values outlive
// the process.
type Durabler interface {
	Durable() bool
}

// Durable reports whether values written to s survive a restart. A nil
// store is not durable; backends without Durable are assumed durable.
func Durable(s KeyValueStore) bool {
	if s == nil {
		return false
	}
	if d, ok := s.(Durabler); ok {
		return d.Durable()
	}
	return true
}

// Reachable reports whether s can be read and written right now. A nil store
// is unreachable; backends without Ping are assumed reachable.
func Reachable(ctx context.Context, s KeyValueStore) bool {
	if s == nil {
		return false
	}
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx) == nil
	}
	return true
}
