package store

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var valuesBucket = []byte("values")

type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(dbPath string) (*BoltStore, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(valuesBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Get(_ context.Context, key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(valuesBucket).Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}
		value = string(data)
		return nil
	})
	return value, err
}

func (s *BoltStore) Set(_ context.Context, key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(valuesBucket).Put([]byte(key), []byte(value))
	})
}

func (s *BoltStore) Remove(_ context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(valuesBucket).Delete([]byte(key))
	})
}
