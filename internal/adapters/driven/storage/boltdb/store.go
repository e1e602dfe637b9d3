// Package boltdb provides a driven.KeyValueStore backed by a single bbolt
// database file with one bucket.
package boltdb

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

var bucketName = []byte("smartstudy")

// openTimeout bounds the wait for another process's file lock.
const openTimeout = time.Second

// Ensure Store implements the interface.
var _ driven.KeyValueStore = (*Store)(nil)

// Store is a bbolt-backed key-value store.
type Store struct {
	db *bolt.DB
}

// NewStore opens (creating if needed) <dataDir>/library.bolt.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory for bbolt: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dataDir, "library.bolt"), 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.db.Path()
}

// Get retrieves the value for key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	found := false
	err := s.db.View(func(tx *bolt.Tx) error {
		k, v := tx.Bucket(bucketName).Cursor().Seek([]byte(key))
		if k != nil && bytes.Equal(k, []byte(key)) {
			found = true
			// Values are only valid inside the transaction.
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	if !found {
		return nil, fmt.Errorf("key %s: %w", key, domain.ErrNotFound)
	}
	return value, nil
}

// Put stores or replaces the value for key.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", domain.ErrInvalidInput)
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), append([]byte{}, value...))
	})
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Keys returns all keys with the given prefix. bbolt keeps keys sorted.
func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	p := []byte(prefix)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	return keys, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}
