package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
	"github.com/custodia-labs/smartstudy/internal/logger"
	"github.com/custodia-labs/smartstudy/internal/snapshot"
)

// LibraryStore holds one library in memory and persists it as a single
// JSON value under one storage key. Every mutation is applied to a copy,
// persisted, and only then made visible, so a failed write leaves the
// store unchanged.
type LibraryStore struct {
	kv    driven.KeyValueStore
	key   string
	codec snapshot.Codec

	mu  sync.RWMutex
	lib domain.Library
}

// NewLibraryStore creates an empty store bound to key. Call Restore to
// load the persisted state.
func NewLibraryStore(kv driven.KeyValueStore, key string) *LibraryStore {
	return &LibraryStore{
		kv:    kv,
		key:   key,
		codec: snapshot.JSON{},
		lib:   domain.NewLibrary(),
	}
}

// Key returns the storage key.
func (s *LibraryStore) Key() string {
	return s.key
}

// Restore loads the persisted library. A missing, unreadable or malformed
// value yields a fresh empty library; the problem is logged, never returned.
func (s *LibraryStore) Restore(ctx context.Context) {
	lib := domain.NewLibrary()

	data, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("no saved library under %s, starting empty", s.key)
	case err != nil:
		logger.L().Warn("cannot read library, starting empty", zap.String("key", s.key), zap.Error(err))
	default:
		decoded, derr := s.codec.Decode(data)
		if derr != nil {
			logger.L().Warn("saved library is malformed, starting empty", zap.String("key", s.key), zap.Error(derr))
		} else {
			lib = decoded
		}
	}

	s.mu.Lock()
	s.lib = lib
	s.mu.Unlock()
}

// Persist writes the current library to storage.
func (s *LibraryStore) Persist(ctx context.Context) error {
	s.mu.RLock()
	lib := s.lib.Clone()
	s.mu.RUnlock()
	return s.write(ctx, lib)
}

func (s *LibraryStore) write(ctx context.Context, lib domain.Library) error {
	data, err := s.codec.Encode(lib)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist library: %w", err)
	}
	return nil
}

// Update applies fn to a copy of the library, persists the copy and
// installs it. If fn or the write fails, the store is unchanged.
func (s *LibraryStore) Update(ctx context.Context, fn func(*domain.Library) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.lib.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.write(ctx, next); err != nil {
		return err
	}
	s.lib = next
	return nil
}

// Append adds documents at the end, in order, and persists.
func (s *LibraryStore) Append(ctx context.Context, docs ...domain.Document) error {
	if len(docs) == 0 {
		return nil
	}
	return s.Update(ctx, func(lib *domain.Library) error {
		appendDocuments(lib, docs)
		return nil
	})
}

// appendDocuments adds docs at the end of lib in order. Every append to a
// library goes through here.
func appendDocuments(lib *domain.Library, docs []domain.Document) {
	lib.Documents = append(lib.Documents, docs...)
}

// Remove deletes the document with id and persists. Unknown ids are a no-op.
func (s *LibraryStore) Remove(ctx context.Context, id string) error {
	return s.Update(ctx, func(lib *domain.Library) error {
		if i := lib.IndexOf(id); i >= 0 {
			lib.Documents = append(lib.Documents[:i], lib.Documents[i+1:]...)
		}
		return nil
	})
}

// Clear removes every document and persists. User counters and settings stay.
func (s *LibraryStore) Clear(ctx context.Context) error {
	return s.Update(ctx, func(lib *domain.Library) error {
		lib.Documents = []domain.Document{}
		return nil
	})
}

// Replace swaps in lib wholesale and persists.
func (s *LibraryStore) Replace(ctx context.Context, lib domain.Library) error {
	return s.Update(ctx, func(cur *domain.Library) error {
		*cur = lib.Clone()
		return nil
	})
}

// AllText concatenates every document's text in insertion order,
// separated by newlines.
func (s *LibraryStore) AllText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	texts := make([]string, len(s.lib.Documents))
	for i, d := range s.lib.Documents {
		texts[i] = d.Text
	}
	return strings.Join(texts, "\n")
}

// Documents returns a copy of the documents in insertion order.
func (s *LibraryStore) Documents() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Document{}, s.lib.Documents...)
}

// Get returns the document with id.
func (s *LibraryStore) Get(id string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.lib.IndexOf(id); i >= 0 {
		return s.lib.Documents[i], true
	}
	return domain.Document{}, false
}

// Library returns a copy of the whole library.
func (s *LibraryStore) Library() domain.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib.Clone()
}
