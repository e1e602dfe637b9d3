// Package storetest provides a conformance suite shared by every
// driven.KeyValueStore implementation.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// Factory opens a fresh, empty store. Stores are closed by the suite.
type Factory func(t *testing.T) driven.KeyValueStore

// Run exercises the KeyValueStore contract against stores from open.
func Run(t *testing.T, open Factory) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		_, err := s.Get(context.Background(), "smartstudy.library.Default")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "smartstudy.current", []byte("Physics")))
		got, err := s.Get(ctx, "smartstudy.current")
		require.NoError(t, err)
		assert.Equal(t, []byte("Physics"), got)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "k", []byte(`{"a":1}`)))
		require.NoError(t, s.Put(ctx, "k", []byte(`{"a":2}`)))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, `{"a":2}`, string(got))
	})

	t.Run("EmptyValue", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "empty", []byte{}))
		got, err := s.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ValuesAreCopied", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		v := []byte("abc")
		require.NoError(t, s.Put(ctx, "k", v))
		v[0] = 'X'

		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
	})

	t.Run("Delete", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		require.NoError(t, s.Put(ctx, "k", []byte("v")))
		require.NoError(t, s.Delete(ctx, "k"))
		_, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.NoError(t, s.Delete(ctx, "never-existed"))
	})

	t.Run("KeysByPrefix", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		for _, k := range []string{"smartstudy.library.Physics", "smartstudy.current", "smartstudy.library.Biology", "other"} {
			require.NoError(t, s.Put(ctx, k, []byte("x")))
		}

		keys, err := s.Keys(ctx, "smartstudy.library.")
		require.NoError(t, err)
		assert.Equal(t, []string{"smartstudy.library.Biology", "smartstudy.library.Physics"}, keys)

		all, err := s.Keys(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("KeysWithSpecialCharacters", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		key := "smartstudy.library.Class 10/Maths & Science"
		require.NoError(t, s.Put(ctx, key, []byte("v")))

		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "v", string(got))

		keys, err := s.Keys(ctx, "smartstudy.library.")
		require.NoError(t, err)
		assert.Equal(t, []string{key}, keys)
	})

	t.Run("ConcurrentPuts", func(t *testing.T) {
		s := open(t)
		defer s.Close()
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				assert.NoError(t, s.Put(ctx, fmt.Sprintf("k%02d", n), []byte{byte(n)}))
			}(i)
		}
		wg.Wait()

		keys, err := s.Keys(ctx, "k")
		require.NoError(t, err)
		assert.Len(t, keys, 20)
	})
}
