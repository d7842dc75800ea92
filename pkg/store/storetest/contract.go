// Package storetest holds the behavioural contract every store.Store must
// satisfy.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-foundry/pkg/store"
)

// RunContract exercises s against the Get/Set/Remove contract.
func RunContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	key := "foundry:contract:" + time.Now().Format("20060102150405.000000000")

	t.Run("Set and Get", func(t *testing.T) {
		value := `[{"id":"field-1","type":"text"}]`
		require.NoError(t, s.Set(ctx, key, value))

		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, key, "first"))
		require.NoError(t, s.Set(ctx, key, "second"))

		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("Empty value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, key+":empty", ""))
		got, err := s.Get(ctx, key+":empty")
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, s.Remove(ctx, key+":empty"))
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing:"+key)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, key, "value"))
		require.NoError(t, s.Remove(ctx, key))

		_, err := s.Get(ctx, key)
		assert.ErrorIs(t, err, store.ErrNotFound)

		assert.NoError(t, s.Remove(ctx, key), "removing a missing key is not an error")
	})

	t.Run("Empty key", func(t *testing.T) {
		assert.Error(t, s.Set(ctx, "", "value"))
		_, err := s.Get(ctx, "")
		assert.Error(t, err)
	})
}
