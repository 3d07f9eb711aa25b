// Package sessiontest holds the behaviour every session.Store must share.
package sessiontest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Rrens/crop-advisory/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreTests exercises store against the Store contract. newStore must
// return an empty store each time it is called.
func RunStoreTests(t *testing.T, newStore func(t *testing.T) session.Store) {
	t.Run("load empty", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Load(context.Background(), "default")
		assert.ErrorIs(t, err, session.ErrNoToken)
	})

	t.Run("save load delete", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.Save(ctx, "default", "tok-1"))
		got, err := store.Load(ctx, "default")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", got)

		require.NoError(t, store.Save(ctx, "default", "tok-2"))
		got, err = store.Load(ctx, "default")
		require.NoError(t, err)
		assert.Equal(t, "tok-2", got, "save replaces")

		require.NoError(t, store.Delete(ctx, "default"))
		_, err = store.Load(ctx, "default")
		assert.ErrorIs(t, err, session.ErrNoToken)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.Delete(ctx, "missing"))
		require.NoError(t, store.Save(ctx, "k", "v"))
		require.NoError(t, store.Delete(ctx, "k"))
		require.NoError(t, store.Delete(ctx, "k"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		require.NoError(t, store.Save(ctx, "alice", "a"))
		require.NoError(t, store.Save(ctx, "bob", "b"))
		require.NoError(t, store.Delete(ctx, "alice"))

		got, err := store.Load(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "b", got)
	})

	t.Run("concurrent saves", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, store.Save(ctx, "race", fmt.Sprintf("tok-%d", i)))
			}(i)
		}
		wg.Wait()

		got, err := store.Load(ctx, "race")
		require.NoError(t, err)
		assert.Regexp(t, `^tok-\d$`, got)
	})
}
