package journal

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	fs := afero.NewMemMapFs()
	j := New(fs, "/docs")
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return clock }

	t.Run("empty", func(t *testing.T) {
		e, err := j.Load()
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	var first *Entry
	t.Run("begin", func(t *testing.T) {
		var err error
		first, err = j.Begin("abc", 2)
		require.NoError(t, err)
		assert.Equal(t, StateStaging, first.State)

		loaded, err := j.Load()
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, first.RunID, loaded.RunID)
		assert.Equal(t, "abc", loaded.Fingerprint)
		assert.Equal(t, 2, loaded.Mappings)
		assert.True(t, clock.Equal(loaded.StartedAt))
	})

	t.Run("resume keeps run id", func(t *testing.T) {
		clock = clock.Add(time.Minute)
		again, err := j.Begin("abc", 2)
		require.NoError(t, err)
		assert.Equal(t, first.RunID, again.RunID)
		assert.True(t, first.StartedAt.Equal(again.StartedAt))
	})

	t.Run("different mapping gets new run id", func(t *testing.T) {
		other, err := j.Begin("def", 1)
		require.NoError(t, err)
		assert.NotEqual(t, first.RunID, other.RunID)
	})

	t.Run("resume keeps renamed state", func(t *testing.T) {
		e, err := j.Begin("ghi", 2)
		require.NoError(t, err)
		require.NoError(t, j.MarkRenamed(e))

		again, err := j.Begin("ghi", 2)
		require.NoError(t, err)
		assert.Equal(t, StateRenamed, again.State)
		assert.Equal(t, e.RunID, again.RunID)

		loaded, err := j.Load()
		require.NoError(t, err)
		assert.Equal(t, StateRenamed, loaded.State)

		other, err := j.Begin("jkl", 1)
		require.NoError(t, err)
		assert.Equal(t, StateStaging, other.State)
	})

	t.Run("commit", func(t *testing.T) {
		e, err := j.Begin("abc", 2)
		require.NoError(t, err)
		require.NoError(t, j.Commit(e))

		loaded, err := j.Load()
		require.NoError(t, err)
		assert.Equal(t, StateCommitted, loaded.State)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, j.Remove())
		require.NoError(t, j.Remove())
		e, err := j.Load()
		require.NoError(t, err)
		assert.Nil(t, e)
	})

	t.Run("corrupt", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, j.Path(), []byte("state: [unterminated"), 0o644))
		_, err := j.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing journal")
	})
}
