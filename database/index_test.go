package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeIndexType(t *testing.T) {
	_, chunksDbHandler := initChunkHandlers(t)

	t.Run("Change to IVFFlat index", func(t *testing.T) {
		err := chunksDbHandler.ChangeIndexType(context.Background(), "ivfflat", map[string]interface{}{"lists": 50})
		assert.NoError(t, err, "Expected ChangeIndexType to not return an error")

		var exists bool
		err = chunksDbHandler.db.Instance.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM pg_indexes WHERE indexname = 'idx_chunks_embedding');",
		).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "Expected vector index to exist after change")
	})

	t.Run("Change back to HNSW index", func(t *testing.T) {
		err := chunksDbHandler.ChangeIndexType(context.Background(), "hnsw", map[string]interface{}{"m": 16, "ef_construction": 64})
		assert.NoError(t, err, "Expected ChangeIndexType to not return an error")
	})

	t.Run("Unsupported index type returns error", func(t *testing.T) {
		err := chunksDbHandler.ChangeIndexType(context.Background(), "btree", nil)
		assert.Error(t, err, "Expected error for unsupported index type")
		assert.Contains(t, err.Error(), "unsupported index type")
	})
}
