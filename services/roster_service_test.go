package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSnapshot(t *testing.T) {
	t.Run("accepts a well formed export", func(t *testing.T) {
		raw := []byte(`{"unit_list":[{"unit_master_id":14102},{"unit_master_id":19214},{"unit_master_id":14102}]}`)

		ids, err := ValidateSnapshot(raw)
		require.NoError(t, err)
		assert.Equal(t, []int{14102, 19214, 14102}, ids)
	})

	t.Run("accepts an empty unit_list", func(t *testing.T) {
		ids, err := ValidateSnapshot([]byte(`{"unit_list":[]}`))
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("ignores fields the exporter adds around unit_list", func(t *testing.T) {
		raw := []byte(`{"wizard_info":{"wizard_name":"max"},"unit_list":[{"unit_master_id":1,"unit_level":40}]}`)

		ids, err := ValidateSnapshot(raw)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, ids)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := ValidateSnapshot([]byte(`{"unit_list":[`))
		assert.ErrorIs(t, err, ErrSnapshotInvalid)
	})

	t.Run("rejects a document without unit_list", func(t *testing.T) {
		_, err := ValidateSnapshot([]byte(`{"wizard_info":{}}`))
		assert.ErrorIs(t, err, ErrSnapshotInvalid)
	})

	t.Run("rejects an entry without unit_master_id", func(t *testing.T) {
		_, err := ValidateSnapshot([]byte(`{"unit_list":[{"unit_master_id":1},{"unit_level":40}]}`))
		assert.ErrorIs(t, err, ErrSnapshotInvalid)
	})

	t.Run("rejects a non positive unit_master_id", func(t *testing.T) {
		_, err := ValidateSnapshot([]byte(`{"unit_list":[{"unit_master_id":0}]}`))
		assert.ErrorIs(t, err, ErrSnapshotInvalid)

		_, err = ValidateSnapshot([]byte(`{"unit_list":[{"unit_master_id":-3}]}`))
		assert.ErrorIs(t, err, ErrSnapshotInvalid)
	})
}

func TestExtractOwnedIDs(t *testing.T) {
	raw := json.RawMessage(`{"unit_list":[{"unit_master_id":101},{"unit_master_id":202}]}`)

	ids, err := ExtractOwnedIDs(raw)
	require.NoError(t, err)
	assert.Equal(t, []int{101, 202}, ids)
}
