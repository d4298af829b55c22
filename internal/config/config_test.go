package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	assert.Nil(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	t.Run("Correct flow", func(t *testing.T) {
		//** Arrange
		path := filepath.Join(t.TempDir(), "config.json")
		content := `{"capacity": 30, "maxSlots": 6, "strategy": "sat", "seed": 42, "isolated": ["Latin"]}`
		require.Nil(t, os.WriteFile(path, []byte(content), 0666))

		//** Act
		config, err := Load(path)

		//** Assert
		require.Nil(t, err)
		assert.Equal(t, 30, config.Capacity)
		assert.Equal(t, 2, config.MinSlots)
		assert.Equal(t, 6, config.MaxSlots)
		assert.Equal(t, "sat", config.Strategy)
		assert.Equal(t, uint64(42), config.Seed)
		assert.Equal(t, []string{"Latin"}, config.Isolated)
		assert.Equal(t, 100, config.Trials)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.NotNil(t, err)
	})

	t.Run("Malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.Nil(t, os.WriteFile(path, []byte("{capacity"), 0666))

		_, err := Load(path)
		assert.NotNil(t, err)
	})
}

func TestDecode(t *testing.T) {
	invalid := []map[string]any{
		{"capacity": 0},
		{"minSlots": 4, "maxSlots": 3},
		{"strategy": "genetic"},
		{"solver": "minisat"},
		{"trials": 0},
		{"unknownKey": true},
		{"isolated": []any{""}},
	}

	for _, raw := range invalid {
		_, err := Decode(raw)
		assert.NotNil(t, err, "%v should be rejected", raw)
	}
}
