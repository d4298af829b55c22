package history

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	require.Nil(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndGet(t *testing.T) {
	//** Arrange
	store := newTestStore(t)
	ctx := context.Background()

	//** Act
	recorded, err := store.Record(ctx, Run{
		Strategy: "heuristic",
		Capacity: 25,
		Students: 30,
		Slots:    6,
		Score:    30000,
		Solution: json.RawMessage(`{"slots":6}`),
	})
	require.Nil(t, err)
	fetched, err := store.Get(ctx, recorded.Id)

	//** Assert
	require.Nil(t, err)
	assert.NotEmpty(t, recorded.Id)
	assert.False(t, recorded.CreatedAt.IsZero())
	assert.Equal(t, recorded.Id, fetched.Id)
	assert.True(t, recorded.CreatedAt.Equal(fetched.CreatedAt))
	assert.Equal(t, 30000, fetched.Score)
	assert.JSONEq(t, `{"slots":6}`, string(fetched.Solution))
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestBest(t *testing.T) {
	//** Arrange
	store := newTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, score := range []int{1000, 3000, 2000, 3000} {
		_, err := store.Record(ctx, Run{
			Id:        string(rune('a' + i)),
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
			Strategy:  "exact",
			Score:     score,
		})
		require.Nil(t, err)
	}

	//** Act
	runs, err := store.Best(ctx, 3)

	//** Assert
	require.Nil(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"b", "d", "c"}, []string{runs[0].Id, runs[1].Id, runs[2].Id})
}

func TestDuplicateId(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Record(ctx, Run{Id: "same", Strategy: "sat"})
	require.Nil(t, err)
	_, err = store.Record(ctx, Run{Id: "same", Strategy: "sat"})

	assert.NotNil(t, err)
}
