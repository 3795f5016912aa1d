package sales

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	storage := NewLocalStorage()

	assert.ErrorIs(t, storage.Append(Sale{}), ErrEmptyID, "Expected ErrEmptyID for a sale without ID")

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, storage.Append(saleAt(id, "1", "1", time.Now())))
	}

	all, err := storage.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(all), "Expected insertion order to be kept")

	got, err := storage.Read("a")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	_, err = storage.Read("zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	all[0].ID = "mutated"
	again, _ := storage.GetAll()
	assert.Equal(t, "c", again[0].ID, "Expected GetAll to return a copy")
}
