package sellers

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_sales/internal/sales"
)

func TestAdd(t *testing.T) {
	seq := NewSequence(3)
	list := Seed()

	next, seller, err := Add(list, "  Ana Costa  ", seq)
	require.NoError(t, err)

	assert.Equal(t, "4", seller.ID)
	assert.Equal(t, "Ana Costa", seller.Name, "Expected the name to be trimmed")
	assert.Len(t, next, 4)
	assert.Len(t, list, 3, "Expected the input roster to be untouched")
	assert.Equal(t, seller, next[3])
}

func TestAdd_BlankName(t *testing.T) {
	list := Seed()
	for _, name := range []string{"", "   ", "\t\n"} {
		next, _, err := Add(list, name, NewSequence(0))
		assert.ErrorIs(t, err, ErrNameRequired)
		assert.True(t, sales.IsValidation(err))
		assert.Equal(t, list, next)
	}
}

func TestSequence_IsMonotonicAndUnique(t *testing.T) {
	seq := NewSequence(10)

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := seq.Next()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 50)
	assert.Equal(t, "61", seq.Next())
}

// TestRemove_NoSales: a seller with no sales can always be removed.
func TestRemove_NoSales(t *testing.T) {
	list := []Seller{{ID: "1", Name: "João"}, {ID: "2", Name: "Maria"}}

	next, err := Remove(list, nil, "1")
	require.NoError(t, err)
	assert.Equal(t, []Seller{{ID: "2", Name: "Maria"}}, next)
	_, found := Find(next, "1")
	assert.False(t, found)
}

func TestRemove_SellerWithSales(t *testing.T) {
	list := Seed()
	recorded := []sales.Sale{
		{ID: "s1", SellerID: "3", CreatedAt: time.Now()},
		{ID: "s2", SellerID: "2", CreatedAt: time.Now()},
	}

	next, err := Remove(list, recorded, "2")

	assert.ErrorIs(t, err, ErrSellerHasSales)
	assert.True(t, sales.IsConstraint(err))
	assert.Equal(t, "seller has recorded sales", err.Error())
	assert.Equal(t, list, next, "Expected the roster to be unchanged")

	next, err = Remove(list, recorded, "1")
	require.NoError(t, err)
	assert.Len(t, next, 2)
}

func TestRemove_UnknownID(t *testing.T) {
	list := Seed()
	next, err := Remove(list, nil, "42")
	require.NoError(t, err)
	assert.Equal(t, list, next)
}

func TestFindAndMaxNumericID(t *testing.T) {
	list := append(Seed(), Seller{ID: "legacy-x", Name: "Imported"})

	s, ok := Find(list, "2")
	assert.True(t, ok)
	assert.Equal(t, "Maria Santos", s.Name)

	_, ok = Find(list, "9")
	assert.False(t, ok)

	assert.Equal(t, int64(3), MaxNumericID(list))
	assert.Equal(t, int64(0), MaxNumericID(nil))
}
