package eventbus

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddLookup_Order(t *testing.T) {
	r := NewRegistry[string, int]()

	r.Add("a", 1)
	r.Add("a", 2)
	r.Add("b", 10)
	r.Add("a", 3)

	assert.Equal(t, []int{1, 2, 3}, r.Lookup("a"))
	assert.Equal(t, []int{10}, r.Lookup("b"))
	assert.Nil(t, r.Lookup("missing"))
	assert.Equal(t, 4, r.Count())
	assert.ElementsMatch(t, []string{"a", "b"}, r.Keys())
}

func TestRegistry_DuplicateValues(t *testing.T) {
	r := NewRegistry[string, int]()

	id1 := r.Add("a", 7)
	id2 := r.Add("a", 7)

	require.NotEqual(t, id1, id2)
	assert.Equal(t, []int{7, 7}, r.Lookup("a"))

	require.True(t, r.Remove("a", id1))
	assert.Equal(t, []int{7}, r.Lookup("a"))
	assert.True(t, r.Contains("a", id2))
	assert.False(t, r.Contains("a", id1))
}

func TestRegistry_Remove(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		id      func(ids []uuid.UUID) uuid.UUID
		removed bool
		want    []int
	}{
		{
			name:    "middle entry",
			key:     "a",
			id:      func(ids []uuid.UUID) uuid.UUID { return ids[1] },
			removed: true,
			want:    []int{1, 3},
		},
		{
			name:    "unknown id",
			key:     "a",
			id:      func([]uuid.UUID) uuid.UUID { return uuid.New() },
			removed: false,
			want:    []int{1, 2, 3},
		},
		{
			name:    "id under another key",
			key:     "b",
			id:      func(ids []uuid.UUID) uuid.UUID { return ids[0] },
			removed: false,
			want:    []int{1, 2, 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry[string, int]()
			ids := []uuid.UUID{r.Add("a", 1), r.Add("a", 2), r.Add("a", 3)}

			assert.Equal(t, tc.removed, r.Remove(tc.key, tc.id(ids)))
			assert.Equal(t, tc.want, r.Lookup("a"))
		})
	}
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	r := NewRegistry[string, int]()
	id := r.Add("a", 1)

	assert.True(t, r.Remove("a", id))
	assert.False(t, r.Remove("a", id))
	assert.Equal(t, 0, r.Len("a"))
	assert.Equal(t, 0, r.Count())
	assert.Nil(t, r.Keys())
}

func TestRegistry_RemoveFunc_FirstMatchOnly(t *testing.T) {
	r := NewRegistry[string, int]()
	r.Add("a", 5)
	r.Add("a", 6)
	r.Add("a", 5)

	assert.True(t, r.RemoveFunc("a", func(v int) bool { return v == 5 }))
	assert.Equal(t, []int{6, 5}, r.Lookup("a"))
	assert.False(t, r.RemoveFunc("a", func(v int) bool { return v == 99 }))
}

func TestRegistry_LookupIsSnapshot(t *testing.T) {
	r := NewRegistry[string, int]()
	id := r.Add("a", 1)
	r.Add("a", 2)

	snapshot := r.Lookup("a")
	r.Remove("a", id)
	r.Add("a", 3)
	snapshot[1] = 42

	assert.Equal(t, []int{1, 42}, snapshot)
	assert.Equal(t, []int{2, 3}, r.Lookup("a"))
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := r.Add(n%2, j)
				_ = r.Lookup(n % 2)
				if j%2 == 0 {
					r.Remove(n%2, id)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8*50, r.Count())
	assert.Equal(t, r.Count(), r.Len(0)+r.Len(1))
}
