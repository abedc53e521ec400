package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolNeverIssuesZeroID(t *testing.T) {
	p := NewPool()
	for i := 0; i < 100; i++ {
		id := p.Create()
		require.False(t, id.IsZero())
	}
	assert.False(t, p.Alive(0))
}

func TestPoolGenerationGuardsStaleIDs(t *testing.T) {
	p := NewPool()
	a := p.Create()
	require.True(t, p.Alive(a))

	p.Destroy(a)
	assert.False(t, p.Alive(a))

	// Slot is recycled with a bumped generation.
	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.True(t, p.Alive(b))
	assert.False(t, p.Alive(a))

	// Destroying through the stale ID must not touch the new entity.
	p.Destroy(a)
	assert.True(t, p.Alive(b))
}

func TestPoolLiveCount(t *testing.T) {
	p := NewPool()
	assert.Equal(t, 0, p.Live())
	a := p.Create()
	p.Create()
	assert.Equal(t, 2, p.Live())
	p.Destroy(a)
	assert.Equal(t, 1, p.Live())
}

func TestStoreSetGetRemove(t *testing.T) {
	s := NewStore[string]()
	p := NewPool()
	a, b, c := p.Create(), p.Create(), p.Create()

	s.Set(a, "a")
	s.Set(b, "b")
	s.Set(c, "c")
	require.Equal(t, 3, s.Len())

	v, ok := s.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b", *v)

	// Swap-remove keeps the remaining components reachable.
	s.Remove(a)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.Has(a))
	v, ok = s.Get(c)
	require.True(t, ok)
	assert.Equal(t, "c", *v)
}

func TestStoreSetOverwrites(t *testing.T) {
	s := NewStore[int]()
	p := NewPool()
	a := p.Create()
	s.Set(a, 1)
	s.Set(a, 2)
	assert.Equal(t, 1, s.Len())
	v, _ := s.Get(a)
	assert.Equal(t, 2, *v)
}

func TestStoreEachVisitsAll(t *testing.T) {
	s := NewStore[int]()
	p := NewPool()
	want := 0
	for i := 1; i <= 5; i++ {
		s.Set(p.Create(), i)
		want += i
	}
	got := 0
	s.Each(func(_ EntityID, v *int) { got += *v })
	assert.Equal(t, want, got)
}

func TestWorldDeferredDestroy(t *testing.T) {
	w := NewWorld()
	s := NewStore[int]()
	w.RegisterStore(s)

	id := w.CreateEntity()
	s.Set(id, 42)
	w.MarkForDestruction(id)

	// Still alive and resolvable until the flush.
	assert.True(t, w.Alive(id))
	assert.True(t, s.Has(id))

	w.FlushDestroyQueue()
	assert.False(t, w.Alive(id))
	assert.False(t, s.Has(id))
}
