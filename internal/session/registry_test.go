package session

import (
	"testing"
	"time"

	"crumbline-be/internal/cart"
	"crumbline-be/internal/catalog"
	"crumbline-be/internal/order"
	"crumbline-be/internal/promo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(ttl time.Duration) *Registry {
	return NewRegistry(order.NewMemoryBackend(0), promo.DefaultTable(), ttl)
}

func TestGetOrCreate(t *testing.T) {
	r := newTestRegistry(time.Hour)
	defer r.Close()

	a := r.GetOrCreate("s1")
	b := r.GetOrCreate("s1")
	c := r.GetOrCreate("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
}

func TestReset(t *testing.T) {
	r := newTestRegistry(time.Hour)
	defer r.Close()

	flow := r.GetOrCreate("s1")
	require.NoError(t, flow.AddItem(catalog.Product{ID: 1, Name: "Baguette", PriceCents: 400}, 1, cart.Customization{}))

	r.Reset("s1")
	fresh := r.GetOrCreate("s1")

	assert.NotSame(t, flow, fresh)
	assert.Empty(t, fresh.Lines())
}

func TestReapIdle(t *testing.T) {
	r := newTestRegistry(10 * time.Millisecond)
	defer r.Close()

	r.GetOrCreate("stale")
	time.Sleep(30 * time.Millisecond)
	r.GetOrCreate("fresh")

	r.reapIdle()

	assert.Equal(t, 1, r.Len())
	// the fresh session survived
	r.mu.Lock()
	_, ok := r.sessions["fresh"]
	r.mu.Unlock()
	assert.True(t, ok)
}
