package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/domain/routing"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

func sampleKey(origin, destination string) routing.CacheKey {
	return routing.NewCacheKey(routing.SearchRequest{
		Start:        origin,
		End:          destination,
		Modes:        shared.CruiseOnly(),
		FuelCapacity: 400,
		StartRange:   400,
		OnlyMarkets:  true,
	})
}

func TestRouteCache_GetReturnsCopy(t *testing.T) {
	// Arrange
	cache := routing.NewRouteCache()
	key := sampleKey("X1-TST-A", "X1-TST-B")
	cache.Put(key, []*routing.RouteConnection{
		{Start: "X1-TST-A", End: "X1-TST-B", Mode: shared.FlightModeCruise, Distance: 30},
	})

	// Act
	got, ok := cache.Get(key)
	require.True(t, ok)
	got[0] = nil

	// Assert: clobbering the returned slice does not corrupt the entry
	again, ok := cache.Get(key)
	require.True(t, ok)
	require.NotNil(t, again[0])
	assert.Equal(t, "X1-TST-B", again[0].End)
}

func TestRouteCache_PutFirstWriteWins(t *testing.T) {
	// Arrange
	cache := routing.NewRouteCache()
	key := sampleKey("X1-TST-A", "X1-TST-B")

	// Act
	cache.Put(key, []*routing.RouteConnection{{Start: "X1-TST-A", End: "X1-TST-B"}})
	cache.Put(key, []*routing.RouteConnection{{Start: "X1-TST-A", End: "X1-TST-Z"}})

	// Assert
	got, ok := cache.Get(key)
	require.True(t, ok)
	assert.Equal(t, "X1-TST-B", got[0].End)
	assert.Equal(t, 1, cache.Len())
}

func TestRouteCache_MissAndDistinctKeys(t *testing.T) {
	// Arrange
	cache := routing.NewRouteCache()

	// Act
	_, ok := cache.Get(sampleKey("X1-TST-A", "X1-TST-B"))

	// Assert
	assert.False(t, ok)

	// Keys differ by any request dimension
	a := sampleKey("X1-TST-A", "X1-TST-B")
	b := a
	b.FuelCapacity = 100
	cache.Put(a, nil)
	cache.Put(b, nil)
	assert.Equal(t, 2, cache.Len())
}
