package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(56.0, 10.0, 56.0, 10.0))
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Aarhus -> Copenhagen, roughly 157 km great-circle
	d := HaversineKm(56.1629, 10.2039, 55.6761, 12.5683)
	assert.InDelta(t, 157, d, 5)
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := HaversineKm(56.0, 10.0, 55.5, 9.5)
	b := HaversineKm(55.5, 9.5, 56.0, 10.0)
	assert.InDelta(t, a, b, 1e-9)
}

func TestDistanceKm(t *testing.T) {
	a := Point{Latitude: 56.0, Longitude: 10.0}
	b := Point{Latitude: 56.0, Longitude: 10.1}
	assert.InDelta(t, 6.2, DistanceKm(a, b), 0.5)
}

func TestTravelMinutes(t *testing.T) {
	assert.Equal(t, 0, TravelMinutes(0, 2.5))
	assert.Equal(t, 0, TravelMinutes(-3, 2.5))
	assert.Equal(t, 3, TravelMinutes(1.2, 2.5))
	assert.Equal(t, 25, TravelMinutes(10, 2.5))
	// rounding, not truncation
	assert.Equal(t, 2, TravelMinutes(0.7, 2.5))
}
