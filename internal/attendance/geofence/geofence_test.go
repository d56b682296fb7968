package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rollcall/internal/attendance/models"
)

var sanFrancisco = models.Coordinate{Latitude: 37.7749, Longitude: -122.4194}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(sanFrancisco, sanFrancisco))

	// One degree of latitude is ~111.195 km on a 6371 km sphere.
	oneDegreeNorth := models.Coordinate{Latitude: 38.7749, Longitude: -122.4194}
	assert.InDelta(t, 111195.0, Distance(sanFrancisco, oneDegreeNorth), 1.0)

	newYork := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	assert.InDelta(t, 4129000.0, Distance(sanFrancisco, newYork), 5000.0)
	assert.InDelta(t, Distance(sanFrancisco, newYork), Distance(newYork, sanFrancisco), 1e-6)
}

func TestInsideAnyFence(t *testing.T) {
	sameCenter := models.Fence{Name: "hq", Center: sanFrancisco, RadiusMeters: 500}
	// ~10 km north of the canonical point.
	tenKmAway := models.Fence{
		Name:         "depot",
		Center:       models.Coordinate{Latitude: 37.8648, Longitude: -122.4194},
		RadiusMeters: 500,
	}

	t.Run("point at fence center is inside", func(t *testing.T) {
		assert.True(t, InsideAnyFence(sanFrancisco, []models.Fence{sameCenter}))
	})

	t.Run("point 10 km from fence is outside", func(t *testing.T) {
		assert.InDelta(t, 10000.0, Distance(sanFrancisco, tenKmAway.Center), 50.0)
		assert.False(t, InsideAnyFence(sanFrancisco, []models.Fence{tenKmAway}))
	})

	t.Run("any matching fence is enough", func(t *testing.T) {
		assert.True(t, InsideAnyFence(sanFrancisco, []models.Fence{tenKmAway, sameCenter}))
	})

	t.Run("empty set contains nothing", func(t *testing.T) {
		assert.False(t, InsideAnyFence(sanFrancisco, nil))
		assert.False(t, InsideAnyFence(sanFrancisco, []models.Fence{}))
	})

	t.Run("boundary distance counts as inside", func(t *testing.T) {
		edge := models.Fence{Center: tenKmAway.Center, RadiusMeters: Distance(sanFrancisco, tenKmAway.Center)}
		assert.True(t, InsideAnyFence(sanFrancisco, []models.Fence{edge}))
	})
}

func TestInsideAnyFence_MonotonicInRadius(t *testing.T) {
	points := []models.Coordinate{
		sanFrancisco,
		{Latitude: 37.78, Longitude: -122.41},
		{Latitude: 37.70, Longitude: -122.50},
		{Latitude: 40.0, Longitude: -74.0},
		{Latitude: -33.8688, Longitude: 151.2093},
	}
	radii := []float64{0, 10, 500, 1000, 5000, 20000, 1e6, 2e7}

	for _, p := range points {
		wasInside := false
		for _, r := range radii {
			inside := InsideAnyFence(p, []models.Fence{{Center: sanFrancisco, RadiusMeters: r}})
			if wasInside {
				assert.True(t, inside, "point %v left the fence when radius grew to %v", p, r)
			}
			wasInside = inside
		}
	}
}
