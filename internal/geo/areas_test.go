package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordsKnownArea(t *testing.T) {
	p := Coords("Santa Monica")
	assert.InDelta(t, 34.0195, p.Lat, 0.0001)
	assert.InDelta(t, -118.4912, p.Lon, 0.0001)
}

func TestCoordsFallsBackToHome(t *testing.T) {
	for _, name := range []string{"", "Nowhere", "santa monica"} {
		assert.Equal(t, Home, Coords(name), "area %q", name)
	}
}
