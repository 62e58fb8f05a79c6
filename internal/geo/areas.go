// Package geo maps named LA sub-areas to coordinates. Purely static; no
// live geocoding happens anywhere in this system.
package geo

// Point is a WGS84 latitude/longitude pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Home is the fixed home base (Culver City) used as the map center, the
// home marker, and the fallback for unknown areas.
var Home = Point{Lat: 34.0211, Lon: -118.3965}

var areaCoords = map[string]Point{
	"Culver City":    {34.0211, -118.3965},
	"Santa Monica":   {34.0195, -118.4912},
	"Playa Vista":    {33.9777, -118.4198},
	"West LA":        {34.0522, -118.4437},
	"Downtown LA":    {34.0407, -118.2468},
	"Hollywood":      {34.0928, -118.3287},
	"West Hollywood": {34.0900, -118.3617},
	"Hawthorne":      {33.9164, -118.3526},
	"El Segundo":     {33.9192, -118.4165},
}

// Coords resolves an area name. Unknown or empty names fall back to Home.
func Coords(area string) Point {
	if p, ok := areaCoords[area]; ok {
		return p
	}
	return Home
}
