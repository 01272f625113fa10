package aoi

import "math"

const earthRadius = 6378137.0

// ToLonLat converts a Web Mercator point to WGS84 longitude and latitude in degrees.
func ToLonLat(p Point) (lon, lat float64) {
	lon = p.X / earthRadius * 180 / math.Pi
	lat = (2*math.Atan(math.Exp(p.Y/earthRadius)) - math.Pi/2) * 180 / math.Pi
	return lon, lat
}

// FromLonLat converts WGS84 degrees to a Web Mercator point.
func FromLonLat(lon, lat float64) Point {
	x := lon * math.Pi / 180 * earthRadius
	y := math.Log(math.Tan(math.Pi/4+lat*math.Pi/360)) * earthRadius
	return Point{X: x, Y: y}
}
