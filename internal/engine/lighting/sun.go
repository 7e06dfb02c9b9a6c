// Package lighting derives the scene's directional light.
package lighting

import "math"

// SunDirection converts longitude/latitude angles in degrees to a unit
// vector pointing towards the sun. Longitude turns around Y starting at +Z;
// latitude is the elevation above the horizon.
func SunDirection(longitude, latitude float64) [3]float32 {
	lonRad := longitude * math.Pi / 180.0
	latRad := latitude * math.Pi / 180.0

	x := float32(math.Cos(latRad) * math.Sin(lonRad))
	y := float32(math.Sin(latRad))
	z := float32(math.Cos(latRad) * math.Cos(lonRad))

	return [3]float32{x, y, z}
}

// LightDirection returns the direction the sunlight travels, from the sun
// towards the ground.
func LightDirection(longitude, latitude float64) [3]float32 {
	s := SunDirection(longitude, latitude)
	return [3]float32{-s[0], -s[1], -s[2]}
}
