package transform

import "math"

// WrapDegrees maps an angle in degrees to [-180, 180).
func WrapDegrees(deg float32) float32 {
	d := math.Mod(float64(deg), 360)
	if d >= 180 {
		d -= 360
	}
	if d < -180 {
		d += 360
	}
	return float32(d)
}

// Degrees converts each component of an Euler triple from radians to degrees.
func Degrees(rad [3]float32) [3]float32 {
	var out [3]float32
	for i, r := range rad {
		out[i] = float32(float64(r) * 180 / math.Pi)
	}
	return out
}
