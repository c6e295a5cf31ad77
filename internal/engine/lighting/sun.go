// Package lighting provides light direction utilities for the pipeline.
package lighting

import (
	gomath "math"

	"github.com/emberfall/caster/pkg/math"
)

// SunDirection converts longitude/latitude angles to a light direction.
// Longitude is rotation around Y (0-360 degrees), latitude is elevation
// from the horizon (0-90 degrees). The returned vector points towards
// the sun and is normalized.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lonRad := float64(longitude) * gomath.Pi / 180.0
	latRad := float64(latitude) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}
