// Package geometry provides bounding volumes used to cull and size shadows.
package geometry

import "github.com/emberfall/caster/pkg/math"

// Sphere is a scene-space bounding sphere.
type Sphere struct {
	Center math.Vec3
	Radius float32
}

// NewSphere returns a sphere at the given center and radius.
func NewSphere(center math.Vec3, radius float32) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Contains reports whether p lies inside or on the sphere.
func (s *Sphere) Contains(p math.Vec3) bool {
	return s.Center.Distance(p) <= s.Radius
}

// MergePoint grows the sphere to enclose p.
func (s *Sphere) MergePoint(p math.Vec3) {
	d := s.Center.Distance(p)
	if d <= s.Radius {
		return
	}
	// New sphere spans from the far side of the old one to p.
	half := (d + s.Radius) / 2
	dir := p.Sub(s.Center).Normalize()
	s.Center = s.Center.Add(dir.Scale(half - s.Radius))
	s.Radius = half
}

// Merge grows the sphere to enclose other.
func (s *Sphere) Merge(other *Sphere) {
	d := s.Center.Distance(other.Center)
	if d+other.Radius <= s.Radius {
		return
	}
	if d+s.Radius <= other.Radius {
		*s = *other
		return
	}
	half := (d + s.Radius + other.Radius) / 2
	dir := other.Center.Sub(s.Center).Normalize()
	s.Center = s.Center.Add(dir.Scale(half - s.Radius))
	s.Radius = half
}

// Set replaces the sphere's center and radius in place.
func (s *Sphere) Set(center math.Vec3, radius float32) {
	s.Center = center
	s.Radius = radius
}
