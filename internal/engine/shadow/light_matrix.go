package shadow

import (
	"github.com/emberfall/caster/internal/engine/geometry"
	"github.com/emberfall/caster/pkg/math"
)

// DirectionalLightMatrix computes the view-projection matrix of a
// directional light covering the given bounds. lightDir is the normalized
// direction TO the light.
func DirectionalLightMatrix(lightDir math.Vec3, bounds *geometry.Sphere, near float32) math.Mat4 {
	radius := bounds.Radius
	if radius <= 0 {
		radius = 1
	}

	// Position the light far enough to cover the whole volume.
	lightDistance := radius * 2
	lightPos := bounds.Center.Add(lightDir.Scale(lightDistance))

	view := math.LookAt(lightPos, bounds.Center, lightUp(lightDir))

	padding := radius * 0.1
	halfSize := radius + padding
	far := lightDistance + radius + padding

	proj := math.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)
	return proj.Mul(view)
}

// UpdateLightMatrix recomputes and stores the light view-projection for the
// current receive bounds. With auto-adapt on, the shadow camera's far plane
// and orthographic size are refit to the bounds first; otherwise the stored
// near/far/aspect/orthoSize define the volume.
func (s *Settings) UpdateLightMatrix(lightDir math.Vec3) {
	bounds := s.ReceiveBounds
	if bounds == nil {
		return
	}

	if s.AutoAdapt() {
		radius := bounds.Radius
		if radius <= 0 {
			radius = 1
		}
		s.SetOrthoSize(radius * 1.1)
		s.SetFar(radius * 3.1)
		s.SetMatLightViewProj(DirectionalLightMatrix(lightDir, bounds, s.Near()))
		return
	}

	half := s.OrthoSize()
	eye := bounds.Center.Add(lightDir.Scale(s.Far() / 2))
	view := math.LookAt(eye, bounds.Center, lightUp(lightDir))
	proj := math.Ortho(-half*s.Aspect(), half*s.Aspect(), -half, half, s.Near(), s.Far())
	s.SetMatLightViewProj(proj.Mul(view))
}

// lightUp picks an up vector that is not parallel to the light direction.
func lightUp(lightDir math.Vec3) math.Vec3 {
	if abs(lightDir.Y) > 0.99 {
		return math.Vec3{X: 0, Y: 0, Z: 1}
	}
	return math.UnitY
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
