// Package lighting implements the Phong lighting model used to shade the
// scene: a single spotlight, material presets and per-vertex evaluation.
package lighting

import "github.com/taigrr/mobile/pkg/math3d"

// Cone limits. ConeAngle is the cosine of the spotlight half-angle, so a
// larger value is a tighter cone.
const (
	MinConeAngle  = 0.994
	MaxConeAngle  = 1.0
	ConeStep      = 0.00005
	DefaultCone   = 0.995
	DefaultLightZ = 16.0
)

// SpotDirection is the eye-space axis the spotlight points along.
var SpotDirection = math3d.V3(0, 0, -1)

// Light is a positional spotlight in eye space. A w of 0 makes it
// directional.
type Light struct {
	Position  math3d.Vec4
	Ambient   math3d.Vec4
	Diffuse   math3d.Vec4
	Specular  math3d.Vec4
	ConeAngle float64
}

// DefaultLight returns the scene's light: above the camera looking down -z.
func DefaultLight() Light {
	return Light{
		Position:  math3d.V4(0, 0, DefaultLightZ, 1),
		Ambient:   math3d.V4(0.4, 0.4, 0.4, 1),
		Diffuse:   math3d.V4(1, 1, 1, 1),
		Specular:  math3d.V4(1, 1, 1, 1),
		ConeAngle: DefaultCone,
	}
}

// WidenCone raises the cone cosine by one step, saturating at MaxConeAngle.
func WidenCone(c float64) float64 {
	if c+ConeStep <= MaxConeAngle {
		return c + ConeStep
	}
	return MaxConeAngle
}

// NarrowCone lowers the cone cosine by one step, saturating at MinConeAngle.
func NarrowCone(c float64) float64 {
	if c-ConeStep >= MinConeAngle {
		return c - ConeStep
	}
	return MinConeAngle
}
