// Package scene describes the hanging mobile as a declarative hierarchy and
// composes it into draw calls each frame.
package scene

import (
	"math"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/math3d"
	"github.com/taigrr/mobile/pkg/models"
)

// ThetaStep is the rotation added per frame, in degrees.
const ThetaStep = 0.2

// DefaultEye is where the camera starts.
var DefaultEye = math3d.V3(0, 0, 4)

// RenderContext is the mutable per-session state read by the composer.
// The front-end owns it and changes it only between frames.
type RenderContext struct {
	Light lighting.Light
	Eye   math3d.Vec3
	At    math3d.Vec3
	Up    math3d.Vec3

	Theta   float64 // degrees, in [0, 360)
	Shading models.ShadingMode

	Shadows      bool
	Textures     bool
	Reflection   bool
	Refraction   bool
	Experimental bool
}

// NewRenderContext returns the initial state: Gouraud shading with shadows
// and textures on.
func NewRenderContext() *RenderContext {
	return &RenderContext{
		Light:    lighting.DefaultLight(),
		Eye:      DefaultEye,
		At:       math3d.Zero3(),
		Up:       math3d.Up(),
		Shading:  models.ShadingGouraud,
		Shadows:  true,
		Textures: true,
	}
}

// Tick advances the rotation clock by one frame.
func (c *RenderContext) Tick() {
	c.Theta = math.Mod(c.Theta+ThetaStep, 360)
}

// View returns the camera matrix for the current eye.
func (c *RenderContext) View() math3d.Mat4 {
	return math3d.LookAt(c.Eye, c.At, c.Up)
}
