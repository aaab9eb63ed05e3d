package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/models"
)

// ErrUnknownEvent is returned by Apply for events it does not understand.
var ErrUnknownEvent = errors.New("scene: unknown input event")

// Limits for experimental camera and light movement.
const (
	EyeStep       = 0.05
	EyeMinX       = -4.0
	EyeMaxX       = 4.0
	EyeMinY       = -0.75
	EyeMaxY       = 4.0
	DragTolerance = 4.0
	LightStep     = 0.1
	LightLimit    = 15.0
)

// InputEvent is one user action. The concrete types below are the only
// implementations.
type InputEvent interface {
	isInputEvent()
}

type (
	ToggleShadows      struct{}
	ToggleTextures     struct{}
	ToggleReflection   struct{}
	ToggleRefraction   struct{}
	WidenCone          struct{}
	NarrowCone         struct{}
	ToggleExperimental struct{}

	// SetShadingMode switches between flat and Gouraud normals.
	SetShadingMode struct {
		Mode models.ShadingMode
	}

	// NudgeLight moves the light along X or Y. Sign picks the direction.
	NudgeLight struct {
		Axis models.Axis
		Sign float64
	}

	// PointerDrag is pointer movement while the button is held, in pixels
	// or cells. Positive DY is downward.
	PointerDrag struct {
		DX, DY float64
	}
)

func (ToggleShadows) isInputEvent()      {}
func (ToggleTextures) isInputEvent()     {}
func (ToggleReflection) isInputEvent()   {}
func (ToggleRefraction) isInputEvent()   {}
func (WidenCone) isInputEvent()          {}
func (NarrowCone) isInputEvent()         {}
func (ToggleExperimental) isInputEvent() {}
func (SetShadingMode) isInputEvent()     {}
func (NudgeLight) isInputEvent()         {}
func (PointerDrag) isInputEvent()        {}

// Apply updates the context for one event. Movement saturates at its
// limits; only malformed events return an error.
func (c *RenderContext) Apply(ev InputEvent) error {
	switch e := ev.(type) {
	case ToggleShadows:
		c.Shadows = !c.Shadows
	case ToggleTextures:
		c.Textures = !c.Textures
	case ToggleReflection:
		c.Reflection = !c.Reflection
	case ToggleRefraction:
		c.Refraction = !c.Refraction
	case WidenCone:
		c.Light.ConeAngle = lighting.WidenCone(c.Light.ConeAngle)
	case NarrowCone:
		c.Light.ConeAngle = lighting.NarrowCone(c.Light.ConeAngle)
	case SetShadingMode:
		if !e.Mode.Valid() {
			return fmt.Errorf("%w: %v", models.ErrUnsupportedShadingMode, e.Mode)
		}
		c.Shading = e.Mode
	case ToggleExperimental:
		c.Experimental = !c.Experimental
		c.Light.Position.X, c.Light.Position.Y = 0, 0
		c.Eye.X, c.Eye.Y = 0, 0
	case NudgeLight:
		return c.nudgeLight(e)
	case PointerDrag:
		c.drag(e)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
	}
	return nil
}

func (c *RenderContext) nudgeLight(e NudgeLight) error {
	if e.Axis != models.AxisX && e.Axis != models.AxisY {
		return fmt.Errorf("%w: light nudge along %v", ErrUnknownEvent, e.Axis)
	}
	if !c.Experimental || e.Sign == 0 {
		return nil
	}
	step := math.Copysign(LightStep, e.Sign)
	if e.Axis == models.AxisX {
		c.Light.Position.X = clamp(c.Light.Position.X+step, -LightLimit, LightLimit)
	} else {
		c.Light.Position.Y = clamp(c.Light.Position.Y+step, -LightLimit, LightLimit)
	}
	return nil
}

// drag pans the eye. Mostly-horizontal drags move X opposite to the
// pointer; mostly-vertical drags move Y with it.
func (c *RenderContext) drag(e PointerDrag) {
	if !c.Experimental {
		return
	}
	switch {
	case e.DX > 0 && math.Abs(e.DY) <= DragTolerance:
		c.Eye.X = max(c.Eye.X-EyeStep, EyeMinX)
	case e.DX < 0 && math.Abs(e.DY) <= DragTolerance:
		c.Eye.X = min(c.Eye.X+EyeStep, EyeMaxX)
	case math.Abs(e.DX) <= DragTolerance && e.DY > 0:
		c.Eye.Y = min(c.Eye.Y+EyeStep, EyeMaxY)
	case math.Abs(e.DX) <= DragTolerance && e.DY < 0:
		c.Eye.Y = max(c.Eye.Y-EyeStep, EyeMinY)
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
