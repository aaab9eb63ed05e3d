package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/math3d"
	"github.com/taigrr/mobile/pkg/models"
)

const eps = 1e-9

type bogusEvent struct{}

func (bogusEvent) isInputEvent() {}

func TestNewRenderContext(t *testing.T) {
	ctx := NewRenderContext()
	assert.Equal(t, math3d.V3(0, 0, 4), ctx.Eye)
	assert.Equal(t, lighting.DefaultLight(), ctx.Light)
	assert.Equal(t, models.ShadingGouraud, ctx.Shading)
	assert.True(t, ctx.Shadows)
	assert.True(t, ctx.Textures)
	assert.False(t, ctx.Reflection)
	assert.False(t, ctx.Refraction)
	assert.False(t, ctx.Experimental)
	assert.Zero(t, ctx.Theta)
}

func TestTickWraps(t *testing.T) {
	ctx := NewRenderContext()
	ctx.Tick()
	assert.InDelta(t, 0.2, ctx.Theta, eps)

	ctx.Theta = 359.9
	ctx.Tick()
	assert.InDelta(t, 0.1, ctx.Theta, 1e-6)
	assert.Less(t, ctx.Theta, 360.0)
}

func TestApplyToggles(t *testing.T) {
	ctx := NewRenderContext()

	require.NoError(t, ctx.Apply(ToggleShadows{}))
	require.NoError(t, ctx.Apply(ToggleTextures{}))
	require.NoError(t, ctx.Apply(ToggleReflection{}))
	require.NoError(t, ctx.Apply(ToggleRefraction{}))

	assert.False(t, ctx.Shadows)
	assert.False(t, ctx.Textures)
	assert.True(t, ctx.Reflection)
	assert.True(t, ctx.Refraction)

	require.NoError(t, ctx.Apply(ToggleShadows{}))
	assert.True(t, ctx.Shadows)
}

func TestApplyConeSaturates(t *testing.T) {
	ctx := NewRenderContext()

	for range 200 {
		require.NoError(t, ctx.Apply(WidenCone{}))
	}
	assert.Equal(t, lighting.MaxConeAngle, ctx.Light.ConeAngle)

	for range 200 {
		require.NoError(t, ctx.Apply(NarrowCone{}))
	}
	assert.Equal(t, lighting.MinConeAngle, ctx.Light.ConeAngle)
}

func TestApplyShadingMode(t *testing.T) {
	ctx := NewRenderContext()

	require.NoError(t, ctx.Apply(SetShadingMode{Mode: models.ShadingFlat}))
	assert.Equal(t, models.ShadingFlat, ctx.Shading)

	err := ctx.Apply(SetShadingMode{Mode: models.ShadingMode(7)})
	assert.ErrorIs(t, err, models.ErrUnsupportedShadingMode)
	assert.Equal(t, models.ShadingFlat, ctx.Shading, "rejected mode leaves state alone")
}

func TestToggleExperimentalResetsWithoutNudging(t *testing.T) {
	ctx := NewRenderContext()
	ctx.Light.Position.X, ctx.Light.Position.Y = 3, -2
	ctx.Eye.X, ctx.Eye.Y = 1.5, 2

	require.NoError(t, ctx.Apply(ToggleExperimental{}))

	assert.True(t, ctx.Experimental)
	assert.Zero(t, ctx.Light.Position.X)
	assert.Zero(t, ctx.Light.Position.Y)
	assert.Equal(t, lighting.DefaultLightZ, ctx.Light.Position.Z)
	assert.Zero(t, ctx.Eye.X)
	assert.Zero(t, ctx.Eye.Y)
	assert.Equal(t, 4.0, ctx.Eye.Z)
}

func TestNudgeLight(t *testing.T) {
	ctx := NewRenderContext()

	require.NoError(t, ctx.Apply(NudgeLight{Axis: models.AxisX, Sign: 1}))
	assert.Zero(t, ctx.Light.Position.X, "ignored outside experimental mode")

	require.NoError(t, ctx.Apply(ToggleExperimental{}))
	require.NoError(t, ctx.Apply(NudgeLight{Axis: models.AxisX, Sign: 1}))
	require.NoError(t, ctx.Apply(NudgeLight{Axis: models.AxisY, Sign: -1}))
	assert.InDelta(t, 0.1, ctx.Light.Position.X, eps)
	assert.InDelta(t, -0.1, ctx.Light.Position.Y, eps)

	for range 200 {
		require.NoError(t, ctx.Apply(NudgeLight{Axis: models.AxisX, Sign: 1}))
		require.NoError(t, ctx.Apply(NudgeLight{Axis: models.AxisY, Sign: -1}))
	}
	assert.Equal(t, LightLimit, ctx.Light.Position.X)
	assert.Equal(t, -LightLimit, ctx.Light.Position.Y)

	err := ctx.Apply(NudgeLight{Axis: models.AxisZ, Sign: 1})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestPointerDrag(t *testing.T) {
	tests := []struct {
		name   string
		drag   PointerDrag
		wantX  float64
		wantY  float64
		repeat int
	}{
		{"right pans left", PointerDrag{DX: 3, DY: 1}, -0.05, 0, 1},
		{"left pans right", PointerDrag{DX: -3, DY: -4}, 0.05, 0, 1},
		{"down raises eye", PointerDrag{DX: 2, DY: 10}, 0, 0.05, 1},
		{"up lowers eye", PointerDrag{DX: 0, DY: -6}, 0, -0.05, 1},
		{"diagonal ignored", PointerDrag{DX: 10, DY: 10}, 0, 0, 1},
		{"still ignored", PointerDrag{}, 0, 0, 1},
		{"x clamps low", PointerDrag{DX: 1}, EyeMinX, 0, 200},
		{"x clamps high", PointerDrag{DX: -1}, EyeMaxX, 0, 200},
		{"y clamps high", PointerDrag{DY: 8}, 0, EyeMaxY, 200},
		{"y clamps low", PointerDrag{DY: -8}, 0, EyeMinY, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewRenderContext()
			require.NoError(t, ctx.Apply(ToggleExperimental{}))
			for range tt.repeat {
				require.NoError(t, ctx.Apply(tt.drag))
			}
			assert.InDelta(t, tt.wantX, ctx.Eye.X, 1e-6)
			assert.InDelta(t, tt.wantY, ctx.Eye.Y, 1e-6)
		})
	}
}

func TestPointerDragNeedsExperimental(t *testing.T) {
	ctx := NewRenderContext()
	require.NoError(t, ctx.Apply(PointerDrag{DX: 5}))
	assert.Equal(t, DefaultEye, ctx.Eye)
}

func TestApplyUnknownEvent(t *testing.T) {
	ctx := NewRenderContext()
	assert.ErrorIs(t, ctx.Apply(bogusEvent{}), ErrUnknownEvent)
	assert.ErrorIs(t, ctx.Apply(nil), ErrUnknownEvent)
}
