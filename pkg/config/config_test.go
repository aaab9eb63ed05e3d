package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/math3d"
	"github.com/taigrr/mobile/pkg/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 60, cfg.Render.FPS)
	assert.Equal(t, 45.0, cfg.Render.FOV)
	assert.Equal(t, 0.01, cfg.Render.Near)
	assert.Equal(t, 100.0, cfg.Render.Far)
	assert.True(t, cfg.Scene.Shadows)
	assert.True(t, cfg.Scene.Textures)
	assert.False(t, cfg.Scene.Reflection)
	assert.False(t, cfg.Scene.Refraction)
	assert.False(t, cfg.Scene.Experimental)

	mode, err := cfg.ShadingMode()
	require.NoError(t, err)
	assert.Equal(t, models.ShadingGouraud, mode)

	assert.Equal(t, lighting.DefaultLight(), cfg.LightSource())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mobile.yaml")
	yaml := `
render:
  fps: 30
  background: "10, 20, 30"
scene:
  shading: flat
  shadows: false
light:
  position: [1, 2, 10, 1]
  cone: 0.999
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Render.FPS)
	assert.Equal(t, 45.0, cfg.Render.FOV, "unset fields keep defaults")
	assert.False(t, cfg.Scene.Shadows)
	assert.True(t, cfg.Scene.Textures)

	bg, err := cfg.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, uint8(20), bg.G)

	mode, err := cfg.ShadingMode()
	require.NoError(t, err)
	assert.Equal(t, models.ShadingFlat, mode)

	l := cfg.LightSource()
	assert.Equal(t, math3d.V4(1, 2, 10, 1), l.Position)
	assert.Equal(t, 0.999, l.ConeAngle)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("render: [oops"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("scene:\n  shading: phong\n"), 0o644))
	_, err = LoadFile(invalid)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Mesh = "teapot.ply"
	cfg.Light.Cone = 0.9945
	cfg.Textures.CubeMap = []string{"px.png", "nx.png", "py.png", "ny.png", "pz.png", "nz.png"}
	cfg.Scene.Materials = map[string]string{"cube C3": "ruby"}
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.Render.FPS = 0 }},
		{"background", func(c *Config) { c.Render.Background = "1,2" }},
		{"background range", func(c *Config) { c.Render.Background = "1,2,300" }},
		{"fov", func(c *Config) { c.Render.FOV = 180 }},
		{"near far", func(c *Config) { c.Render.Near, c.Render.Far = 1, 1 }},
		{"refraction", func(c *Config) { c.Render.Refraction = 0 }},
		{"texture size", func(c *Config) { c.Render.TextureSize = 1 }},
		{"shading", func(c *Config) { c.Scene.Shading = "phong" }},
		{"cone low", func(c *Config) { c.Light.Cone = 0.5 }},
		{"cone high", func(c *Config) { c.Light.Cone = 1.1 }},
		{"light on plane", func(c *Config) { c.Light.Position = [4]float64{0, 0, 0, 1} }},
		{"directional light on plane", func(c *Config) {
			c.Scene.Shadows = false
			c.Light.Position = [4]float64{1, 1, 0, 0}
		}},
		{"unknown material", func(c *Config) { c.Scene.Materials = map[string]string{"sphere A1": "chrome"} }},
		{"cube map faces", func(c *Config) { c.Textures.CubeMap = []string{"a"} }},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateMaterials(t *testing.T) {
	cfg := Default()
	cfg.Scene.Materials = map[string]string{"sphere A1": "Blue Plastic", "cube C1": "gold"}
	assert.NoError(t, cfg.Validate())

	cfg.Scene.Materials["sphere B2"] = "chrome"
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "sphere B2")
	assert.Contains(t, err.Error(), "emerald", "lists the known presets")
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Render.FPS = -1
	cfg.Scene.Shading = "wire"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render.fps")
	assert.Contains(t, err.Error(), "scene.shading")
}

func TestParseRGB(t *testing.T) {
	c, err := ParseRGB("30,30,40")
	require.NoError(t, err)
	assert.Equal(t, uint8(40), c.B)
	assert.Equal(t, uint8(255), c.A)

	_, err = ParseRGB("red")
	assert.Error(t, err)
}
