// Package config handles loading and validating the viewer configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/logger"
	"github.com/taigrr/mobile/pkg/math3d"
	"github.com/taigrr/mobile/pkg/models"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid")

// Config holds all viewer settings.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Scene    SceneConfig    `yaml:"scene"`
	Light    LightConfig    `yaml:"light"`
	Textures TexturesConfig `yaml:"textures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RenderConfig holds frame loop and projection settings.
type RenderConfig struct {
	FPS         int     `yaml:"fps"`
	Background  string  `yaml:"background"` // "R,G,B"
	FOV         float64 `yaml:"fov"`        // vertical, degrees
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Refraction  float64 `yaml:"refraction"`
	TextureSize int     `yaml:"texture_size"`
}

// SceneConfig holds the initial feature toggles.
type SceneConfig struct {
	Shading      string `yaml:"shading"`
	Shadows      bool   `yaml:"shadows"`
	Textures     bool   `yaml:"textures"`
	Reflection   bool   `yaml:"reflection"`
	Refraction   bool   `yaml:"refraction"`
	Experimental bool   `yaml:"experimental"`
	Mesh         string `yaml:"mesh"` // .ply or .glb for the sphere slot

	// Materials overrides the preset worn by a named node, e.g.
	// "sphere A1": gold.
	Materials map[string]string `yaml:"materials,omitempty"`
}

// LightConfig holds the spotlight.
type LightConfig struct {
	Position [4]float64 `yaml:"position"`
	Ambient  float64    `yaml:"ambient"`
	Cone     float64    `yaml:"cone"`
}

// TexturesConfig holds optional image paths. Empty paths use the built-in
// procedural textures.
type TexturesConfig struct {
	Grass   string   `yaml:"grass"`
	Stone   string   `yaml:"stone"`
	CubeMap []string `yaml:"cube_map"` // +X, -X, +Y, -Y, +Z, -Z
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the classic scene.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			FPS:         60,
			Background:  "0,0,0",
			FOV:         45,
			Near:        0.01,
			Far:         100,
			Refraction:  0.95,
			TextureSize: 64,
		},
		Scene: SceneConfig{
			Shading:  models.ShadingGouraud.String(),
			Shadows:  true,
			Textures: true,
		},
		Light: LightConfig{
			Position: [4]float64{0, 0, lighting.DefaultLightZ, 1},
			Ambient:  0.4,
			Cone:     lighting.DefaultCone,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Render.FPS <= 0 {
		bad("render.fps must be positive, got %d", c.Render.FPS)
	}
	if _, err := ParseRGB(c.Render.Background); err != nil {
		bad("render.background: %v", err)
	}
	if c.Render.FOV <= 0 || c.Render.FOV >= 180 {
		bad("render.fov must be in (0, 180), got %g", c.Render.FOV)
	}
	if c.Render.Near <= 0 || c.Render.Far <= c.Render.Near {
		bad("render.near/far must satisfy 0 < near < far, got %g/%g", c.Render.Near, c.Render.Far)
	}
	if c.Render.Refraction <= 0 {
		bad("render.refraction must be positive, got %g", c.Render.Refraction)
	}
	if c.Render.TextureSize < 2 {
		bad("render.texture_size must be at least 2, got %d", c.Render.TextureSize)
	}
	if _, err := models.ParseShadingMode(c.Scene.Shading); err != nil {
		bad("scene.shading: %v", err)
	}
	if c.Light.Cone < lighting.MinConeAngle || c.Light.Cone > lighting.MaxConeAngle {
		bad("light.cone must be in [%g, %g], got %g", lighting.MinConeAngle, lighting.MaxConeAngle, c.Light.Cone)
	}
	// Shadows can be switched on at runtime, so z is checked even when they
	// start disabled or the light is directional.
	if c.Light.Position[2] == 0 {
		bad("light.position z must be non-zero for shadow projection")
	}
	for node, name := range c.Scene.Materials {
		if _, err := lighting.Preset(name); err != nil {
			bad("scene.materials[%q]: %v", node, err)
		}
	}
	if n := len(c.Textures.CubeMap); n != 0 && n != 6 {
		bad("textures.cube_map needs 6 faces, got %d", n)
	}
	if !logger.ValidLevel(c.Logging.Level) {
		bad("logging.level %q", c.Logging.Level)
	}
	return errors.Join(errs...)
}

// ShadingMode returns the configured shading mode.
func (c *Config) ShadingMode() (models.ShadingMode, error) {
	return models.ParseShadingMode(c.Scene.Shading)
}

// LightSource returns the configured spotlight.
func (c *Config) LightSource() lighting.Light {
	l := lighting.DefaultLight()
	p := c.Light.Position
	l.Position = math3d.V4(p[0], p[1], p[2], p[3])
	l.Ambient = math3d.V4(c.Light.Ambient, c.Light.Ambient, c.Light.Ambient, 1)
	l.ConeAngle = c.Light.Cone
	return l
}

// BackgroundColor parses render.background.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	return ParseRGB(c.Render.Background)
}

// ParseRGB parses "R,G,B" with components in 0-255.
func ParseRGB(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("want R,G,B, got %q", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
