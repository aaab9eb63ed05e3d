package lighting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taigrr/mobile/pkg/math3d"
)

// Material holds Phong reflectance coefficients.
type Material struct {
	Name      string
	Ambient   math3d.Vec4
	Diffuse   math3d.Vec4
	Specular  math3d.Vec4
	Shininess float64
}

// Products are the light/material Hadamard products fed to Shade.
type Products struct {
	Ambient   math3d.Vec4
	Diffuse   math3d.Vec4
	Specular  math3d.Vec4
	Shininess float64
}

// ComputeProducts multiplies each light term by the matching material term.
func ComputeProducts(light Light, m Material) Products {
	return Products{
		Ambient:   light.Ambient.Mul(m.Ambient),
		Diffuse:   light.Diffuse.Mul(m.Diffuse),
		Specular:  light.Specular.Mul(m.Specular),
		Shininess: m.Shininess,
	}
}

// Material presets.
var (
	Emerald = Material{
		Name:      "emerald",
		Ambient:   math3d.V4(0.0215, 0.1745, 0.0215, 0.55),
		Diffuse:   math3d.V4(0.07568, 0.61424, 0.07568, 0.55),
		Specular:  math3d.V4(0.633, 0.727811, 0.633, 0.55),
		Shininess: 76.8,
	}
	Ruby = Material{
		Name:      "ruby",
		Ambient:   math3d.V4(0.1745, 0.01175, 0.01175, 0.55),
		Diffuse:   math3d.V4(0.61424, 0.04136, 0.04136, 0.55),
		Specular:  math3d.V4(0.727811, 0.626959, 0.626959, 0.55),
		Shininess: 76.8,
	}
	Turquoise = Material{
		Name:      "turquoise",
		Ambient:   math3d.V4(0.1, 0.18725, 0.1745, 0.8),
		Diffuse:   math3d.V4(0.396, 0.74151, 0.69102, 0.8),
		Specular:  math3d.V4(0.297254, 0.30829, 0.306678, 0.8),
		Shininess: 12.8,
	}
	Gold = Material{
		Name:      "gold",
		Ambient:   math3d.V4(0.24725, 0.1995, 0.0745, 1),
		Diffuse:   math3d.V4(0.75164, 0.60648, 0.22648, 1),
		Specular:  math3d.V4(0.628281, 0.555802, 0.366065, 1),
		Shininess: 51.2,
	}
	Obsidian = Material{
		Name:      "obsidian",
		Ambient:   math3d.V4(0.05375, 0.05, 0.06625, 0.82),
		Diffuse:   math3d.V4(0.18275, 0.17, 0.22525, 0.82),
		Specular:  math3d.V4(0.332741, 0.328634, 0.346435, 0.82),
		Shininess: 38.4,
	}
	BluePlastic = Material{
		Name:      "blue plastic",
		Ambient:   math3d.V4(0, 0, 0, 1),
		Diffuse:   math3d.V4(0, 0, 0.5, 1),
		Specular:  math3d.V4(0.6, 0.6, 0.7, 1),
		Shininess: 32,
	}
	MagentaRubber = Material{
		Name:      "magenta rubber",
		Ambient:   math3d.V4(0.05, 0, 0.05, 1),
		Diffuse:   math3d.V4(0.5, 0.3, 0.5, 1),
		Specular:  math3d.V4(0.7, 0.04, 0.7, 1),
		Shininess: 10,
	}
)

var presets = map[string]Material{}

func init() {
	for _, m := range []Material{Emerald, Ruby, Turquoise, Gold, Obsidian, BluePlastic, MagentaRubber} {
		presets[presetKey(m.Name)] = m
	}
}

func presetKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "")
}

// Preset looks up a material by name, ignoring case and spaces.
func Preset(name string) (Material, error) {
	m, ok := presets[presetKey(name)]
	if !ok {
		return Material{}, fmt.Errorf("lighting: unknown material %q (known: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return m, nil
}

// PresetNames returns the preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for _, m := range presets {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}
