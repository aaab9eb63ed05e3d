package render

import (
	"errors"
	"fmt"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/math3d"
)

// ErrInvalidDrawCall is returned by Submit for malformed draw calls.
var ErrInvalidDrawCall = errors.New("render: invalid draw call")

// Primitive selects how positions are assembled.
type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveLines
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangles:
		return "triangles"
	case PrimitiveLines:
		return "lines"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// Texture units.
const (
	UnitGrass   = 0
	UnitStone   = 1
	UnitCubeMap = 2
)

// DrawCall is one batch of geometry with everything needed to shade it.
// Positions and normals are in model space; ModelView takes them to eye
// space, where the light position is also expressed.
type DrawCall struct {
	Label     string
	Primitive Primitive
	Positions []math3d.Vec3
	Normals   []math3d.Vec3 // one per position when Lighting is set
	Colors    []math3d.Vec4 // one per position, or a single color for all
	UVs       []math3d.Vec2 // one per position when Texture is set
	ModelView math3d.Mat4

	Lighting    bool
	Texture     bool
	Reflect     bool
	Refract     bool
	Cull        bool
	TextureUnit int

	Products      lighting.Products
	LightPosition math3d.Vec4
	ConeAngle     float64
}

// Validate checks that attribute lists line up with the primitive.
func (dc *DrawCall) Validate() error {
	n := len(dc.Positions)
	switch dc.Primitive {
	case PrimitiveTriangles:
		if n%3 != 0 {
			return fmt.Errorf("%w: %s: %d positions is not a whole number of triangles", ErrInvalidDrawCall, dc.Label, n)
		}
	case PrimitiveLines:
		if n%2 != 0 {
			return fmt.Errorf("%w: %s: %d positions is not a whole number of lines", ErrInvalidDrawCall, dc.Label, n)
		}
	default:
		return fmt.Errorf("%w: %s: unknown primitive %v", ErrInvalidDrawCall, dc.Label, dc.Primitive)
	}
	if dc.Lighting && len(dc.Normals) != n {
		return fmt.Errorf("%w: %s: lit call has %d normals for %d positions", ErrInvalidDrawCall, dc.Label, len(dc.Normals), n)
	}
	if !dc.Lighting && len(dc.Colors) != 1 && len(dc.Colors) != n {
		return fmt.Errorf("%w: %s: %d colors for %d positions", ErrInvalidDrawCall, dc.Label, len(dc.Colors), n)
	}
	if dc.Texture && len(dc.UVs) != n {
		return fmt.Errorf("%w: %s: textured call has %d uvs for %d positions", ErrInvalidDrawCall, dc.Label, len(dc.UVs), n)
	}
	return nil
}

// color returns the unlit color of vertex i.
func (dc *DrawCall) color(i int) math3d.Vec4 {
	if len(dc.Colors) == 1 {
		return dc.Colors[0]
	}
	return dc.Colors[i]
}
