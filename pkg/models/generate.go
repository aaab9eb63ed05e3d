package models

import (
	"math"

	"github.com/taigrr/mobile/pkg/math3d"
)

// Axis names a coordinate axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Quad corner lists for the six faces of a box, each wound counter-clockwise
// when seen from outside.
var boxFaces = [6][4]int{
	{1, 0, 3, 2}, // front  (+z)
	{2, 3, 7, 6}, // right  (+x)
	{3, 0, 4, 7}, // bottom (-y)
	{6, 5, 1, 2}, // top    (+y)
	{4, 5, 6, 7}, // back   (-z)
	{5, 4, 0, 1}, // left   (-x)
}

// planeFace is the front face of a zero-depth box.
var planeFace = [4]int{1, 0, 3, 2}

// boxCorner returns corner i of a width x height x depth box centred on the
// origin. Corners 0-3 lie on the +z face, 4-7 on the -z face.
func boxCorner(i int, width, height, depth float64) math3d.Vec3 {
	hw, hh, hd := width/2, height/2, depth/2
	switch i {
	case 0:
		return math3d.V3(-hw, -hh, hd)
	case 1:
		return math3d.V3(-hw, hh, hd)
	case 2:
		return math3d.V3(hw, hh, hd)
	case 3:
		return math3d.V3(hw, -hh, hd)
	case 4:
		return math3d.V3(-hw, -hh, -hd)
	case 5:
		return math3d.V3(-hw, hh, -hd)
	case 6:
		return math3d.V3(hw, hh, -hd)
	default:
		return math3d.V3(hw, -hh, -hd)
	}
}

// GenerateQuad emits two triangles [a,b,c] and [a,c,d] over the given box
// corners. Extents are not validated.
func GenerateQuad(corners [4]int, width, height, depth float64) []math3d.Vec3 {
	a := boxCorner(corners[0], width, height, depth)
	b := boxCorner(corners[1], width, height, depth)
	c := boxCorner(corners[2], width, height, depth)
	d := boxCorner(corners[3], width, height, depth)
	return []math3d.Vec3{a, b, c, a, c, d}
}

// GenerateBox returns the 36-vertex triangle list of a cube with the given
// edge length, centred on the origin.
func GenerateBox(edge float64) []math3d.Vec3 {
	positions := make([]math3d.Vec3, 0, 36)
	for _, face := range boxFaces {
		positions = append(positions, GenerateQuad(face, edge, edge, edge)...)
	}
	return positions
}

// GeneratePlane returns a width x height rectangle in the z = 0 plane facing
// +z, with texture coordinates equal to each vertex's x and y. Samplers are
// expected to wrap the coordinates.
func GeneratePlane(width, height float64) ([]math3d.Vec3, []math3d.Vec2) {
	positions := GenerateQuad(planeFace, width, height, 0)
	uvs := make([]math3d.Vec2, len(positions))
	for i, p := range positions {
		uvs[i] = math3d.V2(p.X, p.Y)
	}
	return positions, uvs
}

// GenerateLine returns the two endpoints of a segment of the given length
// along axis, centred on the origin.
func GenerateLine(axis Axis, length float64) []math3d.Vec3 {
	var dir math3d.Vec3
	switch axis {
	case AxisX:
		dir = math3d.V3(1, 0, 0)
	case AxisZ:
		dir = math3d.V3(0, 0, 1)
	default:
		dir = math3d.V3(0, 1, 0)
	}
	half := dir.Scale(length / 2)
	return []math3d.Vec3{half.Negate(), half}
}

// GenerateSphere returns a UV-sphere triangle list. Vertices on the seam
// and at the poles are bit-identical so smooth normals join across them.
func GenerateSphere(radius float64, segments, rings int) []math3d.Vec3 {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	point := func(ring, seg int) math3d.Vec3 {
		switch ring {
		case 0:
			return math3d.V3(0, radius, 0)
		case rings:
			return math3d.V3(0, -radius, 0)
		}
		seg %= segments
		phi := float64(ring) * math.Pi / float64(rings)
		theta := float64(seg) * 2 * math.Pi / float64(segments)
		sinPhi, cosPhi := math.Sincos(phi)
		sinTheta, cosTheta := math.Sincos(theta)
		return math3d.V3(sinPhi*cosTheta, cosPhi, sinPhi*sinTheta).Scale(radius)
	}

	positions := make([]math3d.Vec3, 0, 6*segments*(rings-1))
	for ring := range rings {
		for seg := range segments {
			cur, curNext := point(ring, seg), point(ring, seg+1)
			below, belowNext := point(ring+1, seg), point(ring+1, seg+1)

			if ring > 0 {
				positions = append(positions, cur, curNext, below)
			}
			if ring < rings-1 {
				positions = append(positions, curNext, belowNext, below)
			}
		}
	}
	return positions
}
