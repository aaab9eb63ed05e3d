package models

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/taigrr/mobile/pkg/math3d"
)

// ErrUnsupportedShadingMode is returned for shading modes other than flat
// and Gouraud.
var ErrUnsupportedShadingMode = errors.New("models: unsupported shading mode")

// ShadingMode selects how vertex normals are assigned.
type ShadingMode int

const (
	// ShadingGouraud averages the distinct surface normals of every
	// triangle that shares a vertex position.
	ShadingGouraud ShadingMode = iota
	// ShadingFlat gives every vertex its triangle's surface normal.
	ShadingFlat
)

func (m ShadingMode) String() string {
	switch m {
	case ShadingGouraud:
		return "gouraud"
	case ShadingFlat:
		return "flat"
	default:
		return fmt.Sprintf("ShadingMode(%d)", int(m))
	}
}

// Valid reports whether m is a known shading mode.
func (m ShadingMode) Valid() bool {
	return m == ShadingGouraud || m == ShadingFlat
}

// ParseShadingMode parses "flat" or "gouraud" (case-insensitive).
func ParseShadingMode(s string) (ShadingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gouraud", "smooth":
		return ShadingGouraud, nil
	case "flat":
		return ShadingFlat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedShadingMode, s)
}

// SurfaceNormal returns the unit normal of a triangle using Newell's method.
// Counter-clockwise corners give an outward normal. Degenerate triangles
// yield the zero vector.
func SurfaceNormal(tri [3]math3d.Vec3) math3d.Vec3 {
	return PolygonNormal(tri[:])
}

// PolygonNormal returns the unit Newell normal of a closed polygon loop.
// Loops with non-finite corners are treated as degenerate.
func PolygonNormal(loop []math3d.Vec3) math3d.Vec3 {
	var n math3d.Vec3
	for i, cur := range loop {
		next := loop[(i+1)%len(loop)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	if !finite(n) {
		return math3d.Vec3{}
	}
	return n.Normalize()
}

func finite(v math3d.Vec3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ComputeNormals returns one normal per position of a triangle list.
// Positions past the last complete triangle get zero normals.
func ComputeNormals(positions []math3d.Vec3, mode ShadingMode) ([]math3d.Vec3, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedShadingMode, mode)
	}

	complete := len(positions) - len(positions)%3
	surface := make([]math3d.Vec3, len(positions))
	for i := 0; i < complete; i += 3 {
		n := SurfaceNormal([3]math3d.Vec3{positions[i], positions[i+1], positions[i+2]})
		surface[i], surface[i+1], surface[i+2] = n, n, n
	}

	if mode == ShadingFlat {
		return surface, nil
	}
	return smoothNormals(positions[:complete], surface), nil
}

// smoothNormals groups slots by exact position and gives each group the
// normalized sum of its distinct surface normals, in first-seen order.
// Positions that never compare equal (NaN) form singleton groups.
func smoothNormals(positions, surface []math3d.Vec3) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(surface))

	index := make(map[math3d.Vec3]int, len(positions)/3)
	var groups [][]int
	for slot, p := range positions {
		g, ok := index[p]
		if !ok {
			g = len(groups)
			index[p] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], slot)
	}

	var distinct []math3d.Vec3
	for _, slots := range groups {
		distinct = distinct[:0]
		for _, s := range slots {
			if !slices.Contains(distinct, surface[s]) {
				distinct = append(distinct, surface[s])
			}
		}

		var n math3d.Vec3
		switch len(distinct) {
		case 0:
		case 1:
			n = distinct[0]
		default:
			var sum math3d.Vec3
			for _, d := range distinct {
				sum = sum.Add(d)
			}
			n = sum.Normalize()
		}
		for _, s := range slots {
			out[s] = n
		}
	}
	return out
}
