// Package models provides triangle-list meshes, procedural generators,
// normal computation and mesh ingestion for the scene.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/mobile/pkg/math3d"
)

// ErrInvalidMesh is returned when a mesh is not a whole number of triangles
// or its attribute lists do not match its positions.
var ErrInvalidMesh = errors.New("models: invalid mesh")

// Mesh is a flat triangle list. Every run of three positions is one
// triangle; vertices shared between triangles are duplicated.
//
// A Mesh is treated as an immutable snapshot once it is handed to a Library.
// Operations that change geometry or normals return a new Mesh.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Normals   []math3d.Vec3 // empty, or one per position
	UVs       []math3d.Vec2 // empty, or one per position

	// Bounding box (calculated on construction)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates a mesh from a triangle list and computes its bounds.
func NewMesh(name string, positions []math3d.Vec3) *Mesh {
	m := &Mesh{
		Name:      name,
		Positions: positions,
	}
	m.CalculateBounds()
	return m
}

// Validate checks that the mesh is a whole number of triangles and that
// its normal and UV lists line up with its positions.
func (m *Mesh) Validate() error {
	if len(m.Positions) == 0 || len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d positions is not a whole number of triangles", ErrInvalidMesh, len(m.Positions))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d normals for %d positions", ErrInvalidMesh, len(m.Normals), len(m.Positions))
	}
	if len(m.UVs) != 0 && len(m.UVs) != len(m.Positions) {
		return fmt.Errorf("%w: %d uvs for %d positions", ErrInvalidMesh, len(m.UVs), len(m.Positions))
	}
	return nil
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Positions) == 0 {
		return
	}

	m.BoundsMin = m.Positions[0]
	m.BoundsMax = m.Positions[0]

	for _, p := range m.Positions[1:] {
		m.BoundsMin = m.BoundsMin.Min(p)
		m.BoundsMax = m.BoundsMax.Max(p)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Positions) / 3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// WithNormals returns a copy of the mesh whose normals are computed for the
// given shading mode. Positions and UVs are shared with the receiver.
func (m *Mesh) WithNormals(mode ShadingMode) (*Mesh, error) {
	normals, err := ComputeNormals(m.Positions, mode)
	if err != nil {
		return nil, err
	}
	out := *m
	out.Normals = normals
	return &out, nil
}

// Transformed returns a copy of the mesh with every position transformed by
// mat. Normals are dropped since they must be recomputed for the new shape.
func (m *Mesh) Transformed(mat math3d.Mat4) *Mesh {
	positions := make([]math3d.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		positions[i] = mat.MulVec3(p)
	}
	out := NewMesh(m.Name, positions)
	if len(m.UVs) > 0 {
		out.UVs = append([]math3d.Vec2(nil), m.UVs...)
	}
	return out
}
