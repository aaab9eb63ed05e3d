package models

import (
	"fmt"
	"sync"
)

// Shape identifies a cached primitive.
type Shape int

const (
	ShapeBox Shape = iota
	ShapePlane
	ShapeSphere
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	case ShapeSphere:
		return "sphere"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Default sphere tessellation.
const (
	SphereRadius   = 0.25
	SphereSegments = 24
	SphereRings    = 16
)

// Key identifies one cached snapshot.
type Key struct {
	Shape  Shape
	Width  float64
	Height float64
	Mode   ShadingMode
}

// Library caches primitive meshes with normals for a shading mode. Returned
// meshes are immutable snapshots shared between callers; a shading-mode
// change or a replaced sphere produces new snapshots and never edits old ones.
type Library struct {
	mu      sync.Mutex
	mode    ShadingMode
	entries map[Key]*Mesh
	sphere  *Mesh // source geometry for the sphere slot
}

// NewLibrary creates a library computing normals for mode.
func NewLibrary(mode ShadingMode) (*Library, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedShadingMode, mode)
	}
	return &Library{
		mode:    mode,
		entries: make(map[Key]*Mesh),
		sphere:  NewMesh("sphere", GenerateSphere(SphereRadius, SphereSegments, SphereRings)),
	}, nil
}

// Mode returns the current shading mode.
func (l *Library) Mode() ShadingMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// SetShadingMode switches the shading mode and recomputes normals for every
// shape cached under the previous mode.
func (l *Library) SetShadingMode(mode ShadingMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedShadingMode, mode)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if mode == l.mode {
		return nil
	}
	prev := l.mode
	l.mode = mode

	for key := range l.entries {
		if key.Mode != prev {
			continue
		}
		key.Mode = mode
		if _, ok := l.entries[key]; ok {
			continue
		}
		if _, err := l.build(key); err != nil {
			return err
		}
	}
	return nil
}

// Box returns a cube with the given edge length.
func (l *Library) Box(edge float64) (*Mesh, error) {
	return l.get(Key{Shape: ShapeBox, Width: edge, Height: edge})
}

// Plane returns a textured width x height rectangle.
func (l *Library) Plane(width, height float64) (*Mesh, error) {
	return l.get(Key{Shape: ShapePlane, Width: width, Height: height})
}

// Sphere returns the mesh in the sphere slot: the imported mesh if one was
// installed, otherwise the generated sphere.
func (l *Library) Sphere() (*Mesh, error) {
	return l.get(Key{Shape: ShapeSphere})
}

// ReplaceMesh installs m in the sphere slot. Normals are computed for the
// current mode before the swap; on error the previous mesh stays in place.
func (l *Library) ReplaceMesh(m *Mesh) error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidMesh)
	}
	src := &Mesh{Name: m.Name, Positions: m.Positions, BoundsMin: m.BoundsMin, BoundsMax: m.BoundsMax}
	if err := src.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	shaded, err := src.WithNormals(l.mode)
	if err != nil {
		return err
	}

	for key := range l.entries {
		if key.Shape == ShapeSphere {
			delete(l.entries, key)
		}
	}
	l.sphere = src
	l.entries[Key{Shape: ShapeSphere, Mode: l.mode}] = shaded
	return nil
}

// Len returns the number of cached snapshots.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Library) get(key Key) (*Mesh, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key.Mode = l.mode
	if m, ok := l.entries[key]; ok {
		return m, nil
	}
	return l.build(key)
}

// build generates and caches the snapshot for key. Callers hold l.mu.
func (l *Library) build(key Key) (*Mesh, error) {
	var src *Mesh
	switch key.Shape {
	case ShapeBox:
		src = NewMesh("box", GenerateBox(key.Width))
	case ShapePlane:
		positions, uvs := GeneratePlane(key.Width, key.Height)
		src = NewMesh("plane", positions)
		src.UVs = uvs
	case ShapeSphere:
		src = l.sphere
	default:
		return nil, fmt.Errorf("%w: unknown shape %v", ErrInvalidMesh, key.Shape)
	}

	m, err := src.WithNormals(key.Mode)
	if err != nil {
		return nil, fmt.Errorf("build %v: %w", key.Shape, err)
	}
	l.entries[key] = m
	return m, nil
}

// Line returns a two-point segment along axis. Lines are unlit and cheap to
// generate, so they are not cached.
func Line(axis Axis, length float64) *Mesh {
	return NewMesh("line", GenerateLine(axis, length))
}
