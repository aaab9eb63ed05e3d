package render

import (
	"github.com/taigrr/mobile/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the equation so the normal has unit length.
func (p *Plane) Normalize() {
	n := p.Normal.Len()
	if n == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / n)
	p.D /= n
}

// DistanceToPoint returns the signed distance to point; positive is on the
// normal's side.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds six inward-facing planes in the order left, right, bottom,
// top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts the clip planes of m (Gribb/Hartmann). A
// bare projection gives an eye-space frustum and a view-projection gives a
// world-space one.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (math3d.Vec3, float64) {
		return math3d.V3(m[i], m[i+4], m[i+8]), m[i+12]
	}
	wn, wd := row(3)

	var f Frustum
	for axis := range 3 {
		n, d := row(axis)
		f.Planes[2*axis] = Plane{Normal: wn.Add(n), D: wd + d}
		f.Planes[2*axis+1] = Plane{Normal: wn.Sub(n), D: wd - d}
	}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundsOf returns the AABB enclosing points. An empty slice gives the
// zero box.
func BoundsOf(points []math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// corner returns corner i; bit 0 picks X, bit 1 Y and bit 2 Z from Max.
func (b AABB) corner(i int) math3d.Vec3 {
	c := b.Min
	if i&1 != 0 {
		c.X = b.Max.X
	}
	if i&2 != 0 {
		c.Y = b.Max.Y
	}
	if i&4 != 0 {
		c.Z = b.Max.Z
	}
	return c
}

// Transform bounds the eight transformed corners of b.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var corners [8]math3d.Vec3
	for i := range corners {
		corners[i] = m.MulVec3(b.corner(i))
	}
	return BoundsOf(corners[:])
}

// ContainsPoint reports whether p lies inside the box, borders included.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB reports whether any part of box may be inside the frustum.
// Only the corner furthest along each plane normal is tested.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		var i int
		if plane.Normal.X >= 0 {
			i |= 1
		}
		if plane.Normal.Y >= 0 {
			i |= 2
		}
		if plane.Normal.Z >= 0 {
			i |= 4
		}
		if plane.DistanceToPoint(box.corner(i)) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere touches the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// EyeFrustum returns the view frustum in eye space, for geometry that has
// already been taken through a model-view matrix.
func (c *Camera) EyeFrustum() Frustum {
	return NewFrustumFromMatrix(c.ProjectionMatrix())
}

// WorldFrustum returns the view frustum in world space.
func (c *Camera) WorldFrustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
