package render

import (
	"math"
	"testing"

	"github.com/taigrr/mobile/pkg/math3d"
)

func TestPlaneDistanceToPoint(t *testing.T) {
	// Near plane of a camera looking down -Z at distance 0.01
	plane := Plane{Normal: math3d.V3(0, 0, -1), D: -0.01}

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected float64
	}{
		{"on plane", math3d.V3(0, 0, -0.01), 0},
		{"scene origin", math3d.V3(0, 0, -4), 3.99},
		{"behind eye", math3d.V3(0, 0, 1), -1.01},
		{"offset XY", math3d.V3(3, -2, -1.01), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dist := plane.DistanceToPoint(tc.point)
			if math.Abs(dist-tc.expected) > 1e-9 {
				t.Errorf("got %v, want %v", dist, tc.expected)
			}
		})
	}
}

func TestPlaneNormalize(t *testing.T) {
	plane := Plane{Normal: math3d.V3(0, 3, 4), D: 10}
	plane.Normalize()

	if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-9 {
		t.Errorf("normalized normal length = %v, want 1.0", length)
	}
	if math.Abs(plane.Normal.Y-0.6) > 1e-9 || math.Abs(plane.Normal.Z-0.8) > 1e-9 {
		t.Errorf("normal = %v, want (0, 0.6, 0.8)", plane.Normal)
	}
	if math.Abs(plane.D-2.0) > 1e-9 {
		t.Errorf("D = %v, want 2.0", plane.D)
	}
}

func TestBoundsOf(t *testing.T) {
	box := BoundsOf([]math3d.Vec3{
		math3d.V3(0.25, -0.25, 0),
		math3d.V3(-1, 2, 0.5),
		math3d.V3(0, 0, -3),
	})
	if box.Min != math3d.V3(-1, -0.25, -3) {
		t.Errorf("min = %v", box.Min)
	}
	if box.Max != math3d.V3(0.25, 2, 0.5) {
		t.Errorf("max = %v", box.Max)
	}

	if empty := BoundsOf(nil); empty.Min != math3d.Zero3() || empty.Max != math3d.Zero3() {
		t.Errorf("empty bounds = %v", empty)
	}
}

func TestAABBBasics(t *testing.T) {
	// Box mesh with edge 0.5
	box := NewAABB(math3d.V3(-0.25, -0.25, -0.25), math3d.V3(0.25, 0.25, 0.25))

	if c := box.Center(); c != math3d.Zero3() {
		t.Errorf("center = %v, want origin", c)
	}
	if s := box.Size(); s != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("size = %v, want 0.5 cube", s)
	}
	if c := box.corner(0); c != box.Min {
		t.Errorf("corner(0) = %v, want min", c)
	}
	if c := box.corner(7); c != box.Max {
		t.Errorf("corner(7) = %v, want max", c)
	}
	if c := box.corner(5); c != math3d.V3(0.25, -0.25, 0.25) {
		t.Errorf("corner(5) = %v", c)
	}
}

func TestAABBContainsPoint(t *testing.T) {
	box := NewAABB(math3d.V3(-7.5, -7.5, 0), math3d.V3(7.5, 7.5, 0))

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"center", math3d.V3(0, 0, 0), true},
		{"corner", math3d.V3(7.5, -7.5, 0), true},
		{"off plane", math3d.V3(0, 0, 0.1), false},
		{"outside X", math3d.V3(8, 0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	t.Run("translation", func(t *testing.T) {
		moved := box.Transform(math3d.Translate(math3d.V3(0, -0.375, -4)))
		if moved.Min != math3d.V3(-1, -1.375, -5) || moved.Max != math3d.V3(1, 0.625, -3) {
			t.Errorf("translated = %v", moved)
		}
	})

	t.Run("rotation grows bounds", func(t *testing.T) {
		rotated := box.Transform(math3d.RotateY(math3d.Radians(45)))
		want := math.Sqrt2
		if math.Abs(rotated.Max.X-want) > 1e-9 || math.Abs(rotated.Max.Z-want) > 1e-9 {
			t.Errorf("rotated max = %v, want x,z = %v", rotated.Max, want)
		}
		if math.Abs(rotated.Max.Y-1) > 1e-9 {
			t.Errorf("rotated max.Y = %v, want 1", rotated.Max.Y)
		}
	})
}

func TestEyeFrustumPlanesNormalized(t *testing.T) {
	cam := NewCamera()
	f := cam.EyeFrustum()
	for i, plane := range f.Planes {
		if length := plane.Normal.Len(); math.Abs(length-1.0) > 1e-6 {
			t.Errorf("plane %d normal length = %v, want 1.0", i, length)
		}
	}
}

func TestEyeFrustumContainsPoint(t *testing.T) {
	cam := NewCamera()
	f := cam.EyeFrustum()

	tests := []struct {
		name     string
		point    math3d.Vec3
		expected bool
	}{
		{"scene origin", math3d.V3(0, 0, -4), true},
		{"just past near", math3d.V3(0, 0, -0.02), true},
		{"inside far", math3d.V3(0, 0, -99), true},
		{"behind eye", math3d.V3(0, 0, 1), false},
		{"before near", math3d.V3(0, 0, -0.005), false},
		{"beyond far", math3d.V3(0, 0, -150), false},
		{"far left", math3d.V3(-20, 0, -4), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.ContainsPoint(tc.point); got != tc.expected {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tc.point, got, tc.expected)
			}
		})
	}
}

func TestEyeFrustumIntersectAABB(t *testing.T) {
	cam := NewCamera()
	f := cam.EyeFrustum()

	tests := []struct {
		name     string
		box      AABB
		expected bool
	}{
		{"hanging cube", NewAABB(math3d.V3(-0.25, -0.25, -4.25), math3d.V3(0.25, 0.25, -3.75)), true},
		{"crosses near plane", NewAABB(math3d.V3(-1, -1, -2), math3d.V3(1, 1, 2)), true},
		{"behind eye", NewAABB(math3d.V3(-1, -1, 1), math3d.V3(1, 1, 3)), false},
		{"beyond far", NewAABB(math3d.V3(-1, -1, -150), math3d.V3(1, 1, -120)), false},
		{"off to the right", NewAABB(math3d.V3(50, -1, -10), math3d.V3(60, 1, -5)), false},
		{"contains frustum", NewAABB(math3d.V3(-200, -200, -200), math3d.V3(200, 200, 200)), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectAABB(tc.box); got != tc.expected {
				t.Errorf("IntersectAABB(%v) = %v, want %v", tc.box, got, tc.expected)
			}
		})
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := NewCamera().EyeFrustum()

	tests := []struct {
		name     string
		center   math3d.Vec3
		radius   float64
		expected bool
	}{
		{"sphere at origin", math3d.V3(0, 1.5, -4), 0.25, true},
		{"straddles near", math3d.V3(0, 0, 0.1), 0.5, true},
		{"behind", math3d.V3(0, 0, 5), 1.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := f.IntersectsSphere(tc.center, tc.radius); got != tc.expected {
				t.Errorf("IntersectsSphere(%v, %v) = %v, want %v", tc.center, tc.radius, got, tc.expected)
			}
		})
	}
}

func TestWorldFrustumFollowsEye(t *testing.T) {
	cam := NewCamera()
	cam.SetEye(math3d.V3(4, 0, 0))
	f := cam.WorldFrustum()

	if !f.ContainsPoint(math3d.Zero3()) {
		t.Error("target should be visible from the moved eye")
	}
	if f.ContainsPoint(math3d.V3(8, 0, 0)) {
		t.Error("point behind the moved eye should not be visible")
	}
}

func BenchmarkFrustumIntersectAABB(b *testing.B) {
	f := NewCamera().EyeFrustum()
	box := NewAABB(math3d.V3(-0.25, -0.25, -4.25), math3d.V3(0.25, 0.25, -3.75))

	for b.Loop() {
		_ = f.IntersectAABB(box)
	}
}

func BenchmarkFrustumExtraction(b *testing.B) {
	proj := math3d.Perspective(math3d.Radians(DefaultFOV), 4.0/3.0, DefaultNear, DefaultFar)

	for b.Loop() {
		_ = NewFrustumFromMatrix(proj)
	}
}

func BenchmarkAABBTransform(b *testing.B) {
	box := NewAABB(math3d.V3(-0.25, -0.25, -0.25), math3d.V3(0.25, 0.25, 0.25))
	mv := math3d.LookAt(math3d.V3(0, 0, 4), math3d.Zero3(), math3d.Up()).Mul(math3d.RotateY(0.5))

	for b.Loop() {
		_ = box.Transform(mv)
	}
}
