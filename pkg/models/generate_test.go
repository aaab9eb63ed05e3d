package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/mobile/pkg/math3d"
)

func TestGenerateQuadCornerOrder(t *testing.T) {
	got := GenerateQuad([4]int{1, 0, 3, 2}, 2, 4, 6)
	a := math3d.V3(-1, 2, 3)
	b := math3d.V3(-1, -2, 3)
	c := math3d.V3(1, -2, 3)
	d := math3d.V3(1, 2, 3)
	assert.Equal(t, []math3d.Vec3{a, b, c, a, c, d}, got)
}

func TestGenerateQuadBackCorners(t *testing.T) {
	got := GenerateQuad([4]int{4, 5, 6, 7}, 1, 1, 1)
	assert.Equal(t, math3d.V3(-0.5, -0.5, -0.5), got[0])
	assert.Equal(t, math3d.V3(-0.5, 0.5, -0.5), got[1])
	assert.Equal(t, math3d.V3(0.5, 0.5, -0.5), got[2])
	assert.Equal(t, math3d.V3(0.5, -0.5, -0.5), got[5])
}

func TestGenerateBox(t *testing.T) {
	positions := GenerateBox(0.5)
	require.Len(t, positions, 36)

	for _, p := range positions {
		assert.Equal(t, 0.25, max(abs(p.X), abs(p.Y), abs(p.Z)), "corner %v off the cube", p)
	}

	// Each face is wound counter-clockwise from outside.
	seen := map[math3d.Vec3]int{}
	for i := 0; i < 36; i += 3 {
		n := SurfaceNormal([3]math3d.Vec3{positions[i], positions[i+1], positions[i+2]})
		centroid := positions[i].Add(positions[i+1]).Add(positions[i+2]).Scale(1.0 / 3)
		assert.Positive(t, n.Dot(centroid))
		seen[n]++
	}
	assert.Len(t, seen, 6)
	for n, count := range seen {
		assert.Equal(t, 2, count, "face %v", n)
	}
}

func TestGenerateBoxRegeneratesFresh(t *testing.T) {
	small := GenerateBox(1)
	large := GenerateBox(2)
	require.Len(t, large, 36)
	for i := range small {
		assert.Equal(t, small[i].Scale(2), large[i])
	}
}

func TestGeneratePlane(t *testing.T) {
	positions, uvs := GeneratePlane(20, 10)
	require.Len(t, positions, 6)
	require.Len(t, uvs, 6)

	for i, p := range positions {
		assert.Equal(t, 0.0, p.Z)
		assert.Equal(t, math3d.V2(p.X, p.Y), uvs[i])
	}
	assertVecNear(t, math3d.V3(0, 0, 1), SurfaceNormal([3]math3d.Vec3{positions[0], positions[1], positions[2]}))
}

func TestGenerateLine(t *testing.T) {
	tests := []struct {
		axis Axis
		want []math3d.Vec3
	}{
		{AxisX, []math3d.Vec3{math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0)}},
		{AxisY, []math3d.Vec3{math3d.V3(0, -0.125, 0), math3d.V3(0, 0.125, 0)}},
	}
	for _, tt := range tests {
		length := tt.want[1].Sub(tt.want[0]).Len()
		got := GenerateLine(tt.axis, length)
		assertVecNear(t, tt.want[0], got[0])
		assertVecNear(t, tt.want[1], got[1])
	}
}

func TestGenerateSphere(t *testing.T) {
	const segments, rings = 8, 6
	positions := GenerateSphere(0.25, segments, rings)
	require.Len(t, positions, 6*segments*(rings-1))

	for i := 0; i < len(positions); i += 3 {
		tri := [3]math3d.Vec3{positions[i], positions[i+1], positions[i+2]}
		for _, p := range tri {
			assert.InDelta(t, 0.25, p.Len(), eps)
		}
		n := SurfaceNormal(tri)
		require.NotEqual(t, math3d.Vec3{}, n, "degenerate triangle %d", i/3)
		assert.Positive(t, n.Dot(tri[0].Add(tri[1]).Add(tri[2])), "triangle %d faces inward", i/3)
	}
}

func TestGenerateSphereClampsTessellation(t *testing.T) {
	positions := GenerateSphere(1, 1, 1)
	assert.Len(t, positions, 6*3*(2-1))
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
