package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/mobile/pkg/math3d"
)

func TestNewLibraryRejectsBadMode(t *testing.T) {
	_, err := NewLibrary(ShadingMode(3))
	require.ErrorIs(t, err, ErrUnsupportedShadingMode)
}

func TestLibraryCachesSnapshots(t *testing.T) {
	lib, err := NewLibrary(ShadingGouraud)
	require.NoError(t, err)

	a, err := lib.Box(0.5)
	require.NoError(t, err)
	b, err := lib.Box(0.5)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Len(t, a.Positions, 36)
	assert.Len(t, a.Normals, 36)
	assert.Equal(t, 1, lib.Len())
}

func TestLibraryBoxSizesAreIndependent(t *testing.T) {
	lib, err := NewLibrary(ShadingFlat)
	require.NoError(t, err)

	small, err := lib.Box(0.5)
	require.NoError(t, err)
	large, err := lib.Box(2)
	require.NoError(t, err)

	assert.Len(t, large.Positions, 36)
	assert.Len(t, small.Positions, 36)
	assert.Equal(t, math3d.V3(1, 1, 1), large.BoundsMax)
	assert.Equal(t, math3d.V3(0.25, 0.25, 0.25), small.BoundsMax)
}

func TestLibraryPlaneHasUVs(t *testing.T) {
	lib, err := NewLibrary(ShadingGouraud)
	require.NoError(t, err)

	plane, err := lib.Plane(15, 15)
	require.NoError(t, err)
	require.NoError(t, plane.Validate())
	assert.Len(t, plane.UVs, 6)
}

func TestLibrarySetShadingModeRebuilds(t *testing.T) {
	lib, err := NewLibrary(ShadingGouraud)
	require.NoError(t, err)

	smooth, err := lib.Box(1)
	require.NoError(t, err)
	_, err = lib.Sphere()
	require.NoError(t, err)
	require.Equal(t, 2, lib.Len())

	require.NoError(t, lib.SetShadingMode(ShadingFlat))
	assert.Equal(t, ShadingFlat, lib.Mode())
	assert.Equal(t, 4, lib.Len(), "flat snapshots built eagerly")

	flat, err := lib.Box(1)
	require.NoError(t, err)
	assert.NotSame(t, smooth, flat)

	want, err := ComputeNormals(flat.Positions, ShadingFlat)
	require.NoError(t, err)
	assert.Equal(t, want, flat.Normals)

	// The earlier snapshot is untouched.
	wantSmooth, err := ComputeNormals(smooth.Positions, ShadingGouraud)
	require.NoError(t, err)
	assert.Equal(t, wantSmooth, smooth.Normals)

	// Switching back reuses the cached snapshot.
	require.NoError(t, lib.SetShadingMode(ShadingGouraud))
	again, err := lib.Box(1)
	require.NoError(t, err)
	assert.Same(t, smooth, again)
}

func TestLibrarySetShadingModeInvalid(t *testing.T) {
	lib, err := NewLibrary(ShadingFlat)
	require.NoError(t, err)

	err = lib.SetShadingMode(ShadingMode(9))
	require.ErrorIs(t, err, ErrUnsupportedShadingMode)
	assert.Equal(t, ShadingFlat, lib.Mode())
}

func TestLibraryReplaceMesh(t *testing.T) {
	lib, err := NewLibrary(ShadingGouraud)
	require.NoError(t, err)

	before, err := lib.Sphere()
	require.NoError(t, err)

	tetra := NewMesh("tetra", []math3d.Vec3{
		math3d.V3(0, 0, 0), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0),
	})
	require.NoError(t, lib.ReplaceMesh(tetra))

	after, err := lib.Sphere()
	require.NoError(t, err)
	assert.NotSame(t, before, after)
	assert.Equal(t, "tetra", after.Name)
	assert.Len(t, after.Normals, 3)

	// The mode switch recomputes normals from the imported mesh.
	require.NoError(t, lib.SetShadingMode(ShadingFlat))
	flat, err := lib.Sphere()
	require.NoError(t, err)
	assert.Equal(t, "tetra", flat.Name)
}

func TestLibraryReplaceMeshRejectsInvalid(t *testing.T) {
	lib, err := NewLibrary(ShadingGouraud)
	require.NoError(t, err)
	before, err := lib.Sphere()
	require.NoError(t, err)

	require.ErrorIs(t, lib.ReplaceMesh(nil), ErrInvalidMesh)
	require.ErrorIs(t, lib.ReplaceMesh(NewMesh("bad", []math3d.Vec3{math3d.V3(0, 0, 0)})), ErrInvalidMesh)

	after, err := lib.Sphere()
	require.NoError(t, err)
	assert.Same(t, before, after)
}

func TestLibraryConcurrentAccess(t *testing.T) {
	lib, err := NewLibrary(ShadingGouraud)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mode := ShadingGouraud
			if i%2 == 0 {
				mode = ShadingFlat
			}
			assert.NoError(t, lib.SetShadingMode(mode))
			_, err := lib.Box(0.5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestLine(t *testing.T) {
	line := Line(AxisY, 0.25)
	assert.Equal(t, 2, line.VertexCount())
	assert.Equal(t, math3d.V3(0, 0.125, 0), line.BoundsMax)
}
