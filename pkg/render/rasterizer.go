// Package render provides the software rasterizer that turns draw calls into
// framebuffer pixels, plus the terminal presenter for the framebuffer.
package render

import (
	"errors"
	"math"

	"github.com/taigrr/mobile/pkg/lighting"
	"github.com/taigrr/mobile/pkg/math3d"
)

// DefaultRefraction is the index ratio used for refraction draws.
const DefaultRefraction = 0.95

// Rasterizer handles software triangle and line rasterization.
type Rasterizer struct {
	camera   *Camera
	fb       *Framebuffer
	zbuffer  []float64 // Depth buffer (1D array, row-major)
	textures map[int]*Texture
	cubeMap  *CubeMap

	frustum      Frustum // Cached eye-space frustum planes
	frustumDirty bool    // Whether frustum needs recalculation

	Stats                  FrameStats // Statistics for debugging/benchmarking
	DisableBackfaceCulling bool       // If true, render both sides of triangles
	Refraction             float64    // Index ratio for refraction draws

	verts []clipVertex // Scratch space reused across draw calls
}

// FrameStats counts work done since the last Clear.
type FrameStats struct {
	Calls     int // Draw calls submitted
	Culled    int // Draw calls rejected by the frustum test
	Triangles int // Triangles that reached the fill stage
	Lines     int // Line segments drawn
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera:       camera,
		fb:           fb,
		textures:     make(map[int]*Texture),
		frustumDirty: true,
		Refraction:   DefaultRefraction,
	}
	r.Resize()
	return r
}

// Resize resizes the rasterizer's buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	r.frustumDirty = true
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// BindTexture attaches tex to a texture unit.
func (r *Rasterizer) BindTexture(unit int, tex *Texture) {
	if tex == nil {
		delete(r.textures, unit)
		return
	}
	r.textures[unit] = tex
}

// BindCubeMap sets the environment used by reflection and refraction.
func (r *Rasterizer) BindCubeMap(cm *CubeMap) {
	r.cubeMap = cm
}

// Clear fills the framebuffer with bg, clears depth and resets the stats.
// Call once per frame.
func (r *Rasterizer) Clear(bg Color) {
	if r.fb != nil {
		r.fb.Clear(bg)
	}
	r.ClearDepth()
	r.Stats = FrameStats{}
}

// ClearDepth clears the Z-buffer.
func (r *Rasterizer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// InvalidateFrustum marks the frustum as needing recalculation.
// Call this when the projection changes.
func (r *Rasterizer) InvalidateFrustum() {
	r.frustumDirty = true
}

// eyeFrustum returns the cached eye-space frustum.
func (r *Rasterizer) eyeFrustum() Frustum {
	if r.frustumDirty {
		r.frustum = r.camera.EyeFrustum()
		r.frustumDirty = false
	}
	return r.frustum
}

// IsVisible tests whether model-space bounds survive the model-view
// transform inside the view frustum.
func (r *Rasterizer) IsVisible(local AABB, modelView math3d.Mat4) bool {
	return r.eyeFrustum().IntersectAABB(local.Transform(modelView))
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// clipVertex is a vertex after the per-vertex stage.
type clipVertex struct {
	Clip  math3d.Vec4 // Clip-space position
	Color math3d.Vec4 // Shaded color, 0-1
	UV    math3d.Vec2
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y  float64 // Screen coordinates
	Z     float64 // Depth (for Z-buffer)
	InvW  float64 // 1/W (for perspective-correct interpolation)
	Color math3d.Vec4
	UV    math3d.Vec2
}

// SubmitAll rasterizes every call in order. A bad call is skipped and its
// error reported; the rest of the frame is still drawn.
func (r *Rasterizer) SubmitAll(calls []DrawCall) error {
	var errs []error
	for i := range calls {
		if err := r.Submit(&calls[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Submit rasterizes one draw call.
func (r *Rasterizer) Submit(dc *DrawCall) error {
	if err := dc.Validate(); err != nil {
		return err
	}
	r.Stats.Calls++
	if r.fb == nil || len(dc.Positions) == 0 {
		return nil
	}

	if !r.IsVisible(BoundsOf(dc.Positions), dc.ModelView) {
		r.Stats.Culled++
		return nil
	}

	verts := r.shadeVertices(dc)

	var tex *Texture
	if dc.Texture {
		tex = r.textures[dc.TextureUnit]
	}

	switch dc.Primitive {
	case PrimitiveLines:
		for i := 0; i+1 < len(verts); i += 2 {
			r.drawLine(verts[i], verts[i+1])
		}
	default:
		cull := dc.Cull && !r.DisableBackfaceCulling
		for i := 0; i+2 < len(verts); i += 3 {
			r.drawClipTriangle([3]clipVertex{verts[i], verts[i+1], verts[i+2]}, tex, cull)
		}
	}
	return nil
}

// shadeVertices runs the per-vertex stage: eye-space transform, lighting,
// environment mapping and projection.
func (r *Rasterizer) shadeVertices(dc *DrawCall) []clipVertex {
	proj := r.camera.ProjectionMatrix()
	env := r.cubeMap != nil && (dc.Reflect || dc.Refract) && len(dc.Normals) == len(dc.Positions)

	r.verts = r.verts[:0]
	for i, p := range dc.Positions {
		eye4 := dc.ModelView.MulVec4(math3d.V4FromV3(p, 1))

		var v clipVertex
		v.Clip = proj.MulVec4(eye4)
		if dc.Texture {
			v.UV = dc.UVs[i]
		}

		if !dc.Lighting && !env {
			v.Color = dc.color(i)
			r.verts = append(r.verts, v)
			continue
		}

		eye := eye4.PerspectiveDivide()
		var n math3d.Vec3
		if i < len(dc.Normals) {
			n = dc.ModelView.MulVec3Dir(dc.Normals[i]).Normalize()
		}

		if dc.Lighting {
			v.Color = lighting.Shade(dc.Products, dc.LightPosition, dc.ConeAngle, eye, n)
		} else {
			v.Color = dc.color(i)
		}

		if env {
			incident := eye.Normalize()
			if dc.Reflect {
				v.Color = v.Color.Mul(ColorToVec4(r.cubeMap.Sample(incident.Reflect(n))))
			}
			if dc.Refract {
				v.Color = v.Color.Mul(ColorToVec4(r.cubeMap.Sample(incident.Refract(n, r.Refraction))))
			}
			v.Color.W = 1
		}
		r.verts = append(r.verts, v)
	}
	return r.verts
}

// drawClipTriangle clips a triangle against the near plane and fills the
// pieces.
func (r *Rasterizer) drawClipTriangle(tri [3]clipVertex, tex *Texture, cull bool) {
	var buf [4]clipVertex
	poly := clipNear(tri, buf[:0])
	for i := 1; i+1 < len(poly); i++ {
		a, b, c := r.toScreen(poly[0]), r.toScreen(poly[i]), r.toScreen(poly[i+1])
		r.fillTriangle([3]screenVertex{a, b, c}, tex, cull)
	}
}

// toScreen performs the perspective divide and viewport mapping.
func (r *Rasterizer) toScreen(v clipVertex) screenVertex {
	invW := 1.0 / v.Clip.W
	return screenVertex{
		X:     (v.Clip.X*invW + 1) * 0.5 * float64(r.Width()),
		Y:     (1 - v.Clip.Y*invW) * 0.5 * float64(r.Height()), // Y flipped
		Z:     v.Clip.Z * invW,
		InvW:  invW,
		Color: v.Color,
		UV:    v.UV,
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
