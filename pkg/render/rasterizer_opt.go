package render

import (
	"math"

	"github.com/taigrr/mobile/pkg/math3d"
)

// edgeCoeffs returns A, B, C for the edge function
// edge(x,y) = A*x + B*y + C, the signed parallelogram area of (p0, p1, p).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1 // dy
	B = x1 - x0 // -dx
	C = x0*y1 - x1*y0
	return
}

// edgeFunc evaluates edge function at point (x, y)
func edgeFunc(A, B, C, x, y float64) float64 {
	return A*x + B*y + C
}

// fillTriangle rasterizes a screen-space triangle using edge functions with
// incremental updates. Color and UVs are interpolated perspective-correctly;
// tex, when set, modulates the interpolated color. Counter-clockwise
// triangles (in NDC) are front-facing; with cull set, the rest are dropped.
func (r *Rasterizer) fillTriangle(sv [3]screenVertex, tex *Texture, cull bool) {
	// Signed area in screen space. The Y flip makes front faces negative.
	area2 := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area2 == 0 {
		return
	}
	if cull && area2 > 0 {
		return // Back-facing
	}

	// Bounding box (clamped to screen)
	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	if minX > maxX || minY > maxY {
		return
	}
	r.Stats.Triangles++

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	A1, B1, C1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	A2, B2, C2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	// Dividing by the signed area makes the weights positive inside for
	// either winding.
	invArea := 1.0 / area2

	// Evaluate edge functions at the first pixel centre of the bounding box
	px := float64(minX) + 0.5
	py := float64(minY) + 0.5

	w0Row := edgeFunc(A0, B0, C0, px, py)
	w1Row := edgeFunc(A1, B1, C1, px, py)
	w2Row := edgeFunc(A2, B2, C2, px, py)

	width := r.Width()
	zbuffer := r.zbuffer
	fb := r.fb

	for y := minY; y <= maxY; y++ {
		w0 := w0Row
		w1 := w1Row
		w2 := w2Row
		rowOffset := y * width

		for x := minX; x <= maxX; x++ {
			bc0 := w0 * invArea
			bc1 := w1 * invArea
			bc2 := w2 * invArea

			if bc0 >= 0 && bc1 >= 0 && bc2 >= 0 {
				z := bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z

				idx := rowOffset + x
				if z < zbuffer[idx] {
					// Perspective-correct weights
					pw0 := bc0 * sv[0].InvW
					pw1 := bc1 * sv[1].InvW
					pw2 := bc2 * sv[2].InvW
					if sum := pw0 + pw1 + pw2; sum != 0 {
						inv := 1.0 / sum
						pw0, pw1, pw2 = pw0*inv, pw1*inv, pw2*inv

						c := sv[0].Color.Scale(pw0).Add(sv[1].Color.Scale(pw1)).Add(sv[2].Color.Scale(pw2))
						if tex != nil {
							uv := math3d.V2(
								pw0*sv[0].UV.X+pw1*sv[1].UV.X+pw2*sv[2].UV.X,
								pw0*sv[0].UV.Y+pw1*sv[1].UV.Y+pw2*sv[2].UV.Y,
							)
							c = c.Mul(ColorToVec4(tex.Sample(uv.X, uv.Y)))
						}
						c.W = 1

						zbuffer[idx] = z
						fb.SetPixel(x, y, Vec4ToColor(c))
					}
				}
			}

			// Step in X direction
			w0 += A0
			w1 += A1
			w2 += A2
		}

		// Step in Y direction
		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}
