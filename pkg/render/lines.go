package render

import (
	"math"
)

// drawLine clips a segment against the near plane and draws it with a
// depth-tested DDA, interpolating color along the way.
func (r *Rasterizer) drawLine(a, b clipVertex) {
	a, b, ok := clipLine(a, b)
	if !ok {
		return
	}
	p0, p1 := r.toScreen(a), r.toScreen(b)
	r.Stats.Lines++

	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Floor(p0.X + dx*t))
		y := int(math.Floor(p0.Y + dy*t))
		if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
			continue
		}

		z := p0.Z + (p1.Z-p0.Z)*t
		if z >= r.getDepth(x, y) {
			continue
		}

		// Perspective-correct color along the segment
		w0 := (1 - t) * p0.InvW
		w1 := t * p1.InvW
		c := p0.Color.Scale(w0).Add(p1.Color.Scale(w1)).Scale(1 / (w0 + w1))
		c.W = 1

		r.setDepth(x, y, z)
		r.fb.SetPixel(x, y, Vec4ToColor(c))
	}
}
