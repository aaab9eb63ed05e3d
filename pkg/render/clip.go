package render

// nearDistance is the signed distance to the near clip plane (z = -w);
// non-negative values are inside.
func nearDistance(v clipVertex) float64 {
	return v.Clip.Z + v.Clip.W
}

// lerpVertex interpolates every attribute of two clip-space vertices.
func lerpVertex(a, b clipVertex, t float64) clipVertex {
	return clipVertex{
		Clip:  a.Clip.Lerp(b.Clip, t),
		Color: a.Color.Lerp(b.Color, t),
		UV:    a.UV.Add(b.UV.Sub(a.UV).Scale(t)),
	}
}

// clipNear clips a triangle against the near plane (Sutherland-Hodgman),
// appending the resulting convex polygon to out. The result has 0, 3 or 4
// vertices in the input winding order.
func clipNear(tri [3]clipVertex, out []clipVertex) []clipVertex {
	var d [3]float64
	inside := 0
	for i, v := range tri {
		d[i] = nearDistance(v)
		if d[i] >= 0 {
			inside++
		}
	}
	switch inside {
	case 0:
		return out
	case 3:
		return append(out, tri[0], tri[1], tri[2])
	}

	for i := range 3 {
		j := (i + 1) % 3
		cur, next := tri[i], tri[j]
		if d[i] >= 0 {
			out = append(out, cur)
		}
		if (d[i] >= 0) != (d[j] >= 0) {
			t := d[i] / (d[i] - d[j])
			out = append(out, lerpVertex(cur, next, t))
		}
	}
	return out
}

// clipLine clips a segment against the near plane. ok is false when the
// whole segment is behind it.
func clipLine(a, b clipVertex) (clipVertex, clipVertex, bool) {
	da, db := nearDistance(a), nearDistance(b)
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = lerpVertex(a, b, da/(da-db))
	case db < 0:
		b = lerpVertex(a, b, da/(da-db))
	}
	return a, b, true
}

