package lighting

import (
	"math"

	"github.com/taigrr/mobile/pkg/math3d"
)

// Shade evaluates Phong lighting for one eye-space vertex. Outside the
// spotlight cone only the ambient term contributes. Alpha is always 1.
func Shade(p Products, lightPos math3d.Vec4, cone float64, pos, normal math3d.Vec3) math3d.Vec4 {
	var l math3d.Vec3
	if lightPos.W == 0 {
		l = lightPos.Vec3().Normalize()
	} else {
		l = lightPos.Vec3().Sub(pos).Normalize()
	}
	e := pos.Negate().Normalize()
	h := l.Add(e).Normalize()
	n := normal.Normalize()

	color := p.Ambient
	if l.Negate().Dot(SpotDirection) >= cone {
		kd := max(l.Dot(n), 0)
		color = color.Add(p.Diffuse.Scale(kd))

		if l.Dot(n) >= 0 {
			ks := math.Pow(max(n.Dot(h), 0), p.Shininess)
			color = color.Add(p.Specular.Scale(ks))
		}
	}
	color.W = 1
	return color
}
