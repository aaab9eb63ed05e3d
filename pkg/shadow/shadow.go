// Package shadow builds planar projection matrices that flatten geometry
// onto the back wall as seen from a point light.
package shadow

import "github.com/taigrr/mobile/pkg/math3d"

// WallOffset is the distance the shadow plane is pushed back along -z.
const WallOffset = 6.0

// ProjectOntoPlane returns T(0,0,-offset) * T(light) * P * T(-light) *
// objectTransform, where P projects through the light onto z = 0 of the
// light-centred frame. After the perspective divide every point lands at
// z = -offset. The light must have a non-zero z.
func ProjectOntoPlane(objectTransform math3d.Mat4, light math3d.Vec4, offset float64) math3d.Mat4 {
	lp := light.Vec3()

	p := math3d.Identity()
	p.Set(3, 3, 0)
	p.Set(3, 2, -1/lp.Z)

	return math3d.Translate(math3d.V3(0, 0, -offset)).
		Mul(math3d.Translate(lp)).
		Mul(p).
		Mul(math3d.Translate(lp.Negate())).
		Mul(objectTransform)
}
