// Package picking converts screen-space pointer positions into rays and
// intersects them with the player mesh to find the skin texel under the
// cursor.
package picking

import (
	"github.com/gnumc/skin3d/pkg/math"
)

const epsilon = 1e-7

// Ray is a half-line in world space. Dir is normalized.
type Ray struct {
	Origin math.Vec3
	Dir    math.Vec3
}

// ScreenToRay unprojects a screen position into a world-space ray using the
// inverse of the combined view-projection matrix. Returns false when the
// matrix is not invertible or the viewport is degenerate, in which case no
// picking can happen this frame.
func ScreenToRay(sx, sy, width, height float32, view, proj math.Mat4) (Ray, bool) {
	if width <= 0 || height <= 0 {
		return Ray{}, false
	}

	inv, ok := proj.Mul(view).Inverse()
	if !ok {
		return Ray{}, false
	}

	// NDC with Y up; screen Y grows downward.
	nx := 2.0*sx/width - 1.0
	ny := 1.0 - 2.0*sy/height

	near, ok := unproject(inv, nx, ny, -1.0)
	if !ok {
		return Ray{}, false
	}
	far, ok := unproject(inv, nx, ny, 1.0)
	if !ok {
		return Ray{}, false
	}

	dir := far.Sub(near)
	if dir.Length() < epsilon {
		return Ray{}, false
	}
	return Ray{Origin: near, Dir: dir.Normalize()}, true
}

func unproject(inv math.Mat4, nx, ny, nz float32) (math.Vec3, bool) {
	v := inv.MulVec4(math.Vec4{nx, ny, nz, 1.0})
	w := v[3]
	if w > -epsilon && w < epsilon {
		return math.Vec3{}, false
	}
	return math.Vec3{X: v[0] / w, Y: v[1] / w, Z: v[2] / w}, true
}

// intersectTriangle runs Moller-Trumbore against one triangle. On a hit it
// returns the ray parameter t and the barycentric weights of v1 and v2.
func intersectTriangle(r Ray, v0, v1, v2 math.Vec3) (t, u, v float32, ok bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -epsilon && det < epsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(v0)
	u = s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * invDet
	if t < epsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
