package picking

import (
	"github.com/gnumc/skin3d/internal/model"
	"github.com/gnumc/skin3d/internal/skin"
	"github.com/gnumc/skin3d/pkg/math"
)

// Result describes the nearest mesh face hit by a pick ray.
type Result struct {
	Texel    skin.Texel // atlas texel under the cursor
	UV       math.Vec2  // normalized atlas coordinate
	Distance float32    // ray parameter of the hit
	Part     string
	Face     model.Face
	Point    math.Vec3 // world-space hit position
}

// Pick casts a ray through the given screen position and returns the nearest
// skin texel it hits. Quads are tested in mesh order (base layer before
// overlay); the strictly-less distance comparison means that on an exact tie
// the earlier quad wins, keeping picks deterministic.
func Pick(sx, sy, width, height float32, view, proj math.Mat4, mesh *model.Mesh, includeOverlay bool) (Result, bool) {
	ray, ok := ScreenToRay(sx, sy, width, height, view, proj)
	if !ok {
		return Result{}, false
	}
	return PickRay(ray, mesh, includeOverlay)
}

// PickRay intersects a prebuilt ray with the mesh.
func PickRay(ray Ray, mesh *model.Mesh, includeOverlay bool) (Result, bool) {
	if mesh == nil {
		return Result{}, false
	}

	var best Result
	found := false

	for _, q := range mesh.Quads(includeOverlay) {
		uv, t, ok := intersectQuad(ray, q)
		if !ok {
			continue
		}
		if found && t >= best.Distance {
			continue
		}
		found = true
		best = Result{
			Texel:    texelOf(uv),
			UV:       uv,
			Distance: t,
			Part:     q.Part,
			Face:     q.Face,
			Point:    ray.Origin.Add(ray.Dir.Scale(t)),
		}
	}
	return best, found
}

// intersectQuad splits the quad into triangles (0,1,2) and (0,2,3) and
// interpolates the hit UV from the barycentric weights.
func intersectQuad(ray Ray, q model.Quad) (math.Vec2, float32, bool) {
	if t, u, v, ok := intersectTriangle(ray, q.Verts[0], q.Verts[1], q.Verts[2]); ok {
		return lerpUV(q.UVs[0], q.UVs[1], q.UVs[2], u, v), t, true
	}
	if t, u, v, ok := intersectTriangle(ray, q.Verts[0], q.Verts[2], q.Verts[3]); ok {
		return lerpUV(q.UVs[0], q.UVs[2], q.UVs[3], u, v), t, true
	}
	return math.Vec2{}, 0, false
}

func lerpUV(a, b, c math.Vec2, u, v float32) math.Vec2 {
	w := 1.0 - u - v
	return math.Vec2{
		X: a.X*w + b.X*u + c.X*v,
		Y: a.Y*w + b.Y*u + c.Y*v,
	}
}

// texelOf converts a normalized atlas coordinate to an integer texel,
// clamped to the atlas so edge hits never index out of range.
func texelOf(uv math.Vec2) skin.Texel {
	x := int(uv.X * skin.Size)
	y := int(uv.Y * skin.Size)
	if x < 0 {
		x = 0
	} else if x > skin.Size-1 {
		x = skin.Size - 1
	}
	if y < 0 {
		y = 0
	} else if y > skin.Size-1 {
		y = skin.Size - 1
	}
	return skin.Texel{X: x, Y: y}
}
