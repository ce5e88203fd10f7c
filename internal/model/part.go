package model

import (
	gomath "math"

	"github.com/gnumc/skin3d/pkg/math"
)

// Part is one cuboid of the player model. Parts are immutable templates
// produced at build time for a given variant; the pose only sets Rotation.
type Part struct {
	Name     string
	Origin   math.Vec3 // min corner, inflate already applied
	Size     math.Vec3 // inflate already applied
	UV       [faceCount]UVRect
	Pivot    math.Vec3
	Rotation math.Vec3 // Euler XYZ degrees, applied about Pivot
	Overlay  bool
}

// partSpec is the raw table entry a Part is built from.
type partSpec struct {
	name    string
	origin  [3]float32
	size    [3]float32
	uv      [2]float32
	inflate float32
	pivot   [3]float32
	overlay bool
}

func (s partSpec) build() Part {
	inf := s.inflate
	return Part{
		Name: s.name,
		Origin: math.Vec3{
			X: s.origin[0] - inf,
			Y: s.origin[1] - inf,
			Z: s.origin[2] - inf,
		},
		Size: math.Vec3{
			X: s.size[0] + 2*inf,
			Y: s.size[1] + 2*inf,
			Z: s.size[2] + 2*inf,
		},
		// UVs come from the uninflated size: the overlay maps to its own
		// atlas region but shares the base part's face proportions.
		UV:      boxUVs(s.uv[0], s.uv[1], s.size[0], s.size[1], s.size[2]),
		Pivot:   math.Vec3{X: s.pivot[0], Y: s.pivot[1], Z: s.pivot[2]},
		Overlay: s.overlay,
	}
}

// Quad is one face of a part in world space, wound counter-clockwise when
// viewed from outside.
type Quad struct {
	Part   string
	Face   Face
	Verts  [4]math.Vec3
	UVs    [4]math.Vec2
	Normal math.Vec3
}

// quads expands the part into its six faces, with the part rotation applied
// about the pivot.
func (p Part) quads() []Quad {
	x0, y0, z0 := p.Origin.X, p.Origin.Y, p.Origin.Z
	x1 := x0 + p.Size.X
	y1 := y0 + p.Size.Y
	z1 := z0 + p.Size.Z

	side := func(face Face, verts [4]math.Vec3) Quad {
		r := p.UV[face]
		return Quad{
			Part:  p.Name,
			Face:  face,
			Verts: verts,
			UVs: [4]math.Vec2{
				{X: r.U1, Y: r.V1}, {X: r.U0, Y: r.V1},
				{X: r.U0, Y: r.V0}, {X: r.U1, Y: r.V0},
			},
		}
	}
	capFace := func(face Face, verts [4]math.Vec3) Quad {
		r := p.UV[face]
		return Quad{
			Part:  p.Name,
			Face:  face,
			Verts: verts,
			UVs: [4]math.Vec2{
				{X: r.U0, Y: r.V0}, {X: r.U1, Y: r.V0},
				{X: r.U1, Y: r.V1}, {X: r.U0, Y: r.V1},
			},
		}
	}

	quads := []Quad{
		// front faces -Z, the direction the player looks
		side(FaceFront, [4]math.Vec3{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z0}}),
		side(FaceBack, [4]math.Vec3{{X: x1, Y: y0, Z: z1}, {X: x0, Y: y0, Z: z1}, {X: x0, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z1}}),
		side(FaceRight, [4]math.Vec3{{X: x0, Y: y0, Z: z1}, {X: x0, Y: y0, Z: z0}, {X: x0, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z1}}),
		side(FaceLeft, [4]math.Vec3{{X: x1, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z0}}),
		capFace(FaceTop, [4]math.Vec3{{X: x0, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z1}}),
		capFace(FaceBottom, [4]math.Vec3{{X: x0, Y: y0, Z: z1}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y0, Z: z0}, {X: x0, Y: y0, Z: z0}}),
	}

	rot := p.Rotation
	rotated := rot.X != 0 || rot.Y != 0 || rot.Z != 0
	var q math.Quat
	if rotated {
		q = math.QuatEulerXYZ(radians(rot.X), radians(rot.Y), radians(rot.Z))
	}

	for i := range quads {
		if rotated {
			for j := range quads[i].Verts {
				quads[i].Verts[j] = q.RotatePoint(quads[i].Verts[j], p.Pivot)
			}
		}
		quads[i].Normal = faceNormal(quads[i].Verts)
	}
	return quads
}

func faceNormal(v [4]math.Vec3) math.Vec3 {
	e1 := v[1].Sub(v[0])
	e2 := v[2].Sub(v[0])
	return e1.Cross(e2).Normalize()
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180.0
}
