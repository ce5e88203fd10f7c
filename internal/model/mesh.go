package model

import (
	"fmt"

	"github.com/gnumc/skin3d/pkg/math"
)

// Mesh is the built model for one (variant, pose) combination: world-space
// face quads split into the base skin layer and the overlay layer.
type Mesh struct {
	Variant Variant
	Pose    Pose
	Base    []Quad
	Overlay []Quad

	parts []Part
}

// Quads returns the pickable/renderable faces, base first then overlay, in a
// fixed deterministic order. The picker relies on this order to break exact
// distance ties.
func (m *Mesh) Quads(includeOverlay bool) []Quad {
	if !includeOverlay {
		return m.Base
	}
	out := make([]Quad, 0, len(m.Base)+len(m.Overlay))
	out = append(out, m.Base...)
	out = append(out, m.Overlay...)
	return out
}

// PartUV returns the UV rectangle of one face of the named part, or false
// when no such part exists in this mesh.
func (m *Mesh) PartUV(name string, face Face) (UVRect, bool) {
	for _, p := range m.parts {
		if p.Name == name {
			return p.UV[face], true
		}
	}
	return UVRect{}, false
}

// Build constructs the player mesh for the given variant and pose. Building
// is pure and deterministic; pose only rotates parts about their pivots and
// never touches UVs.
func Build(variant Variant, pose Pose) (*Mesh, error) {
	if variant != VariantClassic && variant != VariantSlim {
		return nil, fmt.Errorf("model: invalid variant %d", int(variant))
	}
	if pose != PoseStanding && pose != PoseWalking && pose != PoseTPose {
		return nil, fmt.Errorf("model: invalid pose %d", int(pose))
	}

	specs := partTable(variant)
	parts := make([]Part, len(specs))
	for i, s := range specs {
		parts[i] = s.build()
		parts[i].Rotation = poseRotation(pose, parts[i].Name)
	}

	mesh := &Mesh{Variant: variant, Pose: pose, parts: parts}
	for _, p := range parts {
		if p.Overlay {
			mesh.Overlay = append(mesh.Overlay, p.quads()...)
		} else {
			mesh.Base = append(mesh.Base, p.quads()...)
		}
	}
	return mesh, nil
}

// partTable returns the part specs for a variant. Classic arms are 4 texels
// wide, slim arms 3; the slim arm UV rectangles are correspondingly narrower
// and every other part is identical between variants.
func partTable(variant Variant) []partSpec {
	armW := float32(4)
	rightArmX := float32(-8)
	armPivotY := float32(22)
	if variant == VariantSlim {
		armW = 3
		rightArmX = -7
		armPivotY = 21.5
	}

	return []partSpec{
		{name: "head", origin: [3]float32{-4, 24, -4}, size: [3]float32{8, 8, 8}, uv: [2]float32{0, 0}, pivot: [3]float32{0, 24, 0}},
		{name: "body", origin: [3]float32{-4, 12, -2}, size: [3]float32{8, 12, 4}, uv: [2]float32{16, 16}, pivot: [3]float32{0, 24, 0}},
		{name: "rightArm", origin: [3]float32{rightArmX, 12, -2}, size: [3]float32{armW, 12, 4}, uv: [2]float32{40, 16}, pivot: [3]float32{-5, armPivotY, 0}},
		{name: "leftArm", origin: [3]float32{4, 12, -2}, size: [3]float32{armW, 12, 4}, uv: [2]float32{32, 48}, pivot: [3]float32{5, armPivotY, 0}},
		{name: "rightLeg", origin: [3]float32{-3.9, 0, -2}, size: [3]float32{4, 12, 4}, uv: [2]float32{0, 16}, pivot: [3]float32{-1.9, 12, 0}},
		{name: "leftLeg", origin: [3]float32{-0.1, 0, -2}, size: [3]float32{4, 12, 4}, uv: [2]float32{16, 48}, pivot: [3]float32{1.9, 12, 0}},

		{name: "hat", origin: [3]float32{-4, 24, -4}, size: [3]float32{8, 8, 8}, uv: [2]float32{32, 0}, inflate: 0.5, pivot: [3]float32{0, 24, 0}, overlay: true},
		{name: "jacket", origin: [3]float32{-4, 12, -2}, size: [3]float32{8, 12, 4}, uv: [2]float32{16, 32}, inflate: 0.5, pivot: [3]float32{0, 24, 0}, overlay: true},
		{name: "rightSleeve", origin: [3]float32{rightArmX, 12, -2}, size: [3]float32{armW, 12, 4}, uv: [2]float32{40, 32}, inflate: 0.5, pivot: [3]float32{-5, armPivotY, 0}, overlay: true},
		{name: "leftSleeve", origin: [3]float32{4, 12, -2}, size: [3]float32{armW, 12, 4}, uv: [2]float32{48, 48}, inflate: 0.5, pivot: [3]float32{5, armPivotY, 0}, overlay: true},
		{name: "rightPants", origin: [3]float32{-3.9, 0, -2}, size: [3]float32{4, 12, 4}, uv: [2]float32{0, 32}, inflate: 0.5, pivot: [3]float32{-1.9, 12, 0}, overlay: true},
		{name: "leftPants", origin: [3]float32{-0.1, 0, -2}, size: [3]float32{4, 12, 4}, uv: [2]float32{0, 48}, inflate: 0.5, pivot: [3]float32{1.9, 12, 0}, overlay: true},
	}
}

// poseRotation returns the Euler XYZ rotation (degrees) a part gets in a pose.
func poseRotation(pose Pose, part string) (rot math.Vec3) {
	switch pose {
	case PoseWalking:
		switch part {
		case "rightArm", "rightSleeve":
			rot = math.Vec3{X: 30}
		case "leftArm", "leftSleeve":
			rot = math.Vec3{X: -30}
		case "rightLeg", "rightPants":
			rot = math.Vec3{X: -30}
		case "leftLeg", "leftPants":
			rot = math.Vec3{X: 30}
		}
	case PoseTPose:
		// Positive Z rotation is counter-clockwise looking down -Z, so the
		// right arm (on -X) swings outward with -90 and the left with +90.
		switch part {
		case "rightArm", "rightSleeve":
			rot = math.Vec3{Z: -90}
		case "leftArm", "leftSleeve":
			rot = math.Vec3{Z: 90}
		}
	}
	return rot
}
