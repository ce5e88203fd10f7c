// Package model defines the player mesh: named cuboid parts with per-face UV
// rectangles into the 64x64 skin atlas, pose-dependent rigid transforms and
// classic/slim arm variants.
//
// The atlas uses the standard box unwrap. For a box of size (W, H, D) with UV
// origin (u0, v0), in atlas pixels:
//
//	right:  (u0,         v0+D)  size D x H
//	front:  (u0+D,       v0+D)  size W x H
//	left:   (u0+D+W,     v0+D)  size D x H
//	back:   (u0+D+W+D,   v0+D)  size W x H
//	top:    (u0+D,       v0)    size W x D
//	bottom: (u0+D+W,     v0)    size W x D
package model

import (
	"fmt"

	"github.com/gnumc/skin3d/internal/skin"
	"github.com/gnumc/skin3d/pkg/math"
)

// Variant selects the arm geometry of the player model.
type Variant int

const (
	// VariantClassic has 4-pixel-wide arms.
	VariantClassic Variant = iota
	// VariantSlim has 3-pixel-wide arms and narrower arm UV rectangles.
	VariantSlim
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case VariantClassic:
		return "classic"
	case VariantSlim:
		return "slim"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant converts a config string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "classic", "":
		return VariantClassic, nil
	case "slim":
		return VariantSlim, nil
	default:
		return 0, fmt.Errorf("unknown model variant %q", s)
	}
}

// Pose selects the rig applied to the parts. Poses rotate rigid parts about
// fixed pivots and never change UV mapping.
type Pose int

const (
	PoseStanding Pose = iota
	PoseWalking
	PoseTPose
)

// String implements fmt.Stringer.
func (p Pose) String() string {
	switch p {
	case PoseStanding:
		return "standing"
	case PoseWalking:
		return "walking"
	case PoseTPose:
		return "tpose"
	default:
		return fmt.Sprintf("Pose(%d)", int(p))
	}
}

// ParsePose converts a config string to a Pose.
func ParsePose(s string) (Pose, error) {
	switch s {
	case "standing", "":
		return PoseStanding, nil
	case "walking":
		return PoseWalking, nil
	case "tpose":
		return PoseTPose, nil
	default:
		return 0, fmt.Errorf("unknown pose %q", s)
	}
}

// Face identifies one of the six faces of a cuboid part.
type Face int

const (
	FaceRight Face = iota
	FaceFront
	FaceLeft
	FaceBack
	FaceTop
	FaceBottom
	faceCount
)

// String implements fmt.Stringer.
func (f Face) String() string {
	switch f {
	case FaceRight:
		return "right"
	case FaceFront:
		return "front"
	case FaceLeft:
		return "left"
	case FaceBack:
		return "back"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Face(%d)", int(f))
	}
}

// UVRect is an axis-aligned rectangle in normalized texture space.
type UVRect struct {
	U0, V0, U1, V1 float32
}

// Width returns U1 - U0.
func (r UVRect) Width() float32 { return r.U1 - r.U0 }

// Height returns V1 - V0.
func (r UVRect) Height() float32 { return r.V1 - r.V0 }

// Contains reports whether the normalized UV coordinate lies inside the
// rectangle (inclusive lower edge, exclusive upper edge).
func (r UVRect) Contains(uv math.Vec2) bool {
	return uv.X >= r.U0 && uv.X < r.U1 && uv.Y >= r.V0 && uv.Y < r.V1
}

// boxUVs computes the six per-face UV rectangles of a box unwrap anchored at
// atlas pixel (u0, v0) for a box of uninflated size w x h x d.
func boxUVs(u0, v0, w, h, d float32) [faceCount]UVRect {
	norm := func(px, py, pw, ph float32) UVRect {
		return UVRect{
			U0: px / skin.Size,
			V0: py / skin.Size,
			U1: (px + pw) / skin.Size,
			V1: (py + ph) / skin.Size,
		}
	}

	var uvs [faceCount]UVRect
	uvs[FaceRight] = norm(u0, v0+d, d, h)
	uvs[FaceFront] = norm(u0+d, v0+d, w, h)
	uvs[FaceLeft] = norm(u0+d+w, v0+d, d, h)
	uvs[FaceBack] = norm(u0+d+w+d, v0+d, w, h)
	uvs[FaceTop] = norm(u0+d, v0, w, d)
	uvs[FaceBottom] = norm(u0+d+w, v0, w, d)
	return uvs
}
