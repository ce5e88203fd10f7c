// Package skin holds the 64x64 RGBA skin texture snapshots and the selection
// mask that the renderer and picker consume. Snapshots are read-only: edits
// happen in the host editor, which publishes a fresh snapshot afterwards.
package skin

import (
	"image"

	"golang.org/x/image/draw"
)

// Size is the side length of the skin texture atlas, in texels.
const Size = 64

// Texel addresses one pixel of the skin texture.
type Texel struct {
	X, Y int
}

// Texture is an immutable RGBA snapshot of the composited skin.
type Texture struct {
	pix [Size * Size * 4]byte
	gen uint64
}

// NewTexture builds a snapshot from RGBA pixel data of length Size*Size*4.
// Malformed input yields the placeholder texture instead of an error, so a
// broken host read never takes the preview down.
func NewTexture(pix []byte, gen uint64) *Texture {
	if len(pix) != Size*Size*4 {
		t := Placeholder()
		t.gen = gen
		return t
	}
	t := &Texture{gen: gen}
	copy(t.pix[:], pix)
	return t
}

// Pix returns the raw RGBA pixel data. Callers must not modify it.
func (t *Texture) Pix() []byte {
	return t.pix[:]
}

// Generation identifies the edit state this snapshot was taken at.
func (t *Texture) Generation() uint64 {
	return t.gen
}

// At returns the RGBA value of a texel. Out-of-range texels are transparent.
func (t *Texture) At(x, y int) (r, g, b, a byte) {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return 0, 0, 0, 0
	}
	i := (y*Size + x) * 4
	return t.pix[i], t.pix[i+1], t.pix[i+2], t.pix[i+3]
}

// Placeholder returns the gray/white checkerboard shown when no skin data is
// available.
func Placeholder() *Texture {
	t := &Texture{}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			c := byte(128)
			if (x/8+y/8)%2 == 0 {
				c = 168
			}
			i := (y*Size + x) * 4
			t.pix[i] = c
			t.pix[i+1] = c
			t.pix[i+2] = c
			t.pix[i+3] = 255
		}
	}
	return t
}

// FromImage converts an arbitrary image to an atlas-sized snapshot,
// rescaling with nearest-neighbour when the source is not 64x64.
func FromImage(img image.Image, gen uint64) *Texture {
	dst := image.NewRGBA(image.Rect(0, 0, Size, Size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return NewTexture(dst.Pix, gen)
}

// Mask is an immutable single-channel snapshot of the host's selection.
// 255 means fully selected, 0 means unselected.
type Mask struct {
	bits [Size * Size]byte
	gen  uint64
}

// NewMask builds a selection snapshot from single-channel data of length
// Size*Size. Returns nil for malformed input, which reads as "no selection".
func NewMask(bits []byte, gen uint64) *Mask {
	if len(bits) != Size*Size {
		return nil
	}
	m := &Mask{gen: gen}
	copy(m.bits[:], bits)
	return m
}

// Bits returns the raw mask data. Callers must not modify it.
func (m *Mask) Bits() []byte {
	return m.bits[:]
}

// Generation identifies the selection state this snapshot was taken at.
func (m *Mask) Generation() uint64 {
	return m.gen
}

// Selected reports whether the texel is part of the selection.
func (m *Mask) Selected(x, y int) bool {
	if m == nil {
		return false
	}
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return false
	}
	return m.bits[y*Size+x] >= 128
}
