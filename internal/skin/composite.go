package skin

// Layer is one drawable layer of the host image, positioned on the atlas.
type Layer struct {
	Pix     []byte // RGBA pixels, Width*Height*4
	Width   int
	Height  int
	OffsetX int
	OffsetY int
	Opacity float32 // 0..1
	Visible bool
}

// Composite alpha-blends the visible layers bottom-to-top into one
// atlas-sized snapshot. The last layer in the slice is the topmost.
// With no visible layers the placeholder is returned.
//
// This is the hook for hosts backed by a multi-layer image: such a host
// builds its editor.Host Composite() snapshot here. The built-in single-layer
// canvas publishes its pixel buffer directly.
func Composite(layers []Layer, gen uint64) *Texture {
	any := false
	var out [Size * Size * 4]byte

	for _, layer := range layers {
		if !layer.Visible || len(layer.Pix) != layer.Width*layer.Height*4 {
			continue
		}
		any = true
		blitLayer(out[:], layer)
	}

	if !any {
		t := Placeholder()
		t.gen = gen
		return t
	}
	return NewTexture(out[:], gen)
}

// blitLayer blends one layer over the accumulated canvas.
func blitLayer(dst []byte, layer Layer) {
	for ly := 0; ly < layer.Height; ly++ {
		dy := ly + layer.OffsetY
		if dy < 0 || dy >= Size {
			continue
		}
		for lx := 0; lx < layer.Width; lx++ {
			dx := lx + layer.OffsetX
			if dx < 0 || dx >= Size {
				continue
			}

			si := (ly*layer.Width + lx) * 4
			di := (dy*Size + dx) * 4

			sa := float32(layer.Pix[si+3]) / 255.0 * layer.Opacity
			if sa < 0.004 {
				continue
			}

			da := float32(dst[di+3]) / 255.0
			oa := sa + da*(1.0-sa)
			if oa <= 0 {
				continue
			}

			inv := da * (1.0 - sa)
			for c := 0; c < 3; c++ {
				v := (float32(layer.Pix[si+c])*sa + float32(dst[di+c])*inv) / oa
				if v > 255 {
					v = 255
				}
				dst[di+c] = byte(v)
			}
			dst[di+3] = byte(oa * 255)
		}
	}
}
