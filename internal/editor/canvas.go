package editor

import (
	"fmt"

	"github.com/gnumc/skin3d/internal/skin"
)

const maxUndo = 64

// DefaultThreshold is the fuzzy-select threshold restored at every select
// press; a threshold drag adjusts it from there.
const DefaultThreshold = 15

// snapshot is one undo step: the full pixel and selection state.
type snapshot struct {
	pix    [skin.Size * skin.Size * 4]byte
	sel    [skin.Size * skin.Size]byte
	hasSel bool
}

// Canvas is the built-in in-memory Host. It owns the editable 64x64 RGBA
// surface, the selection channel and the undo history. Not safe for
// concurrent use; everything runs on the frame loop goroutine.
type Canvas struct {
	pix    [skin.Size * skin.Size * 4]byte
	sel    [skin.Size * skin.Size]byte
	hasSel bool

	texGen uint64
	selGen uint64

	fg        [4]byte
	threshold float32

	undo []snapshot
	redo []snapshot

	// live fuzzy-select gesture, kept so a threshold drag can re-run the
	// selection against the pre-gesture state
	selectLive bool
	anchor     skin.Texel
	anchorOp   ChannelOp
	baseSel    [skin.Size * skin.Size]byte
	baseHasSel bool
}

// NewCanvas returns an empty transparent canvas with the default foreground
// color and fuzzy-select threshold.
func NewCanvas() *Canvas {
	return &Canvas{
		fg:        [4]byte{0, 0, 0, 255},
		threshold: DefaultThreshold,
	}
}

// LoadPixels replaces the canvas contents with RGBA data of length
// Size*Size*4 and clears the undo history.
func (c *Canvas) LoadPixels(pix []byte) error {
	if len(pix) != len(c.pix) {
		return fmt.Errorf("editor: pixel data is %d bytes, want %d", len(pix), len(c.pix))
	}
	copy(c.pix[:], pix)
	c.undo = c.undo[:0]
	c.redo = c.redo[:0]
	c.texGen++
	return nil
}

// SetColor sets the foreground paint color.
func (c *Canvas) SetColor(r, g, b, a byte) {
	c.fg = [4]byte{r, g, b, a}
}

// Color returns the foreground paint color.
func (c *Canvas) Color() (r, g, b, a byte) {
	return c.fg[0], c.fg[1], c.fg[2], c.fg[3]
}

// Composite implements Host.
func (c *Canvas) Composite() *skin.Texture {
	return skin.NewTexture(c.pix[:], c.texGen)
}

// Selection implements Host.
func (c *Canvas) Selection() *skin.Mask {
	if !c.hasSel {
		return nil
	}
	return skin.NewMask(c.sel[:], c.selGen)
}

// Threshold implements Host.
func (c *Canvas) Threshold() float32 {
	return c.threshold
}

// SetThreshold implements Host. While a fuzzy-select gesture is live the
// selection is re-run from the gesture anchor with the new threshold.
func (c *Canvas) SetThreshold(v float32) {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	c.threshold = v
	if c.selectLive {
		c.runFuzzySelect()
	}
}

// ApplyStroke implements Host.
func (c *Canvas) ApplyStroke(req StrokeRequest) {
	switch {
	case req.Tool.Paints():
		if req.Modifiers.Ctrl {
			// quick color pick without switching tools
			if req.Phase == StrokeBegin {
				c.pickColor(req.Texel)
			}
			return
		}
		if req.Phase == StrokeBegin {
			c.pushUndo()
		}
		c.paint(req.Tool, req.Texel)

	case req.Tool == ToolColorPicker:
		if req.Phase == StrokeBegin {
			c.pickColor(req.Texel)
		}

	case req.Tool == ToolBucketFill:
		if req.Phase != StrokeBegin {
			return
		}
		c.pushUndo()
		c.bucketFill(req.Texel)

	case req.Tool == ToolFuzzySelect:
		switch req.Phase {
		case StrokeBegin:
			c.pushUndo()
			c.threshold = DefaultThreshold
			c.selectLive = true
			c.anchor = req.Texel
			c.anchorOp = OpForModifiers(req.Modifiers)
			c.baseSel = c.sel
			c.baseHasSel = c.hasSel
			c.runFuzzySelect()
		case StrokeEnd:
			c.selectLive = false
		}
	}
}

// Undo implements Host.
func (c *Canvas) Undo() {
	if len(c.undo) == 0 {
		return
	}
	c.redo = append(c.redo, c.capture())
	s := c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]
	c.restore(s)
}

// Redo implements Host.
func (c *Canvas) Redo() {
	if len(c.redo) == 0 {
		return
	}
	c.undo = append(c.undo, c.capture())
	s := c.redo[len(c.redo)-1]
	c.redo = c.redo[:len(c.redo)-1]
	c.restore(s)
}

func (c *Canvas) capture() snapshot {
	return snapshot{pix: c.pix, sel: c.sel, hasSel: c.hasSel}
}

func (c *Canvas) restore(s snapshot) {
	c.pix = s.pix
	c.sel = s.sel
	c.hasSel = s.hasSel
	c.texGen++
	c.selGen++
}

func (c *Canvas) pushUndo() {
	if len(c.undo) >= maxUndo {
		copy(c.undo, c.undo[1:])
		c.undo = c.undo[:len(c.undo)-1]
	}
	c.undo = append(c.undo, c.capture())
	c.redo = c.redo[:0]
}

// editable reports whether a texel may be painted: inside the selection, or
// anywhere when nothing is selected.
func (c *Canvas) editable(t skin.Texel) bool {
	if t.X < 0 || t.X >= skin.Size || t.Y < 0 || t.Y >= skin.Size {
		return false
	}
	if !c.hasSel {
		return true
	}
	return c.sel[t.Y*skin.Size+t.X] >= 128
}

func (c *Canvas) paint(tool Tool, t skin.Texel) {
	if !c.editable(t) {
		return
	}
	i := (t.Y*skin.Size + t.X) * 4
	switch tool {
	case ToolEraser:
		c.pix[i+3] = 0
	case ToolAirbrush:
		blendOver(c.pix[i:i+4], c.fg, 0.5)
	default:
		copy(c.pix[i:i+4], c.fg[:])
	}
	c.texGen++
}

func (c *Canvas) pickColor(t skin.Texel) {
	if t.X < 0 || t.X >= skin.Size || t.Y < 0 || t.Y >= skin.Size {
		return
	}
	i := (t.Y*skin.Size + t.X) * 4
	c.fg = [4]byte{c.pix[i], c.pix[i+1], c.pix[i+2], c.pix[i+3]}
}

// bucketFill flood-fills the color region around the seed with the
// foreground color, limited to the selection when one exists.
func (c *Canvas) bucketFill(seed skin.Texel) {
	region := c.floodRegion(seed)
	if region == nil {
		return
	}
	for idx := range region {
		t := skin.Texel{X: idx % skin.Size, Y: idx / skin.Size}
		if !c.editable(t) {
			continue
		}
		copy(c.pix[idx*4:idx*4+4], c.fg[:])
	}
	c.texGen++
}

// runFuzzySelect recomputes the live selection: the region around the anchor
// combined with the pre-gesture selection via the gesture's channel op.
func (c *Canvas) runFuzzySelect() {
	region := c.floodRegion(c.anchor)

	var next [skin.Size * skin.Size]byte
	switch c.anchorOp {
	case OpReplace:
		for idx := range region {
			next[idx] = 255
		}
	case OpAdd:
		next = c.baseSel
		for idx := range region {
			next[idx] = 255
		}
	case OpSubtract:
		next = c.baseSel
		for idx := range region {
			next[idx] = 0
		}
	case OpIntersect:
		for idx := range region {
			if c.baseSel[idx] >= 128 {
				next[idx] = 255
			}
		}
	}

	c.sel = next
	c.hasSel = false
	for _, v := range c.sel {
		if v >= 128 {
			c.hasSel = true
			break
		}
	}
	c.selGen++
}

// floodRegion collects the 4-connected region of texels whose color is
// within the threshold of the seed color. Keys are row-major texel indices.
func (c *Canvas) floodRegion(seed skin.Texel) map[int]struct{} {
	if seed.X < 0 || seed.X >= skin.Size || seed.Y < 0 || seed.Y >= skin.Size {
		return nil
	}
	seedIdx := seed.Y*skin.Size + seed.X
	var ref [4]byte
	copy(ref[:], c.pix[seedIdx*4:seedIdx*4+4])

	region := map[int]struct{}{seedIdx: {}}
	stack := []int{seedIdx}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%skin.Size, idx/skin.Size

		for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
			nx, ny := n[0], n[1]
			if nx < 0 || nx >= skin.Size || ny < 0 || ny >= skin.Size {
				continue
			}
			nIdx := ny*skin.Size + nx
			if _, seen := region[nIdx]; seen {
				continue
			}
			if !c.similar(ref, nIdx) {
				continue
			}
			region[nIdx] = struct{}{}
			stack = append(stack, nIdx)
		}
	}
	return region
}

// similar reports whether the texel's color is within the threshold of the
// reference, using the largest per-channel difference.
func (c *Canvas) similar(ref [4]byte, idx int) bool {
	for ch := 0; ch < 4; ch++ {
		d := int(c.pix[idx*4+ch]) - int(ref[ch])
		if d < 0 {
			d = -d
		}
		if float32(d) > c.threshold {
			return false
		}
	}
	return true
}

// blendOver alpha-blends src over dst in place, with src alpha scaled by
// strength.
func blendOver(dst []byte, src [4]byte, strength float32) {
	sa := float32(src[3]) / 255.0 * strength
	if sa < 0.004 {
		return
	}
	da := float32(dst[3]) / 255.0
	oa := sa + da*(1.0-sa)
	if oa <= 0 {
		return
	}
	inv := da * (1.0 - sa)
	for ch := 0; ch < 3; ch++ {
		v := (float32(src[ch])*sa + float32(dst[ch])*inv) / oa
		if v > 255 {
			v = 255
		}
		dst[ch] = byte(v)
	}
	dst[3] = byte(oa * 255)
}
