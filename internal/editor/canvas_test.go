package editor

import (
	"testing"

	"github.com/gnumc/skin3d/internal/skin"
)

func texelAt(c *Canvas, x, y int) [4]byte {
	t := c.Composite()
	r, g, b, a := t.At(x, y)
	return [4]byte{r, g, b, a}
}

func stroke(tool Tool, phase StrokePhase, x, y int) StrokeRequest {
	return StrokeRequest{Tool: tool, Phase: phase, Texel: skin.Texel{X: x, Y: y}}
}

func TestOpForModifiers(t *testing.T) {
	cases := []struct {
		m    Modifiers
		want ChannelOp
	}{
		{Modifiers{}, OpReplace},
		{Modifiers{Shift: true}, OpAdd},
		{Modifiers{Ctrl: true}, OpSubtract},
		{Modifiers{Shift: true, Ctrl: true}, OpIntersect},
	}
	for _, c := range cases {
		if got := OpForModifiers(c.m); got != c.want {
			t.Errorf("OpForModifiers(%+v) = %v, want %v", c.m, got, c.want)
		}
	}
}

func TestPencilPaintsForeground(t *testing.T) {
	c := NewCanvas()
	c.SetColor(200, 10, 30, 255)
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 5, 7))

	if got := texelAt(c, 5, 7); got != [4]byte{200, 10, 30, 255} {
		t.Errorf("painted texel = %v", got)
	}
	if got := texelAt(c, 6, 7); got[3] != 0 {
		t.Errorf("neighbour texel touched: %v", got)
	}
}

func TestEraserClearsAlpha(t *testing.T) {
	c := NewCanvas()
	c.SetColor(200, 10, 30, 255)
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 5, 7))
	c.ApplyStroke(stroke(ToolEraser, StrokeBegin, 5, 7))

	if got := texelAt(c, 5, 7); got[3] != 0 {
		t.Errorf("erased texel alpha = %d, want 0", got[3])
	}
}

func TestCtrlClickPicksColor(t *testing.T) {
	c := NewCanvas()
	c.SetColor(200, 10, 30, 255)
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 5, 7))

	c.SetColor(0, 0, 0, 255)
	req := stroke(ToolPaintbrush, StrokeBegin, 5, 7)
	req.Modifiers.Ctrl = true
	before := texelAt(c, 5, 7)
	c.ApplyStroke(req)

	r, g, b, a := c.Color()
	if [4]byte{r, g, b, a} != [4]byte{200, 10, 30, 255} {
		t.Errorf("picked color = %v, want (200,10,30,255)", [4]byte{r, g, b, a})
	}
	if texelAt(c, 5, 7) != before {
		t.Error("ctrl-click modified pixels")
	}
}

func TestColorPickerTool(t *testing.T) {
	c := NewCanvas()
	c.SetColor(50, 60, 70, 255)
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 1, 1))
	c.SetColor(0, 0, 0, 0)

	c.ApplyStroke(stroke(ToolColorPicker, StrokeBegin, 1, 1))
	r, g, b, a := c.Color()
	if [4]byte{r, g, b, a} != [4]byte{50, 60, 70, 255} {
		t.Errorf("picked = %v", [4]byte{r, g, b, a})
	}
}

// fillRect paints an axis-aligned rectangle directly, bypassing tools.
func fillRect(c *Canvas, x0, y0, x1, y1 int, col [4]byte) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			i := (y*skin.Size + x) * 4
			copy(c.pix[i:i+4], col[:])
		}
	}
	c.texGen++
}

func TestBucketFillStopsAtEdges(t *testing.T) {
	c := NewCanvas()
	fillRect(c, 0, 0, 10, 10, [4]byte{100, 100, 100, 255})
	fillRect(c, 10, 0, 20, 10, [4]byte{0, 200, 0, 255})

	c.SetColor(255, 0, 0, 255)
	c.ApplyStroke(stroke(ToolBucketFill, StrokeBegin, 2, 2))

	if got := texelAt(c, 9, 9); got != [4]byte{255, 0, 0, 255} {
		t.Errorf("inside region = %v, want fill color", got)
	}
	if got := texelAt(c, 10, 5); got != [4]byte{0, 200, 0, 255} {
		t.Errorf("neighbour region = %v, want untouched", got)
	}
}

func TestBucketFillRespectsSelection(t *testing.T) {
	c := NewCanvas()
	fillRect(c, 0, 0, 10, 10, [4]byte{100, 100, 100, 255})

	// Select only the left half of the region.
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			c.sel[y*skin.Size+x] = 255
		}
	}
	c.hasSel = true

	c.SetColor(255, 0, 0, 255)
	c.ApplyStroke(stroke(ToolBucketFill, StrokeBegin, 2, 2))

	if got := texelAt(c, 2, 2); got != [4]byte{255, 0, 0, 255} {
		t.Errorf("selected texel = %v, want filled", got)
	}
	if got := texelAt(c, 7, 2); got != [4]byte{100, 100, 100, 255} {
		t.Errorf("unselected texel = %v, want untouched", got)
	}
}

func TestPaintRespectsSelection(t *testing.T) {
	c := NewCanvas()
	c.sel[3*skin.Size+3] = 255
	c.hasSel = true

	c.SetColor(9, 9, 9, 255)
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 3, 3))
	c.ApplyStroke(stroke(ToolPencil, StrokeContinue, 4, 3))

	if got := texelAt(c, 3, 3); got[0] != 9 {
		t.Errorf("selected texel = %v, want painted", got)
	}
	if got := texelAt(c, 4, 3); got[3] != 0 {
		t.Errorf("unselected texel = %v, want untouched", got)
	}
}

func TestFuzzySelectRegion(t *testing.T) {
	c := NewCanvas()
	fillRect(c, 0, 0, 8, 8, [4]byte{100, 100, 100, 255})
	fillRect(c, 8, 0, 16, 8, [4]byte{200, 200, 200, 255})

	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeBegin, 2, 2))
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeEnd, 2, 2))

	sel := c.Selection()
	if sel == nil {
		t.Fatal("no selection after fuzzy select")
	}
	if !sel.Selected(7, 7) {
		t.Error("same-color texel not selected")
	}
	if sel.Selected(8, 2) {
		t.Error("different-color texel selected")
	}
}

func TestFuzzySelectThresholdGrowsRegion(t *testing.T) {
	c := NewCanvas()
	fillRect(c, 0, 0, 8, 8, [4]byte{100, 100, 100, 255})
	fillRect(c, 8, 0, 16, 8, [4]byte{130, 130, 130, 255})

	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeBegin, 2, 2))
	if c.Selection().Selected(10, 2) {
		t.Fatal("threshold 15 crossed a 30-unit color step")
	}

	// Threshold drag while the gesture is live re-runs the selection.
	c.SetThreshold(40)
	sel := c.Selection()
	if !sel.Selected(10, 2) {
		t.Error("threshold 40 did not absorb the 30-unit color step")
	}
	if !sel.Selected(2, 2) {
		t.Error("seed region lost after re-run")
	}
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeEnd, 2, 2))

	// After the gesture ends the threshold no longer re-runs anything.
	c.SetThreshold(0)
	if !c.Selection().Selected(10, 2) {
		t.Error("threshold change after gesture end re-ran the selection")
	}
}

func TestFuzzySelectPressResetsThreshold(t *testing.T) {
	c := NewCanvas()
	fillRect(c, 0, 0, 8, 8, [4]byte{100, 100, 100, 255})
	fillRect(c, 8, 0, 16, 8, [4]byte{130, 130, 130, 255})

	// A threshold left over from an earlier drag does not leak into the
	// next press; every select starts from the default.
	c.SetThreshold(80)
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeBegin, 2, 2))

	if c.Threshold() != DefaultThreshold {
		t.Errorf("threshold after press = %v, want %v", c.Threshold(), float32(DefaultThreshold))
	}
	if c.Selection().Selected(10, 2) {
		t.Error("stale threshold crossed the 30-unit color step")
	}
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeEnd, 2, 2))
}

func TestFuzzySelectChannelOps(t *testing.T) {
	c := NewCanvas()
	fillRect(c, 0, 0, 4, 4, [4]byte{50, 50, 50, 255})
	fillRect(c, 4, 0, 8, 4, [4]byte{200, 200, 200, 255})

	// Replace with the left block.
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeBegin, 1, 1))
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeEnd, 1, 1))

	// Add the right block.
	add := stroke(ToolFuzzySelect, StrokeBegin, 5, 1)
	add.Modifiers.Shift = true
	c.ApplyStroke(add)
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeEnd, 5, 1))

	sel := c.Selection()
	if !sel.Selected(1, 1) || !sel.Selected(5, 1) {
		t.Fatal("add did not union the regions")
	}

	// Subtract the left block again.
	sub := stroke(ToolFuzzySelect, StrokeBegin, 1, 1)
	sub.Modifiers.Ctrl = true
	c.ApplyStroke(sub)
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeEnd, 1, 1))

	sel = c.Selection()
	if sel.Selected(1, 1) {
		t.Error("subtract left the left block selected")
	}
	if !sel.Selected(5, 1) {
		t.Error("subtract removed the right block")
	}

	// Intersect with the left block empties the selection.
	inter := stroke(ToolFuzzySelect, StrokeBegin, 1, 1)
	inter.Modifiers.Shift = true
	inter.Modifiers.Ctrl = true
	c.ApplyStroke(inter)
	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeEnd, 1, 1))

	if c.Selection() != nil {
		t.Error("intersect of disjoint regions left a selection")
	}
}

func TestUndoRedo(t *testing.T) {
	c := NewCanvas()
	c.SetColor(10, 20, 30, 255)
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 0, 0))
	c.ApplyStroke(stroke(ToolPencil, StrokeContinue, 1, 0))
	c.ApplyStroke(stroke(ToolPencil, StrokeEnd, 1, 0))

	c.Undo()
	if got := texelAt(c, 0, 0); got[3] != 0 {
		t.Errorf("after undo texel = %v, want transparent", got)
	}

	c.Redo()
	if got := texelAt(c, 1, 0); got != [4]byte{10, 20, 30, 255} {
		t.Errorf("after redo texel = %v, want repainted", got)
	}

	// A new stroke clears the redo stack.
	c.Undo()
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 2, 2))
	before := texelAt(c, 2, 2)
	c.Redo()
	if texelAt(c, 2, 2) != before {
		t.Error("redo after a new stroke changed pixels")
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	c := NewCanvas()
	g0 := c.Composite().Generation()
	c.Undo()
	c.Redo()
	if g1 := c.Composite().Generation(); g1 != g0 {
		t.Errorf("empty undo/redo advanced generation %d -> %d", g0, g1)
	}
}

func TestGenerationsAdvance(t *testing.T) {
	c := NewCanvas()
	g0 := c.Composite().Generation()
	c.SetColor(1, 2, 3, 255)
	c.ApplyStroke(stroke(ToolPencil, StrokeBegin, 0, 0))
	if g1 := c.Composite().Generation(); g1 <= g0 {
		t.Errorf("texture generation %d did not advance past %d", g1, g0)
	}

	c.ApplyStroke(stroke(ToolFuzzySelect, StrokeBegin, 0, 0))
	s1 := c.Selection()
	if s1 == nil {
		t.Fatal("no selection")
	}
	c.SetThreshold(100)
	s2 := c.Selection()
	if s2.Generation() <= s1.Generation() {
		t.Error("selection generation did not advance on threshold re-run")
	}
}

func TestLoadPixels(t *testing.T) {
	c := NewCanvas()
	if err := c.LoadPixels(make([]byte, 10)); err == nil {
		t.Error("short pixel data accepted")
	}
	data := make([]byte, skin.Size*skin.Size*4)
	data[0], data[1], data[2], data[3] = 1, 2, 3, 4
	if err := c.LoadPixels(data); err != nil {
		t.Fatal(err)
	}
	if got := texelAt(c, 0, 0); got != [4]byte{1, 2, 3, 4} {
		t.Errorf("loaded texel = %v", got)
	}
}
