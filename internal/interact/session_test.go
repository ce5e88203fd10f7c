package interact

import (
	gomath "math"
	"testing"

	"github.com/gnumc/skin3d/internal/editor"
	"github.com/gnumc/skin3d/internal/model"
	"github.com/gnumc/skin3d/internal/skin"
	"github.com/gnumc/skin3d/pkg/math"
)

// fakeHost records dispatched strokes and threshold updates.
type fakeHost struct {
	reqs      []editor.StrokeRequest
	threshold float32
}

func (h *fakeHost) Composite() *skin.Texture           { return skin.Placeholder() }
func (h *fakeHost) Selection() *skin.Mask              { return nil }
func (h *fakeHost) ApplyStroke(r editor.StrokeRequest) { h.reqs = append(h.reqs, r) }
func (h *fakeHost) SetThreshold(v float32)             { h.threshold = v }
func (h *fakeHost) Threshold() float32                 { return h.threshold }
func (h *fakeHost) Undo()                              {}
func (h *fakeHost) Redo()                              {}

// testFrame looks straight at the head from -Z with a square viewport, so a
// click at the screen center lands on the head's front face.
func testFrame(t *testing.T) Frame {
	t.Helper()
	mesh, err := model.Build(model.VariantClassic, model.PoseStanding)
	if err != nil {
		t.Fatal(err)
	}
	return Frame{
		View: math.LookAt(
			math.Vec3{X: 0, Y: 28, Z: -40},
			math.Vec3{X: 0, Y: 28, Z: 0},
			math.Vec3{X: 0, Y: 1, Z: 0},
		),
		Proj:      math.Perspective(float32(45.0*gomath.Pi/180.0), 1.0, 0.1, 500.0),
		ViewportW: 512,
		ViewportH: 512,
		Mesh:      mesh,
	}
}

func phases(reqs []editor.StrokeRequest) []editor.StrokePhase {
	out := make([]editor.StrokePhase, len(reqs))
	for i, r := range reqs {
		out[i] = r.Phase
	}
	return out
}

func TestClickDispatchesBeginEnd(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	// Half a texel off the exact center, safely inside texel (12,12).
	s.PointerDown(f, 264, 264, editor.Modifiers{})
	if s.Phase() != PhaseDragging {
		t.Fatalf("phase = %v, want dragging", s.Phase())
	}
	s.PointerUp(f, 264, 264, editor.Modifiers{})
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase after up = %v, want idle", s.Phase())
	}

	got := phases(h.reqs)
	if len(got) != 2 || got[0] != editor.StrokeBegin || got[1] != editor.StrokeEnd {
		t.Fatalf("phases = %v, want [begin end]", got)
	}
	if h.reqs[0].Texel != (skin.Texel{X: 12, Y: 12}) {
		t.Errorf("begin texel = %+v, want (12,12)", h.reqs[0].Texel)
	}
}

func TestDragDedupsWithinTexel(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	s.PointerDown(f, 264, 264, editor.Modifiers{})
	// Sub-texel wiggle: both moves resolve to the begin texel.
	s.PointerMove(f, 265, 264, editor.Modifiers{})
	s.PointerMove(f, 264, 265, editor.Modifiers{})
	// A larger move crosses into a neighbouring texel.
	s.PointerMove(f, 296, 256, editor.Modifiers{})
	s.PointerUp(f, 296, 256, editor.Modifiers{})

	got := phases(h.reqs)
	want := []editor.StrokePhase{editor.StrokeBegin, editor.StrokeContinue, editor.StrokeEnd}
	if len(got) != len(want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("phases = %v, want %v", got, want)
		}
	}
	if h.reqs[1].Texel == h.reqs[0].Texel {
		t.Error("continue dispatched for the begin texel")
	}
}

func TestMissedPressIsNoop(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	s.PointerDown(f, 5, 5, editor.Modifiers{})
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle after missed press", s.Phase())
	}
	s.PointerUp(f, 5, 5, editor.Modifiers{})
	if len(h.reqs) != 0 {
		t.Errorf("missed press dispatched %d strokes", len(h.reqs))
	}
}

func TestDragThroughMissKeepsGesture(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	s.PointerDown(f, 256, 256, editor.Modifiers{})
	s.PointerMove(f, 5, 5, editor.Modifiers{}) // off the model
	if s.Phase() != PhaseDragging {
		t.Fatalf("phase = %v, want still dragging", s.Phase())
	}
	s.PointerMove(f, 256, 256, editor.Modifiers{})
	s.PointerUp(f, 256, 256, editor.Modifiers{})

	// Returning to the begin texel must not re-dispatch it.
	got := phases(h.reqs)
	if len(got) != 2 || got[1] != editor.StrokeEnd {
		t.Fatalf("phases = %v, want [begin end]", got)
	}
}

func TestThresholdDrag(t *testing.T) {
	h := &fakeHost{threshold: 15}
	s := NewSession(h)
	f := testFrame(t)
	s.SetTool(editor.ToolFuzzySelect)

	s.PointerDown(f, 256, 256, editor.Modifiers{})
	if s.Phase() != PhaseThresholdDrag {
		t.Fatalf("phase = %v, want threshold drag", s.Phase())
	}
	if len(h.reqs) != 1 || h.reqs[0].Phase != editor.StrokeBegin {
		t.Fatalf("reqs = %v, want one begin", h.reqs)
	}

	// 20 screen pixels right at 0.5 threshold units per pixel.
	s.PointerMove(f, 276, 256, editor.Modifiers{})
	if h.threshold != 25 {
		t.Errorf("threshold = %v, want 25", h.threshold)
	}
	// Moves are anchored at the press, not cumulative.
	s.PointerMove(f, 236, 256, editor.Modifiers{})
	if h.threshold != 5 {
		t.Errorf("threshold = %v, want 5", h.threshold)
	}

	s.PointerUp(f, 236, 256, editor.Modifiers{})
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase after up = %v, want idle", s.Phase())
	}
	if last := h.reqs[len(h.reqs)-1]; last.Phase != editor.StrokeEnd {
		t.Errorf("last stroke = %v, want end", last.Phase)
	}
}

func TestAltSkipsThresholdDrag(t *testing.T) {
	h := &fakeHost{threshold: 15}
	s := NewSession(h)
	f := testFrame(t)
	s.SetTool(editor.ToolFuzzySelect)

	s.PointerDown(f, 256, 256, editor.Modifiers{Alt: true})
	if s.Phase() != PhaseDragging {
		t.Fatalf("phase = %v, want plain drag with alt held", s.Phase())
	}
	s.PointerMove(f, 276, 256, editor.Modifiers{Alt: true})
	if h.threshold != 15 {
		t.Errorf("threshold = %v, want untouched", h.threshold)
	}
}

func TestHoverTracking(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	if _, ok := s.Hover(); ok {
		t.Error("fresh session reports a hover")
	}

	s.PointerMove(f, 264, 264, editor.Modifiers{})
	hov, ok := s.Hover()
	if !ok || hov != (skin.Texel{X: 12, Y: 12}) {
		t.Errorf("hover = %+v, %v, want (12,12)", hov, ok)
	}

	s.PointerMove(f, 5, 5, editor.Modifiers{})
	if _, ok := s.Hover(); ok {
		t.Error("hover survives moving off the model")
	}

	s.PointerMove(f, 264, 264, editor.Modifiers{})
	s.PointerLeave()
	if _, ok := s.Hover(); ok {
		t.Error("hover survives pointer leave")
	}
}

func TestPointerLeaveEndsGesture(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	s.PointerDown(f, 264, 264, editor.Modifiers{})
	s.PointerLeave()
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase after leave = %v, want idle", s.Phase())
	}
	if _, ok := s.Hover(); ok {
		t.Error("hover survives pointer leave")
	}
	got := phases(h.reqs)
	if len(got) != 2 || got[1] != editor.StrokeEnd {
		t.Fatalf("phases = %v, want [begin end]", got)
	}

	// A live threshold drag is discarded the same way: moves after the
	// leave no longer touch the threshold.
	s.SetTool(editor.ToolFuzzySelect)
	s.PointerDown(f, 256, 256, editor.Modifiers{})
	s.PointerLeave()
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase after leave = %v, want idle", s.Phase())
	}
	s.PointerMove(f, 276, 256, editor.Modifiers{})
	if h.threshold != 0 {
		t.Errorf("threshold = %v, want untouched after leave", h.threshold)
	}
}

func TestOneShotToolDragStreamsContinues(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)
	s.SetTool(editor.ToolBucketFill)

	// The host owns tool meaning; the gesture core dispatches per-texel
	// continues for every tool and lets the host ignore them.
	s.PointerDown(f, 264, 264, editor.Modifiers{})
	s.PointerMove(f, 296, 256, editor.Modifiers{})
	s.PointerUp(f, 296, 256, editor.Modifiers{})

	got := phases(h.reqs)
	want := []editor.StrokePhase{editor.StrokeBegin, editor.StrokeContinue, editor.StrokeEnd}
	if len(got) != len(want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("phases = %v, want %v", got, want)
		}
	}
}

func TestGestureModifiersReachEnd(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	s.PointerDown(f, 264, 264, editor.Modifiers{Shift: true})
	s.PointerUp(f, 264, 264, editor.Modifiers{Shift: true})

	end := h.reqs[len(h.reqs)-1]
	if end.Phase != editor.StrokeEnd || !end.Modifiers.Shift {
		t.Errorf("end request = %+v, want shift carried through", end)
	}
}

func TestSetToolEndsLiveGesture(t *testing.T) {
	h := &fakeHost{}
	s := NewSession(h)
	f := testFrame(t)

	s.PointerDown(f, 256, 256, editor.Modifiers{})
	s.SetTool(editor.ToolEraser)
	if s.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want idle after tool switch", s.Phase())
	}
	got := phases(h.reqs)
	if len(got) != 2 || got[1] != editor.StrokeEnd {
		t.Fatalf("phases = %v, want [begin end]", got)
	}
	if s.Tool() != editor.ToolEraser {
		t.Errorf("tool = %v, want eraser", s.Tool())
	}
}
