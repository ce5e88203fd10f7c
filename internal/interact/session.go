// Package interact turns raw pointer events into editor strokes: it picks
// the texel under the cursor against the current frame's camera and mesh,
// runs the per-tool gesture state machine and dispatches deduplicated stroke
// requests to the editor host.
package interact

import (
	"github.com/gnumc/skin3d/internal/editor"
	"github.com/gnumc/skin3d/internal/model"
	"github.com/gnumc/skin3d/internal/picking"
	"github.com/gnumc/skin3d/internal/skin"
	"github.com/gnumc/skin3d/pkg/math"
)

// thresholdPerPixel is how much one screen pixel of horizontal drag changes
// the fuzzy-select threshold.
const thresholdPerPixel = 0.5

// Phase is the gesture state of the session.
type Phase int

const (
	// PhaseIdle means no button gesture is running; moves only update hover.
	PhaseIdle Phase = iota
	// PhaseDragging is a paint or one-shot tool gesture.
	PhaseDragging
	// PhaseThresholdDrag is a live fuzzy-select whose threshold follows
	// horizontal pointer movement.
	PhaseThresholdDrag
)

// Frame is the per-frame context picks run against. The caller fills it from
// the camera and the built mesh before forwarding pointer events.
type Frame struct {
	View      math.Mat4
	Proj      math.Mat4
	ViewportW float32
	ViewportH float32
	Mesh      *model.Mesh
	Overlay   bool // overlay layer participates in picking
}

// Session owns one pointer's gesture state against an editor host.
// Not safe for concurrent use.
type Session struct {
	host  editor.Host
	tool  editor.Tool
	phase Phase

	last    skin.Texel // last dispatched texel of the live gesture
	hasLast bool
	mods    editor.Modifiers // modifier state as of the latest gesture event

	dragStartX    float32
	baseThreshold float32

	hover    skin.Texel
	hasHover bool
}

// NewSession creates a session dispatching to the given host, with the
// pencil active.
func NewSession(host editor.Host) *Session {
	return &Session{host: host, tool: editor.ToolPencil}
}

// Tool returns the active tool.
func (s *Session) Tool() editor.Tool {
	return s.tool
}

// SetTool switches the active tool. Switching during a gesture ends it
// first so the host never sees a stroke change tools midway.
func (s *Session) SetTool(t editor.Tool) {
	if s.phase != PhaseIdle {
		s.finish()
	}
	s.tool = t
}

// Phase returns the current gesture phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Hover returns the texel under the cursor as of the last pointer event,
// and false when the cursor is off the model.
func (s *Session) Hover() (skin.Texel, bool) {
	return s.hover, s.hasHover
}

// PointerDown starts a gesture. A press that misses the model is a no-op.
func (s *Session) PointerDown(f Frame, x, y float32, mods editor.Modifiers) {
	res, ok := s.pick(f, x, y)
	if !ok {
		return
	}

	if s.tool == editor.ToolFuzzySelect && !mods.Alt {
		s.phase = PhaseThresholdDrag
		s.dragStartX = x
	} else {
		s.phase = PhaseDragging
	}

	s.last = res.Texel
	s.hasLast = true
	s.mods = mods
	s.host.ApplyStroke(editor.StrokeRequest{
		Tool:      s.tool,
		Phase:     editor.StrokeBegin,
		Texel:     res.Texel,
		Modifiers: mods,
	})

	// The host may reset its threshold when the select begins, so the drag
	// anchors at whatever value it settled on.
	if s.phase == PhaseThresholdDrag {
		s.baseThreshold = s.host.Threshold()
	}
}

// PointerMove advances the live gesture and refreshes the hover texel.
func (s *Session) PointerMove(f Frame, x, y float32, mods editor.Modifiers) {
	res, hit := s.pick(f, x, y)
	if s.phase != PhaseIdle {
		s.mods = mods
	}

	switch s.phase {
	case PhaseThresholdDrag:
		// Horizontal distance from the press maps linearly onto the
		// threshold, anchored at its value when the gesture began.
		v := s.baseThreshold + (x-s.dragStartX)*thresholdPerPixel
		s.host.SetThreshold(v)

	case PhaseDragging:
		if !hit {
			break
		}
		// Sub-texel pointer movement resolves to the same texel; dispatch
		// only when the stroke actually advances.
		if s.hasLast && res.Texel == s.last {
			break
		}
		s.last = res.Texel
		s.hasLast = true
		s.host.ApplyStroke(editor.StrokeRequest{
			Tool:      s.tool,
			Phase:     editor.StrokeContinue,
			Texel:     res.Texel,
			Modifiers: mods,
		})
	}
}

// PointerUp ends the live gesture, if any.
func (s *Session) PointerUp(f Frame, x, y float32, mods editor.Modifiers) {
	if s.phase == PhaseIdle {
		return
	}
	s.mods = mods
	s.finish()
}

// PointerLeave clears the hover state and ends any live gesture, discarding
// its drag anchors. The next press starts fresh.
func (s *Session) PointerLeave() {
	s.hasHover = false
	if s.phase != PhaseIdle {
		s.finish()
	}
}

// finish dispatches the end of the live gesture and returns to idle.
func (s *Session) finish() {
	s.host.ApplyStroke(editor.StrokeRequest{
		Tool:      s.tool,
		Phase:     editor.StrokeEnd,
		Texel:     s.last,
		Modifiers: s.mods,
	})
	s.phase = PhaseIdle
	s.hasLast = false
	s.mods = editor.Modifiers{}
}

// pick resolves a screen position against the frame and records the hover.
func (s *Session) pick(f Frame, x, y float32) (picking.Result, bool) {
	res, ok := picking.Pick(x, y, f.ViewportW, f.ViewportH, f.View, f.Proj, f.Mesh, f.Overlay)
	if ok {
		s.hover = res.Texel
		s.hasHover = true
	} else {
		s.hasHover = false
	}
	return res, ok
}
