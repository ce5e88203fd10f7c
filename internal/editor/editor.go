// Package editor defines the painting surface behind the preview: the tools
// a pointer gesture can drive, the stroke requests the interaction layer
// dispatches, and the Host interface those requests are applied to.
package editor

import (
	"fmt"

	"github.com/gnumc/skin3d/internal/skin"
)

// Tool is the active drawing tool. It decides how a dispatched texel is
// applied and which gesture the interaction layer runs for a drag.
type Tool int

const (
	ToolPencil Tool = iota
	ToolPaintbrush
	ToolEraser
	ToolAirbrush
	ToolBucketFill
	ToolColorPicker
	ToolFuzzySelect
)

// String implements fmt.Stringer.
func (t Tool) String() string {
	switch t {
	case ToolPencil:
		return "pencil"
	case ToolPaintbrush:
		return "paintbrush"
	case ToolEraser:
		return "eraser"
	case ToolAirbrush:
		return "airbrush"
	case ToolBucketFill:
		return "bucket-fill"
	case ToolColorPicker:
		return "color-picker"
	case ToolFuzzySelect:
		return "fuzzy-select"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// Paints reports whether the tool edits pixels during a drag. Non-painting
// tools fire once per gesture instead of once per texel.
func (t Tool) Paints() bool {
	switch t {
	case ToolPencil, ToolPaintbrush, ToolEraser, ToolAirbrush:
		return true
	default:
		return false
	}
}

// StrokePhase positions a request within a gesture.
type StrokePhase int

const (
	StrokeBegin StrokePhase = iota
	StrokeContinue
	StrokeEnd
)

// String implements fmt.Stringer.
func (p StrokePhase) String() string {
	switch p {
	case StrokeBegin:
		return "begin"
	case StrokeContinue:
		return "continue"
	case StrokeEnd:
		return "end"
	default:
		return fmt.Sprintf("StrokePhase(%d)", int(p))
	}
}

// Modifiers are the keyboard modifiers held during a pointer event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// ChannelOp is how a new selection region combines with the existing
// selection.
type ChannelOp int

const (
	OpReplace ChannelOp = iota
	OpAdd
	OpSubtract
	OpIntersect
)

// String implements fmt.Stringer.
func (o ChannelOp) String() string {
	switch o {
	case OpReplace:
		return "replace"
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpIntersect:
		return "intersect"
	default:
		return fmt.Sprintf("ChannelOp(%d)", int(o))
	}
}

// OpForModifiers maps selection-tool modifiers to a channel operation:
// plain replaces, Shift adds, Ctrl subtracts, Shift+Ctrl intersects.
func OpForModifiers(m Modifiers) ChannelOp {
	switch {
	case m.Shift && m.Ctrl:
		return OpIntersect
	case m.Shift:
		return OpAdd
	case m.Ctrl:
		return OpSubtract
	default:
		return OpReplace
	}
}

// StrokeRequest is one resolved pointer event: the texel under the cursor
// plus the gesture context it was produced in.
type StrokeRequest struct {
	Tool      Tool
	Phase     StrokePhase
	Texel     skin.Texel
	Modifiers Modifiers
}

// Host is the editing surface the interaction layer talks to. The preview
// never mutates pixels itself; it describes the edit and reads fresh
// snapshots back.
type Host interface {
	// Composite returns the current flattened skin snapshot.
	Composite() *skin.Texture
	// Selection returns the current selection mask, nil when nothing is
	// selected.
	Selection() *skin.Mask
	// ApplyStroke applies one resolved pointer event with the active tool.
	ApplyStroke(StrokeRequest)
	// SetThreshold updates the fuzzy-select threshold and, while a select
	// gesture is live, re-runs the selection with the new value.
	SetThreshold(v float32)
	// Threshold returns the current fuzzy-select threshold.
	Threshold() float32
	// Undo reverts the most recent committed edit.
	Undo()
	// Redo reapplies the most recently undone edit.
	Redo()
}
