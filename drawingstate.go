package scrawl

/* DrawingKind tags the closed DrawingState union (spec.md §3, §4.2). */
type DrawingKind int

const (
	DrawingIdle DrawingKind = iota
	DrawingActive
	DrawingTextInput
	DrawingPendingTextClick
	DrawingMovingSelection
	DrawingSelecting
	DrawingResizingText
)

type moveSnapshot struct {
	ID    uint64
	Shape Shape
}

type ResizeHandle int

const (
	ResizeHandleBottomRight ResizeHandle = iota
)

/* DrawingState is the input state machine's current mode. Only the fields
relevant to Kind are meaningful; this mirrors a Rust enum's per-variant
payload using a single struct because Go has no sum types, while keeping
Idle as the zero value. */
type DrawingState struct {
	Kind DrawingKind

	Tool  Tool
	Start Point
	Points []Point

	Origin     Point
	TextBuffer string
	EditingID  uint64 /* nonzero when editing an existing Text shape */

	MoveSnapshots []moveSnapshot

	SelectAdditive bool

	ResizeHandle   ResizeHandle
	ResizeSnapshot DrawnShape
}

func (d DrawingState) IsIdle() bool { return d.Kind == DrawingIdle }
