package scrawl

import "testing"

/* seed scenario 1: freehand commit, undo, redo restores identical state. */
func TestFrameUndoRedoFreehand(t *testing.T) {
	f := NewFrame(100)
	shape := Freehand{Points: []Point{{0, 0}, {5, 5}}, Color: Color{R: 255}, Thickness: 4}
	id, ok := f.AddShape(shape, 1000)
	if !ok {
		t.Fatalf("AddShape failed")
	}
	if f.Len() != 1 {
		t.Fatalf("expected 1 shape, got %d", f.Len())
	}

	if !f.Undo() {
		t.Fatalf("Undo reported no action")
	}
	if f.Len() != 0 {
		t.Fatalf("expected 0 shapes after undo, got %d", f.Len())
	}
	if _, ok := f.Get(id); ok {
		t.Fatalf("shape still present after undo")
	}

	if !f.Redo() {
		t.Fatalf("Redo reported no action")
	}
	if f.Len() != 1 {
		t.Fatalf("expected 1 shape after redo, got %d", f.Len())
	}
	got, ok := f.Get(id)
	if !ok {
		t.Fatalf("shape missing after redo")
	}
	if got.Shape.(Freehand).Thickness != 4 {
		t.Fatalf("redo did not restore exact shape")
	}
	if got.CreatedAt != 1000 {
		t.Fatalf("redo did not preserve CreatedAt, got %d", got.CreatedAt)
	}
}

func TestFrameUndoEmptyStackIsNoop(t *testing.T) {
	f := NewFrame(10)
	if f.Undo() {
		t.Fatalf("Undo on empty stack should return false")
	}
	if f.Redo() {
		t.Fatalf("Redo on empty stack should return false")
	}
}

func TestFrameCapacityRejectsBeyondMax(t *testing.T) {
	f := NewFrame(1)
	if _, ok := f.AddShape(Line{}, 0); !ok {
		t.Fatalf("first add should succeed")
	}
	if _, ok := f.AddShape(Line{}, 0); ok {
		t.Fatalf("second add should be rejected at capacity")
	}
	if f.Len() != 1 {
		t.Fatalf("frame should still hold exactly one shape")
	}
}

func TestFrameNewUndoClearsRedoStack(t *testing.T) {
	f := NewFrame(10)
	f.AddShape(Line{}, 0)
	f.Undo()
	if !f.CanRedo() {
		t.Fatalf("expected redo available after undo")
	}
	f.AddShape(Line{}, 0)
	if f.CanRedo() {
		t.Fatalf("pushing a new undo action must clear the redo stack")
	}
}

func TestFrameDeleteManyPreservesZOrderOnUndo(t *testing.T) {
	f := NewFrame(10)
	idA, _ := f.AddShape(Line{Thickness: 1}, 0)
	idB, _ := f.AddShape(Line{Thickness: 2}, 0)
	idC, _ := f.AddShape(Line{Thickness: 3}, 0)

	removed := f.DeleteMany([]uint64{idA, idB})
	var actions []UndoAction
	for _, r := range removed {
		actions = append(actions, deleteAction(r.Index, r.Snap))
	}
	f.PushUndo(compoundAction(actions...), 0)

	if f.Len() != 1 {
		t.Fatalf("expected 1 remaining shape, got %d", f.Len())
	}

	if !f.Undo() {
		t.Fatalf("undo of compound delete failed")
	}
	if f.Len() != 3 {
		t.Fatalf("expected 3 shapes restored, got %d", f.Len())
	}
	order := []uint64{}
	for _, ds := range f.Shapes() {
		order = append(order, ds.ID)
	}
	if order[0] != idA || order[1] != idB || order[2] != idC {
		t.Fatalf("z-order not restored: got %v", order)
	}
}

/* seed scenario 2: arrow label auto-increment and reset. */
func TestArrowLabelAutoIncrementAndReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Arrow.AutoLabel = true
	board := NewBoard("default", Background{}, 100)
	boards := NewBoardSet(10, board)
	s := NewInputState(cfg, boards, func() int64 { return 0 })

	s.Tool = ToolArrow
	s.OnLeftPress(Point{0, 0})
	s.PointerPos = Point{10, 0}
	s.finalizeDrawing(s.activeFrame())

	s.Drawing = DrawingState{Kind: DrawingActive, Tool: ToolArrow, Start: Point{0, 0}}
	s.PointerPos = Point{20, 0}
	s.finalizeDrawing(s.activeFrame())

	f := s.activeFrame()
	shapes := f.Shapes()
	if len(shapes) != 2 {
		t.Fatalf("expected 2 arrows, got %d", len(shapes))
	}
	a0 := shapes[0].Shape.(Arrow)
	a1 := shapes[1].Shape.(Arrow)
	if a0.Label == nil || a1.Label == nil {
		t.Fatalf("expected auto labels to be set")
	}
	if *a0.Label != 1 || *a1.Label != 2 {
		t.Fatalf("expected labels 1,2 got %d,%d", *a0.Label, *a1.Label)
	}

	s.ResetArrowLabelCounter()
	s.Drawing = DrawingState{Kind: DrawingActive, Tool: ToolArrow, Start: Point{0, 0}}
	s.PointerPos = Point{5, 5}
	s.finalizeDrawing(s.activeFrame())
	shapes = f.Shapes()
	a2 := shapes[2].Shape.(Arrow)
	if *a2.Label != 1 {
		t.Fatalf("expected label to reset to 1, got %d", *a2.Label)
	}
}
