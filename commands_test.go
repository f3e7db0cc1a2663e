package scrawl

import "testing"

func newTestInputState() *InputState {
	cfg := DefaultConfig()
	board := NewBoard("default", Background{}, 100)
	boards := NewBoardSet(10, board)
	return NewInputState(cfg, boards, func() int64 { return 0 })
}

func TestExecuteCommandDeleteAndUndo(t *testing.T) {
	s := newTestInputState()
	f := s.activeFrame()
	id, _ := f.AddShape(Line{A: Point{0, 0}, B: Point{1, 1}}, 0)
	s.Selection = NewSelection(id)

	s.ExecuteCommand("delete")
	if f.Len() != 0 {
		t.Fatalf("expected shape deleted, frame still has %d", f.Len())
	}
	if !s.Selection.IsEmpty() {
		t.Fatalf("expected selection cleared after delete")
	}

	if !f.Undo() {
		t.Fatalf("expected undo to restore deleted shape")
	}
	if f.Len() != 1 {
		t.Fatalf("expected 1 shape after undo, got %d", f.Len())
	}
}

func TestExecuteCommandDuplicateIsSingleUndoStep(t *testing.T) {
	s := newTestInputState()
	f := s.activeFrame()
	id1, _ := f.AddShape(Rectangle{Origin: Point{0, 0}, Width: 5, Height: 5}, 0)
	id2, _ := f.AddShape(Rectangle{Origin: Point{20, 20}, Width: 5, Height: 5}, 0)
	s.Selection = NewSelection(id1, id2)

	before := f.Len()
	s.ExecuteCommand("duplicate")
	if f.Len() != before+2 {
		t.Fatalf("expected 2 new shapes, got %d new", f.Len()-before)
	}

	if !f.Undo() {
		t.Fatalf("expected undo to be available")
	}
	if f.Len() != before {
		t.Fatalf("expected a single undo to remove both duplicated shapes, got %d", f.Len())
	}
}

func TestExecuteCommandSelectAllExcludesEraserStrokes(t *testing.T) {
	s := newTestInputState()
	f := s.activeFrame()
	idLine, _ := f.AddShape(Line{}, 0)
	f.AddShape(EraserStroke{Points: []Point{{0, 0}}, Radius: 5}, 0)

	s.ExecuteCommand("select_all")
	if !s.Selection.Contains(idLine) {
		t.Fatalf("expected line to be selected")
	}
	if len(s.Selection.IDs()) != 1 {
		t.Fatalf("expected only the non-eraser shape selected, got %d", len(s.Selection.IDs()))
	}
}

func TestExecuteCommandToggleLock(t *testing.T) {
	s := newTestInputState()
	f := s.activeFrame()
	id, _ := f.AddShape(Line{}, 0)
	s.Selection = NewSelection(id)

	s.ExecuteCommand("toggle_lock")
	ds, _ := f.Get(id)
	if !ds.Locked {
		t.Fatalf("expected shape to become locked")
	}
	s.ExecuteCommand("toggle_lock")
	ds, _ = f.Get(id)
	if ds.Locked {
		t.Fatalf("expected shape to become unlocked")
	}
}

func TestExecuteCommandWhiteboardSetsBackground(t *testing.T) {
	s := newTestInputState()
	s.ExecuteCommand("whiteboard")
	bg := s.Boards.Active().Background
	if bg.Mode != BackgroundSolid || bg != (Background{Mode: BackgroundSolid, Color: s.cfg.Board.WhiteboardRGB}) {
		t.Fatalf("unexpected background after whiteboard command: %+v", bg)
	}
}

func TestExecuteCommandExitSetsFlag(t *testing.T) {
	s := newTestInputState()
	s.ExecuteCommand("exit")
	if !s.Exit {
		t.Fatalf("expected Exit to be set")
	}
}
