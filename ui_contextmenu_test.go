package scrawl

import "testing"

/* seed scenario 6: context menu keyboard navigation skips disabled entries
and wraps around in both directions. */
func TestContextMenuFocusSkipsDisabledAndWraps(t *testing.T) {
	var c ContextMenuState
	c.Open(Point{0, 0}, nil, ContextMenuCanvas, []ContextMenuEntry{
		{Label: "Select All", Command: "select_all", Enabled: true},
		{Label: "Paste", Command: "paste", Enabled: false},
		{Label: "Boards", Command: "open_board_picker", Enabled: true},
	})

	c.FocusNext()
	if c.HoverIndex != 0 {
		t.Fatalf("expected first focus at index 0, got %d", c.HoverIndex)
	}
	c.FocusNext()
	if c.HoverIndex != 2 {
		t.Fatalf("expected focus to skip disabled entry 1 and land on 2, got %d", c.HoverIndex)
	}
	c.FocusNext()
	if c.HoverIndex != 0 {
		t.Fatalf("expected focus to wrap back to 0, got %d", c.HoverIndex)
	}

	c.FocusPrev()
	if c.HoverIndex != 2 {
		t.Fatalf("expected FocusPrev to wrap to last enabled entry 2, got %d", c.HoverIndex)
	}
}

func TestContextMenuActivateRequiresEnabledFocus(t *testing.T) {
	var c ContextMenuState
	c.Open(Point{0, 0}, nil, ContextMenuCanvas, []ContextMenuEntry{
		{Label: "Paste", Command: "paste", Enabled: false},
	})
	if _, ok := c.Activate(); ok {
		t.Fatalf("activating with no keyboard focus set should fail")
	}

	c.HoverIndex = 0
	if _, ok := c.Activate(); ok {
		t.Fatalf("activating a disabled entry should fail")
	}
}

func TestContextMenuActivateClosesMenu(t *testing.T) {
	var c ContextMenuState
	c.Open(Point{0, 0}, nil, ContextMenuShape, []ContextMenuEntry{
		{Label: "Delete", Command: "delete", Enabled: true},
	})
	c.FocusNext()
	cmd, ok := c.Activate()
	if !ok || cmd != "delete" {
		t.Fatalf("expected to activate delete, got %q, %v", cmd, ok)
	}
	if c.IsOpen {
		t.Fatalf("Activate must close the menu")
	}
}

func TestClampContextMenuLayoutKeepsOnScreen(t *testing.T) {
	p := ClampContextMenuLayout(Point{790, 590}, 100, 100, 800, 600)
	if p.X+100 > 800-contextMenuMargin+0.001 {
		t.Fatalf("menu extends past right edge: %v", p)
	}
	if p.Y+100 > 600-contextMenuMargin+0.001 {
		t.Fatalf("menu extends past bottom edge: %v", p)
	}
}

func TestBuildContextMenuEntriesEmptySelectionIsCanvasKind(t *testing.T) {
	kind, entries := BuildContextMenuEntries(Selection{}, true)
	if kind != ContextMenuCanvas {
		t.Fatalf("expected canvas kind for empty selection")
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one canvas entry")
	}
}

func TestBuildContextMenuEntriesWithSelectionIsShapeKind(t *testing.T) {
	kind, entries := BuildContextMenuEntries(NewSelection(1, 2), false)
	if kind != ContextMenuShape {
		t.Fatalf("expected shape kind for non-empty selection")
	}
	if len(entries) == 0 {
		t.Fatalf("expected at least one shape entry")
	}
}
