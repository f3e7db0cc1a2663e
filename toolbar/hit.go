package toolbar

import "github.com/friedelschoen/scrawl"

/* RegionKind distinguishes a plain click from a region that tracks drag
motion while the button stays down (spec.md §4.10). */
type RegionKind int

const (
	RegionClick RegionKind = iota
	RegionDrag
)

/* Event names the abstract action a region performs when hit; the
backend interprets it, the toolbar package never reaches into InputState
directly (spec.md §1 "narrow interface boundary"). */
type Event int

const (
	EventSelectTool Event = iota
	EventSelectColor
	EventThicknessDrag
	EventFontSizeDrag
	EventPresetSlot
	EventBoardSwitch
	EventBoardAdd
	EventOpenDrawer
	EventMoveHandle
	EventUndo
	EventRedo
)

/* HitRegion is one interactive rectangle on a toolbar surface (spec.md
§4.10). Arg carries an auxiliary index (tool id, preset slot, board
index) where Event needs one; Tooltip is shown on hover. */
type HitRegion struct {
	Rect    scrawl.Rect
	Event   Event
	Kind    RegionKind
	Arg     int
	Tooltip string
}

/* hitTest returns the topmost region containing p: later regions are
painted over earlier ones, so the last match wins. */
func hitTest(regions []HitRegion, p scrawl.Point) (HitRegion, bool) {
	for i := len(regions) - 1; i >= 0; i-- {
		if regions[i].Rect.Contains(p) {
			return regions[i], true
		}
	}
	return HitRegion{}, false
}

/* Intent is the command a pointer interaction with a toolbar surface
produces; the backend applies it to InputState the same way it applies a
keybinding (spec.md §4.10). */
type Intent struct {
	Event Event
	Arg   int
	/* Value carries the drag position along the slider/drawer axis for
	RegionDrag events, 0..1 normalized to the region's own extent. */
	Value float64
}
