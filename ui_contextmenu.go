package scrawl

/* ContextMenuKind distinguishes a menu opened over a shape from one opened
over empty canvas (spec.md §4.6). */
type ContextMenuKind int

const (
	ContextMenuShape ContextMenuKind = iota
	ContextMenuCanvas
)

/* ContextMenuEntry is one activatable row. Disabled entries are skipped by
keyboard focus traversal. */
type ContextMenuEntry struct {
	Label    string
	Command  string
	Enabled  bool
}

/* ContextMenuState is Hidden or Open, tagged by the IsOpen flag rather than
a Go interface so the backend can keep one struct as a stable pointer
target across frames. */
type ContextMenuState struct {
	IsOpen         bool
	Anchor         Point
	ShapeIDs       []uint64
	Kind           ContextMenuKind
	Entries        []ContextMenuEntry
	HoverIndex     int
	KeyboardFocus  bool
	HoveredShapeID uint64
}

func (c *ContextMenuState) Open(anchor Point, shapeIDs []uint64, kind ContextMenuKind, entries []ContextMenuEntry) {
	c.IsOpen = true
	c.Anchor = anchor
	c.ShapeIDs = shapeIDs
	c.Kind = kind
	c.Entries = entries
	c.HoverIndex = -1
	c.KeyboardFocus = false
	c.HoveredShapeID = 0
}

func (c *ContextMenuState) Close() {
	*c = ContextMenuState{}
}

func (c *ContextMenuState) enabledIndices() []int {
	var idxs []int
	for i, e := range c.Entries {
		if e.Enabled {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

/* FocusNext/FocusPrev advance keyboard focus over enabled entries only,
wrapping around; they set KeyboardFocus true (spec.md seed scenario 6). */
func (c *ContextMenuState) FocusNext() {
	idxs := c.enabledIndices()
	if len(idxs) == 0 {
		return
	}
	c.KeyboardFocus = true
	if c.HoverIndex < 0 {
		c.HoverIndex = idxs[0]
		return
	}
	for i, v := range idxs {
		if v == c.HoverIndex {
			c.HoverIndex = idxs[(i+1)%len(idxs)]
			return
		}
	}
	c.HoverIndex = idxs[0]
}

func (c *ContextMenuState) FocusPrev() {
	idxs := c.enabledIndices()
	if len(idxs) == 0 {
		return
	}
	c.KeyboardFocus = true
	if c.HoverIndex < 0 {
		c.HoverIndex = idxs[len(idxs)-1]
		return
	}
	for i, v := range idxs {
		if v == c.HoverIndex {
			c.HoverIndex = idxs[(i-1+len(idxs))%len(idxs)]
			return
		}
	}
	c.HoverIndex = idxs[len(idxs)-1]
}

/* Activate returns the command bound to the focused entry and closes the
menu, or ("", false) if nothing is focused/enabled. */
func (c *ContextMenuState) Activate() (string, bool) {
	if c.HoverIndex < 0 || c.HoverIndex >= len(c.Entries) {
		return "", false
	}
	e := c.Entries[c.HoverIndex]
	if !e.Enabled {
		return "", false
	}
	cmd := e.Command
	c.Close()
	return cmd, true
}

/* ClampContextMenuLayout nudges anchor so a menu of size (w,h) stays within the
screen with a 6px margin (spec.md §4.6). */
const contextMenuMargin = 6.0

func ClampContextMenuLayout(anchor Point, w, h, screenW, screenH float64) Point {
	x, y := anchor.X, anchor.Y
	if x+w > screenW-contextMenuMargin {
		x = screenW - contextMenuMargin - w
	}
	if y+h > screenH-contextMenuMargin {
		y = screenH - contextMenuMargin - h
	}
	if x < contextMenuMargin {
		x = contextMenuMargin
	}
	if y < contextMenuMargin {
		y = contextMenuMargin
	}
	return Point{x, y}
}

/* BuildContextMenuEntries generates entries lazily from the current
selection and board mode (spec.md §4.6). */
func BuildContextMenuEntries(sel Selection, boardModeEnabled bool) (ContextMenuKind, []ContextMenuEntry) {
	if sel.IsEmpty() {
		entries := []ContextMenuEntry{
			{Label: "Select All", Command: "select_all", Enabled: true},
			{Label: "Clear Canvas", Command: "clear", Enabled: true},
			{Label: "Paste", Command: "paste", Enabled: true},
			{Label: "Boards", Command: "open_board_picker", Enabled: boardModeEnabled},
		}
		return ContextMenuCanvas, entries
	}
	entries := []ContextMenuEntry{
		{Label: "Duplicate", Command: "duplicate", Enabled: true},
		{Label: "Delete", Command: "delete", Enabled: true},
		{Label: "Bring to Front", Command: "to_front", Enabled: true},
		{Label: "Send to Back", Command: "to_back", Enabled: true},
		{Label: "Lock/Unlock", Command: "toggle_lock", Enabled: true},
		{Label: "Properties", Command: "open_properties", Enabled: true},
	}
	return ContextMenuShape, entries
}
