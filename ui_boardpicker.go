package scrawl

import (
	"fmt"
	"strconv"
	"strings"
)

/* BoardPickerLayout selects between the full (drag handles, pins,
swatches, palette, page thumbnails) and quick (compact list only) layouts
(spec.md §4.6). */
type BoardPickerLayout int

const (
	BoardPickerQuick BoardPickerLayout = iota
	BoardPickerFull
)

type BoardPickerMode int

const (
	BoardPickerModeList BoardPickerMode = iota
	BoardPickerModeEditColor
	BoardPickerModeEditName
)

type BoardPickerState struct {
	Visible bool
	Layout  BoardPickerLayout
	Mode    BoardPickerMode

	EditingBoardIndex int
	EditBuffer        string
	DragFromIndex     int
	DragActive        bool

	Warning string /* non-empty when a hex edit failed validation */
}

func (b *BoardPickerState) Open(layout BoardPickerLayout) {
	b.Visible = true
	b.Layout = layout
	b.Mode = BoardPickerModeList
	b.EditingBoardIndex = -1
	b.Warning = ""
}

func (b *BoardPickerState) Close() {
	*b = BoardPickerState{EditingBoardIndex: -1}
}

func (b *BoardPickerState) BeginDrag(index int) {
	b.DragActive = true
	b.DragFromIndex = index
}

/* EndDrag reorders boards in bs if a drag was active, clearing drag state
regardless of outcome. */
func (b *BoardPickerState) EndDrag(bs *BoardSet, toIndex int) bool {
	if !b.DragActive {
		return false
	}
	b.DragActive = false
	return bs.Reorder(b.DragFromIndex, toIndex)
}

/* BeginColorEdit opens the hex editor for a board, prefilled with its
current color. */
func (b *BoardPickerState) BeginColorEdit(index int, current Color) {
	b.Mode = BoardPickerModeEditColor
	b.EditingBoardIndex = index
	b.EditBuffer = formatHex(current)
	b.Warning = ""
}

/* CommitColorEdit validates the hex buffer; an invalid hex leaves state
unchanged and sets Warning so the caller can surface a toast (spec.md
§4.6, §7). */
func (b *BoardPickerState) CommitColorEdit(board *Board) bool {
	c, err := parseHex(b.EditBuffer)
	if err != nil {
		b.Warning = err.Error()
		return false
	}
	board.Background = Background{Mode: BackgroundSolid, Color: c}
	b.Mode = BoardPickerModeList
	b.Warning = ""
	return true
}

var ErrInvalidHexColor = fmt.Errorf("scrawl: invalid hex color")

func parseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, ErrInvalidHexColor
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, ErrInvalidHexColor
	}
	if len(s) == 6 {
		return Color{
			R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255,
		}, nil
	}
	return Color{
		R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v),
	}, nil
}

func formatHex(c Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
