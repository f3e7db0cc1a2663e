package scrawl

import "errors"

var ErrBoardSetFull = errors.New("scrawl: board set at configured maximum")
var ErrNoActivePage = errors.New("scrawl: board has no pages")

/* BackgroundMode tags a board's background (spec.md §3). */
type BackgroundMode int

const (
	BackgroundTransparent BackgroundMode = iota
	BackgroundSolid
)

type Background struct {
	Mode  BackgroundMode
	Color Color
}

/* Page is a Frame plus a user-visible name. */
type Page struct {
	Name  string
	Frame *Frame
}

/* Board groups an ordered, non-empty sequence of pages under one
background and name. */
type Board struct {
	Name       string
	Background Background
	Pages      []*Page
	ActivePage int
}

func NewBoard(name string, bg Background, maxShapesPerFrame int) *Board {
	return &Board{
		Name:       name,
		Background: bg,
		Pages:      []*Page{{Name: "1", Frame: NewFrame(maxShapesPerFrame)}},
		ActivePage: 0,
	}
}

func (b *Board) Active() (*Page, bool) {
	if b.ActivePage < 0 || b.ActivePage >= len(b.Pages) {
		return nil, false
	}
	return b.Pages[b.ActivePage], true
}

func (b *Board) AddPage(name string, maxShapesPerFrame int) int {
	b.Pages = append(b.Pages, &Page{Name: name, Frame: NewFrame(maxShapesPerFrame)})
	return len(b.Pages) - 1
}

func (b *Board) RemovePage(index int) bool {
	if len(b.Pages) <= 1 || index < 0 || index >= len(b.Pages) {
		return false
	}
	b.Pages = append(b.Pages[:index], b.Pages[index+1:]...)
	if b.ActivePage >= len(b.Pages) {
		b.ActivePage = len(b.Pages) - 1
	}
	return true
}

/* BoardSet is an ordered, non-empty sequence of boards bounded by a
configured maximum. */
type BoardSet struct {
	boards     []*Board
	activeIdx  int
	maxBoards  int
}

func NewBoardSet(maxBoards int, initial *Board) *BoardSet {
	return &BoardSet{boards: []*Board{initial}, maxBoards: maxBoards}
}

func (bs *BoardSet) Boards() []*Board { return bs.boards }

func (bs *BoardSet) Active() *Board { return bs.boards[bs.activeIdx] }

func (bs *BoardSet) ActiveIndex() int { return bs.activeIdx }

func (bs *BoardSet) SetActive(idx int) bool {
	if idx < 0 || idx >= len(bs.boards) {
		return false
	}
	bs.activeIdx = idx
	return true
}

func (bs *BoardSet) Add(b *Board) error {
	if bs.maxBoards > 0 && len(bs.boards) >= bs.maxBoards {
		return ErrBoardSetFull
	}
	bs.boards = append(bs.boards, b)
	return nil
}

func (bs *BoardSet) Remove(idx int) bool {
	if len(bs.boards) <= 1 || idx < 0 || idx >= len(bs.boards) {
		return false
	}
	bs.boards = append(bs.boards[:idx], bs.boards[idx+1:]...)
	if bs.activeIdx >= len(bs.boards) {
		bs.activeIdx = len(bs.boards) - 1
	}
	return true
}

/* Reorder moves the board at from to index to, used by board-picker
drag-and-drop (spec.md §4.6). */
func (bs *BoardSet) Reorder(from, to int) bool {
	if from < 0 || from >= len(bs.boards) || to < 0 || to >= len(bs.boards) {
		return false
	}
	b := bs.boards[from]
	bs.boards = append(bs.boards[:from], bs.boards[from+1:]...)
	bs.boards = append(bs.boards[:to], append([]*Board{b}, bs.boards[to:]...)...)
	if bs.activeIdx == from {
		bs.activeIdx = to
	}
	return true
}

/* ActiveFrame is a convenience accessor used throughout InputState. */
func (bs *BoardSet) ActiveFrame() (*Frame, error) {
	b := bs.Active()
	p, ok := b.Active()
	if !ok {
		return nil, ErrNoActivePage
	}
	return p.Frame, nil
}
