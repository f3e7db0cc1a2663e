package scrawl

import (
	"bytes"
	"encoding/gob"
	"errors"
)

var ErrSessionEmpty = errors.New("scrawl: session blob decodes to an empty board set")

/* init registers every Shape variant with the gob package so
DrawnShape.Shape, a plain interface field, survives the encode/decode
round trip (spec.md §3, §9 "closed Shape union"). init runs once per
process, matching how the teacher registers no types at all but gob
requires this for any interface-typed field. */
func init() {
	gob.Register(Freehand{})
	gob.Register(Line{})
	gob.Register(Rectangle{})
	gob.Register(EllipseShape{})
	gob.Register(Arrow{})
	gob.Register(MarkerStroke{})
	gob.Register(Text{})
	gob.Register(StickyNote{})
	gob.Register(EraserStroke{})
}

/* sessionFrame mirrors Frame's persisted fields with exported names; undo
and redo history is deliberately not carried across the hand-off, only
live shape content, matching a "restore content" rather than "restore
history" contract. */
type sessionFrame struct {
	Shapes []DrawnShape
	NextID uint64
	MaxCap int
}

func newSessionFrame(f *Frame) sessionFrame {
	return sessionFrame{Shapes: f.shapes, NextID: f.nextID, MaxCap: f.maxCap}
}

func (sf sessionFrame) restore() *Frame {
	f := NewFrame(sf.MaxCap)
	f.shapes = sf.Shapes
	f.nextID = sf.NextID
	f.rebuildIndex()
	return f
}

type sessionPage struct {
	Name  string
	Frame sessionFrame
}

type sessionBoard struct {
	Name       string
	Background Background
	Pages      []sessionPage
	ActivePage int
}

func newSessionBoard(b *Board) sessionBoard {
	sb := sessionBoard{Name: b.Name, Background: b.Background, ActivePage: b.ActivePage}
	for _, p := range b.Pages {
		sb.Pages = append(sb.Pages, sessionPage{Name: p.Name, Frame: newSessionFrame(p.Frame)})
	}
	return sb
}

func (sb sessionBoard) restore() *Board {
	b := &Board{Name: sb.Name, Background: sb.Background, ActivePage: sb.ActivePage}
	for _, sp := range sb.Pages {
		b.Pages = append(b.Pages, &Page{Name: sp.Name, Frame: sp.Frame.restore()})
	}
	return b
}

/* sessionBlob mirrors BoardSet's unexported fields; it is the opaque
hand-off format allowed by spec.md §1's Non-goals ("no persistence format
beyond an opaque session blob"). */
type sessionBlob struct {
	Boards    []sessionBoard
	ActiveIdx int
	MaxBoards int
}

/* EncodeSession serializes a BoardSet into an opaque blob suitable for
SessionConfig-gated hand-off between process invocations (spec.md §5
"session blob hand-off"). The format is gob and is not guaranteed stable
across versions of this module. */
func EncodeSession(bs *BoardSet) ([]byte, error) {
	blob := sessionBlob{ActiveIdx: bs.activeIdx, MaxBoards: bs.maxBoards}
	for _, b := range bs.boards {
		blob.Boards = append(blob.Boards, newSessionBoard(b))
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(blob); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

/* DecodeSession reverses EncodeSession. It rejects a blob that decodes to
zero boards since BoardSet's invariant is "ordered, non-empty" (board.go). */
func DecodeSession(data []byte) (*BoardSet, error) {
	var blob sessionBlob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&blob); err != nil {
		return nil, err
	}
	if len(blob.Boards) == 0 {
		return nil, ErrSessionEmpty
	}
	bs := &BoardSet{activeIdx: blob.ActiveIdx, maxBoards: blob.MaxBoards}
	for _, sb := range blob.Boards {
		bs.boards = append(bs.boards, sb.restore())
	}
	return bs, nil
}
