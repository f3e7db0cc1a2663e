package scrawl

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracerFrame() tracing.Trace {
	return tracing.Select("scrawl.frame")
}

/* UndoAction is a closed union of reversible frame edits. Reorder tracks
old/new index so its inverse is exact, per spec.md §3 invariant. */
type UndoAction struct {
	kind undoKind

	// Create / Delete
	index    int
	snapshot DrawnShape

	// Modify
	id     uint64
	before Shape
	after  Shape

	// Reorder
	oldIndex, newIndex int

	// Compound
	children []UndoAction
}

type undoKind int

const (
	undoCreate undoKind = iota
	undoDelete
	undoModify
	undoReorder
	undoCompound
)

func createAction(index int, snap DrawnShape) UndoAction {
	return UndoAction{kind: undoCreate, index: index, snapshot: snap}
}

func deleteAction(index int, snap DrawnShape) UndoAction {
	return UndoAction{kind: undoDelete, index: index, snapshot: snap}
}

func modifyAction(id uint64, before, after Shape) UndoAction {
	return UndoAction{kind: undoModify, id: id, before: before, after: after}
}

func reorderAction(id uint64, oldIdx, newIdx int) UndoAction {
	return UndoAction{kind: undoReorder, id: id, oldIndex: oldIdx, newIndex: newIdx}
}

func compoundAction(children ...UndoAction) UndoAction {
	return UndoAction{kind: undoCompound, children: children}
}

/* inverse returns the action that exactly undoes a. */
func (a UndoAction) inverse() UndoAction {
	switch a.kind {
	case undoCreate:
		return deleteAction(a.index, a.snapshot)
	case undoDelete:
		return createAction(a.index, a.snapshot)
	case undoModify:
		return modifyAction(a.id, a.after, a.before)
	case undoReorder:
		return reorderAction(a.id, a.newIndex, a.oldIndex)
	case undoCompound:
		inv := make([]UndoAction, len(a.children))
		for i, c := range a.children {
			inv[len(a.children)-1-i] = c.inverse()
		}
		return compoundAction(inv...)
	}
	return UndoAction{}
}

/* Frame is an ordered sequence of DrawnShape representing one page of one
board, plus its own bounded undo/redo stacks (spec.md §3, §4.1). */
type Frame struct {
	shapes  []DrawnShape
	index   map[uint64]int
	nextID  uint64
	undo    []UndoAction
	redo    []UndoAction
	maxCap  int
}

func NewFrame(maxShapes int) *Frame {
	return &Frame{
		index:  make(map[uint64]int),
		maxCap: maxShapes,
	}
}

func (f *Frame) Len() int { return len(f.shapes) }

func (f *Frame) Shapes() []DrawnShape { return f.shapes }

func (f *Frame) Get(id uint64) (DrawnShape, bool) {
	idx, ok := f.index[id]
	if !ok {
		return DrawnShape{}, false
	}
	return f.shapes[idx], true
}

func (f *Frame) rebuildIndex() {
	clear(f.index)
	for i, s := range f.shapes {
		f.index[s.ID] = i
	}
}

/* AddShape appends shape if the frame is below capacity and returns the
new id, or (0, false) at the cap — callers log and discard per spec.md
§4.1. */
func (f *Frame) AddShape(shape Shape, createdAtMs int64) (uint64, bool) {
	if len(f.shapes) >= f.maxCap {
		tracerFrame().Infof("shape discarded: frame at capacity %d", f.maxCap)
		return 0, false
	}
	f.nextID++
	id := f.nextID
	ds := DrawnShape{ID: id, CreatedAt: createdAtMs, Shape: shape}
	idx := len(f.shapes)
	f.shapes = append(f.shapes, ds)
	f.index[id] = idx
	f.PushUndo(createAction(idx, ds), 0)
	return id, true
}

/* TryAddShapeWithID mirrors AddShape but lets interactive callers pick the
id ahead of time (used when finalizing a provisional shape whose id was
already shown in the properties panel during drawing). cap overrides the
frame's configured maximum for this call only. */
func (f *Frame) TryAddShapeWithID(id uint64, shape Shape, createdAtMs, cap int) bool {
	if cap <= 0 {
		cap = f.maxCap
	}
	if len(f.shapes) >= cap {
		return false
	}
	if id > f.nextID {
		f.nextID = id
	}
	ds := DrawnShape{ID: id, CreatedAt: createdAtMs, Shape: shape}
	idx := len(f.shapes)
	f.shapes = append(f.shapes, ds)
	f.index[id] = idx
	return true
}

/* Delete removes a shape and returns its index/snapshot for undo. */
func (f *Frame) Delete(id uint64) (int, DrawnShape, bool) {
	idx, ok := f.index[id]
	if !ok {
		return 0, DrawnShape{}, false
	}
	snap := f.shapes[idx]
	f.shapes = append(f.shapes[:idx], f.shapes[idx+1:]...)
	delete(f.index, id)
	f.rebuildIndex()
	return idx, snap, true
}

/* DeleteMany removes several shapes, returning index/snapshot pairs in the
original z-order. Each Index is the shape's position at the moment of its
own removal, after the pairs before it are gone, so re-inserting the pairs
in reverse order (as undoing the compound delete does) restores identical
ordering. */
func (f *Frame) DeleteMany(ids []uint64) []struct {
	Index int
	Snap  DrawnShape
} {
	type pair struct {
		Index int
		Snap  DrawnShape
	}
	var removed []pair
	idset := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		idset[id] = true
	}
	for _, s := range f.shapes {
		if idset[s.ID] {
			idx := f.index[s.ID]
			removed = append(removed, pair{idx - len(removed), s})
		}
	}
	kept := f.shapes[:0:0]
	for _, s := range f.shapes {
		if !idset[s.ID] {
			kept = append(kept, s)
		}
	}
	f.shapes = kept
	f.rebuildIndex()

	out := make([]struct {
		Index int
		Snap  DrawnShape
	}, len(removed))
	for i, r := range removed {
		out[i] = struct {
			Index int
			Snap  DrawnShape
		}{r.Index, r.Snap}
	}
	return out
}

/* Modify runs mutator on the shape with id, capturing before/after. It
returns false if id is unknown; the undo stack and frame are left
untouched in that case (spec.md §7 recovery policy). */
func (f *Frame) Modify(id uint64, mutator func(Shape) Shape) (before, after Shape, ok bool) {
	idx, found := f.index[id]
	if !found {
		return nil, nil, false
	}
	before = f.shapes[idx].Shape
	after = mutator(before)
	f.shapes[idx].Shape = after
	return before, after, true
}

/* ReplaceAt sets the shape at the given id directly, used when applying an
undo/redo Modify action's before/after payload. */
func (f *Frame) ReplaceAt(id uint64, shape Shape) bool {
	idx, ok := f.index[id]
	if !ok {
		return false
	}
	f.shapes[idx].Shape = shape
	return true
}

const (
	ReorderToFront = -1
	ReorderToBack  = -2
)

/* Reorder moves the shape with id to the front, back, or an explicit
index, returning the old index for undo bookkeeping. */
func (f *Frame) Reorder(id uint64, to int) (oldIndex int, ok bool) {
	idx, found := f.index[id]
	if !found {
		return 0, false
	}
	ds := f.shapes[idx]
	f.shapes = append(f.shapes[:idx], f.shapes[idx+1:]...)

	var newIdx int
	switch to {
	case ReorderToFront:
		newIdx = len(f.shapes)
		f.shapes = append(f.shapes, ds)
	case ReorderToBack:
		newIdx = 0
		f.shapes = append([]DrawnShape{ds}, f.shapes...)
	default:
		newIdx = to
		if newIdx > len(f.shapes) {
			newIdx = len(f.shapes)
		}
		if newIdx < 0 {
			newIdx = 0
		}
		f.shapes = append(f.shapes[:newIdx], append([]DrawnShape{ds}, f.shapes[newIdx:]...)...)
	}
	f.rebuildIndex()
	return idx, true
}

/* PushUndoAction pushes an action the caller already constructed (used by
InputState when it wants to bundle more than an add/delete/modify, e.g.
compound moves). It truncates the oldest entries once len exceeds limit
and clears the redo stack. A limit <= 0 keeps every entry. */
func (f *Frame) PushUndoAction(action UndoAction, limit int) {
	f.PushUndo(action, limit)
}

func (f *Frame) PushUndo(action UndoAction, limit int) {
	f.undo = append(f.undo, action)
	if limit > 0 && len(f.undo) > limit {
		f.undo = f.undo[len(f.undo)-limit:]
	}
	f.redo = f.redo[:0]
}

/* Undo pops the top action, applies its inverse, and pushes it onto the
redo stack. Never panics on an empty stack (spec.md §4.1). */
func (f *Frame) Undo() bool {
	if len(f.undo) == 0 {
		return false
	}
	action := f.undo[len(f.undo)-1]
	f.undo = f.undo[:len(f.undo)-1]
	f.apply(action.inverse())
	f.redo = append(f.redo, action)
	return true
}

func (f *Frame) Redo() bool {
	if len(f.redo) == 0 {
		return false
	}
	action := f.redo[len(f.redo)-1]
	f.redo = f.redo[:len(f.redo)-1]
	f.apply(action)
	f.undo = append(f.undo, action)
	return true
}

func (f *Frame) CanUndo() bool { return len(f.undo) > 0 }
func (f *Frame) CanRedo() bool { return len(f.redo) > 0 }

/* apply performs the forward effect of an action directly against the
shape list, without touching the undo/redo stacks (those are managed by
Undo/Redo/PushUndo themselves). */
func (f *Frame) apply(a UndoAction) {
	switch a.kind {
	case undoCreate:
		idx := a.index
		if idx > len(f.shapes) {
			idx = len(f.shapes)
		}
		f.shapes = append(f.shapes[:idx], append([]DrawnShape{a.snapshot}, f.shapes[idx:]...)...)
		f.rebuildIndex()
	case undoDelete:
		idx, ok := f.index[a.snapshot.ID]
		if ok {
			f.shapes = append(f.shapes[:idx], f.shapes[idx+1:]...)
			f.rebuildIndex()
		}
	case undoModify:
		f.ReplaceAt(a.id, a.after)
	case undoReorder:
		f.Reorder(a.id, a.newIndex)
	case undoCompound:
		for _, c := range a.children {
			f.apply(c)
		}
	}
}

/* UndoAllPlan / RedoAllPlan describe a scheduled multi-step animation; the
backend drives Step once per wall-clock period when delayMs != 0
(spec.md §4.1). A ceiling on step count keeps the animation bounded. */
type StepPlan struct {
	Redo      bool
	DelayMs   int
	Remaining int
}

const maxAnimatedSteps = 200

func (f *Frame) UndoAllPlan(delayMs int) StepPlan {
	n := len(f.undo)
	if n > maxAnimatedSteps {
		n = maxAnimatedSteps
	}
	if delayMs == 0 {
		for i := 0; i < n; i++ {
			f.Undo()
		}
		return StepPlan{}
	}
	return StepPlan{Redo: false, DelayMs: delayMs, Remaining: n}
}

func (f *Frame) RedoAllPlan(delayMs int) StepPlan {
	n := len(f.redo)
	if n > maxAnimatedSteps {
		n = maxAnimatedSteps
	}
	if delayMs == 0 {
		for i := 0; i < n; i++ {
			f.Redo()
		}
		return StepPlan{}
	}
	return StepPlan{Redo: true, DelayMs: delayMs, Remaining: n}
}

/* StepPlan.Step applies one step of a scheduled undo/redo-all animation,
returning the remaining plan. The backend calls this once per DelayMs
tick; when Remaining reaches 0 the plan is done. */
func (p StepPlan) Step(f *Frame) StepPlan {
	if p.Remaining <= 0 {
		return p
	}
	if p.Redo {
		f.Redo()
	} else {
		f.Undo()
	}
	p.Remaining--
	return p
}
