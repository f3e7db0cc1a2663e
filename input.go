package scrawl

import (
	"math"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

func tracerInput() tracing.Trace {
	return tracing.Select("scrawl.input")
}

/* SystemCommand is returned to the host process on exit (spec.md §6). */
type SystemCommand int

const (
	SystemCommandNone SystemCommand = iota
	SystemCommandOpenConfigurator
	SystemCommandOpenConfigFile
)

/* CaptureAction names a pending capture request the backend should act
on (spec.md §3 "pending capture action"). */
type CaptureAction int

const (
	CaptureActionNone CaptureAction = iota
	CaptureActionFreeze
	CaptureActionSave
	CaptureActionZoom
)

/* InputState is the authoritative session state (spec.md §3). */
type InputState struct {
	cfg Config

	Tool           Tool
	Color          Color
	Thickness      float64
	Font           FontDescriptor
	FontSize       float64
	ArrowHeadLen   float64
	ArrowHeadAngle float64
	ArrowHeadAtEnd bool
	EraserSize     float64
	EraserMode     EraserMode
	EraserKind     EraserKind

	Modifiers    Modifiers
	toolOverride *Tool
	savedOverride *Tool

	Boards *BoardSet

	Selection Selection
	Drawing   DrawingState

	Dirty *DirtyTracker

	PointerPos Point

	Toast          *Toast
	PresetFeedback *PresetFeedback

	Highlights *ClickHighlightEngine

	ContextMenu ContextMenuState
	Properties  PropertiesPanelState
	BoardPicker BoardPickerState
	Radial      RadialMenuState
	HelpVisible bool

	Presets PresetTable

	UndoLimit int

	ScreenSize Point
	Redraw     bool
	Exit       bool

	PendingSystemCommand SystemCommand
	PendingCapture       CaptureAction

	Zoom   *ZoomState
	Frozen *FrozenState

	spatial         *SpatialIndex
	hitTolerance    float64
	linearThreshold int

	arrowLabelsEnabled bool
	arrowLabelCounter  int

	Bindings *Bindings

	Notifier Notifier

	nowMs func() int64

	textClickPending bool /* PendingTextClick -> TextInput timeout tracking */
}

func NewInputState(cfg Config, boards *BoardSet, nowMs func() int64) *InputState {
	bindings, err := LoadBindings(cfg.Bindings)
	if err != nil {
		tracerInput().Errorf("keybinding load: %v", err)
		bindings = NewBindings()
	}
	s := &InputState{
		cfg:             cfg,
		Tool:            ToolPen,
		Color:           cfg.Drawing.Color,
		Thickness:       cfg.Drawing.Thickness,
		Font:            cfg.Drawing.Font,
		FontSize:        cfg.Drawing.FontSize,
		ArrowHeadLen:    cfg.Arrow.HeadLength,
		ArrowHeadAngle:  cfg.Arrow.HeadAngle,
		ArrowHeadAtEnd:  cfg.Arrow.HeadAtEnd,
		EraserSize:      cfg.Drawing.EraserSize,
		EraserMode:      cfg.Drawing.EraserMode,
		Boards:          boards,
		Dirty:           &DirtyTracker{},
		Highlights:      NewClickHighlightEngine(cfg.UI.ClickHighlightMs),
		UndoLimit:       cfg.Drawing.UndoStackLimit,
		Zoom:            NewZoomState(0),
		Frozen:          NewFrozenState(time.Duration(cfg.Capture.PortalTimeoutMs) * time.Millisecond),
		spatial:         NewSpatialIndex(cfg.Drawing.LinearThreshold, 256),
		hitTolerance:    cfg.Drawing.HitTestTolerance,
		linearThreshold: cfg.Drawing.LinearThreshold,
		arrowLabelsEnabled: cfg.Arrow.AutoLabel,
		Bindings:        bindings,
		Notifier:        NopNotifier{},
		nowMs:           nowMs,
		ContextMenu:     ContextMenuState{HoverIndex: -1},
		BoardPicker:     BoardPickerState{EditingBoardIndex: -1},
		Radial:          RadialMenuState{HoverSlot: -1},
		Presets:         PresetTable{Slots: cfg.Presets.Slots},
	}
	return s
}

func (s *InputState) now() int64 {
	if s.nowMs != nil {
		return s.nowMs()
	}
	return 0
}

/* RaiseToast sets s.Toast and mirrors it through s.Notifier, so every
caller that wants a toast goes through one path instead of duplicating the
Notify call (spec.md §7). */
func (s *InputState) RaiseToast(t Toast) {
	s.Toast = &t
	s.Notifier.Notify(t)
}

func (s *InputState) activeFrame() *Frame {
	f, err := s.Boards.ActiveFrame()
	if err != nil {
		return nil
	}
	return f
}

func (s *InputState) markDirty(r Rect) {
	s.Dirty.MarkRect(r)
	s.Redraw = true
}

func (s *InputState) markFullDirty() {
	s.Dirty.MarkFull()
	s.Redraw = true
}

func (s *InputState) effectiveTool() Tool {
	if s.toolOverride != nil {
		return *s.toolOverride
	}
	return s.Tool
}

func (s *InputState) rebuildSpatialIndex() {
	if f := s.activeFrame(); f != nil {
		s.spatial.Rebuild(f, s.hitTolerance)
	}
}

/* --- Pointer handling: the From/Event/To/Effect table in spec.md §4.2 --- */

func (s *InputState) OnLeftPress(p Point) {
	s.PointerPos = p
	f := s.activeFrame()
	if f == nil {
		return
	}
	tool := s.effectiveTool()

	switch s.Drawing.Kind {
	case DrawingIdle:
		switch {
		case tool == ToolSelect:
			s.rebuildSpatialIndex()
			if handleID, ok := s.hitTextResizeHandle(f, p); ok {
				s.beginResizingText(f, handleID, p)
			} else if id, ok := TopHit(f, s.spatial, p, s.hitTolerance); ok {
				if !s.Selection.Contains(id) {
					s.Selection = NewSelection(id)
				}
				s.beginMovingSelection(f, p)
			} else {
				s.Drawing = DrawingState{Kind: DrawingSelecting, Start: p, SelectAdditive: s.Modifiers.Shift}
			}
		case tool.IsFreehandLike():
			s.Drawing = DrawingState{Kind: DrawingActive, Tool: tool, Start: p, Points: []Point{p}}
		case tool.IsShapeLike():
			s.Drawing = DrawingState{Kind: DrawingActive, Tool: tool, Start: p, Points: []Point{p}}
		case tool == ToolText:
			s.Drawing = DrawingState{Kind: DrawingPendingTextClick, Origin: p}
		}
		s.Properties = BuildPropertiesPanel(f, s.Selection)
	}
}

/* hitTextResizeHandle reports whether p lands on the resize handle of the
single selected, unlocked Text shape (spec.md §4.4 step 9). */
func (s *InputState) hitTextResizeHandle(f *Frame, p Point) (uint64, bool) {
	ids := s.Selection.IDs()
	if len(ids) != 1 {
		return 0, false
	}
	ds, ok := f.Get(ids[0])
	if !ok || ds.Locked {
		return 0, false
	}
	t, ok := ds.Shape.(Text)
	if !ok {
		return 0, false
	}
	b := t.Bounds()
	handle := Point{b.Max.X, b.Max.Y}
	if p.Dist(handle) <= 10 {
		return ds.ID, true
	}
	return 0, false
}

func (s *InputState) beginMovingSelection(f *Frame, origin Point) {
	var snaps []moveSnapshot
	for _, id := range s.Selection.IDs() {
		if ds, ok := f.Get(id); ok && !ds.Locked {
			snaps = append(snaps, moveSnapshot{ID: id, Shape: ds.Shape})
		}
	}
	s.Drawing = DrawingState{Kind: DrawingMovingSelection, MoveSnapshots: snaps, Origin: origin}
}

func (s *InputState) beginResizingText(f *Frame, id uint64, origin Point) {
	ds, _ := f.Get(id)
	s.Drawing = DrawingState{Kind: DrawingResizingText, EditingID: id, ResizeSnapshot: ds, Origin: origin}
}

func (s *InputState) OnMotion(p Point) {
	prev := s.PointerPos
	s.PointerPos = p
	f := s.activeFrame()
	if f == nil {
		return
	}

	switch s.Drawing.Kind {
	case DrawingActive:
		if s.Drawing.Tool.IsFreehandLike() {
			s.Drawing.Points = append(s.Drawing.Points, p)
		}
		// shape tools: provisional bounds only, recomputed from Start/current
		s.markFullDirty()
	case DrawingSelecting:
		s.markFullDirty()
	case DrawingMovingSelection:
		delta := p.Sub(s.Drawing.Origin)
		for _, snap := range s.Drawing.MoveSnapshots {
			moved := translateShape(snap.Shape, delta)
			f.ReplaceAt(snap.ID, moved)
		}
		s.markFullDirty()
	case DrawingResizingText:
		s.resizeTextByHandle(f, p)
		s.markFullDirty()
	}
	_ = prev
}

func (s *InputState) resizeTextByHandle(f *Frame, p Point) {
	ds, ok := f.Get(s.Drawing.EditingID)
	if !ok {
		return
	}
	t, ok := ds.Shape.(Text)
	if !ok {
		return
	}
	orig := s.Drawing.ResizeSnapshot.Shape.(Text)
	dx := p.X - orig.Origin.X
	scale := dx / math.Max(1, orig.Bounds().Dx())
	newSize := clamp(orig.FontSize*scale, MinFontSize, MaxFontSize)
	t.FontSize = newSize
	f.ReplaceAt(ds.ID, t)
}

func translateShape(shape Shape, d Point) Shape {
	switch v := shape.(type) {
	case Freehand:
		v.Points = translatePoints(v.Points, d)
		return v
	case Line:
		v.A, v.B = v.A.Add(d), v.B.Add(d)
		return v
	case Rectangle:
		v.Origin = v.Origin.Add(d)
		return v
	case EllipseShape:
		v.Center = v.Center.Add(d)
		return v
	case Arrow:
		v.A, v.B = v.A.Add(d), v.B.Add(d)
		return v
	case MarkerStroke:
		v.Points = translatePoints(v.Points, d)
		return v
	case Text:
		v.Origin = v.Origin.Add(d)
		return v
	case StickyNote:
		v.Origin = v.Origin.Add(d)
		return v
	case EraserStroke:
		v.Points = translatePoints(v.Points, d)
		return v
	}
	return shape
}

func translatePoints(pts []Point, d Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}

func (s *InputState) OnLeftRelease(p Point) {
	s.PointerPos = p
	f := s.activeFrame()
	if f == nil {
		s.Drawing = DrawingState{}
		return
	}

	switch s.Drawing.Kind {
	case DrawingActive:
		s.finalizeDrawing(f)
	case DrawingSelecting:
		r := Rect{Min: s.Drawing.Start, Max: p}.normalized()
		hits := ShapesInRect(f, r)
		if s.Drawing.SelectAdditive {
			sel := s.Selection
			for _, id := range hits {
				sel = sel.Add(id)
			}
			s.Selection = sel
		} else {
			s.Selection = NewSelection(hits...)
		}
		s.Drawing = DrawingState{}
	case DrawingMovingSelection:
		var children []UndoAction
		for _, snap := range s.Drawing.MoveSnapshots {
			if ds, ok := f.Get(snap.ID); ok {
				children = append(children, modifyAction(snap.ID, snap.Shape, ds.Shape))
				s.spatial.Invalidate(snap.ID)
			}
		}
		if len(children) > 0 {
			f.PushUndo(compoundAction(children...), s.UndoLimit)
		}
		s.Drawing = DrawingState{}
	case DrawingResizingText:
		if ds, ok := f.Get(s.Drawing.EditingID); ok {
			before := s.Drawing.ResizeSnapshot.Shape
			f.PushUndo(modifyAction(s.Drawing.EditingID, before, ds.Shape), s.UndoLimit)
			s.spatial.Invalidate(s.Drawing.EditingID)
		}
		s.Drawing = DrawingState{}
	}
	s.Properties = BuildPropertiesPanel(f, s.Selection)
	s.markFullDirty()
}

func (r Rect) normalized() Rect {
	min := Point{math.Min(r.Min.X, r.Max.X), math.Min(r.Min.Y, r.Max.Y)}
	max := Point{math.Max(r.Min.X, r.Max.X), math.Max(r.Min.Y, r.Max.Y)}
	return Rect{min, max}
}

func (s *InputState) finalizeDrawing(f *Frame) {
	d := s.Drawing
	s.Drawing = DrawingState{}

	var shape Shape
	discard := false

	switch d.Tool {
	case ToolPen:
		shape = Freehand{Points: d.Points, Color: s.Color, Thickness: s.Thickness}
	case ToolMarker:
		shape = MarkerStroke{Points: d.Points, Color: s.Color, Thickness: s.Thickness}
	case ToolEraser:
		shape = EraserStroke{Points: d.Points, Radius: s.EraserSize / 2, Kind_: s.EraserKind, Mode: s.EraserMode}
	case ToolHighlight:
		discard = true // highlight tool never commits a persisted shape
	case ToolLine:
		end := s.PointerPos
		shape = Line{A: d.Start, B: end, Color: s.Color, Thickness: s.Thickness}
	case ToolRect:
		end := s.PointerPos
		shape = Rectangle{Origin: minPoint(d.Start, end), Width: math.Abs(end.X - d.Start.X), Height: math.Abs(end.Y - d.Start.Y), Color: s.Color, Thickness: s.Thickness}
	case ToolEllipse:
		end := s.PointerPos
		c := Point{(d.Start.X + end.X) / 2, (d.Start.Y + end.Y) / 2}
		shape = EllipseShape{Center: c, Rx: math.Abs(end.X-d.Start.X) / 2, Ry: math.Abs(end.Y-d.Start.Y) / 2, Color: s.Color, Thickness: s.Thickness}
	case ToolArrow:
		end := s.PointerPos
		arrow := Arrow{A: d.Start, B: end, Color: s.Color, Thickness: s.Thickness, HeadLength: s.ArrowHeadLen, HeadAngle: s.ArrowHeadAngle, HeadAtEnd: s.ArrowHeadAtEnd}
		if s.arrowLabelsEnabled {
			s.arrowLabelCounter++
			label := s.arrowLabelCounter
			arrow.Label = &label
		}
		shape = arrow
	}

	if discard || shape == nil {
		return
	}

	if _, ok := f.AddShape(shape, s.now()); !ok {
		s.RaiseToast(NewToast("shape limit reached", SeverityWarning, s.cfg.UI.ToastDurationMs))
		return
	}
}

func minPoint(a, b Point) Point {
	return Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

/* OnEscape cancels any non-idle drawing state, restoring snapshots and
dropping provisional shapes (spec.md §4.2 last row). */
func (s *InputState) OnEscape() {
	f := s.activeFrame()
	switch s.Drawing.Kind {
	case DrawingTextInput:
		// editing an existing shape leaves it untouched (its on-frame copy
		// was never mutated until Enter commits); a brand-new shape is
		// simply discarded since it was never added to the frame.
		s.Drawing = DrawingState{}
	case DrawingMovingSelection:
		if f != nil {
			for _, snap := range s.Drawing.MoveSnapshots {
				f.ReplaceAt(snap.ID, snap.Shape)
			}
		}
		s.Drawing = DrawingState{}
	case DrawingResizingText:
		if f != nil {
			f.ReplaceAt(s.Drawing.EditingID, s.Drawing.ResizeSnapshot.Shape)
		}
		s.Drawing = DrawingState{}
	case DrawingIdle:
		s.Exit = true
		return
	default:
		s.Drawing = DrawingState{}
	}
	s.markFullDirty()
}

/* --- Text input sub-machine --- */

func (s *InputState) ConfirmPendingTextClick() {
	if s.Drawing.Kind != DrawingPendingTextClick {
		return
	}
	s.Drawing = DrawingState{Kind: DrawingTextInput, Origin: s.Drawing.Origin}
}

/* BeginEditText re-opens an existing, unlocked Text shape for editing
in place (e.g. double-click or a context-menu "Edit Text" command). The
original shape stays in the frame unchanged while editing. */
func (s *InputState) BeginEditText(f *Frame, id uint64) bool {
	ds, ok := f.Get(id)
	if !ok || ds.Locked {
		return false
	}
	t, ok := ds.Shape.(Text)
	if !ok {
		return false
	}
	s.Drawing = DrawingState{Kind: DrawingTextInput, Origin: t.Origin, TextBuffer: t.String, EditingID: id}
	s.markFullDirty()
	return true
}

func (s *InputState) OnTextChar(r rune) {
	if s.Drawing.Kind != DrawingTextInput {
		return
	}
	s.Drawing.TextBuffer += string(r)
	s.markFullDirty()
}

func (s *InputState) OnTextBackspace() {
	if s.Drawing.Kind != DrawingTextInput || s.Drawing.TextBuffer == "" {
		return
	}
	runes := []rune(s.Drawing.TextBuffer)
	s.Drawing.TextBuffer = string(runes[:len(runes)-1])
	s.markFullDirty()
}

/* OnTextEnter commits the shape unless shift is held (spec.md §4.2). */
func (s *InputState) OnTextEnter(shift bool) {
	if s.Drawing.Kind != DrawingTextInput {
		return
	}
	if shift {
		s.Drawing.TextBuffer += "\n"
		return
	}
	f := s.activeFrame()
	if f == nil {
		s.Drawing = DrawingState{}
		return
	}
	if s.Drawing.EditingID != 0 {
		if before, ok := f.Get(s.Drawing.EditingID); ok {
			t := before.Shape.(Text)
			t.String = s.Drawing.TextBuffer
			f.ReplaceAt(s.Drawing.EditingID, t)
			f.PushUndo(modifyAction(s.Drawing.EditingID, before.Shape, t), s.UndoLimit)
			s.spatial.Invalidate(s.Drawing.EditingID)
		}
	} else if s.Drawing.TextBuffer != "" {
		shape := Text{Origin: s.Drawing.Origin, String: s.Drawing.TextBuffer, Color: s.Color, FontSize: s.FontSize, Font: s.Font}
		if _, ok := f.AddShape(shape, s.now()); !ok {
			s.RaiseToast(NewToast("shape limit reached", SeverityWarning, s.cfg.UI.ToastDurationMs))
		}
	}
	s.Drawing = DrawingState{}
	s.markFullDirty()
}

/* --- Scroll / modifiers --- */

/* OnScroll adjusts thickness, clamped to [1,50], or with shift held
adjusts the current font size, clamped to [8,72] (spec.md §4.2, §8). */
func (s *InputState) OnScroll(delta float64, shift bool) {
	if shift {
		s.FontSize = clamp(s.FontSize+delta, MinFontSize, MaxFontSize)
		return
	}
	s.Thickness = clamp(s.Thickness+delta, MinThickness, MaxThickness)
}

/* --- Tablet handling (spec.md §4.2 "Tablet auto-eraser") --- */

/* OnTabletEraserProximityIn switches the active tool override to eraser
when the feature is enabled, remembering the previous override. */
func (s *InputState) OnTabletEraserProximityIn(enabled bool) {
	if !enabled {
		return
	}
	prev := s.toolOverride
	s.savedOverride = prev
	eraser := ToolEraser
	s.toolOverride = &eraser
}

func (s *InputState) OnTabletEraserProximityOut() {
	s.toolOverride = s.savedOverride
	s.savedOverride = nil
}

/* PressureThickness modulates the base thickness by a monotonic function
of raw pressure in [0,1], clamped to the valid range, and tracks the peak
pressure for the in-progress stroke so momentary dips don't thin the line
(spec.md §4.2). peakPressure is threaded through by the caller per-stroke. */
func PressureThickness(base float64, pressure, peakPressure float64) (thickness float64, newPeak float64) {
	if pressure > peakPressure {
		peakPressure = pressure
	}
	factor := 0.4 + 1.6*peakPressure // monotonic in peakPressure, in [0.4, 2.0]
	return clamp(base*factor, MinThickness, MaxThickness), peakPressure
}

/* ResetArrowLabelCounter returns the counter to 0 so the next committed
arrow is labeled "1" (spec.md seed scenario 2). */
func (s *InputState) ResetArrowLabelCounter() {
	s.arrowLabelCounter = 0
}

/* --- Context menu / board mutation commands dispatched from bindings --- */

func (s *InputState) OpenContextMenu(anchor Point, boardModeEnabled bool) {
	kind, entries := BuildContextMenuEntries(s.Selection, boardModeEnabled)
	s.ContextMenu.Open(anchor, s.Selection.IDs(), kind, entries)
	s.markFullDirty()
}
