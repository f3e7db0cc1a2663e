package scrawl

import "strings"

/* ExecuteCommand runs a named action against the current selection/frame.
Both the context menu (spec.md §4.6) and keybindings (spec.md §6) funnel
through this single dispatcher so the two surfaces never drift apart. */
func (s *InputState) ExecuteCommand(cmd string) {
	f := s.activeFrame()
	switch cmd {
	case "undo":
		if f != nil {
			f.Undo()
		}
	case "redo":
		if f != nil {
			f.Redo()
		}
	case "select_all":
		if f != nil {
			ids := make([]uint64, 0, f.Len())
			for _, ds := range f.Shapes() {
				if ds.Shape.Kind() != KindEraserStroke {
					ids = append(ids, ds.ID)
				}
			}
			s.Selection = NewSelection(ids...)
		}
	case "delete":
		if f != nil && !s.Selection.IsEmpty() {
			removed := f.DeleteMany(s.Selection.IDs())
			var actions []UndoAction
			for _, r := range removed {
				actions = append(actions, deleteAction(r.Index, r.Snap))
				s.spatial.Invalidate(r.Snap.ID)
			}
			if len(actions) > 0 {
				f.PushUndo(compoundAction(actions...), s.UndoLimit)
			}
			s.Selection = Selection{}
		}
	case "duplicate":
		if f != nil && !s.Selection.IsEmpty() {
			s.duplicateSelection(f)
		}
	case "to_front":
		s.reorderSelection(f, ReorderToFront)
	case "to_back":
		s.reorderSelection(f, ReorderToBack)
	case "toggle_lock":
		s.toggleLockSelection(f)
	case "clear", "clear_canvas":
		s.clearActivePage(f)
	case "open_properties":
		s.Properties = BuildPropertiesPanel(f, s.Selection)
	case "open_board_picker":
		s.BoardPicker.Open(BoardPickerFull)
	case "toggle_highlight_tool":
		if s.Tool == ToolHighlight {
			s.Tool = ToolPen
		} else {
			s.Tool = ToolHighlight
		}
	case "toggle_click_highlight":
		s.Highlights.UsePenColor = !s.Highlights.UsePenColor
	case "thickness_up":
		s.Thickness = clamp(s.Thickness+1, MinThickness, MaxThickness)
	case "thickness_down":
		s.Thickness = clamp(s.Thickness-1, MinThickness, MaxThickness)
	case "tool_text":
		s.Tool = ToolText
	case "send_to_back":
		s.reorderSelection(f, ReorderToBack)
	case "bring_to_front":
		s.reorderSelection(f, ReorderToFront)
	case "color_red":
		s.Color = Color{R: 0xE0, G: 0x1B, B: 0x24, A: 0xFF}
	case "color_green":
		s.Color = Color{R: 0x2E, G: 0xC2, B: 0x7E, A: 0xFF}
	case "color_blue":
		s.Color = Color{R: 0x1C, G: 0x71, B: 0xD8, A: 0xFF}
	case "color_yellow":
		s.Color = Color{R: 0xF6, G: 0xD3, B: 0x2D, A: 0xFF}
	case "color_orange":
		s.Color = Color{R: 0xE8, G: 0x8D, B: 0x1C, A: 0xFF}
	case "color_purple":
		s.Color = Color{R: 0x91, G: 0x41, B: 0xAC, A: 0xFF}
	case "color_white":
		s.Color = Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	case "color_black":
		s.Color = Color{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	case "help":
		s.HelpVisible = s.cfg.UI.HelpOverlayEnabled && !s.HelpVisible
	case "whiteboard":
		s.setBoardBackground(Background{Mode: BackgroundSolid, Color: s.cfg.Board.WhiteboardRGB})
	case "blackboard":
		s.setBoardBackground(Background{Mode: BackgroundSolid, Color: s.cfg.Board.BlackboardRGB})
	case "transparent":
		s.setBoardBackground(Background{Mode: BackgroundTransparent})
	case "freeze":
		if s.Frozen != nil && !s.Frozen.HasImage() {
			s.PendingCapture = CaptureActionFreeze
		}
	case "unfreeze":
		if s.Frozen != nil {
			s.Frozen.Unfreeze()
		}
	case "exit":
		s.Exit = true
	default:
		if slot, ok := presetSlotFromCommand(cmd); ok {
			s.applyPresetSlot(slot)
		}
	}
	s.markFullDirty()
}

/* presetSlotFromCommand maps "preset_slot_N" to a zero-based slot index;
slot 10 (the "0" key) maps to index 9, matching the digit-key layout in
DefaultBindingSpecs. */
func presetSlotFromCommand(cmd string) (int, bool) {
	const prefix = "preset_slot_"
	if !strings.HasPrefix(cmd, prefix) {
		return 0, false
	}
	n := 0
	for _, r := range cmd[len(prefix):] {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n < 1 || n > MaxPresetSlots {
		return 0, false
	}
	return n - 1, true
}

/* applyPresetSlot loads an occupied preset into the live tool state, or
saves the current tool state into an empty slot (spec.md §4.6 radial
menu / digit-key presets). */
func (s *InputState) applyPresetSlot(slot int) {
	if p, ok := s.Presets.Get(slot); ok {
		s.Tool = p.Tool
		s.Color = p.Color
		s.Thickness = p.Thickness
		s.FontSize = p.FontSize
		pf := NewPresetFeedback(slot, "preset applied", s.cfg.UI.ToastDurationMs)
		s.PresetFeedback = &pf
		return
	}
	s.Presets.Save(slot, Preset{
		Tool:      s.Tool,
		Color:     s.Color,
		Thickness: s.Thickness,
		FontSize:  s.FontSize,
	})
	pf := NewPresetFeedback(slot, "preset saved", s.cfg.UI.ToastDurationMs)
	s.PresetFeedback = &pf
}

func (s *InputState) setBoardBackground(bg Background) {
	if s.Boards == nil {
		return
	}
	s.Boards.Active().Background = bg
}

func (s *InputState) reorderSelection(f *Frame, to int) {
	if f == nil {
		return
	}
	for _, id := range s.Selection.IDs() {
		if old, ok := f.Reorder(id, to); ok {
			f.PushUndo(reorderAction(id, old, f.index[id]), s.UndoLimit)
			s.spatial.Invalidate(id)
		}
	}
}

func (s *InputState) toggleLockSelection(f *Frame) {
	if f == nil {
		return
	}
	for _, id := range s.Selection.IDs() {
		idx, ok := f.index[id]
		if !ok {
			continue
		}
		f.shapes[idx].Locked = !f.shapes[idx].Locked
	}
}

func (s *InputState) duplicateSelection(f *Frame) {
	var created []UndoAction
	for _, id := range s.Selection.IDs() {
		ds, ok := f.Get(id)
		if !ok {
			continue
		}
		dup := translateShape(ds.Shape, Point{X: 12, Y: 12})
		if newID, ok := f.AddShape(dup, s.now()); ok {
			idx := f.index[newID]
			created = append(created, createAction(idx, f.shapes[idx]))
		}
	}
	if len(created) > 0 {
		// AddShape already pushed individual Create actions; replace the
		// last len(created) undo entries with one compound action so a
		// single undo removes the whole duplication.
		f.undo = f.undo[:len(f.undo)-len(created)]
		f.PushUndo(compoundAction(created...), s.UndoLimit)
	}
}

func (s *InputState) clearActivePage(f *Frame) {
	if f == nil {
		return
	}
	ids := make([]uint64, 0, f.Len())
	for _, ds := range f.Shapes() {
		ids = append(ids, ds.ID)
	}
	if len(ids) == 0 {
		return
	}
	removed := f.DeleteMany(ids)
	var actions []UndoAction
	for _, r := range removed {
		actions = append(actions, deleteAction(r.Index, r.Snap))
	}
	f.PushUndo(compoundAction(actions...), s.UndoLimit)
	s.Selection = Selection{}
}
