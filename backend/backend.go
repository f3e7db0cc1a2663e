/* Package backend owns the Wayland connection: global binding, multi-output
workspace-union surface sizing, SHM pool lifecycle, and the seat/keyboard/
pointer/tablet event dispatch that drives a scrawl.InputState (spec.md §4.9,
§5). It is the only package that imports wlproto and render together. */
package backend

import (
	"fmt"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/rajveermalviya/go-wayland/wayland"

	"github.com/friedelschoen/scrawl"
	"github.com/friedelschoen/scrawl/render"
	"github.com/friedelschoen/scrawl/toolbar"
	"github.com/friedelschoen/scrawl/wlproto"
)

func tracerBackend() tracing.Trace {
	return tracing.Select("scrawl.backend")
}

/* Backend is the top-level Wayland session: one layer-surface overlay
spanning the union of every bound output, matching spec.md §4.9's
"multi-output workspace union" requirement. */
type Backend struct {
	conn *wayland.Conn
	reg  *wlproto.Registrar

	display *wlproto.Display
	surface *wlproto.WlSurface
	layer   *wlproto.LayerSurface

	pool *shmPool

	pointer  *wlproto.Pointer
	keyboard *wlproto.Keyboard

	topBar  *toolbar.Surface
	sideBar *toolbar.Surface
	focus   pointerFocus

	screenW, screenH int

	cfg      scrawl.Config
	input    *scrawl.InputState
	damage   *scrawl.BufferDamageTracker
	renderer *render.Surface

	frameScheduled bool
	lastFrameMs    int64

	exit bool
}

/* pointerFocus tracks which surface wl_pointer.enter last reported, since
one seat-global pointer is shared across the canvas and both toolbar
surfaces (spec.md §4.10 "independent... hit regions"). */
type pointerFocus int

const (
	focusCanvas pointerFocus = iota
	focusTopBar
	focusSideBar
)

/* nowMs returns wall-clock milliseconds since process start; InputState
only needs a monotonic-ish counter for animation/timeout bookkeeping, so
this avoids a hard dependency on a wall clock that the test harness would
need to inject (spec.md §3 "injectable wall clock"). */
func nowMs() func() int64 {
	start := time.Now()
	return func() int64 { return time.Since(start).Milliseconds() }
}

/* Connect opens the Wayland display, binds every global this package
understands, and fails fast if a required protocol is missing (spec.md §7
fatal startup errors). wlDisplay is passed straight to wayland.Connect;
an empty string uses $WAYLAND_DISPLAY. */
func Connect(wlDisplay string, cfg scrawl.Config) (*Backend, error) {
	conn, err := wayland.Connect(wlDisplay)
	if err != nil {
		return nil, fmt.Errorf("backend: connect: %w", err)
	}

	b := &Backend{conn: conn, cfg: cfg}
	b.display = wlproto.NewDisplay(&wlproto.DisplayHandlers{
		OnError: func(evt wayland.Event) {
			e := evt.(*wlproto.DisplayErrorEvent)
			tracerBackend().Errorf("display error: [%d] %s", e.Code, e.Message)
			b.exit = true
		},
	})

	b.reg = wlproto.NewRegistrar(conn)
	reg := b.display.GetRegistry(&wlproto.RegistryHandlers{OnGlobal: func(evt wayland.Event) {
		e := evt.(*wlproto.RegistryGlobalEvent)
		b.reg.Handler(reg, e.Name, e.Interface, e.Version)
	}})
	_ = reg

	b.roundtrip()

	if err := b.reg.RequireCore(); err != nil {
		return nil, err
	}

	boards, restored := loadSession(cfg)
	if !restored {
		board := scrawl.NewBoard("default", scrawl.Background{}, cfg.Drawing.MaxShapesPerFrame)
		boards = scrawl.NewBoardSet(cfg.Board.MaxBoards, board)
	}
	b.input = scrawl.NewInputState(cfg, boards, nowMs())
	b.damage = scrawl.NewBufferDamageTracker()

	pool, err := newShmPool(b.reg.Shm, cfg.Performance.BufferCount)
	if err != nil {
		return nil, fmt.Errorf("backend: shm pool: %w", err)
	}
	b.pool = pool

	b.screenW, b.screenH = unionOutputBounds(b.reg.Outputs)
	b.damage.SetScreenSize(b.screenW, b.screenH)

	b.surface = b.reg.Compositor.CreateSurface(&wlproto.SurfaceHandlers{})
	b.layer = b.reg.LayerShell.GetLayerSurface(b.surface, nil, wlproto.LayerShellLayerOverlay, "scrawl", &wlproto.LayerSurfaceHandlers{
		OnConfigure: b.onConfigure,
		OnClosed:    func(wayland.Event) { b.exit = true },
	})
	b.layer.SetAnchor(wlproto.LayerSurfaceAnchorTop | wlproto.LayerSurfaceAnchorLeft | wlproto.LayerSurfaceAnchorBottom | wlproto.LayerSurfaceAnchorRight)
	b.layer.SetSize(uint32(b.screenW), uint32(b.screenH))
	b.layer.SetExclusiveZone(-1)
	b.layer.SetKeyboardInteractivity(wlproto.LayerSurfaceKeyboardInteractivityOnDemand)
	b.surface.Commit()

	topBar, err := toolbar.New(b.reg, toolbar.PlacementTop)
	if err != nil {
		return nil, fmt.Errorf("backend: toolbar top surface: %w", err)
	}
	b.topBar = topBar
	sideBar, err := toolbar.New(b.reg, toolbar.PlacementSide)
	if err != nil {
		return nil, fmt.Errorf("backend: toolbar side surface: %w", err)
	}
	b.sideBar = sideBar

	b.bindSeat()

	b.renderer = render.NewSurface()

	return b, nil
}

func (b *Backend) roundtrip() {
	done := make(chan struct{})
	cb := b.display.Sync(&wlproto.CallbackHandlers{OnDone: func(wayland.Event) { close(done) }})
	defer cb.Destroy()
	<-done
}

func (b *Backend) onConfigure(evt wayland.Event) {
	e := evt.(*wlproto.LayerSurfaceConfigureEvent)
	b.layer.AckConfigure(e.Serial)
	if e.Width > 0 && e.Height > 0 {
		b.screenW, b.screenH = int(e.Width), int(e.Height)
	}
	b.input.ScreenSize = scrawl.Point{X: float64(b.screenW), Y: float64(b.screenH)}
	b.damage.SetScreenSize(b.screenW, b.screenH)
	b.scheduleFrame()
}

func (b *Backend) bindSeat() {
	seat := b.reg.Seat
	if seat == nil {
		return
	}
	_ = seat.GetPointer(&wlproto.PointerHandlers{
		OnEnter:  b.onPointerEnter,
		OnMotion: b.onPointerMotion,
		OnButton: b.onPointerButton,
		OnAxis:   b.onPointerAxis,
		OnFrame:  func(wayland.Event) {},
	})
	_ = seat.GetKeyboard(&wlproto.KeyboardHandlers{
		OnKey: b.onKeyboardKey,
	})
}

/* onPointerEnter resolves which of the three client surfaces the pointer
entered so subsequent motion/button events route to the canvas or to one
of the toolbar surfaces instead (spec.md §4.10). */
func (b *Backend) onPointerEnter(evt wayland.Event) {
	e := evt.(*wlproto.PointerEnterEvent)
	switch e.Surface {
	case b.topBar.WlSurface().Proxy():
		b.focus = focusTopBar
	case b.sideBar.WlSurface().Proxy():
		b.focus = focusSideBar
	default:
		b.focus = focusCanvas
	}
}

func (b *Backend) onPointerMotion(evt wayland.Event) {
	e := evt.(*wlproto.PointerMotionEvent)
	p := scrawl.Point{X: e.SurfaceX, Y: e.SurfaceY}
	switch b.focus {
	case focusTopBar:
		if i, ok := b.topBar.OnMotion(p); ok {
			b.applyToolbarIntent(i)
		}
	case focusSideBar:
		if i, ok := b.sideBar.OnMotion(p); ok {
			b.applyToolbarIntent(i)
		}
	default:
		b.input.OnMotion(p)
	}
	b.scheduleFrame()
}

func (b *Backend) onPointerButton(evt wayland.Event) {
	e := evt.(*wlproto.PointerButtonEvent)
	pressed := e.Button == btnLeft && e.State == wlproto.PointerButtonStatePressed
	released := e.Button == btnLeft && e.State == wlproto.PointerButtonStateReleased

	switch b.focus {
	case focusTopBar:
		if pressed {
			if i, ok := b.topBar.OnPress(b.input.PointerPos); ok {
				b.applyToolbarIntent(i)
			}
		} else if released {
			b.topBar.OnRelease()
		}
	case focusSideBar:
		if pressed {
			if i, ok := b.sideBar.OnPress(b.input.PointerPos); ok {
				b.applyToolbarIntent(i)
			}
		} else if released {
			b.sideBar.OnRelease()
		}
	default:
		if pressed {
			b.input.OnLeftPress(b.input.PointerPos)
		} else if released {
			b.input.OnLeftRelease(b.input.PointerPos)
		}
	}
	b.scheduleFrame()
}

/* applyToolbarIntent funnels a toolbar press/drag into the same
InputState mutations a keybinding or context-menu entry would trigger, so
the toolbar never drifts from the keyboard path (spec.md §4.10, mirrors
commands.go's ExecuteCommand dispatch). */
func (b *Backend) applyToolbarIntent(i toolbar.Intent) {
	switch i.Event {
	case toolbar.EventSelectTool:
		b.input.Tool = scrawl.Tool(i.Arg)
	case toolbar.EventSelectColor:
		b.input.ExecuteCommand("open_properties")
	case toolbar.EventThicknessDrag:
		b.input.Thickness = scrawl.MinThickness + i.Value*(scrawl.MaxThickness-scrawl.MinThickness)
	case toolbar.EventFontSizeDrag:
		b.input.FontSize = scrawl.MinFontSize + i.Value*(scrawl.MaxFontSize-scrawl.MinFontSize)
	case toolbar.EventPresetSlot:
		b.input.ExecuteCommand(fmt.Sprintf("preset_slot_%d", i.Arg+1))
	case toolbar.EventBoardSwitch:
		b.input.Boards.SetActive(i.Arg)
	case toolbar.EventBoardAdd:
		board := scrawl.NewBoard("board", scrawl.Background{}, b.cfg.Drawing.MaxShapesPerFrame)
		if err := b.input.Boards.Add(board); err != nil {
			tracerBackend().Infof("toolbar add board: %v", err)
		}
	case toolbar.EventOpenDrawer:
		b.input.ExecuteCommand("open_board_picker")
	case toolbar.EventMoveHandle:
		offset := scrawl.Point{X: i.Value * float64(b.screenW), Y: 0}
		b.topBar.SetOffset(offset)
		b.sideBar.SetOffset(offset)
	}
	b.input.Redraw = true
	b.scheduleFrame()
}

const btnLeft uint32 = 0x110 /* BTN_LEFT, linux/input-event-codes.h */

func (b *Backend) onPointerAxis(evt wayland.Event) {
	e := evt.(*wlproto.PointerAxisEvent)
	if e.Axis != wlproto.PointerAxisVertical {
		return
	}
	b.input.OnScroll(-e.Value/10, b.input.Modifiers.Shift)
	b.scheduleFrame()
}

/* onKeyboardKey drives modifier tracking, context-menu keyboard nav, the
text-input submachine, and the keybinding table (spec.md §6, §4.2, §4.6) off
the raw evdev keycodes wl_keyboard.key delivers. Modifier state is tracked
directly from the individual Ctrl/Shift/Alt keycodes rather than decoded out
of wl_keyboard.modifiers' xkb mod-index bitmask, which would need a real
xkb_state (and libxkbcommon/cgo) to interpret correctly. */
func (b *Backend) onKeyboardKey(evt wayland.Event) {
	e := evt.(*wlproto.KeyboardKeyEvent)
	pressed := e.State == wlproto.KeyboardKeyStatePressed

	if isModifierKey(e.Key) {
		b.setModifier(e.Key, pressed)
		return
	}
	if !pressed {
		return
	}

	entry, ok := keyTable[e.Key]
	if !ok {
		return
	}

	switch {
	case b.input.ContextMenu.IsOpen:
		b.dispatchContextMenuKey(entry)
	case b.dispatchTextInput(entry):
	case entry.name == "escape":
		b.input.OnEscape()
	default:
		shift := b.input.Modifiers.Shift
		key := entry.chordName(shift)
		if shift && entry.shiftName != "" {
			shift = false
		}
		chord := scrawl.KeyChord{
			Key:   key,
			Ctrl:  b.input.Modifiers.Ctrl,
			Shift: shift,
			Alt:   b.input.Modifiers.Alt,
		}
		if cmd, ok := b.input.Bindings.Lookup(chord); ok {
			b.input.ExecuteCommand(cmd)
		}
	}
	b.scheduleFrame()
}

func (b *Backend) setModifier(code uint32, pressed bool) {
	switch code {
	case keyLeftCtrl, keyRightCtrl:
		b.input.Modifiers.Ctrl = pressed
	case keyLeftShift, keyRightShift:
		b.input.Modifiers.Shift = pressed
	case keyLeftAlt, keyRightAlt:
		b.input.Modifiers.Alt = pressed
	}
}

/* dispatchContextMenuKey drives ContextMenuState's own focus/activate
methods (ui_contextmenu.go) so the list context menu gains keyboard nav
for free (spec.md §4.6, seed scenario 6). */
func (b *Backend) dispatchContextMenuKey(entry keyEntry) {
	switch entry.name {
	case "escape":
		b.input.ContextMenu.Close()
	case "tab":
		if b.input.Modifiers.Shift {
			b.input.ContextMenu.FocusPrev()
		} else {
			b.input.ContextMenu.FocusNext()
		}
	case "enter":
		if cmd, ok := b.input.ContextMenu.Activate(); ok {
			b.input.ExecuteCommand(cmd)
		}
	}
	b.input.Redraw = true
}

/* dispatchTextInput routes a pressed key into the text-input submachine
(input.go's ConfirmPendingTextClick/OnTextChar/OnTextBackspace/OnTextEnter)
when Drawing is in one of its text states, reporting whether it consumed
the key. A confirming key other than Escape while DrawingPendingTextClick
is swallowed entirely rather than fed into the new buffer, matching
spec.md §4.2's "opens input with an empty buffer"; Escape there cancels via
OnEscape instead of confirming. */
func (b *Backend) dispatchTextInput(entry keyEntry) bool {
	switch b.input.Drawing.Kind {
	case scrawl.DrawingPendingTextClick:
		if entry.name == "escape" {
			b.input.OnEscape()
		} else {
			b.input.ConfirmPendingTextClick()
		}
		return true
	case scrawl.DrawingTextInput:
		switch entry.name {
		case "escape":
			b.input.OnEscape()
		case "enter":
			b.input.OnTextEnter(b.input.Modifiers.Shift)
		case "backspace":
			b.input.OnTextBackspace()
		default:
			if r, ok := entry.textRune(b.input.Modifiers.Shift); ok {
				b.input.OnTextChar(r)
			}
		}
		return true
	default:
		return false
	}
}

func (b *Backend) scheduleFrame() {
	if b.frameScheduled {
		return
	}
	b.frameScheduled = true
	cb := b.surface.Frame(&wlproto.CallbackHandlers{OnDone: b.onFrameDone})
	_ = cb
}

func (b *Backend) onFrameDone(evt wayland.Event) {
	b.frameScheduled = false
	b.paint()
}

/* paint drains dirty regions into the per-buffer damage tracker, renders
into a free SHM slot, attaches it, and reports that slot's merged buffer
damage (spec.md §4.4, §4.5). */
func (b *Backend) paint() {
	if !b.input.Redraw {
		return
	}
	b.input.Redraw = false

	if err := b.pool.ensureSize(b.screenW, b.screenH); err != nil {
		tracerBackend().Errorf("shm pool resize: %v", err)
		return
	}

	b.updateToolbars()
	slot, idx := b.pool.acquire()
	if slot == nil {
		tracerBackend().Infof("no free shm buffer, dropping frame")
		b.input.Redraw = true
		return
	}

	render.Paint(b.renderer, b.input, slot.data, b.screenW, b.screenH, b.pool.stride)

	regions, full := b.input.Dirty.Drain()
	if full {
		b.damage.MarkAllFull()
	} else {
		for _, r := range regions {
			b.damage.MarkRect(r)
		}
	}

	canvasPtr := render.PixelDataPointer(slot.data)
	rects := b.damage.TakeBufferDamage(canvasPtr, b.screenW, b.screenH, b.pool.generation, b.pool.byteSize)

	b.surface.Attach(slot.buf, 0, 0)
	for _, r := range rects {
		b.surface.DamageBuffer(int32(r.Min.X), int32(r.Min.Y), int32(r.Dx()), int32(r.Dy()))
	}
	b.surface.Commit()
	b.pool.release(idx)
}

/* Run blocks until Escape at the idle state, a captured exit command, or
the compositor closes the layer surface (spec.md §4.9). wayland.Conn
dispatches incoming events to the registered handlers on its own
goroutine (the same pattern the teacher's cmd/ctxmenu main relied on with
a bare "select {}"); this just polls the exit flags at a modest interval
so the process can shut down promptly without busy-waiting. */
func (b *Backend) Run() error {
	b.scheduleFrame()
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for !b.exit && !b.input.Exit {
		<-ticker.C
		b.pollCapture()
	}
	return nil
}

/* pollCapture starts a screencopy request when ExecuteCommand's "freeze"
command left a pending one, and otherwise advances any capture already in flight
(spec.md §4.7). It runs once per Run tick alongside the exit-flag poll,
never blocking the event loop on the compositor. */
func (b *Backend) pollCapture() {
	if b.input.PendingCapture == scrawl.CaptureActionFreeze {
		b.input.PendingCapture = scrawl.CaptureActionNone
		cb, err := newScreencopyBackend(b.reg)
		if err != nil {
			tracerBackend().Infof("capture unavailable: %v", err)
		} else if err := b.input.Frozen.Begin(cb, time.Now()); err != nil {
			tracerBackend().Errorf("capture begin: %v", err)
		}
	}

	if b.input.Frozen.Stage == scrawl.CaptureIdle {
		return
	}
	if done, toast := b.input.Frozen.Poll(time.Now()); done {
		if toast != nil {
			b.input.RaiseToast(*toast)
		}
		b.input.Redraw = true
		b.scheduleFrame()
	}
}

func (b *Backend) Close() {
	saveSession(b.cfg, b.input.Boards)
	b.pool.close()
	b.topBar.Destroy()
	b.sideBar.Destroy()
	b.surface.Destroy()
	b.layer.Destroy()
	b.conn.Close()
}

/* updateToolbars builds this frame's immutable Snapshot from InputState
and hands it to both auxiliary surfaces; each Surface.Update is a no-op
unless the snapshot actually changed (spec.md §4.10). */
func (b *Backend) updateToolbars() {
	boards := b.input.Boards.Boards()
	active := boards[b.input.Boards.ActiveIndex()]
	snap := toolbar.Snapshot{
		Tool:       b.input.Tool,
		Color:      b.input.Color,
		Thickness:  b.input.Thickness,
		FontSize:   b.input.FontSize,
		Presets:    b.input.Presets,
		BoardName:  active.Name,
		BoardIndex: b.input.Boards.ActiveIndex(),
		BoardCount: len(boards),
		Mode:       toolbar.ModeRegular,
		Visible:    true,
	}
	if err := b.topBar.Update(snap, b.screenW); err != nil {
		tracerBackend().Errorf("toolbar top update: %v", err)
	}
	if err := b.sideBar.Update(snap, b.screenH); err != nil {
		tracerBackend().Errorf("toolbar side update: %v", err)
	}
}

func unionOutputBounds(outputs *[]*wlproto.Output) (w, h int) {
	if outputs == nil || len(*outputs) == 0 {
		return 1920, 1080
	}
	minX, minY, maxX, maxY := 0, 0, 0, 0
	first := true
	for _, o := range *outputs {
		x0, y0 := int(o.Offset.X), int(o.Offset.Y)
		x1, y1 := x0+int(o.Size.W), y0+int(o.Size.H)
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		if x0 < minX {
			minX = x0
		}
		if y0 < minY {
			minY = y0
		}
		if x1 > maxX {
			maxX = x1
		}
		if y1 > maxY {
			maxY = y1
		}
	}
	return maxX - minX, maxY - minY
}
