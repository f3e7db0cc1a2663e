package toolbar

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/rajveermalviya/go-wayland/wayland"
	"golang.org/x/sys/unix"

	"github.com/friedelschoen/scrawl"
	"github.com/friedelschoen/scrawl/wlproto"
)

func tracerToolbar() tracing.Trace {
	return tracing.Select("scrawl.toolbar")
}

/* Placement distinguishes the two auxiliary surfaces spec.md §4.10
names: a horizontal strip anchored to the top edge and a vertical strip
anchored to a side. */
type Placement int

const (
	PlacementTop Placement = iota
	PlacementSide
)

const (
	barThickness = 44.0
	rowThickness = 40.0
)

/* Surface is one of the two toolbar layer surfaces: its own wl_surface,
layer-shell role, and single-buffer SHM pool, independent of the canvas
overlay's (spec.md §4.10 "independent buffers and hit regions"). Layout
is flat colored rectangles only; concrete icon drawing is out of scope
(spec.md §1). */
type Surface struct {
	placement Placement
	reg       *wlproto.Registrar

	wlsurface *wlproto.WlSurface
	layer     *wlproto.LayerSurface

	file *os.File
	pool *wlproto.ShmPool
	buf  *wlproto.Buffer
	data []byte

	width, height int
	offset        scrawl.Point

	last    Snapshot
	haveLast bool
	regions []HitRegion

	dragging  bool
	dragEvent Event
	dragArg   int
	dragStart scrawl.Point
}

/* New creates the surface's wl_surface and layer-shell role anchored per
placement; it does not allocate the SHM pool until the first Update call
knows the snapshot's content (spec.md §4.10). */
func New(reg *wlproto.Registrar, placement Placement) (*Surface, error) {
	s := &Surface{placement: placement, reg: reg}
	s.wlsurface = reg.Compositor.CreateSurface(&wlproto.SurfaceHandlers{})

	anchor := wlproto.LayerSurfaceAnchorTop | wlproto.LayerSurfaceAnchorLeft | wlproto.LayerSurfaceAnchorRight
	ns := "scrawl-toolbar-top"
	if placement == PlacementSide {
		anchor = wlproto.LayerSurfaceAnchorTop | wlproto.LayerSurfaceAnchorLeft | wlproto.LayerSurfaceAnchorBottom
		ns = "scrawl-toolbar-side"
	}

	s.layer = reg.LayerShell.GetLayerSurface(s.wlsurface, nil, wlproto.LayerShellLayerTop, ns, &wlproto.LayerSurfaceHandlers{
		OnConfigure: s.onConfigure,
		OnClosed:    func(wayland.Event) {},
	})
	s.layer.SetAnchor(anchor)
	s.layer.SetKeyboardInteractivity(wlproto.LayerSurfaceKeyboardInteractivityNone)
	s.layer.SetExclusiveZone(0)
	s.wlsurface.Commit()
	return s, nil
}

func (s *Surface) onConfigure(evt wayland.Event) {
	e := evt.(*wlproto.LayerSurfaceConfigureEvent)
	s.layer.AckConfigure(e.Serial)
	if e.Width > 0 {
		s.width = int(e.Width)
	}
	if e.Height > 0 {
		s.height = int(e.Height)
	}
}

func (s *Surface) ensurePool(width, height int) error {
	stride := width * 4
	size := stride * height
	if size <= 0 {
		return nil
	}
	if s.data != nil && width == s.width && height == s.height {
		return nil
	}
	if s.file == nil {
		dir := os.Getenv("XDG_RUNTIME_DIR")
		f, err := os.CreateTemp(dir, "scrawl-toolbar-shm-*")
		if err != nil {
			return err
		}
		os.Remove(f.Name())
		s.file = f
	}
	if err := unix.Ftruncate(int(s.file.Fd()), int64(size)); err != nil {
		return err
	}
	data, err := unix.Mmap(int(s.file.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	if s.pool == nil {
		s.pool = s.reg.Shm.CreatePool(int(s.file.Fd()), int32(size), nil)
	} else {
		s.pool.Resize(int32(size))
	}
	if s.buf != nil {
		s.buf.Destroy()
	}
	s.buf = s.pool.CreateBuffer(0, int32(width), int32(height), int32(stride), wlproto.ShmFormatArgb8888, &wlproto.BufferHandlers{})
	s.data = data
	s.width, s.height = width, height
	return nil
}

/* Update recomputes layout and repaints only when snap differs from the
previously applied snapshot (spec.md §4.10). extent is the length along
the surface's long axis (screen width for top, screen height for side). */
func (s *Surface) Update(snap Snapshot, extent int) error {
	if s.haveLast && snap.equal(s.last) {
		return nil
	}
	s.last = snap
	s.haveLast = true

	if !snap.Visible {
		s.regions = nil
		return nil
	}

	w, h := extent, int(barThickness)
	if s.placement == PlacementSide {
		w, h = int(barThickness), extent
	}
	s.layer.SetSize(uint32(w), uint32(h))
	s.layer.SetMargin(int32(s.offset.Y), 0, 0, int32(s.offset.X))

	if err := s.ensurePool(w, h); err != nil {
		tracerToolbar().Errorf("shm pool: %v", err)
		return err
	}

	s.regions = layoutRegions(snap, s.placement, w, h)
	s.paint(snap)

	s.wlsurface.Attach(s.buf, 0, 0)
	s.wlsurface.Damage(0, 0, int32(w), int32(h))
	s.wlsurface.Commit()
	return nil
}

/* WlSurface exposes the underlying wl_surface so backend can match it
against wl_pointer.enter's Surface argument and route input accordingly
(spec.md §4.10). */
func (s *Surface) WlSurface() *wlproto.WlSurface { return s.wlsurface }

/* SetOffset records the drag-to-move offset; Update applies it as
layer-shell margins the next time it repaints. The offset is not clamped
here (spec.md §4.10). */
func (s *Surface) SetOffset(p scrawl.Point) {
	s.offset = p
}

func (s *Surface) Destroy() {
	if s.buf != nil {
		s.buf.Destroy()
	}
	if s.pool != nil {
		s.pool.Destroy()
	}
	if s.file != nil {
		s.file.Close()
	}
	s.layer.Destroy()
	s.wlsurface.Destroy()
}

/* OnPress maps a pointer press at p (surface-local) into an Intent,
arming drag tracking for RegionDrag hits. */
func (s *Surface) OnPress(p scrawl.Point) (Intent, bool) {
	r, ok := hitTest(s.regions, p)
	if !ok {
		return Intent{}, false
	}
	if r.Kind == RegionDrag {
		s.dragging = true
		s.dragEvent = r.Event
		s.dragArg = r.Arg
		s.dragStart = r.Rect.Min
	}
	return Intent{Event: r.Event, Arg: r.Arg, Value: dragValue(r, p)}, true
}

/* OnMotion reports drag progress while a RegionDrag interaction is held;
it returns false whenever the pointer is not over a region carrying the
armed event. */
func (s *Surface) OnMotion(p scrawl.Point) (Intent, bool) {
	if !s.dragging {
		return Intent{}, false
	}
	r, ok := hitTest(s.regions, p)
	if !ok || r.Event != s.dragEvent {
		return Intent{}, false
	}
	return Intent{Event: s.dragEvent, Arg: s.dragArg, Value: dragValue(r, p)}, true
}

func (s *Surface) OnRelease() {
	s.dragging = false
}

func dragValue(r HitRegion, p scrawl.Point) float64 {
	if r.Kind != RegionDrag {
		return 0
	}
	extent := r.Rect.Dx()
	pos := p.X - r.Rect.Min.X
	if r.Rect.Dy() > r.Rect.Dx() {
		extent = r.Rect.Dy()
		pos = p.Y - r.Rect.Min.Y
	}
	if extent <= 0 {
		return 0
	}
	v := pos / extent
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

/* layoutRegions lays out one row of fixed-size cells along the surface's
long axis: tool icons, a color swatch, a thickness slider, MaxPresetSlots
preset cells (except in ModeSimple), a board switcher plus an add-board
cell (ModeAdvanced only), then a drawer toggle and a move handle
(spec.md §4.10). */
func layoutRegions(snap Snapshot, placement Placement, w, h int) []HitRegion {
	var regions []HitRegion
	cell := rowThickness
	pos := 0.0

	axis := func(length float64) scrawl.Rect {
		if placement == PlacementTop {
			r := scrawl.RectXYWH(pos, 0, length, float64(h))
			pos += length
			return r
		}
		r := scrawl.RectXYWH(0, pos, float64(w), length)
		pos += length
		return r
	}

	tools := []scrawl.Tool{
		scrawl.ToolPen, scrawl.ToolMarker, scrawl.ToolEraser, scrawl.ToolLine,
		scrawl.ToolRect, scrawl.ToolEllipse, scrawl.ToolArrow, scrawl.ToolText,
		scrawl.ToolStickyNote, scrawl.ToolSelect, scrawl.ToolHighlight,
	}
	for i, t := range tools {
		regions = append(regions, HitRegion{Rect: axis(cell), Event: EventSelectTool, Kind: RegionClick, Arg: int(t), Tooltip: toolTooltip(i)})
	}

	regions = append(regions, HitRegion{Rect: axis(cell), Event: EventSelectColor, Kind: RegionClick, Tooltip: "color"})
	regions = append(regions, HitRegion{Rect: axis(cell * 2), Event: EventThicknessDrag, Kind: RegionDrag, Tooltip: "thickness"})

	if snap.Mode != ModeSimple {
		for i := range scrawl.MaxPresetSlots {
			regions = append(regions, HitRegion{Rect: axis(cell), Event: EventPresetSlot, Kind: RegionClick, Arg: i, Tooltip: "preset"})
		}
	}

	if snap.Mode == ModeAdvanced {
		for i := range snap.BoardCount {
			regions = append(regions, HitRegion{Rect: axis(cell), Event: EventBoardSwitch, Kind: RegionClick, Arg: i, Tooltip: "board"})
		}
		regions = append(regions, HitRegion{Rect: axis(cell), Event: EventBoardAdd, Kind: RegionClick, Tooltip: "add board"})
	}

	regions = append(regions, HitRegion{Rect: axis(cell), Event: EventOpenDrawer, Kind: RegionClick, Tooltip: "more"})
	regions = append(regions, HitRegion{Rect: axis(cell), Event: EventMoveHandle, Kind: RegionDrag, Tooltip: "move"})
	return regions
}

func toolTooltip(i int) string {
	names := []string{"pen", "marker", "eraser", "line", "rect", "ellipse", "arrow", "text", "sticky note", "select", "highlight"}
	if i < 0 || i >= len(names) {
		return ""
	}
	return names[i]
}

/* paint fills each region with a flat color: the active tool and active
preset are highlighted, everything else uses a neutral chrome tone. No
glyphs or icons are drawn (spec.md §1 non-goal). */
func (s *Surface) paint(snap Snapshot) {
	bg := packARGB(scrawl.Color{R: 30, G: 30, B: 34, A: 235})
	fillAll(s.data, bg)

	for _, r := range s.regions {
		c := scrawl.Color{R: 60, G: 60, B: 66, A: 255}
		if r.Event == EventSelectTool && scrawl.Tool(r.Arg) == snap.Tool {
			c = scrawl.Color{R: 70, G: 110, B: 200, A: 255}
		}
		if r.Event == EventSelectColor {
			c = snap.Color
		}
		if r.Event == EventPresetSlot {
			if p, ok := snap.Presets.Get(r.Arg); ok {
				c = p.Color
			}
		}
		fillRect(s.data, s.width, int(r.Rect.Min.X), int(r.Rect.Min.Y), int(r.Rect.Dx()), int(r.Rect.Dy()), packARGB(c))
	}
}

func packARGB(c scrawl.Color) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func fillAll(data []byte, px uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		putPixel(data[i:i+4], px)
	}
}

func fillRect(data []byte, stridePx, x, y, w, h int, px uint32) {
	stride := stridePx * 4
	for row := y; row < y+h; row++ {
		base := row*stride + x*4
		if base < 0 || base+w*4 > len(data) {
			continue
		}
		for col := 0; col < w; col++ {
			putPixel(data[base+col*4:base+col*4+4], px)
		}
	}
}

func putPixel(b []byte, px uint32) {
	b[0] = byte(px)
	b[1] = byte(px >> 8)
	b[2] = byte(px >> 16)
	b[3] = byte(px >> 24)
}
