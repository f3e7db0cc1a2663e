package render

import (
	"math"

	"github.com/novvoo/go-cairo/pkg/cairo"
	"golang.org/x/image/math/fixed"

	"github.com/friedelschoen/scrawl"
)

/* paintClickHighlights draws every live ring as an expanding, fading
circle (spec.md §4.6). */
func paintClickHighlights(ctx cairo.Context, input *scrawl.InputState) {
	for _, h := range input.Highlights.Rings() {
		a := h.Alpha()
		if a <= 0 {
			continue
		}
		radius := 6 + (1-a)*18
		c := h.Color
		ctx.SetSourceRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255*a)
		ctx.SetLineWidth(2)
		ctx.Arc(h.Center.X, h.Center.Y, radius, 0, 2*math.Pi)
		ctx.Stroke()
	}
}

/* paintToolPreview draws a hollow circle at the pointer sized to the
current brush/eraser so the user can judge stroke width before committing
(spec.md §4.2). */
func paintToolPreview(ctx cairo.Context, input *scrawl.InputState) {
	if !input.Drawing.IsIdle() {
		return
	}
	radius := input.Thickness / 2
	if input.Tool == scrawl.ToolEraser {
		radius = input.EraserSize / 2
	}
	if radius <= 0 {
		return
	}
	setSourceColor(ctx, input.Color)
	ctx.SetLineWidth(1)
	ctx.Arc(input.PointerPos.X, input.PointerPos.Y, radius, 0, 2*math.Pi)
	ctx.Stroke()
}

/* paintOverlayChrome draws the UI layers above the canvas: toast, preset
feedback, context menu, properties panel, board picker, radial menu. Order
matches spec.md §4.6's z-order: transient notifications beneath modal
pickers, the radial menu and context menu always on top since only one is
ever open at a time by construction. */
func paintOverlayChrome(ctx cairo.Context, input *scrawl.InputState, r *Surface, w, h int) {
	paintToast(ctx, input, r, w, h)
	paintPresetFeedback(ctx, input, w, h)
	paintPropertiesPanel(ctx, input)
	paintBoardPicker(ctx, input, w, h)
	paintContextMenu(ctx, input, r)
	paintRadialMenu(ctx, input)
}

/* uiFontDescriptor is the fixed chrome typeface; menu rows and toast text
are never user-configurable, unlike canvas Text/StickyNote shapes. */
var uiFontDescriptor = scrawl.FontDescriptor{Family: "sans-serif"}

func drawLabel(ctx cairo.Context, r *Surface, text string, x, y, size float64, c scrawl.Color) {
	face, err := r.loadFace(uiFontDescriptor, size)
	if err != nil {
		return
	}
	lineHeight := fixed.I(int(size * 1.3))
	img, _, _ := rasterizeLines(face, []string{text}, c, lineHeight)
	compositeRGBA(ctx, img, x, y)
}

func severityColor(s scrawl.Severity) scrawl.Color {
	switch s {
	case scrawl.SeverityWarning:
		return scrawl.Color{R: 230, G: 170, B: 40, A: 230}
	case scrawl.SeverityError:
		return scrawl.Color{R: 220, G: 60, B: 60, A: 230}
	default:
		return scrawl.Color{R: 50, G: 50, B: 55, A: 230}
	}
}

func paintToast(ctx cairo.Context, input *scrawl.InputState, r *Surface, w, h int) {
	if input.Toast == nil || !input.Toast.Active {
		return
	}
	const boxH = 36.0
	y := float64(h) - boxH - 24
	setSourceColor(ctx, severityColor(input.Toast.Severity))
	ctx.Rectangle(24, y, float64(w)-48, boxH)
	ctx.Fill()
	drawLabel(ctx, r, input.Toast.Text, 36, y+8, 16, scrawl.Color{R: 240, G: 240, B: 240, A: 255})
}

func paintPresetFeedback(ctx cairo.Context, input *scrawl.InputState, w, h int) {
	if input.PresetFeedback == nil || !input.PresetFeedback.Active {
		return
	}
	const boxW, boxH = 180.0, 30.0
	x := float64(w) - boxW - 24
	y := float64(h) - boxH - 68
	setSourceColor(ctx, scrawl.Color{R: 40, G: 40, B: 45, A: 210})
	ctx.Rectangle(x, y, boxW, boxH)
	ctx.Fill()
}

/* paintContextMenu draws the right-click menu panel and a highlight band
behind the focused row (spec.md §4.6). */
func paintContextMenu(ctx cairo.Context, input *scrawl.InputState, r *Surface) {
	m := &input.ContextMenu
	if !m.IsOpen {
		return
	}
	const rowH = 26.0
	const menuW = 160.0
	h := rowH * float64(len(m.Entries))
	pos := scrawl.ClampContextMenuLayout(m.Anchor, menuW, h, input.ScreenSize.X, input.ScreenSize.Y)

	setSourceColor(ctx, scrawl.Color{R: 35, G: 35, B: 40, A: 235})
	ctx.Rectangle(pos.X, pos.Y, menuW, h)
	ctx.Fill()

	for i, e := range m.Entries {
		rowY := pos.Y + float64(i)*rowH
		if i == m.HoverIndex {
			setSourceColor(ctx, scrawl.Color{R: 70, G: 110, B: 200, A: 255})
			ctx.Rectangle(pos.X, rowY, menuW, rowH)
			ctx.Fill()
		}
		textColor := scrawl.Color{R: 230, G: 230, B: 230, A: 255}
		if !e.Enabled {
			textColor.A = 100
		}
		drawLabel(ctx, r, e.Label, pos.X+10, rowY+4, 14, textColor)
	}
}

/* paintPropertiesPanel draws a compact summary strip anchored to the
selection bounds; editable rows with Apply=false are skipped entirely
(spec.md §4.6). */
func paintPropertiesPanel(ctx cairo.Context, input *scrawl.InputState) {
	p := &input.Properties
	if !p.Visible {
		return
	}
	const panelW, rowH = 180.0, 22.0
	rows := 0
	if p.Color.Apply {
		rows++
	}
	if p.Thickness.Apply {
		rows++
	}
	if p.FontSize.Apply {
		rows++
	}
	if rows == 0 {
		return
	}
	x := p.Bounds.Max.X + 8
	y := p.Bounds.Min.Y
	setSourceColor(ctx, scrawl.Color{R: 30, G: 30, B: 34, A: 230})
	ctx.Rectangle(x, y, panelW, rowH*float64(rows)+12)
	ctx.Fill()

	row := 0
	if p.Color.Apply {
		setSourceColor(ctx, p.Color.Value)
		ctx.Rectangle(x+8, y+8+float64(row)*rowH, 16, 16)
		ctx.Fill()
		row++
	}
}

/* paintBoardPicker draws the board list panel: one row per board, the
active board highlighted and a color swatch for solid backgrounds. Both
layouts draw this same list; no drag handles, palette or board names are
drawn. */
func paintBoardPicker(ctx cairo.Context, input *scrawl.InputState, w, h int) {
	bp := &input.BoardPicker
	if !bp.Visible {
		return
	}
	boards := input.Boards.Boards()
	const rowH = 32.0
	const panelW = 220.0
	panelH := rowH*float64(len(boards)) + 16
	x := (float64(w) - panelW) / 2
	y := (float64(h) - panelH) / 2

	setSourceColor(ctx, scrawl.Color{R: 25, G: 25, B: 28, A: 240})
	ctx.Rectangle(x, y, panelW, panelH)
	ctx.Fill()

	active := input.Boards.ActiveIndex()
	for i, b := range boards {
		rowY := y + 8 + float64(i)*rowH
		if i == active {
			setSourceColor(ctx, scrawl.Color{R: 60, G: 90, B: 160, A: 255})
			ctx.Rectangle(x+4, rowY, panelW-8, rowH-4)
			ctx.Fill()
		}
		if b.Background.Mode == scrawl.BackgroundSolid {
			setSourceColor(ctx, b.Background.Color)
			ctx.Rectangle(x+8, rowY+6, 14, 14)
			ctx.Fill()
		}
	}
}

/* paintRadialMenu draws the preset ring: one wedge per occupied slot plus
a dimmed wedge for empty ones, matching spec.md §4.6's circular picker. */
func paintRadialMenu(ctx cairo.Context, input *scrawl.InputState) {
	r := &input.Radial
	if !r.Visible {
		return
	}
	const radius = 70.0
	const n = scrawl.MaxPresetSlots
	for i := 0; i < n; i++ {
		theta0 := float64(i) / n * 2 * math.Pi
		theta1 := float64(i+1) / n * 2 * math.Pi
		preset, occupied := input.Presets.Get(i)

		if i == r.HoverSlot {
			ctx.SetSourceRGBA(1, 1, 1, 0.25)
		} else if occupied {
			setSourceColor(ctx, preset.Color)
		} else {
			ctx.SetSourceRGBA(0.5, 0.5, 0.5, 0.3)
		}
		ctx.MoveTo(r.Anchor.X, r.Anchor.Y)
		ctx.Arc(r.Anchor.X, r.Anchor.Y, radius, theta0, theta1)
		ctx.ClosePath()
		ctx.Fill()
	}
}
