package render

import (
	"math"

	"github.com/novvoo/go-cairo/pkg/cairo"

	"github.com/friedelschoen/scrawl"
)

/* paintShapes draws every committed shape on the active page in z-order
(spec.md §4.1 "ordered sequence", §4.3). Locked shapes render identically
to unlocked ones; locking only affects input handling. */
func paintShapes(ctx cairo.Context, input *scrawl.InputState, r *Surface, backdrop cairo.Pattern) {
	frame, err := input.Boards.ActiveFrame()
	if err != nil {
		return
	}
	for _, ds := range frame.Shapes() {
		drawShape(ctx, ds.Shape, r, backdrop)
	}
}

func drawShape(ctx cairo.Context, s scrawl.Shape, r *Surface, backdrop cairo.Pattern) {
	switch v := s.(type) {
	case scrawl.Freehand:
		strokePath(ctx, v.Points, v.Color, v.Thickness)
	case scrawl.Line:
		setSourceColor(ctx, v.Color)
		ctx.SetLineWidth(v.Thickness)
		ctx.MoveTo(v.A.X, v.A.Y)
		ctx.LineTo(v.B.X, v.B.Y)
		ctx.Stroke()
	case scrawl.Rectangle:
		drawRect(ctx, v)
	case scrawl.EllipseShape:
		drawEllipse(ctx, v)
	case scrawl.Arrow:
		drawArrow(ctx, v)
	case scrawl.MarkerStroke:
		strokePath(ctx, v.Points, v.Color, v.Thickness)
	case scrawl.Text:
		drawText(ctx, r, v)
	case scrawl.StickyNote:
		drawStickyNote(ctx, r, v)
	case scrawl.EraserStroke:
		drawEraserStroke(ctx, v, backdrop)
	}
}

func strokePath(ctx cairo.Context, pts []scrawl.Point, color scrawl.Color, thickness float64) {
	if len(pts) == 0 {
		return
	}
	setSourceColor(ctx, color)
	ctx.SetLineWidth(thickness)
	ctx.SetLineCap(cairo.LineCapRound)
	ctx.SetLineJoin(cairo.LineJoinRound)
	if len(pts) == 1 {
		ctx.Arc(pts[0].X, pts[0].Y, thickness/2, 0, 2*math.Pi)
		ctx.Fill()
		return
	}
	ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	ctx.Stroke()
}

func drawRect(ctx cairo.Context, r scrawl.Rectangle) {
	if r.Fill != nil {
		setSourceColor(ctx, *r.Fill)
		ctx.Rectangle(r.Origin.X, r.Origin.Y, r.Width, r.Height)
		ctx.Fill()
	}
	setSourceColor(ctx, r.Color)
	ctx.SetLineWidth(r.Thickness)
	ctx.Rectangle(r.Origin.X, r.Origin.Y, r.Width, r.Height)
	ctx.Stroke()
}

func drawEllipse(ctx cairo.Context, e scrawl.EllipseShape) {
	if e.Fill != nil {
		setSourceColor(ctx, *e.Fill)
		ellipsePath(ctx, e.Center, e.Rx, e.Ry)
		ctx.Fill()
	}
	setSourceColor(ctx, e.Color)
	ctx.SetLineWidth(e.Thickness)
	ellipsePath(ctx, e.Center, e.Rx, e.Ry)
	ctx.Stroke()
}

func ellipsePath(ctx cairo.Context, center scrawl.Point, rx, ry float64) {
	ctx.Save()
	ctx.Translate(center.X, center.Y)
	ctx.Scale(rx, ry)
	ctx.Arc(0, 0, 1, 0, 2*math.Pi)
	ctx.Restore()
}

func drawArrow(ctx cairo.Context, a scrawl.Arrow) {
	setSourceColor(ctx, a.Color)
	ctx.SetLineWidth(a.Thickness)
	ctx.MoveTo(a.A.X, a.A.Y)
	ctx.LineTo(a.B.X, a.B.Y)
	ctx.Stroke()

	tip := a.A
	tail := a.B
	if a.HeadAtEnd {
		tip, tail = a.B, a.A
	}
	headLen, headAngle := a.HeadLength, a.HeadAngle
	if headLen <= 0 {
		headLen = 12
	}
	if headAngle <= 0 {
		headAngle = 0.4
	}
	dx, dy := tip.X-tail.X, tip.Y-tail.Y
	theta := math.Atan2(dy, dx)
	left := scrawl.Point{
		X: tip.X - headLen*math.Cos(theta-headAngle),
		Y: tip.Y - headLen*math.Sin(theta-headAngle),
	}
	right := scrawl.Point{
		X: tip.X - headLen*math.Cos(theta+headAngle),
		Y: tip.Y - headLen*math.Sin(theta+headAngle),
	}
	ctx.MoveTo(tip.X, tip.Y)
	ctx.LineTo(left.X, left.Y)
	ctx.MoveTo(tip.X, tip.Y)
	ctx.LineTo(right.X, right.Y)
	ctx.Stroke()
}

/* drawEraserStroke replays the backdrop pattern (the frozen screenshot, or
the board's solid color) along the stroke path instead of clearing to
transparency, so erasing over a frozen image reveals the image underneath
rather than the compositor behind the overlay (spec.md §4.4 steps 5 and 8).
backdrop is the same pattern paintBackdrop already painted this frame, kept
alive for the duration of Paint so every eraser stroke re-sources from it. */
func drawEraserStroke(ctx cairo.Context, e scrawl.EraserStroke, backdrop cairo.Pattern) {
	ctx.SetSource(backdrop)

	ctx.SetLineWidth(e.Radius * 2)
	ctx.SetLineCap(cairo.LineCapRound)
	ctx.SetLineJoin(cairo.LineJoinRound)
	if len(e.Points) == 0 {
		return
	}
	if len(e.Points) == 1 {
		ctx.Arc(e.Points[0].X, e.Points[0].Y, e.Radius, 0, 2*math.Pi)
		ctx.Fill()
		return
	}
	ctx.MoveTo(e.Points[0].X, e.Points[0].Y)
	for _, p := range e.Points[1:] {
		ctx.LineTo(p.X, p.Y)
	}
	ctx.Stroke()
}

/* paintSelection draws a dashed halo around every selected shape's bounds
plus a resize handle when exactly one shape is selected (spec.md §4.3
"selection halo", §4.6). */
func paintSelection(ctx cairo.Context, input *scrawl.InputState) {
	if input.Selection.IsEmpty() {
		return
	}
	frame, err := input.Boards.ActiveFrame()
	if err != nil {
		return
	}
	ids := input.Selection.IDs()
	setSourceColor(ctx, scrawl.Color{R: 64, G: 160, B: 255, A: 220})
	ctx.SetLineWidth(1.5)
	ctx.SetDash([]float64{4, 3}, 0)
	defer ctx.SetDash(nil, 0)

	for _, id := range ids {
		ds, ok := frame.Get(id)
		if !ok {
			continue
		}
		b := ds.Shape.Bounds().Inflate(4)
		ctx.Rectangle(b.Min.X, b.Min.Y, b.Dx(), b.Dy())
		ctx.Stroke()
		if len(ids) == 1 {
			const handle = 6.0
			ctx.Rectangle(b.Max.X-handle/2, b.Max.Y-handle/2, handle, handle)
			ctx.Fill()
		}
	}
}

/* paintProvisional draws the in-progress shape under the pointer while a
drag is live. Shape tools span Start to the current pointer position, the
same end point finalizeDrawing commits; freehand-like tools, the eraser
included, preview as a plain stroke in the current color and thickness
(spec.md §4.2). */
func paintProvisional(ctx cairo.Context, input *scrawl.InputState, r *Surface) {
	d := input.Drawing
	if d.Kind != scrawl.DrawingActive || len(d.Points) == 0 {
		return
	}
	switch {
	case d.Tool.IsFreehandLike():
		strokePath(ctx, d.Points, input.Color, input.Thickness)
	case d.Tool.IsShapeLike() && len(d.Points) >= 1:
		end := input.PointerPos
		drawShapePreview(ctx, d.Tool, d.Start, end, input)
	}
}

func drawShapePreview(ctx cairo.Context, tool scrawl.Tool, start, end scrawl.Point, input *scrawl.InputState) {
	switch tool {
	case scrawl.ToolLine:
		setSourceColor(ctx, input.Color)
		ctx.SetLineWidth(input.Thickness)
		ctx.MoveTo(start.X, start.Y)
		ctx.LineTo(end.X, end.Y)
		ctx.Stroke()
	case scrawl.ToolRect:
		setSourceColor(ctx, input.Color)
		ctx.SetLineWidth(input.Thickness)
		ctx.Rectangle(start.X, start.Y, end.X-start.X, end.Y-start.Y)
		ctx.Stroke()
	case scrawl.ToolEllipse:
		cx, cy := (start.X+end.X)/2, (start.Y+end.Y)/2
		rx, ry := math.Abs(end.X-start.X)/2, math.Abs(end.Y-start.Y)/2
		setSourceColor(ctx, input.Color)
		ctx.SetLineWidth(input.Thickness)
		ellipsePath(ctx, scrawl.Point{X: cx, Y: cy}, rx, ry)
		ctx.Stroke()
	case scrawl.ToolArrow:
		drawArrow(ctx, scrawl.Arrow{
			A: start, B: end, Color: input.Color, Thickness: input.Thickness,
			HeadLength: input.ArrowHeadLen, HeadAngle: input.ArrowHeadAngle, HeadAtEnd: input.ArrowHeadAtEnd,
		})
	}
}

/* paintTextCaret draws a steady vertical bar at the insertion point while in
DrawingTextInput mode (spec.md §4.2 "text tool"). */
func paintTextCaret(ctx cairo.Context, input *scrawl.InputState) {
	d := input.Drawing
	if d.Kind != scrawl.DrawingTextInput {
		return
	}
	w, h := measureForCaret(d.TextBuffer, input.FontSize)
	setSourceColor(ctx, input.Color)
	ctx.SetLineWidth(1.5)
	ctx.MoveTo(d.Origin.X+w, d.Origin.Y)
	ctx.LineTo(d.Origin.X+w, d.Origin.Y+h)
	ctx.Stroke()
}

func measureForCaret(s string, fontSize float64) (w, h float64) {
	lastLine := s
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			lastLine = s[i+1:]
			break
		}
	}
	return float64(len([]rune(lastLine))) * fontSize * 0.55, fontSize * 1.2
}
