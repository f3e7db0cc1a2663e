package scrawl

/* ShapeKind tags the closed Shape union. New kinds are rare; adding one
means touching every switch in this file plus render/hittest. */
type ShapeKind int

const (
	KindFreehand ShapeKind = iota
	KindLine
	KindRect
	KindEllipse
	KindArrow
	KindMarkerStroke
	KindText
	KindStickyNote
	KindEraserStroke
)

type EraserKind int

const (
	EraserCircle EraserKind = iota
	EraserRect
)

type EraserMode int

const (
	EraserBrush EraserMode = iota
	EraserStrokeMode
)

/* FontDescriptor names family/weight/style independent of size, matching
the teacher's "font:size=N" string split in parseFontString but structured. */
type FontDescriptor struct {
	Family string
	Weight string
	Style  string
}

/* Shape is a closed, tagged union of geometric primitives. It is an
interface purely to let each variant carry its own fields with type safety;
callers must switch on Kind() and type-assert the concrete variant rather
than relying on open dynamic dispatch (spec.md §9). */
type Shape interface {
	Kind() ShapeKind
	Bounds() Rect
}

type Freehand struct {
	Points    []Point
	Color     Color
	Thickness float64
}

func (Freehand) Kind() ShapeKind { return KindFreehand }

func (f Freehand) Bounds() Rect {
	return pointsBounds(f.Points)
}

type Line struct {
	A, B      Point
	Color     Color
	Thickness float64
}

func (Line) Kind() ShapeKind { return KindLine }

func (l Line) Bounds() Rect {
	return pointsBounds([]Point{l.A, l.B})
}

type Rectangle struct {
	Origin        Point
	Width, Height float64
	Fill          *Color
	Color         Color
	Thickness     float64
}

func (Rectangle) Kind() ShapeKind { return KindRect }

func (r Rectangle) Bounds() Rect {
	return RectXYWH(r.Origin.X, r.Origin.Y, r.Width, r.Height)
}

type EllipseShape struct {
	Center    Point
	Rx, Ry    float64
	Fill      *Color
	Color     Color
	Thickness float64
}

func (EllipseShape) Kind() ShapeKind { return KindEllipse }

func (e EllipseShape) Bounds() Rect {
	return RectXYWH(e.Center.X-e.Rx, e.Center.Y-e.Ry, e.Rx*2, e.Ry*2)
}

type Arrow struct {
	A, B       Point
	Color      Color
	Thickness  float64
	HeadLength float64
	HeadAngle  float64
	HeadAtEnd  bool
	Label      *int /* auto-number label, nil when disabled */
}

func (Arrow) Kind() ShapeKind { return KindArrow }

func (a Arrow) Bounds() Rect {
	return pointsBounds([]Point{a.A, a.B})
}

/* Tip and Tail return the arrowhead end and the opposite end, honoring
HeadAtEnd. */
func (a Arrow) Tip() Point {
	if a.HeadAtEnd {
		return a.B
	}
	return a.A
}

func (a Arrow) Tail() Point {
	if a.HeadAtEnd {
		return a.A
	}
	return a.B
}

type MarkerStroke struct {
	Points    []Point
	Color     Color /* includes alpha, overlay-blended */
	Thickness float64
}

func (MarkerStroke) Kind() ShapeKind { return KindMarkerStroke }

func (m MarkerStroke) Bounds() Rect {
	return pointsBounds(m.Points)
}

/* EffectiveThickness widens the hit tolerance of a marker relative to a
pen stroke of the same nominal thickness (spec.md §4.3). */
func (m MarkerStroke) EffectiveThickness() float64 {
	t := m.Thickness * 1.35
	if alt := m.Thickness + 1; alt > t {
		t = alt
	}
	return t
}

type Text struct {
	Origin     Point
	String     string
	Color      Color
	FontSize   float64
	Font       FontDescriptor
	Background *Color
	WrapWidth  *float64
}

func (Text) Kind() ShapeKind { return KindText }

func (t Text) Bounds() Rect {
	w, h := measureText(t.String, t.FontSize, t.WrapWidth)
	return RectXYWH(t.Origin.X, t.Origin.Y, w, h)
}

type StickyNote struct {
	Origin          Point
	String          string
	BackgroundColor Color
	FontSize        float64
	Font            FontDescriptor
	WrapWidth       *float64
}

func (StickyNote) Kind() ShapeKind { return KindStickyNote }

func (s StickyNote) Bounds() Rect {
	w, h := measureText(s.String, s.FontSize, s.WrapWidth)
	return RectXYWH(s.Origin.X, s.Origin.Y, w, h)
}

type EraserStroke struct {
	Points []Point
	Radius float64
	Kind_  EraserKind
	Mode   EraserMode
}

func (EraserStroke) Kind() ShapeKind { return KindEraserStroke }

func (e EraserStroke) Bounds() Rect {
	return pointsBounds(e.Points).Inflate(e.Radius)
}

func pointsBounds(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X > r.Max.X {
			r.Max.X = p.X
		}
		if p.Y > r.Max.Y {
			r.Max.Y = p.Y
		}
	}
	return r
}

/* measureText is a placeholder metric used by the data model for bounds
computation outside of a render pass; the renderer recomputes exact glyph
extents against the loaded font.Face (render/text.go). This keeps the core
package free of a Cairo/font dependency so it stays testable without a
display connection. */
func measureText(s string, fontSize float64, wrap *float64) (w, h float64) {
	lines := splitLines(s)
	maxw := 0.0
	lineWidth := fontSize * 0.6
	for _, line := range lines {
		lw := float64(len([]rune(line))) * lineWidth
		if wrap != nil && lw > *wrap {
			lw = *wrap
		}
		if lw > maxw {
			maxw = lw
		}
	}
	return maxw, float64(len(lines)) * fontSize * 1.3
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

/* DrawnShape pairs a Shape with its session identity. Ids are unique
within a frame and never reused within the session (spec.md §3). */
type DrawnShape struct {
	ID        uint64
	Locked    bool
	CreatedAt int64 /* wall clock at commit, milliseconds */
	Shape     Shape
}
