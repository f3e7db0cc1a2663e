package scrawl

import "math"

/* Point is a floating-point 2D coordinate in logical (pre-scale) space. */
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

func (p Point) Dist(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

/* Rect is an axis-aligned rectangle in logical coordinates, Min inclusive,
Max exclusive, mirroring image.Rectangle semantics but in float64. */
type Rect struct {
	Min, Max Point
}

func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Point{x, y}, Point{x + w, y + h}}
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

/* IsValid reports whether a rectangle has positive area, per damage
invariant 3 in spec.md §8. */
func (r Rect) IsValid() bool {
	return r.Dx() > 0 && r.Dy() > 0
}

/* Inflate grows the rectangle by d on every side. Negative d shrinks it;
the caller is responsible for not producing an invalid rect. */
func (r Rect) Inflate(d float64) Rect {
	return Rect{
		Min: Point{r.Min.X - d, r.Min.Y - d},
		Max: Point{r.Max.X + d, r.Max.Y + d},
	}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

/* Intersects reports whether r and other share any area. Touching edges do
not count as intersecting. */
func (r Rect) Intersects(other Rect) bool {
	if r.Max.X <= other.Min.X || other.Max.X <= r.Min.X {
		return false
	}
	if r.Max.Y <= other.Min.Y || other.Max.Y <= r.Min.Y {
		return false
	}
	return true
}

/* Union returns the smallest rectangle containing both r and other. */
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, other.Min.X), math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{math.Max(r.Max.X, other.Max.X), math.Max(r.Max.Y, other.Max.Y)},
	}
}

/* adjacent reports whether r and other are within gap pixels of touching,
used by damage region merging (spec.md §4.4 "Region merging"). */
func (r Rect) adjacent(other Rect, gap float64) bool {
	return r.Min.X-gap <= other.Max.X && other.Min.X <= r.Max.X+gap &&
		r.Min.Y-gap <= other.Max.Y && other.Min.Y <= r.Max.Y+gap
}

func ceilTolerance(t float64) float64 {
	return math.Ceil(t)
}

/* RoundedInflate inflates a rect by tolerance rounded up to the nearest
integer pixel, used by compute_hit_bounds (spec.md §4.3). */
func (r Rect) RoundedInflate(tolerance float64) Rect {
	return r.Inflate(ceilTolerance(tolerance))
}

/* distToSegment returns the shortest distance from p to the segment a-b. */
func distToSegment(p, a, b Point) float64 {
	vx, vy := b.X-a.X, b.Y-a.Y
	wx, wy := p.X-a.X, p.Y-a.Y
	segLenSq := vx*vx + vy*vy
	if segLenSq == 0 {
		return p.Dist(a)
	}
	t := (wx*vx + wy*vy) / segLenSq
	t = math.Max(0, math.Min(1, t))
	proj := Point{a.X + t*vx, a.Y + t*vy}
	return p.Dist(proj)
}

/* Color is a straight (non-premultiplied) RGBA color in [0,255] channels. */
type Color struct {
	R, G, B, A uint8
}

func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

/* ellipseNormDist returns the normalized distance of p from an ellipse
centered at c with radii rx,ry: 1.0 is exactly on the boundary. */
func ellipseNormDist(p, c Point, rx, ry float64) float64 {
	if rx <= 0 || ry <= 0 {
		return math.Inf(1)
	}
	dx := (p.X - c.X) / rx
	dy := (p.Y - c.Y) / ry
	return math.Sqrt(dx*dx + dy*dy)
}

/* arrowHeadPoints computes the two wing points of an arrowhead triangle
given the shaft direction, head length and half-angle (radians). */
func arrowHeadPoints(tip, tail Point, length, angle float64) (left, right Point) {
	dx, dy := tip.X-tail.X, tip.Y-tail.Y
	theta := math.Atan2(dy, dx)
	left = Point{
		X: tip.X - length*math.Cos(theta-angle),
		Y: tip.Y - length*math.Sin(theta-angle),
	}
	right = Point{
		X: tip.X - length*math.Cos(theta+angle),
		Y: tip.Y - length*math.Sin(theta+angle),
	}
	return left, right
}

/* pointInTriangle uses barycentric signs, used for arrowhead hit-testing. */
func pointInTriangle(p, a, b, c Point) bool {
	sign := func(p1, p2, p3 Point) float64 {
		return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
	}
	d1 := sign(p, a, b)
	d2 := sign(p, b, c)
	d3 := sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
