package scrawl

import "math"

/* HitTest performs exact, shape-specific rejection after the spatial index
has produced candidates (spec.md §4.3). */
func HitTest(shape Shape, point Point, tolerance float64) bool {
	switch s := shape.(type) {
	case Freehand:
		return hitPolyline(s.Points, point, math.Max(tolerance, s.Thickness/2))
	case MarkerStroke:
		return hitPolyline(s.Points, point, math.Max(tolerance, s.EffectiveThickness()/2))
	case Line:
		return distToSegment(point, s.A, s.B) <= math.Max(tolerance, s.Thickness/2)
	case Arrow:
		if distToSegment(point, s.A, s.B) <= math.Max(tolerance, s.Thickness/2) {
			return true
		}
		return hitArrowhead(s, point, tolerance)
	case Rectangle:
		return hitRectOutline(s, point, tolerance)
	case EllipseShape:
		return hitEllipseOutline(s, point, tolerance)
	case Text:
		return s.Bounds().RoundedInflate(tolerance).Contains(point)
	case StickyNote:
		return s.Bounds().RoundedInflate(tolerance).Contains(point)
	case EraserStroke:
		return false
	}
	return false
}

func hitPolyline(points []Point, point Point, tol float64) bool {
	if len(points) == 1 {
		return point.Dist(points[0]) <= tol
	}
	for i := 0; i+1 < len(points); i++ {
		if distToSegment(point, points[i], points[i+1]) <= tol {
			return true
		}
	}
	return false
}

func hitArrowhead(a Arrow, point Point, tolerance float64) bool {
	tip := a.Tip()
	tail := a.Tail()
	left, right := arrowHeadPoints(tip, tail, a.HeadLength, a.HeadAngle)
	if pointInTriangle(point, tip, left, right) {
		return true
	}
	tol := math.Max(tolerance, a.Thickness/2)
	return distToSegment(point, tip, left) <= tol || distToSegment(point, tip, right) <= tol
}

/* hitRectOutline requires the point inside the inflated outer boundary AND
within tolerance of some edge (an unfilled rect is a frame, not a disc). */
func hitRectOutline(r Rectangle, point Point, tolerance float64) bool {
	outer := r.Bounds().RoundedInflate(tolerance)
	if !outer.Contains(point) {
		return false
	}
	b := r.Bounds()
	distLeft := math.Abs(point.X - b.Min.X)
	distRight := math.Abs(point.X - b.Max.X)
	distTop := math.Abs(point.Y - b.Min.Y)
	distBottom := math.Abs(point.Y - b.Max.Y)
	withinX := point.X >= b.Min.X-tolerance && point.X <= b.Max.X+tolerance
	withinY := point.Y >= b.Min.Y-tolerance && point.Y <= b.Max.Y+tolerance
	if withinY && (distLeft <= tolerance || distRight <= tolerance) {
		return true
	}
	if withinX && (distTop <= tolerance || distBottom <= tolerance) {
		return true
	}
	return false
}

/* hitEllipseOutline requires the point be on or near the ellipse boundary:
inside the tolerance-inflated outer ellipse and outside the
tolerance-deflated inner ellipse. */
func hitEllipseOutline(e EllipseShape, point Point, tolerance float64) bool {
	outerDist := ellipseNormDist(point, e.Center, e.Rx+tolerance, e.Ry+tolerance)
	innerRx, innerRy := e.Rx-tolerance, e.Ry-tolerance
	if innerRx <= 0 || innerRy <= 0 {
		return outerDist <= 1
	}
	innerDist := ellipseNormDist(point, e.Center, innerRx, innerRy)
	return outerDist <= 1 && innerDist > 1
}

/* ShapesInRect returns every shape id in frame whose bounding box
intersects r, used for rubber-band selection (spec.md §4.2 Selecting). */
func ShapesInRect(frame *Frame, r Rect) []uint64 {
	var hits []uint64
	for _, ds := range frame.Shapes() {
		if ds.Shape.Kind() == KindEraserStroke {
			continue
		}
		if ds.Shape.Bounds().Intersects(r) {
			hits = append(hits, ds.ID)
		}
	}
	return hits
}

/* HitTestAllForPoints is used during eraser-stroke hover/drawing: for each
query point it consults the spatial index then does exact rejection,
returning the union of hit ids, each once, in the order first hit (query
points in order, topmost first within a point). */
func HitTestAllForPoints(frame *Frame, idx *SpatialIndex, points []Point, tolerance float64) []uint64 {
	seen := make(map[uint64]bool)
	var hits []uint64
	for _, p := range points {
		for _, id := range idx.Query(p, tolerance) {
			if seen[id] {
				continue
			}
			ds, ok := frame.Get(id)
			if !ok {
				continue
			}
			if HitTest(ds.Shape, p, tolerance) {
				seen[id] = true
				hits = append(hits, id)
			}
		}
	}
	return hits
}

/* TopHit returns the topmost (last z-order) candidate from the index that
exactly hits point, or (0, false). */
func TopHit(frame *Frame, idx *SpatialIndex, point Point, tolerance float64) (uint64, bool) {
	for _, id := range idx.Query(point, tolerance) {
		ds, ok := frame.Get(id)
		if !ok {
			continue
		}
		if HitTest(ds.Shape, point, tolerance) {
			return id, true
		}
	}
	return 0, false
}
