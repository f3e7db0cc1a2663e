package scrawl

import "testing"

/* seed scenario 3: rubber-band selection across heterogeneous shapes. */
func TestShapesInRectHeterogeneous(t *testing.T) {
	f := NewFrame(100)
	idLine, _ := f.AddShape(Line{A: Point{0, 0}, B: Point{10, 10}}, 0)
	idRect, _ := f.AddShape(Rectangle{Origin: Point{50, 50}, Width: 10, Height: 10}, 0)
	_, _ = f.AddShape(EllipseShape{Center: Point{500, 500}, Rx: 5, Ry: 5}, 0)
	idEraser, _ := f.AddShape(EraserStroke{Points: []Point{{0, 0}}, Radius: 5}, 0)

	band := RectXYWH(-5, -5, 70, 70)
	hits := ShapesInRect(f, band)

	found := map[uint64]bool{}
	for _, id := range hits {
		found[id] = true
	}
	if !found[idLine] || !found[idRect] {
		t.Fatalf("expected line and rect in band, got %v", hits)
	}
	if found[idEraser] {
		t.Fatalf("eraser strokes must never be selectable")
	}
}

func TestSpatialIndexQueryTopmostFirst(t *testing.T) {
	f := NewFrame(100)
	f.AddShape(Rectangle{Origin: Point{0, 0}, Width: 20, Height: 20}, 0)
	idTop, _ := f.AddShape(Rectangle{Origin: Point{0, 0}, Width: 20, Height: 20}, 0)

	idx := NewSpatialIndex(64, 256)
	idx.Rebuild(f, 2)

	got, ok := TopHit(f, idx, Point{1, 5}, 2)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if got != idTop {
		t.Fatalf("expected topmost shape %d, got %d", idTop, got)
	}
}

func TestSpatialIndexInvalidateRemovesStaleEntry(t *testing.T) {
	f := NewFrame(100)
	id, _ := f.AddShape(Rectangle{Origin: Point{0, 0}, Width: 20, Height: 20}, 0)
	idx := NewSpatialIndex(64, 256)
	idx.Rebuild(f, 2)

	idx.Invalidate(id)
	if _, ok := idx.bounds[id]; ok {
		t.Fatalf("expected bounds entry to be removed")
	}
	hits := idx.Query(Point{5, 5}, 2)
	for _, h := range hits {
		if h == id {
			t.Fatalf("invalidated shape should not appear in query results")
		}
	}
}

/* invariant 5: the grid regime and linear regime must agree on membership
for the same query once shape count exceeds the threshold. */
func TestSpatialIndexGridMatchesLinearAboveThreshold(t *testing.T) {
	f := NewFrame(1000)
	for i := 0; i < 50; i++ {
		x := float64(i * 30)
		f.AddShape(Rectangle{Origin: Point{x, 0}, Width: 20, Height: 20}, 0)
	}

	linear := NewSpatialIndex(1000, 256) // threshold above count: stays linear
	linear.Rebuild(f, 2)
	grid := NewSpatialIndex(0, 256) // threshold 0: always grid
	grid.Rebuild(f, 2)

	query := Point{305, 5}
	linHits := toSet(linear.Query(query, 2))
	gridHits := toSet(grid.Query(query, 2))
	if len(linHits) != len(gridHits) {
		t.Fatalf("grid/linear mismatch: linear=%v grid=%v", linHits, gridHits)
	}
	for id := range linHits {
		if !gridHits[id] {
			t.Fatalf("grid regime missed id %d present in linear regime", id)
		}
	}
}

func toSet(ids []uint64) map[uint64]bool {
	out := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func TestHitTestEraserStrokeNeverHits(t *testing.T) {
	e := EraserStroke{Points: []Point{{0, 0}, {10, 10}}, Radius: 20}
	if HitTest(e, Point{5, 5}, 2) {
		t.Fatalf("eraser strokes must never be hittable")
	}
}

func TestHitTestRectOutlineRejectsInterior(t *testing.T) {
	r := Rectangle{Origin: Point{0, 0}, Width: 100, Height: 100, Thickness: 2}
	if HitTest(r, Point{50, 50}, 2) {
		t.Fatalf("unfilled rectangle interior should not be hittable")
	}
	if !HitTest(r, Point{0, 50}, 2) {
		t.Fatalf("rectangle edge should be hittable")
	}
}
