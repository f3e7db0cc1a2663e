package scrawl

/* SpatialIndex answers hit queries against a frame. Below LinearThreshold
shapes it degrades to a linear scan; above it, shapes are bucketed into a
uniform grid. Either way it must return a superset of the shapes that
genuinely intersect a query (spec.md §4.3) — HitTest does exact rejection
afterward. */
type SpatialIndex struct {
	linearThreshold int
	cellSize        float64

	bounds map[uint64]Rect /* last-known bounds per shape id, for invalidation */
	grid   map[gridCell][]uint64
	order  []uint64 /* z-order snapshot, topmost last like the frame */
}

type gridCell struct{ cx, cy int }

func NewSpatialIndex(linearThreshold int, cellSize float64) *SpatialIndex {
	if cellSize <= 0 {
		cellSize = 256
	}
	return &SpatialIndex{
		linearThreshold: linearThreshold,
		cellSize:        cellSize,
		bounds:          make(map[uint64]Rect),
		grid:            make(map[gridCell][]uint64),
	}
}

func (idx *SpatialIndex) cellsFor(r Rect) []gridCell {
	x0 := int(r.Min.X / idx.cellSize)
	y0 := int(r.Min.Y / idx.cellSize)
	x1 := int(r.Max.X / idx.cellSize)
	y1 := int(r.Max.Y / idx.cellSize)
	var cells []gridCell
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			cells = append(cells, gridCell{cx, cy})
		}
	}
	return cells
}

/* Invalidate drops the cached bounds for id; it must be called whenever a
shape's bounds change (move, resize, delete). */
func (idx *SpatialIndex) Invalidate(id uint64) {
	old, had := idx.bounds[id]
	if !had {
		return
	}
	for _, c := range idx.cellsFor(old) {
		idx.grid[c] = removeID(idx.grid[c], id)
	}
	delete(idx.bounds, id)
}

func removeID(s []uint64, id uint64) []uint64 {
	for i, v := range s {
		if v == id {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

/* Rebuild recomputes the index from scratch against the current frame
contents. Cheap enough to call whenever the shape count is small; above
the linear threshold the grid is what makes queries sublinear. */
func (idx *SpatialIndex) Rebuild(frame *Frame, tolerance float64) {
	idx.bounds = make(map[uint64]Rect)
	idx.grid = make(map[gridCell][]uint64)
	idx.order = idx.order[:0]
	for _, ds := range frame.Shapes() {
		b, ok := computeHitBounds(ds.Shape, tolerance)
		if !ok {
			continue
		}
		idx.bounds[ds.ID] = b
		for _, c := range idx.cellsFor(b) {
			idx.grid[c] = append(idx.grid[c], ds.ID)
		}
		idx.order = append(idx.order, ds.ID)
	}
}

/* Query returns candidate shape ids whose inflated bounds may intersect
point, topmost (last in z-order) first. */
func (idx *SpatialIndex) Query(point Point, tolerance float64) []uint64 {
	if len(idx.bounds) <= idx.linearThreshold {
		return idx.queryLinear(point)
	}
	return idx.queryGrid(point)
}

func (idx *SpatialIndex) queryLinear(point Point) []uint64 {
	var hits []uint64
	for i := len(idx.order) - 1; i >= 0; i-- {
		id := idx.order[i]
		if b, ok := idx.bounds[id]; ok && b.Contains(point) {
			hits = append(hits, id)
		}
	}
	return hits
}

func (idx *SpatialIndex) queryGrid(point Point) []uint64 {
	cx := int(point.X / idx.cellSize)
	cy := int(point.Y / idx.cellSize)
	candidates := idx.grid[gridCell{cx, cy}]
	seen := make(map[uint64]bool, len(candidates))
	var hits []uint64
	for _, id := range candidates {
		if seen[id] {
			continue
		}
		seen[id] = true
		if b, ok := idx.bounds[id]; ok && b.Contains(point) {
			hits = append(hits, id)
		}
	}
	// topmost first
	for i, j := 0, len(hits)-1; i < j; i, j = i+1, j-1 {
		hits[i], hits[j] = hits[j], hits[i]
	}
	return hits
}

/* computeHitBounds returns the shape's bounding rectangle inflated by
ceil(tolerance); eraser strokes are non-hittable. */
func computeHitBounds(shape Shape, tolerance float64) (Rect, bool) {
	if shape.Kind() == KindEraserStroke {
		return Rect{}, false
	}
	return shape.Bounds().RoundedInflate(tolerance), true
}
