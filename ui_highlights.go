package scrawl

/* MaxActiveHighlights bounds the number of concurrently overlapping ring
animations (spec.md §4.6). */
const MaxActiveHighlights = 4

type ClickHighlight struct {
	Center   Point
	Color    Color
	duration float64
	elapsed  float64
}

/* Alpha returns the linearly-faded alpha in [0,1] for the highlight's
current age. */
func (h ClickHighlight) Alpha() float64 {
	if h.duration <= 0 {
		return 0
	}
	a := 1 - h.elapsed/h.duration
	if a < 0 {
		return 0
	}
	return a
}

func (h ClickHighlight) Alive() bool {
	return h.elapsed < h.duration
}

/* ClickHighlightEngine owns the ring pool and the pen-color-tracking
flag (spec.md §4.6). */
type ClickHighlightEngine struct {
	rings       []ClickHighlight
	UsePenColor bool
	duration    float64
}

func NewClickHighlightEngine(durationMs float64) *ClickHighlightEngine {
	return &ClickHighlightEngine{duration: durationMs}
}

/* Spawn adds a new ring at center, evicting the oldest if the pool is at
MaxActiveHighlights. If UsePenColor is set, color should already be the
caller's current pen color with alpha preserved from the base fill/outline
(the engine does not itself know board theme). */
func (e *ClickHighlightEngine) Spawn(center Point, color Color) {
	h := ClickHighlight{Center: center, Color: color, duration: e.duration}
	if len(e.rings) >= MaxActiveHighlights {
		e.rings = e.rings[1:]
	}
	e.rings = append(e.rings, h)
}

func (e *ClickHighlightEngine) Rings() []ClickHighlight { return e.rings }

/* Advance ticks every ring by dtMs, dropping dead ones, and returns true
while any ring remains alive so the renderer keeps ticking (spec.md
§4.6). */
func (e *ClickHighlightEngine) Advance(dtMs float64) bool {
	alive := e.rings[:0]
	for _, h := range e.rings {
		h.elapsed += dtMs
		if h.Alive() {
			alive = append(alive, h)
		}
	}
	e.rings = alive
	return len(e.rings) > 0
}
