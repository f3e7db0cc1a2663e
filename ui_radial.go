package scrawl

import "math"

/* RadialMenuState is a modal circular picker over saved presets (spec.md
§4.6). Closing it releases the modal flag without mutating any preset. */
type RadialMenuState struct {
	Visible    bool
	Anchor     Point
	HoverSlot  int
}

func (r *RadialMenuState) Open(anchor Point) {
	r.Visible = true
	r.Anchor = anchor
	r.HoverSlot = -1
}

func (r *RadialMenuState) Close() {
	*r = RadialMenuState{HoverSlot: -1}
}

/* SlotAt maps a pointer position to a preset slot index given n slots laid
out evenly around Anchor at radius, or -1 if outside the ring. */
func (r *RadialMenuState) SlotAt(p Point, radius float64, n int) int {
	if n <= 0 {
		return -1
	}
	d := p.Dist(r.Anchor)
	if d > radius*1.5 || d < radius*0.3 {
		return -1
	}
	dx, dy := p.X-r.Anchor.X, p.Y-r.Anchor.Y
	theta := atan2Normalized(dy, dx)
	slot := int(theta / (2 * math.Pi) * float64(n))
	if slot < 0 {
		slot = 0
	}
	if slot >= n {
		slot = n - 1
	}
	return slot
}

func atan2Normalized(y, x float64) float64 {
	theta := math.Atan2(y, x)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}
