package scrawl

import "math"

const MinZoomScale = 1.0

/* ZoomState wraps a frozen image with a view transform, pan, and lock
(spec.md §4.8). It shares the capture machinery with FrozenState: zoom
activation waits for a fresh image the same way freezing for a screenshot
does. */
type ZoomState struct {
	Active  bool
	Locked  bool
	Scale   float64
	Offset  Point /* view_offset, in image pixels */
	Panning bool
	lastPan Point

	requested bool
	frozen    *FrozenState
}

func NewZoomState(timeout int64) *ZoomState {
	return &ZoomState{Scale: MinZoomScale, frozen: NewFrozenState(0)}
}

/* Request marks zoom as wanting to activate; actual activation happens in
ApplyIncomingImage once a fresh image arrives, or immediately if an image
is already held (spec.md §4.8). */
func (z *ZoomState) Request() {
	z.requested = true
	if z.frozen.HasImage() {
		z.activate()
	}
}

func (z *ZoomState) ApplyIncomingImage(img *FrozenImage) {
	z.frozen.image = img
	if z.requested {
		z.activate()
	}
}

func (z *ZoomState) activate() {
	z.Active = true
	z.requested = false
	z.Scale = MinZoomScale
	z.Offset = Point{}
}

func (z *ZoomState) Image() *FrozenImage { return z.frozen.Image() }

/* Deactivate resets the view and releases the image unless locked. */
func (z *ZoomState) Deactivate() {
	z.Active = false
	z.Offset = Point{}
	z.Scale = MinZoomScale
	if !z.Locked {
		z.frozen.Unfreeze()
	}
}

/* SetScale clamps to MinZoomScale and re-clamps the pan offset so the
zoomed image still covers the viewport. */
func (z *ZoomState) SetScale(s float64, viewW, viewH float64) {
	if s < MinZoomScale {
		s = MinZoomScale
	}
	z.Scale = s
	z.clampOffset(viewW, viewH)
}

/* PanByScreenDelta translates view_offset by a screen-space delta, clamped
so the zoomed image always covers the viewport (spec.md §4.8). */
func (z *ZoomState) PanByScreenDelta(dx, dy, viewW, viewH float64) {
	z.Offset.X += dx / z.Scale
	z.Offset.Y += dy / z.Scale
	z.clampOffset(viewW, viewH)
}

func (z *ZoomState) clampOffset(viewW, viewH float64) {
	img := z.Image()
	if img == nil {
		return
	}
	maxX := math.Max(0, float64(img.Width)-viewW/z.Scale)
	maxY := math.Max(0, float64(img.Height)-viewH/z.Scale)
	z.Offset.X = clamp(z.Offset.X, 0, maxX)
	z.Offset.Y = clamp(z.Offset.Y, 0, maxY)
}

func (z *ZoomState) BeginPan(p Point) {
	z.Panning = true
	z.lastPan = p
}

func (z *ZoomState) ContinuePan(p, viewSize Point) {
	if !z.Panning {
		return
	}
	dx := z.lastPan.X - p.X
	dy := z.lastPan.Y - p.Y
	z.PanByScreenDelta(dx, dy, viewSize.X, viewSize.Y)
	z.lastPan = p
}

func (z *ZoomState) EndPan() { z.Panning = false }

/* ZoomStatusMirror is the read-only snapshot the UI status bar / badge
consults without reaching into ZoomState's capture plumbing. */
type ZoomStatusMirror struct {
	Active bool
	Locked bool
	Scale  float64
}

func (z *ZoomState) StatusMirror() ZoomStatusMirror {
	return ZoomStatusMirror{Active: z.Active, Locked: z.Locked, Scale: z.Scale}
}
