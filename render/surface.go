/* Package render rasterizes a scrawl.InputState into the raw pixel bytes
backend attaches to a wl_buffer. It is the only package that imports
go-cairo; backend hands it a byte slice it never owns (spec.md §4.4). */
package render

import (
	"unsafe"

	"github.com/daaku/swizzle"
	"github.com/novvoo/go-cairo/pkg/cairo"
	"golang.org/x/image/font"

	"github.com/friedelschoen/scrawl"
)

/* Surface caches loaded font faces across frames, the one piece of render
state that is expensive enough (TTF parse + hinting setup) to be worth
keeping between paints; everything else is recomputed fresh every frame
(spec.md §4.4). */
type Surface struct {
	faces map[string]font.Face
}

func NewSurface() *Surface {
	return &Surface{faces: make(map[string]font.Face)}
}

/* PixelDataPointer exposes a buffer's backing-array address so backend can
key BufferDamageTracker's per-slot state by it (spec.md §4.5). */
func PixelDataPointer(data []byte) uintptr {
	if len(data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&data[0]))
}

/* Paint renders one complete frame into pixels, a stride-aligned buffer of
w x h pixels matching the wl_shm ABGR8888 slot backend attaches. Cairo
draws in its native ARGB32 (premultiplied, native-endian) layout; the
final swizzle.BGRA pass reorders R/B in place to match the buffer's
advertised wire format (spec.md §4.4 "single-pass composite", §4.9). */
func Paint(r *Surface, input *scrawl.InputState, pixels []byte, w, h, stride int) {
	if w <= 0 || h <= 0 || stride < w*4 || len(pixels) < stride*h {
		return
	}
	surf := cairo.NewImageSurfaceForData(pixels, cairo.FormatARGB32, w, h, stride)
	defer surf.Destroy()
	ctx := cairo.NewContext(surf)
	defer ctx.Destroy()
	if ctx.Status() != cairo.StatusSuccess {
		return
	}

	clearTransparent(ctx)
	backdrop := buildBackdropPattern(input)
	defer backdrop.Destroy()
	paintBackdrop(ctx, input, backdrop, w, h)
	paintShapes(ctx, input, r, backdrop)
	paintSelection(ctx, input)
	paintProvisional(ctx, input, r)
	paintTextCaret(ctx, input)
	paintClickHighlights(ctx, input)
	paintToolPreview(ctx, input)
	paintOverlayChrome(ctx, input, r, w, h)

	surf.Flush()
	swizzle.BGRA(pixels)
}

/* clearTransparent wipes the surface to fully transparent using
OperatorSource, which replaces rather than blends, so stale pixels from a
reused SHM slot never bleed through (spec.md §4.4 "clear to transparent"). */
func clearTransparent(ctx cairo.Context) {
	ctx.SetOperator(cairo.OperatorSource)
	ctx.SetSourceRGBA(0, 0, 0, 0)
	ctx.Paint()
	ctx.SetOperator(cairo.OperatorOver)
}

func setSourceColor(ctx cairo.Context, c scrawl.Color) {
	ctx.SetSourceRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

/* buildBackdropPattern is the one pattern handle eraser replay and the
initial backdrop fill both source from (spec.md §4.4 step 5 "keep a pattern
handle for eraser replay"). A frozen capture takes priority over the
board's own background since freezing is what seed scenario 5 annotates
over; callers must Destroy the returned pattern once the frame is done. */
func buildBackdropPattern(input *scrawl.InputState) cairo.Pattern {
	if input.Frozen != nil && input.Frozen.HasImage() {
		if img := input.Frozen.Image(); img != nil && img.Valid() {
			src := cairo.NewImageSurfaceForData(img.Data, cairo.FormatARGB32, img.Width, img.Height, img.Stride)
			pattern := cairo.NewPatternForSurface(src)
			src.Destroy()
			return pattern
		}
	}
	board := input.Boards.Active()
	if board.Background.Mode == scrawl.BackgroundSolid {
		c := board.Background.Color
		return cairo.NewPatternRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
	}
	return cairo.NewPatternRGBA(0, 0, 0, 0)
}

/* paintBackdrop fills the whole surface with the backdrop pattern, then
additionally paints the zoom-transformed view on top when zoom is active
(spec.md §4.8's zoom view transform operates independently of the eraser's
untransformed replay pattern). */
func paintBackdrop(ctx cairo.Context, input *scrawl.InputState, backdrop cairo.Pattern, w, h int) {
	ctx.SetSource(backdrop)
	ctx.Rectangle(0, 0, float64(w), float64(h))
	ctx.Fill()

	if input.Zoom != nil && input.Zoom.Active {
		paintZoomedImage(ctx, input.Zoom, w, h)
	}
}

func paintZoomedImage(ctx cairo.Context, zoom *scrawl.ZoomState, w, h int) {
	img := zoom.Image()
	if img == nil || !img.Valid() {
		return
	}
	src := cairo.NewImageSurfaceForData(img.Data, cairo.FormatARGB32, img.Width, img.Height, img.Stride)
	defer src.Destroy()

	ctx.Save()
	defer ctx.Restore()
	mirror := zoom.StatusMirror()
	ctx.Scale(mirror.Scale, mirror.Scale)
	ctx.Translate(-zoom.Offset.X, -zoom.Offset.Y)
	ctx.SetSourceSurface(src, 0, 0)
	ctx.Paint()
}
