package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path"
	"strings"

	"github.com/daaku/swizzle"
	"github.com/novvoo/go-cairo/pkg/cairo"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/friedelschoen/scrawl"
)

/* faceKey identifies a cached font.Face by the attributes that change its
metrics; Style/Weight are folded into the lookup path the same way the
teacher's parseFontString folds "name:key=value" options into a single
cache-worthy string. */
func faceKey(d scrawl.FontDescriptor, size float64) string {
	return fmt.Sprintf("%s|%s|%s|%.1f", d.Family, d.Weight, d.Style, size)
}

/* loadFace resolves a FontDescriptor to a hinted opentype.Face, searching
$FONTPATH the same way the teacher's parseFontString does. When no
<family>.ttf is found it returns an error; callers then skip that text
rather than failing the whole frame (spec.md §4.2 "font" property never
blocks drawing). There is no built-in fallback face. */
func (r *Surface) loadFace(d scrawl.FontDescriptor, size float64) (font.Face, error) {
	key := faceKey(d, size)
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	family := d.Family
	if family == "" {
		family = "sans-serif"
	}
	var content []byte
	var err error
	for _, dir := range strings.Split(os.Getenv("FONTPATH"), ":") {
		if dir == "" {
			continue
		}
		content, err = os.ReadFile(path.Join(dir, family+".ttf"))
		if err == nil {
			break
		}
	}
	if content == nil {
		if err == nil {
			err = fmt.Errorf("render: font %q not found in $FONTPATH", family)
		}
		return nil, err
	}
	fnt, err := opentype.Parse(content)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		DPI:     96,
		Size:    size,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	r.faces[key] = face
	return face, nil
}

/* measureRun sums glyph advances plus kerning for a single line, mirroring
the teacher's XMenu.MessureText (main.go). */
func measureRun(face font.Face, s string) fixed.Int26_6 {
	prev := rune(-1)
	var width fixed.Int26_6
	for _, chr := range s {
		if prev != -1 {
			width += face.Kern(prev, chr)
		}
		prev = chr
		advance, _ := face.GlyphAdvance(chr)
		width += advance
	}
	return width
}

/* wrapText greedily breaks s on word boundaries so no line exceeds
wrapWidth device pixels, measured against the real loaded face rather than
the data model's measureText heuristic (spec.md §4.2 "wrap_width"). */
func wrapText(face font.Face, s string, wrapWidth *float64) []string {
	paragraphs := strings.Split(s, "\n")
	if wrapWidth == nil {
		return paragraphs
	}
	limit := fixed.I(int(*wrapWidth))
	var lines []string
	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			candidate := cur + " " + w
			if measureRun(face, candidate) > limit {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = candidate
		}
		lines = append(lines, cur)
	}
	return lines
}

/* rasterizeLines draws each line via draw.DrawMask at the face's ascent
baseline, mirroring the teacher's XMenu.DrawText glyph loop (main.go) but
into a standalone RGBA canvas sized to the measured block so it can be
composited onto the Cairo surface as one unit. */
func rasterizeLines(face font.Face, lines []string, c scrawl.Color, lineHeight fixed.Int26_6) (*image.RGBA, int, int) {
	maxW := fixed.I(1)
	for _, line := range lines {
		if w := measureRun(face, line); w > maxW {
			maxW = w
		}
	}
	w := maxW.Ceil()
	h := (lineHeight.Mul(fixed.I(len(lines)))).Ceil()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	metrics := face.Metrics()

	for i, line := range lines {
		dot := fixed.Point26_6{X: 0, Y: metrics.Ascent + lineHeight.Mul(fixed.I(i))}
		prev := rune(-1)
		for _, chr := range line {
			if prev != -1 {
				dot.X += face.Kern(prev, chr)
			}
			prev = chr
			dr, mask, maskp, advance, ok := face.Glyph(dot, chr)
			if ok {
				draw.DrawMask(img, dr, src, image.Point{}, mask, maskp, draw.Over)
			}
			dot.X += advance
		}
	}
	return img, w, h
}

/* compositeRGBA swaps the stdlib RGBA byte order (R,G,B,A) to match
Cairo's native ARGB32 memory layout (B,G,R,A on little-endian) and paints
it at (x, y) through a temporary image surface, the same swizzle step
Paint applies to the final buffer (render/surface.go) but scoped to one
glyph block so partially-transparent text blends correctly against
whatever is already on the canvas. */
func compositeRGBA(ctx cairo.Context, img *image.RGBA, x, y float64) {
	if img == nil {
		return
	}
	swizzle.BGRA(img.Pix)
	src := cairo.NewImageSurfaceForData(img.Pix, cairo.FormatARGB32, img.Bounds().Dx(), img.Bounds().Dy(), img.Stride)
	defer src.Destroy()
	ctx.SetSourceSurface(src, x, y)
	ctx.Paint()
}

func drawText(ctx cairo.Context, r *Surface, t scrawl.Text) {
	face, err := r.loadFace(t.Font, t.FontSize)
	if err != nil {
		return
	}
	if t.Background != nil {
		w, h := measureTextBlock(face, t.String, t.WrapWidth, t.FontSize)
		setSourceColor(ctx, *t.Background)
		ctx.Rectangle(t.Origin.X, t.Origin.Y, w, h)
		ctx.Fill()
	}
	lines := wrapText(face, t.String, t.WrapWidth)
	lineHeight := fixed.I(int(t.FontSize * 1.3))
	img, _, _ := rasterizeLines(face, lines, t.Color, lineHeight)
	compositeRGBA(ctx, img, t.Origin.X, t.Origin.Y)
}

func drawStickyNote(ctx cairo.Context, r *Surface, s scrawl.StickyNote) {
	face, err := r.loadFace(s.Font, s.FontSize)
	if err != nil {
		return
	}
	const pad = 10.0
	w, h := measureTextBlock(face, s.String, s.WrapWidth, s.FontSize)
	setSourceColor(ctx, s.BackgroundColor)
	ctx.Rectangle(s.Origin.X, s.Origin.Y, w+pad*2, h+pad*2)
	ctx.Fill()

	lines := wrapText(face, s.String, s.WrapWidth)
	lineHeight := fixed.I(int(s.FontSize * 1.3))
	textColor := scrawl.Color{R: 32, G: 32, B: 32, A: 255}
	img, _, _ := rasterizeLines(face, lines, textColor, lineHeight)
	compositeRGBA(ctx, img, s.Origin.X+pad, s.Origin.Y+pad)
}

func measureTextBlock(face font.Face, s string, wrapWidth *float64, fontSize float64) (w, h float64) {
	lines := wrapText(face, s, wrapWidth)
	lineHeight := fontSize * 1.3
	maxW := 0.0
	for _, line := range lines {
		if lw := float64(measureRun(face, line).Ceil()); lw > maxW {
			maxW = lw
		}
	}
	return maxW, lineHeight * float64(len(lines))
}
