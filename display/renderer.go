package display

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	inkBlack = 0
	inkWhite = 255

	// basicfont.Face7x13 metrics
	GlyphWidth  = 7
	GlyphHeight = 13
)

// Renderer is a 1-bit drawing surface. Black ink on a white background;
// no grayscale, the panel cannot show it anyway.
type Renderer struct {
	img    *image.Gray
	width  int
	height int
}

func NewRenderer(width, height int) *Renderer {
	r := &Renderer{
		img:    image.NewGray(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
	r.Clear()
	return r
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Image returns the backing frame. Callers must not retain it across a
// Clear; copy it if it needs to outlive the render cycle.
func (r *Renderer) Image() *image.Gray {
	return r.img
}

// Snapshot returns an independent copy of the current frame.
func (r *Renderer) Snapshot() *image.Gray {
	out := image.NewGray(r.img.Rect)
	copy(out.Pix, r.img.Pix)
	return out
}

func (r *Renderer) Clear() {
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{color.Gray{Y: inkWhite}}, image.Point{}, draw.Src)
}

// Text draws s with its baseline at y.
func (r *Renderer) Text(x, y int, s string) {
	r.text(r.img, x, y, s, inkBlack)
}

// TextInverted draws white text, for use inside filled regions.
func (r *Renderer) TextInverted(x, y int, s string) {
	r.text(r.img, x, y, s, inkWhite)
}

func (r *Renderer) text(dst draw.Image, x, y int, s string, ink uint8) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Gray{Y: ink}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextScaled draws s scaled up by an integer factor, for clock faces and
// other large readouts. The glyphs are rendered small and blown up pixel
// by pixel; chunky, but legible on a 1-bit panel.
func (r *Renderer) TextScaled(x, y int, s string, scale int) {
	if scale <= 1 {
		r.Text(x, y, s)
		return
	}
	w := GlyphWidth * len(s)
	h := GlyphHeight
	tmp := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(tmp, tmp.Bounds(), &image.Uniform{color.Gray{Y: inkWhite}}, image.Point{}, draw.Src)
	r.text(tmp, 0, h-3, s, inkBlack)

	for ty := 0; ty < h; ty++ {
		for tx := 0; tx < w; tx++ {
			if tmp.GrayAt(tx, ty).Y != inkBlack {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					r.set(x+tx*scale+dx, y-h*scale+ty*scale+dy, inkBlack)
				}
			}
		}
	}
}

// TextWidth returns the pixel width of s at scale 1.
func TextWidth(s string) int {
	return GlyphWidth * len(s)
}

// TextCentered draws s horizontally centered around cx.
func (r *Renderer) TextCentered(cx, y int, s string) {
	r.Text(cx-TextWidth(s)/2, y, s)
}

func (r *Renderer) HLine(x0, x1, y int) {
	r.Line(x0, y, x1, y)
}

func (r *Renderer) VLine(x, y0, y1 int) {
	r.Line(x, y0, x, y1)
}

// Line draws with Bresenham; endpoints are clipped to the frame.
func (r *Renderer) Line(x0, y0, x1, y1 int) {
	dx := iabs(x1 - x0)
	dy := -iabs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		r.set(x0, y0, inkBlack)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect draws the outline of the rectangle.
func (r *Renderer) Rect(rect image.Rectangle) {
	x0, y0 := rect.Min.X, rect.Min.Y
	x1, y1 := rect.Max.X-1, rect.Max.Y-1
	r.HLine(x0, x1, y0)
	r.HLine(x0, x1, y1)
	r.VLine(x0, y0, y1)
	r.VLine(x1, y0, y1)
}

// FillRect fills the rectangle with black ink.
func (r *Renderer) FillRect(rect image.Rectangle) {
	r.fill(rect, inkBlack)
}

// ClearRect fills the rectangle with background white.
func (r *Renderer) ClearRect(rect image.Rectangle) {
	r.fill(rect, inkWhite)
}

func (r *Renderer) fill(rect image.Rectangle, ink uint8) {
	rect = rect.Intersect(r.img.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.img.SetGray(x, y, color.Gray{Y: ink})
		}
	}
}

// Circle draws a circle outline, or a filled disc.
func (r *Renderer) Circle(cx, cy, radius int, fill bool) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			d := x*x + y*y
			if fill && d <= radius*radius {
				r.set(cx+x, cy+y, inkBlack)
			} else if !fill && d >= (radius-1)*(radius-1) && d <= radius*radius {
				r.set(cx+x, cy+y, inkBlack)
			}
		}
	}
}

// Button draws a labeled box. Active buttons are filled with the label
// knocked out.
func (r *Renderer) Button(rect image.Rectangle, label string, active bool) {
	if active {
		r.FillRect(rect)
	} else {
		r.ClearRect(rect)
		r.Rect(rect)
	}
	cx := rect.Min.X + rect.Dx()/2
	baseline := rect.Min.Y + (rect.Dy()+GlyphHeight)/2 - 3
	if active {
		r.text(r.img, cx-TextWidth(label)/2, baseline, label, inkWhite)
	} else {
		r.TextCentered(cx, baseline, label)
	}
}

func (r *Renderer) set(x, y int, ink uint8) {
	if image.Pt(x, y).In(r.img.Rect) {
		r.img.SetGray(x, y, color.Gray{Y: ink})
	}
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
