package soft

import (
	"image/color"
	gomath "math"

	"github.com/fzipp/bmfont"

	"github.com/dvitali/maquette/engine/renderer"
	"github.com/dvitali/maquette/engine/resources"
)

type screenPoint struct {
	x, y float32
	z    float32
}

func (b *Backend) fillTriangle(p0, p1, p2 screenPoint, c color.RGBA, blend bool) {
	minX := int(gomath.Floor(float64(min3(p0.x, p1.x, p2.x))))
	maxX := int(gomath.Ceil(float64(max3(p0.x, p1.x, p2.x))))
	minY := int(gomath.Floor(float64(min3(p0.y, p1.y, p2.y))))
	maxY := int(gomath.Ceil(float64(max3(p0.y, p1.y, p2.y))))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > b.width-1 {
		maxX = b.width - 1
	}
	if maxY > b.height-1 {
		maxY = b.height - 1
	}

	area := edge(p0, p1, p2)
	if area == 0 {
		return
	}
	invArea := 1.0 / area

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := screenPoint{x: float32(x) + 0.5, y: float32(y) + 0.5}
			w0 := edge(p1, p2, p) * invArea
			w1 := edge(p2, p0, p) * invArea
			w2 := edge(p0, p1, p) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*p0.z + w1*p1.z + w2*p2.z
			idx := y*b.width + x
			if z >= b.depth[idx] {
				continue
			}
			if blend {
				// Translucent surfaces read but do not write depth, so
				// geometry drawn later still shows through them.
				b.blendPixel(x, y, c)
			} else {
				b.depth[idx] = z
				b.setPixel(x, y, c)
			}
		}
	}
}

func edge(a, bp, c screenPoint) float32 {
	return (bp.x-a.x)*(c.y-a.y) - (bp.y-a.y)*(c.x-a.x)
}

func (b *Backend) setPixel(x, y int, c color.RGBA) {
	o := b.framebuffer.PixOffset(x, y)
	pix := b.framebuffer.Pix
	pix[o+0] = c.R
	pix[o+1] = c.G
	pix[o+2] = c.B
	pix[o+3] = 255
}

func (b *Backend) blendPixel(x, y int, c color.RGBA) {
	o := b.framebuffer.PixOffset(x, y)
	pix := b.framebuffer.Pix
	a := uint32(c.A)
	ia := 255 - a
	pix[o+0] = uint8((uint32(c.R)*a + uint32(pix[o+0])*ia) / 255)
	pix[o+1] = uint8((uint32(c.G)*a + uint32(pix[o+1])*ia) / 255)
	pix[o+2] = uint8((uint32(c.B)*a + uint32(pix[o+2])*ia) / 255)
	pix[o+3] = 255
}

// line draws a clipped Bresenham segment, used for wireframe mode.
func (b *Backend) line(p0, p1 screenPoint, c color.RGBA) {
	x0, y0 := int(p0.x), int(p0.y)
	x1, y1 := int(p1.x), int(p1.y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < b.width && y0 >= 0 && y0 < b.height {
			b.setPixel(x0, y0, c)
		}
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

// DrawText blits bitmap font glyphs straight onto the framebuffer,
// bypassing the depth buffer. Text is screen-space only.
func (b *Backend) DrawText(data *renderer.TextRenderData) error {
	if b.font == nil || b.font.Descriptor == nil {
		return nil
	}
	desc := b.font.Descriptor

	penX := data.X
	penY := data.Y
	tint := shade(data.Colour, 1.0)
	var prev rune

	for _, r := range data.Text {
		if r == '\n' {
			penX = data.X
			penY += desc.Common.LineHeight
			prev = 0
			continue
		}
		ch, ok := desc.Chars[r]
		if !ok {
			prev = r
			continue
		}
		if prev != 0 {
			penX += desc.Kerning[bmfont.CharPair{First: prev, Second: r}].Amount
		}
		page := b.font.Pages[ch.Page]
		if page != nil {
			b.blitGlyph(page, ch.X, ch.Y, ch.Width, ch.Height,
				penX+ch.XOffset, penY+ch.YOffset, tint)
		}
		penX += ch.XAdvance
		prev = r
	}
	return nil
}

func (b *Backend) blitGlyph(page *resources.ImageData, srcX, srcY, w, h, dstX, dstY int, tint color.RGBA) {
	stride := int(page.Width)
	for y := 0; y < h; y++ {
		ty := dstY + y
		if ty < 0 || ty >= b.height {
			continue
		}
		for x := 0; x < w; x++ {
			tx := dstX + x
			if tx < 0 || tx >= b.width {
				continue
			}
			so := ((srcY+y)*stride + (srcX + x)) * 4
			a := page.Pixels[so+3]
			if a == 0 {
				continue
			}
			b.blendPixel(tx, ty, color.RGBA{R: tint.R, G: tint.G, B: tint.B, A: a})
		}
	}
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
