// Package shareimage renders the static social-share card for a sprint
// document. Rendering is pure: identical options produce identical bytes.
package shareimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
)

const (
	Width  = 1200
	Height = 630
)

// Options controls the card.
type Options struct {
	// Number is the sprint id drawn on the card. Negative hides it.
	Number int

	Top    color.RGBA
	Bottom color.RGBA
	Accent color.RGBA
}

// DefaultOptions returns the house colors.
func DefaultOptions() Options {
	return Options{
		Number: -1,
		Top:    color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff},
		Bottom: color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff},
		Accent: color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff},
	}
}

// glyphs is a 5x7 bitmap font; each row uses the low five bits.
var glyphs = map[rune][7]uint8{
	'#': {0x0a, 0x0a, 0x1f, 0x0a, 0x1f, 0x0a, 0x0a},
	'0': {0x0e, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0e},
	'1': {0x04, 0x0c, 0x04, 0x04, 0x04, 0x04, 0x0e},
	'2': {0x0e, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1f},
	'3': {0x1f, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0e},
	'4': {0x02, 0x06, 0x0a, 0x12, 0x1f, 0x02, 0x02},
	'5': {0x1f, 0x10, 0x1e, 0x01, 0x01, 0x11, 0x0e},
	'6': {0x06, 0x08, 0x10, 0x1e, 0x11, 0x11, 0x0e},
	'7': {0x1f, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8': {0x0e, 0x11, 0x11, 0x0e, 0x11, 0x11, 0x0e},
	'9': {0x0e, 0x11, 0x11, 0x0f, 0x01, 0x02, 0x0c},
}

// Render returns the card as PNG bytes.
func Render(opts Options) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))

	for y := 0; y < Height; y++ {
		c := lerp(opts.Top, opts.Bottom, y, Height-1)
		draw.Draw(img, image.Rect(0, y, Width, y+1), &image.Uniform{C: c}, image.Point{}, draw.Src)
	}

	accent := &image.Uniform{C: opts.Accent}
	draw.Draw(img, image.Rect(0, 0, 24, Height), accent, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(96, Height-120, Width-96, Height-112), accent, image.Point{}, draw.Src)

	if opts.Number >= 0 {
		drawText(img, "#"+strconv.Itoa(opts.Number), 96, 120, 28, opts.Accent)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("error encoding share image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(img *image.RGBA, s string, x, y, scale int, c color.RGBA) {
	src := &image.Uniform{C: c}
	for _, r := range s {
		g, ok := glyphs[r]
		if !ok {
			x += 6 * scale
			continue
		}
		for row, bits := range g {
			for col := 0; col < 5; col++ {
				if bits&(1<<(4-col)) == 0 {
					continue
				}
				px, py := x+col*scale, y+row*scale
				draw.Draw(img, image.Rect(px, py, px+scale, py+scale), src, image.Point{}, draw.Src)
			}
		}
		x += 6 * scale
	}
}

func lerp(a, b color.RGBA, i, n int) color.RGBA {
	if n <= 0 {
		return a
	}
	mix := func(p, q uint8) uint8 {
		return uint8((int(p)*(n-i) + int(q)*i) / n)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
