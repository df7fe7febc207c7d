package shareimage

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	opts := DefaultOptions()
	opts.Number = 7

	data, err := Render(opts)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())

	// Accent stripe on the left edge.
	r, g, b, _ := img.At(5, 300).RGBA()
	ar, ag, ab, _ := opts.Accent.RGBA()
	assert.Equal(t, []uint32{ar, ag, ab}, []uint32{r, g, b})

	// Top row carries the top gradient color.
	r, g, b, _ = img.At(600, 0).RGBA()
	tr, tg, tb, _ := opts.Top.RGBA()
	assert.Equal(t, []uint32{tr, tg, tb}, []uint32{r, g, b})
}

func TestRender_Deterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Number = 45

	a, err := Render(opts)
	require.NoError(t, err)
	b, err := Render(opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	opts.Number = 46
	c, err := Render(opts)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestLerp(t *testing.T) {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	assert.Equal(t, black, lerp(black, white, 0, 10))
	assert.Equal(t, white, lerp(black, white, 10, 10))
	assert.Equal(t, black, lerp(black, white, 3, 0))
}
