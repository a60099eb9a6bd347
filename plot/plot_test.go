package plot

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtejido/afisnet/primitives"
)

func TestRender(t *testing.T) {
	points := []primitives.Minutia{
		{X: 10, Y: 10, Kind: primitives.RidgeEnding},
		{X: 30, Y: 20, Kind: primitives.Bifurcation},
	}
	opts := Options{Margin: 5, Mark: 1, MaxSide: 100}
	img, err := Render(points, opts)
	require.NoError(t, err)

	assert.Equal(t, 20+2*6+1, img.Bounds().Dx())
	assert.Equal(t, 10+2*6+1, img.Bounds().Dy())

	// ridge ending fills its square, including corners
	assert.Equal(t, uint8(0), img.GrayAt(6, 6).Y)
	assert.Equal(t, uint8(0), img.GrayAt(7, 7).Y)
	// bifurcation is a cross: center and arms inked, corners blank
	assert.Equal(t, uint8(0), img.GrayAt(26, 16).Y)
	assert.Equal(t, uint8(0), img.GrayAt(27, 16).Y)
	assert.Equal(t, uint8(255), img.GrayAt(27, 17).Y)
	assert.Equal(t, uint8(255), img.GrayAt(0, 0).Y)
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrNothingToPlot)
}

func TestRenderCanvasLimit(t *testing.T) {
	opts := Options{Margin: 5, Mark: 1, MaxSide: 33}
	_, err := Render([]primitives.Minutia{{X: 0, Y: 0}, {X: 20, Y: 20}}, opts)
	require.NoError(t, err)

	_, err = Render([]primitives.Minutia{{X: 0, Y: 0}, {X: 21, Y: 0}}, opts)
	assert.ErrorIs(t, err, ErrCanvasTooLarge)

	for _, points := range [][]primitives.Minutia{
		{{X: 0, Y: 0}, {X: 3_000_000_000, Y: 3_000_000_000}},
		{{X: math.MinInt, Y: 0}, {X: math.MaxInt, Y: 0}},
		{{X: 0, Y: math.MinInt}, {X: 0, Y: math.MaxInt}},
	} {
		_, err := Render(points, DefaultOptions())
		assert.ErrorIs(t, err, ErrCanvasTooLarge)
	}
}

func TestEncode(t *testing.T) {
	img, err := Render([]primitives.Minutia{{X: 0, Y: 0}}, DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("P5")))
}
