// Package plot draws minutia sets as grayscale images for visual inspection.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/spakin/netpbm"

	"github.com/jtejido/afisnet/config"
	"github.com/jtejido/afisnet/primitives"
)

var (
	ErrNothingToPlot  = errors.New("plot: no minutiae")
	ErrCanvasTooLarge = errors.New("plot: canvas too large")
)

type Options struct {
	// Margin is the blank border around the bounding box of the points.
	Margin int
	// Mark is the half-width of each drawn minutia.
	Mark int
	// MaxSide bounds both image dimensions.
	MaxSide int
}

func DefaultOptions() Options {
	return OptionsFrom(config.Default().Plot)
}

func OptionsFrom(c config.Plot) Options {
	return Options{Margin: c.Margin, Mark: c.Mark, MaxSide: c.MaxSide}
}

// Render draws ridge endings as filled squares and bifurcations as crosses on a white
// canvas covering the points' bounding box. Image y grows downward, as in capture
// coordinates.
func Render(points []primitives.Minutia, opts Options) (*image.Gray, error) {
	if len(points) == 0 {
		return nil, ErrNothingToPlot
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	pad := opts.Margin + opts.Mark
	w, err := side(minX, maxX, pad, opts.MaxSide)
	if err != nil {
		return nil, err
	}
	h, err := side(minY, maxY, pad, opts.MaxSide)
	if err != nil {
		return nil, err
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	ink := color.Gray{Y: 0}
	for _, p := range points {
		cx, cy := p.X-minX+pad, p.Y-minY+pad
		for d := -opts.Mark; d <= opts.Mark; d++ {
			switch p.Kind {
			case primitives.Bifurcation:
				img.SetGray(cx+d, cy, ink)
				img.SetGray(cx, cy+d, ink)
			default:
				for e := -opts.Mark; e <= opts.Mark; e++ {
					img.SetGray(cx+d, cy+e, ink)
				}
			}
		}
	}
	return img, nil
}

// side is the padded extent of [lo, hi], computed without int overflow.
func side(lo, hi, pad, limit int) (int, error) {
	span := uint64(hi) - uint64(lo)
	if span >= uint64(limit) || uint64(limit)-span <= uint64(2*pad) {
		return 0, fmt.Errorf("%w: extent %d exceeds %d", ErrCanvasTooLarge, span, limit)
	}
	return int(span) + 2*pad + 1, nil
}

// Encode writes img as a binary PGM.
func Encode(w io.Writer, img image.Image) error {
	err := netpbm.Encode(w, img, &netpbm.EncodeOptions{
		Format:   netpbm.PGM,
		MaxValue: 255,
		Comments: []string{"minutiae plot"},
	})
	if err != nil {
		return fmt.Errorf("encode pgm: %w", err)
	}
	return nil
}
