package envi

import (
	"image"
	"image/color"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
)

// Quicklook renders 1 or 3 bands as an 8-bit image. Each band is linearly
// stretched between its clip and 100-clip percentiles; NaN samples are
// rendered black.
func (m *Raster) Quicklook(clip float64, bands ...int) (image.Image, error) {
	if clip < 0 || clip >= 50 {
		return nil, errors.Errorf("envi: clip %g%% out of range [0, 50)", clip)
	}
	bands, err := m.pickBands(bands)
	if err != nil {
		return nil, err
	}

	stretches := make([]stretch, len(bands))
	for i, b := range bands {
		stretches[i] = m.stretch(b, clip)
	}

	bounds := image.Rect(0, 0, m.Samples, m.Lines)
	if len(bands) == 1 {
		dst := image.NewGray(bounds)
		for y := 0; y < m.Lines; y++ {
			for x := 0; x < m.Samples; x++ {
				dst.SetGray(x, y, color.Gray{Y: stretches[0].apply(m.At(y, x, bands[0]))})
			}
		}
		return dst, nil
	}

	dst := image.NewRGBA(bounds)
	for y := 0; y < m.Lines; y++ {
		for x := 0; x < m.Samples; x++ {
			dst.SetRGBA(x, y, color.RGBA{
				R: stretches[0].apply(m.At(y, x, bands[0])),
				G: stretches[1].apply(m.At(y, x, bands[1])),
				B: stretches[2].apply(m.At(y, x, bands[2])),
				A: 255,
			})
		}
	}
	return dst, nil
}

// WriteQuicklook encodes a quicklook as a deflate-compressed TIFF.
func WriteQuicklook(w io.Writer, m image.Image) error {
	err := tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	return errors.Wrap(err, "could not encode quicklook")
}

type stretch struct {
	low, high float64
}

// stretch computes the percent-clip bounds of a band.
func (m *Raster) stretch(band int, clip float64) stretch {
	values := make([]float64, 0, m.Lines*m.Samples)
	for y := 0; y < m.Lines; y++ {
		for x := 0; x < m.Samples; x++ {
			if v := m.At(y, x, band); !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return stretch{}
	}
	sort.Float64s(values)

	last := len(values) - 1
	lo := int(math.Floor(clip / 100 * float64(last)))
	hi := int(math.Ceil((100 - clip) / 100 * float64(last)))
	return stretch{low: values[lo], high: values[hi]}
}

func (s stretch) apply(v float64) uint8 {
	if math.IsNaN(v) || s.high <= s.low {
		return 0
	}
	f := (v - s.low) / (s.high - s.low) * 255
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(math.Round(f))
	}
}
