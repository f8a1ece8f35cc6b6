package envi

import (
	"image"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/pkg/errors"
)

// HDR returns a floating-point rendition of the raster. One band gives a
// grayscale hdr.XYZ image (X = Y = Z = sample), three bands an hdr.RGB
// image. Without band indexes, the raster must have 1 or 3 bands.
func (m *Raster) HDR(bands ...int) (hdr.Image, error) {
	bands, err := m.pickBands(bands)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, m.Samples, m.Lines)
	switch len(bands) {
	case 1:
		dst := hdr.NewXYZ(bounds)
		for y := 0; y < m.Lines; y++ {
			for x := 0; x < m.Samples; x++ {
				Y := m.At(y, x, bands[0])
				dst.SetXYZ(x, y, hdrcolor.XYZ{X: Y, Y: Y, Z: Y})
			}
		}
		return dst, nil
	default:
		dst := hdr.NewRGB(bounds)
		for y := 0; y < m.Lines; y++ {
			for x := 0; x < m.Samples; x++ {
				dst.SetRGB(x, y, hdrcolor.RGB{
					R: m.At(y, x, bands[0]),
					G: m.At(y, x, bands[1]),
					B: m.At(y, x, bands[2]),
				})
			}
		}
		return dst, nil
	}
}

// pickBands validates the band indexes of a 1 or 3 channel rendition.
func (m *Raster) pickBands(bands []int) ([]int, error) {
	if len(bands) == 0 {
		switch m.Bands {
		case 1:
			bands = []int{0}
		case 3:
			bands = []int{0, 1, 2}
		default:
			return nil, errors.Errorf("envi: %d bands, pick 1 or 3 of them", m.Bands)
		}
	}
	if len(bands) != 1 && len(bands) != 3 {
		return nil, errors.Errorf("envi: %d bands picked, want 1 or 3", len(bands))
	}
	for _, b := range bands {
		if b < 0 || b >= m.Bands {
			return nil, errors.Errorf("envi: band %d out of range [0, %d)", b, m.Bands)
		}
	}
	return bands, nil
}
