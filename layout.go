package envi

import (
	"github.com/pkg/errors"
)

// Layout addresses the samples of a binary pixel file.
type Layout struct {
	Lines      int
	Samples    int
	Bands      int
	Interleave Interleave
	Width      int // Byte width of one element.
}

// NewLayout validates the dimensions and returns the corresponding layout.
func NewLayout(lines, samples, bands int, interleave Interleave, width int) (Layout, error) {
	if lines <= 0 || samples <= 0 || bands <= 0 {
		return Layout{}, errors.Wrapf(ErrIncompleteHeader, "dimensions %dx%dx%d", lines, samples, bands)
	}
	if width <= 0 {
		return Layout{}, errors.Wrapf(ErrUnknownDataType, "element width %d", width)
	}
	switch interleave {
	case BSQ, BIL, BIP:
	default:
		return Layout{}, errors.Wrapf(ErrMalformedHeaderValue, "interleave %d", int(interleave))
	}
	if _, ok := product(lines, samples, bands, width); !ok {
		return Layout{}, errors.Wrapf(ErrMalformedHeaderValue, "dimensions %dx%dx%d of %d-byte elements overflow", lines, samples, bands, width)
	}
	return Layout{
		Lines:      lines,
		Samples:    samples,
		Bands:      bands,
		Interleave: interleave,
		Width:      width,
	}, nil
}

// Offset returns the byte offset of sample (row, col, band), 0-based,
// relative to the start of the sample data.
func (l Layout) Offset(row, col, band int) int64 {
	L, S, B, W := int64(l.Lines), int64(l.Samples), int64(l.Bands), int64(l.Width)
	r, c, b := int64(row), int64(col), int64(band)

	switch l.Interleave {
	case BIL:
		return ((r*B+b)*S + c) * W
	case BIP:
		return ((r*S+c)*B + b) * W
	default: // BSQ
		return ((b*L+r)*S + c) * W
	}
}

// Len returns the number of elements addressed by l.
func (l Layout) Len() int {
	return l.Lines * l.Samples * l.Bands
}

// Size returns the number of bytes addressed by l.
func (l Layout) Size() int64 {
	return int64(l.Len()) * int64(l.Width)
}
