package envi

import (
	"fmt"

	"github.com/pkg/errors"
)

// Shape is the geometry and element type of a raster.
type Shape struct {
	Lines   int // Rows.
	Samples int // Columns.
	Bands   int
	Kind    ElementKind
	Complex bool
}

// Len returns the number of samples of s.
func (s Shape) Len() int {
	return s.Lines * s.Samples * s.Bands
}

func (s Shape) String() string {
	t := s.Kind.String()
	if s.Complex {
		t = "complex " + t
	}
	return fmt.Sprintf("%dx%dx%d %s", s.Lines, s.Samples, s.Bands, t)
}

// A Raster is a dense lines x samples x bands array. Data is a slice of the
// Go type of Kind ([]complex64 or []complex128 when Complex) indexed by
// (row*Samples+col)*Bands+band.
type Raster struct {
	Shape
	Data any
}

// NewRaster allocates a zeroed raster.
func NewRaster(s Shape) (*Raster, error) {
	if s.Lines <= 0 || s.Samples <= 0 || s.Bands <= 0 {
		return nil, errors.Errorf("envi: invalid raster dimensions %dx%dx%d", s.Lines, s.Samples, s.Bands)
	}

	width := s.Kind.Size()
	if s.Complex {
		width *= 2
	}
	n, ok := product(s.Lines, s.Samples, s.Bands)
	if ok {
		_, ok = product(n, max(width, 1))
	}
	if !ok {
		return nil, errors.Wrapf(ErrMalformedHeaderValue, "raster %s overflows", s)
	}

	var data any
	switch {
	case s.Complex && s.Kind == Float32:
		data = make([]complex64, n)
	case s.Complex && s.Kind == Float64:
		data = make([]complex128, n)
	case s.Complex:
		return nil, errors.Wrapf(ErrUnsupportedElementKind, "complex %s", s.Kind)
	case s.Kind == Uint8:
		data = make([]uint8, n)
	case s.Kind == Int8:
		data = make([]int8, n)
	case s.Kind == Int16:
		data = make([]int16, n)
	case s.Kind == Uint16:
		data = make([]uint16, n)
	case s.Kind == Int32:
		data = make([]int32, n)
	case s.Kind == Uint32:
		data = make([]uint32, n)
	case s.Kind == Int64:
		data = make([]int64, n)
	case s.Kind == Uint64:
		data = make([]uint64, n)
	case s.Kind == Float32:
		data = make([]float32, n)
	case s.Kind == Float64:
		data = make([]float64, n)
	default:
		return nil, errors.Wrapf(ErrUnsupportedElementKind, "%s", s.Kind)
	}

	return &Raster{Shape: s, Data: data}, nil
}

// Index returns the position of sample (row, col, band) in Data.
func (m *Raster) Index(row, col, band int) int {
	return (row*m.Samples+col)*m.Bands + band
}

// At returns sample (row, col, band) as a float64. Complex samples return
// their real part.
func (m *Raster) At(row, col, band int) float64 {
	i := m.Index(row, col, band)
	switch s := m.Data.(type) {
	case []uint8:
		return float64(s[i])
	case []int8:
		return float64(s[i])
	case []int16:
		return float64(s[i])
	case []uint16:
		return float64(s[i])
	case []int32:
		return float64(s[i])
	case []uint32:
		return float64(s[i])
	case []int64:
		return float64(s[i])
	case []uint64:
		return float64(s[i])
	case []float32:
		return float64(s[i])
	case []float64:
		return s[i]
	case []complex64:
		return float64(real(s[i]))
	case []complex128:
		return real(s[i])
	default:
		return 0
	}
}

// Set stores v, converted to the raster element type, at (row, col, band).
func (m *Raster) Set(row, col, band int, v float64) {
	i := m.Index(row, col, band)
	switch s := m.Data.(type) {
	case []uint8:
		s[i] = uint8(v)
	case []int8:
		s[i] = int8(v)
	case []int16:
		s[i] = int16(v)
	case []uint16:
		s[i] = uint16(v)
	case []int32:
		s[i] = int32(v)
	case []uint32:
		s[i] = uint32(v)
	case []int64:
		s[i] = int64(v)
	case []uint64:
		s[i] = uint64(v)
	case []float32:
		s[i] = float32(v)
	case []float64:
		s[i] = v
	case []complex64:
		s[i] = complex(float32(v), 0)
	case []complex128:
		s[i] = complex(v, 0)
	}
}

// check verifies that Data agrees with Shape.
func (m *Raster) check() error {
	kind, cplx, n := storageOf(m.Data)
	if kind != m.Kind || cplx != m.Complex {
		return errors.Wrapf(ErrHeaderImageMismatch, "raster storage %T for %s", m.Data, m.Shape)
	}
	if n != m.Len() {
		return errors.Wrapf(ErrHeaderImageMismatch, "raster holds %d samples, shape %s needs %d", n, m.Shape, m.Len())
	}
	return nil
}

// storageOf returns the element type and length of a raster storage slice.
func storageOf(data any) (ElementKind, bool, int) {
	switch s := data.(type) {
	case []uint8:
		return Uint8, false, len(s)
	case []int8:
		return Int8, false, len(s)
	case []int16:
		return Int16, false, len(s)
	case []uint16:
		return Uint16, false, len(s)
	case []int32:
		return Int32, false, len(s)
	case []uint32:
		return Uint32, false, len(s)
	case []int64:
		return Int64, false, len(s)
	case []uint64:
		return Uint64, false, len(s)
	case []float32:
		return Float32, false, len(s)
	case []float64:
		return Float64, false, len(s)
	case []complex64:
		return Float32, true, len(s)
	case []complex128:
		return Float64, true, len(s)
	default:
		return KindInvalid, false, -1
	}
}
