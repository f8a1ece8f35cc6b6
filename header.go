package envi

import (
	"github.com/pkg/errors"
)

// Field identifies a scalar header field whose presence is tracked.
type Field uint32

const (
	FieldSamples Field = 1 << iota
	FieldLines
	FieldBands
	FieldDataType
	FieldInterleave
	FieldByteOrder
	FieldHeaderOffset
	FieldFileType
	FieldDEMBand
	FieldXStart
	FieldYStart
)

var fieldKeys = map[Field]string{
	FieldSamples:      kSamples,
	FieldLines:        kLines,
	FieldBands:        kBands,
	FieldDataType:     kDataType,
	FieldInterleave:   kInterleave,
	FieldByteOrder:    kByteOrder,
	FieldHeaderOffset: kHeaderOffset,
	FieldFileType:     kFileType,
	FieldDEMBand:      kDEMBand,
	FieldXStart:       kXStart,
	FieldYStart:       kYStart,
}

// String returns the header key of f.
func (f Field) String() string {
	if k, ok := fieldKeys[f]; ok {
		return k
	}
	return "unknown"
}

// A Header is the parsed or constructed content of an ENVI header file.
//
// Scalar fields are meaningful only when Has reports them present; they are
// assigned through the Set* methods. Slices, strings and MapInfo are absent
// when nil or empty.
type Header struct {
	Samples      int // Image width.
	Lines        int // Image height.
	Bands        int
	DataType     DataType
	Interleave   Interleave
	ByteOrder    ByteOrder
	HeaderOffset int64 // Bytes to skip in the binary file.
	FileType     string

	Description            string
	BandNames              []string
	Wavelength             []float64
	WavelengthUnits        string
	FWHM                   []float64
	BBL                    []float64
	SensorType             string
	DEMFile                string
	DEMBand                int
	XStart                 float64
	YStart                 float64
	CoordinateSystemString string // Carried opaquely.
	GeoPoints              []float64
	MapInfo                *MapInfo

	// Other holds the unrecognized entries in file order.
	Other []Entry

	// XLoc and YLoc are the ground coordinates of each column and row,
	// derived from MapInfo. YLoc is in ascending northing order.
	XLoc []float64
	YLoc []float64

	// Warnings collects non-fatal decoding issues.
	Warnings []string

	present Field
}

// NewHeader returns the basic header of an image of the given shape:
// BSQ, little-endian, no header offset.
func NewHeader(s Shape) (*Header, error) {
	dt, err := TypeToCode(s.Kind, s.Complex)
	if err != nil {
		return nil, err
	}

	h := &Header{}
	h.SetSamples(s.Samples)
	h.SetLines(s.Lines)
	h.SetBands(s.Bands)
	h.SetDataType(dt)
	h.SetInterleave(BSQ)
	h.SetByteOrder(LittleEndian)
	h.SetHeaderOffset(0)
	h.SetFileType(defaultFileType)
	return h, nil
}

// Has reports whether every field of f is present.
func (h *Header) Has(f Field) bool {
	return h.present&f == f
}

// SetSamples sets the image width.
func (h *Header) SetSamples(n int) {
	h.Samples = n
	h.present |= FieldSamples
}

// SetLines sets the image height.
func (h *Header) SetLines(n int) {
	h.Lines = n
	h.present |= FieldLines
}

// SetBands sets the band count.
func (h *Header) SetBands(n int) {
	h.Bands = n
	h.present |= FieldBands
}

// SetDataType sets the ENVI data type code.
func (h *Header) SetDataType(dt DataType) {
	h.DataType = dt
	h.present |= FieldDataType
}

// SetInterleave sets the layout of the pixel file.
func (h *Header) SetInterleave(i Interleave) {
	h.Interleave = i
	h.present |= FieldInterleave
}

// SetByteOrder sets the element byte order of the pixel file.
func (h *Header) SetByteOrder(o ByteOrder) {
	h.ByteOrder = o
	h.present |= FieldByteOrder
}

// SetHeaderOffset sets the number of bytes preceding the samples in the pixel file.
func (h *Header) SetHeaderOffset(n int64) {
	h.HeaderOffset = n
	h.present |= FieldHeaderOffset
}

// SetFileType sets the file type label.
func (h *Header) SetFileType(s string) {
	h.FileType = s
	h.present |= FieldFileType
}

// SetDEMBand sets the band of the associated DEM file.
func (h *Header) SetDEMBand(n int) {
	h.DEMBand = n
	h.present |= FieldDEMBand
}

// SetXStart sets the pixel x coordinate of the upper-left pixel.
func (h *Header) SetXStart(v float64) {
	h.XStart = v
	h.present |= FieldXStart
}

// SetYStart sets the pixel y coordinate of the upper-left pixel.
func (h *Header) SetYStart(v float64) {
	h.YStart = v
	h.present |= FieldYStart
}

// Complex reports whether the header declares complex samples.
func (h *Header) Complex() bool {
	return h.Has(FieldDataType) && h.DataType.Complex()
}

// Shape returns the image shape declared by the header. It fails with
// ErrIncompleteHeader when dimensions or data type are missing.
func (h *Header) Shape() (Shape, error) {
	for _, f := range []Field{FieldSamples, FieldLines, FieldBands, FieldDataType} {
		if !h.Has(f) {
			return Shape{}, errors.Wrapf(ErrIncompleteHeader, "missing %s", f)
		}
	}
	kind, cplx, err := CodeToType(h.DataType)
	if err != nil {
		return Shape{}, err
	}
	return Shape{
		Lines:   h.Lines,
		Samples: h.Samples,
		Bands:   h.Bands,
		Kind:    kind,
		Complex: cplx,
	}, nil
}

// Layout returns the binary layout of the pixel file described by h.
func (h *Header) Layout() (Layout, error) {
	s, err := h.Shape()
	if err != nil {
		return Layout{}, err
	}
	interleave := h.Interleave
	if !h.Has(FieldInterleave) {
		interleave = BSQ
	}
	return NewLayout(s.Lines, s.Samples, s.Bands, interleave, h.DataType.Size())
}

// Clone returns a deep copy of h.
func (h *Header) Clone() *Header {
	c := *h
	c.BandNames = cloneSlice(h.BandNames)
	c.Wavelength = cloneSlice(h.Wavelength)
	c.FWHM = cloneSlice(h.FWHM)
	c.BBL = cloneSlice(h.BBL)
	c.GeoPoints = cloneSlice(h.GeoPoints)
	c.Other = cloneSlice(h.Other)
	c.XLoc = cloneSlice(h.XLoc)
	c.YLoc = cloneSlice(h.YLoc)
	c.Warnings = cloneSlice(h.Warnings)
	if h.MapInfo != nil {
		m := *h.MapInfo
		m.Extra = cloneSlice(h.MapInfo.Extra)
		c.MapInfo = &m
	}
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
