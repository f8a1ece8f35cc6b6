package envi

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var writableKinds = []ElementKind{Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Float32, Float64}

func ramp(t *testing.T, s Shape) *Raster {
	t.Helper()
	m, err := NewRaster(s)
	require.NoError(t, err)
	for r := 0; r < s.Lines; r++ {
		for c := 0; c < s.Samples; c++ {
			for b := 0; b < s.Bands; b++ {
				m.Set(r, c, b, float64(r*100+c*10+b))
			}
		}
	}
	return m
}

func TestRasterRoundTrip(t *testing.T) {
	for _, kind := range writableKinds {
		for _, interleave := range []Interleave{BSQ, BIL, BIP} {
			for _, order := range []ByteOrder{LittleEndian, BigEndian} {
				shape := Shape{Lines: 2, Samples: 3, Bands: 4, Kind: kind}
				m := ramp(t, shape)

				h := &Header{}
				h.SetInterleave(interleave)
				h.SetByteOrder(order)

				var hdr, data bytes.Buffer
				require.NoError(t, Write(&hdr, &data, &Image{Header: h, Raster: m}))
				assert.Equal(t, shape.Len()*kind.Size(), data.Len())

				img, err := Read(&hdr, &data)
				require.NoError(t, err)
				assert.Equal(t, shape, img.Raster.Shape)
				assert.Equal(t, m.Data, img.Raster.Data, "%s %s %s", kind, interleave, order)
				assert.Equal(t, interleave, img.Header.Interleave)
				assert.Equal(t, order, img.Header.ByteOrder)
			}
		}
	}
}

func TestWriteRasterBytes(t *testing.T) {
	m := ramp(t, Shape{Lines: 1, Samples: 2, Bands: 2, Kind: Uint16})
	m.Set(0, 0, 0, 1)
	m.Set(0, 1, 0, 2)
	m.Set(0, 0, 1, 11)
	m.Set(0, 1, 1, 12)

	tests := []struct {
		interleave Interleave
		order      ByteOrder
		want       []byte
	}{
		{BSQ, LittleEndian, []byte{0x01, 0x00, 0x02, 0x00, 0x0b, 0x00, 0x0c, 0x00}},
		{BIL, LittleEndian, []byte{0x01, 0x00, 0x02, 0x00, 0x0b, 0x00, 0x0c, 0x00}},
		{BIP, BigEndian, []byte{0x00, 0x01, 0x00, 0x0b, 0x00, 0x02, 0x00, 0x0c}},
		{BIP, LittleEndian, []byte{0x01, 0x00, 0x0b, 0x00, 0x02, 0x00, 0x0c, 0x00}},
	}
	for _, tt := range tests {
		h := &Header{}
		h.SetInterleave(tt.interleave)
		h.SetByteOrder(tt.order)

		var buf bytes.Buffer
		require.NoError(t, WriteRaster(&buf, h, m))
		assert.Equal(t, tt.want, buf.Bytes(), "%s %s", tt.interleave, tt.order)
	}
}

func TestRasterHeaderOffset(t *testing.T) {
	m := ramp(t, Shape{Lines: 2, Samples: 2, Bands: 1, Kind: Uint8})
	h := &Header{}
	h.SetHeaderOffset(16)

	var buf bytes.Buffer
	require.NoError(t, WriteRaster(&buf, h, m))
	require.Equal(t, 20, buf.Len())
	assert.Equal(t, make([]byte, 16), buf.Bytes()[:16])
	assert.Equal(t, []byte{0, 10, 100, 110}, buf.Bytes()[16:])

	got, err := ReadRaster(bytes.NewReader(buf.Bytes()), h)
	require.NoError(t, err)
	assert.Equal(t, m.Data, got.Data)
}

func TestReadRasterIncompleteHeader(t *testing.T) {
	h := decode(t, "ENVI\ndescription = {header only}\n")
	_, err := ReadRaster(bytes.NewReader(nil), h)
	assert.ErrorIs(t, err, ErrIncompleteHeader)

	h = decode(t, "ENVI\nsamples = 2\nlines = 2\nbands = 1\n")
	_, err = ReadRaster(bytes.NewReader(nil), h)
	assert.ErrorIs(t, err, ErrIncompleteHeader)
	assert.Contains(t, err.Error(), "data type")
}

func TestReadRasterShortData(t *testing.T) {
	h := decode(t, "ENVI\nsamples = 2\nlines = 2\nbands = 1\ndata type = 2\n")
	_, err := ReadRaster(bytes.NewReader([]byte{1, 2, 3}), h)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadRasterDefaultsToBSQ(t *testing.T) {
	h := decode(t, "ENVI\nsamples = 2\nlines = 1\nbands = 2\ndata type = 1\n")
	got, err := ReadRaster(bytes.NewReader([]byte{1, 2, 11, 12}), h)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 11, 2, 12}, got.Data)
}

func TestReadRasterComplex(t *testing.T) {
	h := decode(t, "ENVI\nsamples = 1\nlines = 1\nbands = 1\ndata type = 6\nbyte order = 0\n")

	p := make([]byte, 8)
	binary.LittleEndian.PutUint32(p[0:4], math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(p[4:8], math.Float32bits(-2))

	got, err := ReadRaster(bytes.NewReader(p), h)
	require.NoError(t, err)
	assert.Equal(t, []complex64{complex(1.5, -2)}, got.Data)
	assert.Equal(t, 1.5, got.At(0, 0, 0))
	require.Len(t, h.Warnings, 1)
	assert.Contains(t, h.Warnings[0], "complex64")
}

func TestWriteRasterComplex(t *testing.T) {
	m, err := NewRaster(Shape{Lines: 1, Samples: 1, Bands: 1, Kind: Float64, Complex: true})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteRaster(&buf, &Header{}, m)
	assert.ErrorIs(t, err, ErrUnsupportedComplexWrite)
	assert.Zero(t, buf.Len())
}

func TestRasterCheck(t *testing.T) {
	m := &Raster{Shape: Shape{Lines: 1, Samples: 1, Bands: 2, Kind: Uint8}, Data: []uint8{1}}
	assert.ErrorIs(t, m.check(), ErrHeaderImageMismatch)

	m = &Raster{Shape: Shape{Lines: 1, Samples: 1, Bands: 1, Kind: Uint8}, Data: []int16{1}}
	assert.ErrorIs(t, m.check(), ErrHeaderImageMismatch)

	err := Write(&bytes.Buffer{}, &bytes.Buffer{}, &Image{Raster: m})
	assert.ErrorIs(t, err, ErrHeaderImageMismatch)
}

func TestNewRaster(t *testing.T) {
	m, err := NewRaster(Shape{Lines: 2, Samples: 3, Bands: 1, Kind: Int8})
	require.NoError(t, err)
	assert.Len(t, m.Data, 6)

	m.Set(1, 2, 0, -5)
	assert.Equal(t, -5.0, m.At(1, 2, 0))
	assert.Equal(t, 5, m.Index(1, 2, 0))

	_, err = NewRaster(Shape{Lines: 1, Samples: 1, Bands: 1, Kind: Int16, Complex: true})
	assert.ErrorIs(t, err, ErrUnsupportedElementKind)

	_, err = NewRaster(Shape{Lines: 0, Samples: 1, Bands: 1, Kind: Uint8})
	assert.Error(t, err)
}

func TestWriteNilHeader(t *testing.T) {
	m := ramp(t, Shape{Lines: 1, Samples: 2, Bands: 1, Kind: Float32})
	img := &Image{Raster: m}

	var hdr, data bytes.Buffer
	require.NoError(t, Write(&hdr, &data, img))
	require.NotNil(t, img.Header)
	assert.Equal(t, BSQ, img.Header.Interleave)

	got, err := Read(&hdr, &data)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 10}, got.Raster.Data)
}

func TestReadOversizedDimensions(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   error
	}{
		{
			"product overflows",
			"ENVI\nsamples = 3000000\nlines = 3000000\nbands = 3000000\ndata type = 1\n",
			ErrMalformedHeaderValue,
		},
		{
			"product wraps to zero",
			"ENVI\nsamples = 4294967296\nlines = 4294967296\nbands = 1\ndata type = 1\n",
			ErrMalformedHeaderValue,
		},
		{
			"element width overflows",
			"ENVI\nsamples = 2147483648\nlines = 2147483648\nbands = 1\ndata type = 9\n",
			ErrMalformedHeaderValue,
		},
		{
			"large but short stream",
			"ENVI\nsamples = 100000\nlines = 100000\nbands = 100\ndata type = 1\n",
			io.ErrUnexpectedEOF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var img *Image
			var err error
			assert.NotPanics(t, func() {
				img, err = Read(strings.NewReader(tt.header), strings.NewReader("tiny"))
			})
			assert.Nil(t, img)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewRasterOverflow(t *testing.T) {
	_, err := NewRaster(Shape{Lines: math.MaxInt / 2, Samples: 3, Bands: 1, Kind: Uint8})
	assert.ErrorIs(t, err, ErrMalformedHeaderValue)

	_, err = NewRaster(Shape{Lines: math.MaxInt / 8, Samples: 1, Bands: 1, Kind: Float64, Complex: true})
	assert.ErrorIs(t, err, ErrMalformedHeaderValue)
}
