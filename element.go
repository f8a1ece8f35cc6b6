package envi

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// order returns the encoding/binary byte order of o.
func (o ByteOrder) order() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// codec moves element i of a typed slice from/to its raw bytes p.
type codec struct {
	decode func(i int, p []byte)
	encode func(i int, p []byte)
}

// newCodec returns the element codec of data, which must be one of the
// slice types allocated by NewRaster.
func newCodec(data any, bo binary.ByteOrder) (codec, error) {
	switch s := data.(type) {
	case []uint8:
		return codec{
			decode: func(i int, p []byte) { s[i] = p[0] },
			encode: func(i int, p []byte) { p[0] = s[i] },
		}, nil
	case []int8:
		return codec{
			decode: func(i int, p []byte) { s[i] = int8(p[0]) },
			encode: func(i int, p []byte) { p[0] = byte(s[i]) },
		}, nil
	case []int16:
		return codec{
			decode: func(i int, p []byte) { s[i] = int16(bo.Uint16(p)) },
			encode: func(i int, p []byte) { bo.PutUint16(p, uint16(s[i])) },
		}, nil
	case []uint16:
		return codec{
			decode: func(i int, p []byte) { s[i] = bo.Uint16(p) },
			encode: func(i int, p []byte) { bo.PutUint16(p, s[i]) },
		}, nil
	case []int32:
		return codec{
			decode: func(i int, p []byte) { s[i] = int32(bo.Uint32(p)) },
			encode: func(i int, p []byte) { bo.PutUint32(p, uint32(s[i])) },
		}, nil
	case []uint32:
		return codec{
			decode: func(i int, p []byte) { s[i] = bo.Uint32(p) },
			encode: func(i int, p []byte) { bo.PutUint32(p, s[i]) },
		}, nil
	case []int64:
		return codec{
			decode: func(i int, p []byte) { s[i] = int64(bo.Uint64(p)) },
			encode: func(i int, p []byte) { bo.PutUint64(p, uint64(s[i])) },
		}, nil
	case []uint64:
		return codec{
			decode: func(i int, p []byte) { s[i] = bo.Uint64(p) },
			encode: func(i int, p []byte) { bo.PutUint64(p, s[i]) },
		}, nil
	case []float32:
		return codec{
			decode: func(i int, p []byte) { s[i] = math.Float32frombits(bo.Uint32(p)) },
			encode: func(i int, p []byte) { bo.PutUint32(p, math.Float32bits(s[i])) },
		}, nil
	case []float64:
		return codec{
			decode: func(i int, p []byte) { s[i] = math.Float64frombits(bo.Uint64(p)) },
			encode: func(i int, p []byte) { bo.PutUint64(p, math.Float64bits(s[i])) },
		}, nil
	case []complex64:
		// Real part first, then imaginary part.
		return codec{
			decode: func(i int, p []byte) {
				s[i] = complex(math.Float32frombits(bo.Uint32(p[0:4])), math.Float32frombits(bo.Uint32(p[4:8])))
			},
			encode: func(i int, p []byte) {
				bo.PutUint32(p[0:4], math.Float32bits(real(s[i])))
				bo.PutUint32(p[4:8], math.Float32bits(imag(s[i])))
			},
		}, nil
	case []complex128:
		return codec{
			decode: func(i int, p []byte) {
				s[i] = complex(math.Float64frombits(bo.Uint64(p[0:8])), math.Float64frombits(bo.Uint64(p[8:16])))
			},
			encode: func(i int, p []byte) {
				bo.PutUint64(p[0:8], math.Float64bits(real(s[i])))
				bo.PutUint64(p[8:16], math.Float64bits(imag(s[i])))
			},
		}, nil
	default:
		return codec{}, errors.Errorf("envi: unsupported raster storage %T", data)
	}
}
