package envi

import (
	"fmt"

	"github.com/pkg/errors"
)

// ElementKind is the native type of one (real) sample component.
type ElementKind int

const (
	KindInvalid ElementKind = iota
	Uint8
	Int8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
)

// The length of one instance of each kind in bytes.
var kindLengths = [...]int{0, 1, 1, 2, 2, 4, 4, 8, 8, 4, 8}

var kindNames = [...]string{"invalid", "uint8", "int8", "int16", "uint16", "int32", "uint32", "int64", "uint64", "float32", "float64"}

// Size returns the byte width of k.
func (k ElementKind) Size() int {
	if k < 0 || int(k) >= len(kindLengths) {
		return 0
	}
	return kindLengths[k]
}

func (k ElementKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
	return kindNames[k]
}

// DataType is an ENVI `data type` code.
type DataType int

// Data types, see the ENVI header documentation.
const (
	DTByte       DataType = 1
	DTInt16      DataType = 2
	DTInt32      DataType = 3
	DTFloat32    DataType = 4
	DTFloat64    DataType = 5
	DTComplex64  DataType = 6 // Pair of float32.
	DTComplex128 DataType = 9 // Pair of float64.
	DTUint16     DataType = 12
	DTUint32     DataType = 13
	DTInt64      DataType = 14
	DTUint64     DataType = 15
)

type dataTypeEntry struct {
	kind    ElementKind
	complex bool
}

var dataTypes = map[DataType]dataTypeEntry{
	DTByte:       {Uint8, false},
	DTInt16:      {Int16, false},
	DTInt32:      {Int32, false},
	DTFloat32:    {Float32, false},
	DTFloat64:    {Float64, false},
	DTComplex64:  {Float32, true},
	DTComplex128: {Float64, true},
	DTUint16:     {Uint16, false},
	DTUint32:     {Uint32, false},
	DTInt64:      {Int64, false},
	DTUint64:     {Uint64, false},
}

// CodeToType resolves an ENVI data type code.
func CodeToType(code DataType) (ElementKind, bool, error) {
	e, ok := dataTypes[code]
	if !ok {
		return KindInvalid, false, errors.Wrapf(ErrUnknownDataType, "code %d", int(code))
	}
	return e.kind, e.complex, nil
}

// TypeToCode returns the ENVI data type code of kind, complex or not.
func TypeToCode(kind ElementKind, cplx bool) (DataType, error) {
	for code, e := range dataTypes {
		if e.kind == kind && e.complex == cplx {
			return code, nil
		}
	}
	if cplx {
		return 0, errors.Wrapf(ErrUnsupportedElementKind, "complex %s", kind)
	}
	return 0, errors.Wrapf(ErrUnsupportedElementKind, "%s", kind)
}

// Valid reports whether d is in the ENVI code table.
func (d DataType) Valid() bool {
	_, ok := dataTypes[d]
	return ok
}

// Complex reports whether d holds (real, imaginary) pairs.
func (d DataType) Complex() bool {
	return dataTypes[d].complex
}

// Size returns the byte width of one sample of d, both parts included.
func (d DataType) Size() int {
	e, ok := dataTypes[d]
	if !ok {
		return 0
	}
	if e.complex {
		return 2 * e.kind.Size()
	}
	return e.kind.Size()
}

func (d DataType) String() string {
	e, ok := dataTypes[d]
	switch {
	case !ok:
		return fmt.Sprintf("unknown(%d)", int(d))
	case e.complex && e.kind == Float32:
		return "complex64"
	case e.complex:
		return "complex128"
	default:
		return e.kind.String()
	}
}
