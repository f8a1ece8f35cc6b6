package envi

// An ENVI image is made of two files: a plain-text header and a raw binary
// file holding the samples. The header is a list of entries
//
//  - one `ENVI` marker line,
//  - `key = value` lines, where value may be wrapped in braces and may span
//    several physical lines,
//
// and the binary file is a headerless array of lines*samples*bands elements
// laid out following the interleave of the header.

const (
	marker = "ENVI" // First line of every header.

	defaultFileType = "ENVI Standard"
)

// Header keys, as written. Keys are case-insensitive on read.
const (
	kBandNames       = "band names"
	kBands           = "bands"
	kBBL             = "bbl"
	kByteOrder       = "byte order"
	kCoordSysString  = "coordinate system string"
	kDataType        = "data type"
	kDEMBand         = "dem band"
	kDEMFile         = "dem file"
	kDescription     = "description"
	kFileType        = "file type"
	kFWHM            = "fwhm"
	kGeoPoints       = "geo points"
	kHeaderOffset    = "header offset"
	kInterleave      = "interleave"
	kLines           = "lines"
	kMapInfo         = "map info"
	kSamples         = "samples"
	kSensorType      = "sensor type"
	kWavelength      = "wavelength"
	kWavelengthUnits = "wavelength units"
	kXStart          = "x start"
	kYStart          = "y start"
)

// Map info projections with a dedicated token layout.
const (
	projUTM = "UTM"
	projWKT = "By WKT String"
)

// Interleave is the order in which samples, lines and bands are serialized.
type Interleave int

const (
	// InterleaveUnknown is the zero value, an interleave that was never set.
	InterleaveUnknown Interleave = iota
	// BSQ is band sequential.
	BSQ
	// BIL is band interleaved by line.
	BIL
	// BIP is band interleaved by pixel.
	BIP
)

func (i Interleave) String() string {
	switch i {
	case BSQ:
		return "bsq"
	case BIL:
		return "bil"
	case BIP:
		return "bip"
	default:
		return "unknown"
	}
}

// ParseInterleave returns the interleave named by s (case-insensitive).
func ParseInterleave(s string) (Interleave, bool) {
	switch lower(s) {
	case "bsq":
		return BSQ, true
	case "bil":
		return BIL, true
	case "bip":
		return BIP, true
	default:
		return InterleaveUnknown, false
	}
}

// ByteOrder is the element encoding of the binary file.
type ByteOrder int

const (
	// LittleEndian is written as `byte order = 0`.
	LittleEndian ByteOrder = iota
	// BigEndian is written as `byte order = 1`.
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}
