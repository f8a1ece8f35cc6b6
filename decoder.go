package envi

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/pkg/errors"
)

// A fieldParser turns the raw value of a known key into a typed field.
type fieldParser func(h *Header, e entry) error

// parsers classifies header entries by their lowercased key. Entries whose
// key is not listed end up in Header.Other.
var parsers = map[string]fieldParser{
	kSamples: func(h *Header, e entry) error {
		n, err := e.positive()
		if err != nil {
			return err
		}
		h.SetSamples(n)
		return nil
	},
	kLines: func(h *Header, e entry) error {
		n, err := e.positive()
		if err != nil {
			return err
		}
		h.SetLines(n)
		return nil
	},
	kBands: func(h *Header, e entry) error {
		n, err := e.positive()
		if err != nil {
			return err
		}
		h.SetBands(n)
		return nil
	},
	kDataType: func(h *Header, e entry) error {
		code, err := e.int()
		if err != nil {
			return err
		}
		if _, _, err = CodeToType(DataType(code)); err != nil {
			return errors.Wrapf(err, "key %q", e.key)
		}
		h.SetDataType(DataType(code))
		return nil
	},
	kInterleave: func(h *Header, e entry) error {
		i, ok := ParseInterleave(e.value)
		if !ok {
			return e.malformed(errors.New("want bsq, bil or bip"))
		}
		h.SetInterleave(i)
		return nil
	},
	kByteOrder: func(h *Header, e entry) error {
		if e.value == "1" {
			h.SetByteOrder(BigEndian)
		} else {
			h.SetByteOrder(LittleEndian)
		}
		return nil
	},
	kHeaderOffset: func(h *Header, e entry) error {
		n, err := strconv.ParseInt(e.value, 10, 64)
		if err != nil {
			return e.malformed(err)
		}
		if n < 0 {
			return e.malformed(errors.New("negative offset"))
		}
		h.SetHeaderOffset(n)
		return nil
	},
	kFileType: func(h *Header, e entry) error {
		h.SetFileType(e.value)
		return nil
	},
	kDescription: func(h *Header, e entry) error {
		h.Description = e.value
		return nil
	},
	kSensorType: func(h *Header, e entry) error {
		h.SensorType = e.value
		return nil
	},
	kDEMFile: func(h *Header, e entry) error {
		h.DEMFile = e.value
		return nil
	},
	kDEMBand: func(h *Header, e entry) error {
		n, err := e.int()
		if err != nil {
			return err
		}
		h.SetDEMBand(n)
		return nil
	},
	kXStart: func(h *Header, e entry) error {
		v, err := e.float()
		if err != nil {
			return err
		}
		h.SetXStart(v)
		return nil
	},
	kYStart: func(h *Header, e entry) error {
		v, err := e.float()
		if err != nil {
			return err
		}
		h.SetYStart(v)
		return nil
	},
	kCoordSysString: func(h *Header, e entry) error {
		h.CoordinateSystemString = e.value
		return nil
	},
	kBandNames: func(h *Header, e entry) error {
		h.BandNames = e.strings()
		return nil
	},
	kWavelengthUnits: func(h *Header, e entry) error {
		h.WavelengthUnits = e.value
		return nil
	},
	kWavelength: func(h *Header, e entry) (err error) {
		h.Wavelength, err = e.floats()
		return
	},
	kFWHM: func(h *Header, e entry) (err error) {
		h.FWHM, err = e.floats()
		return
	},
	kBBL: func(h *Header, e entry) (err error) {
		h.BBL, err = e.floats()
		return
	},
	kGeoPoints: func(h *Header, e entry) (err error) {
		h.GeoPoints, err = e.floats()
		return
	},
	kMapInfo: func(h *Header, e entry) error {
		m, err := parseMapInfo(e.value)
		if err != nil {
			return errors.Wrapf(err, "key %q", e.key)
		}
		h.MapInfo = m
		return nil
	},
}

// positive parses the value as a strictly positive integer.
func (e entry) positive() (int, error) {
	n, err := e.int()
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, e.malformed(errors.New("not a positive integer"))
	}
	return n, nil
}

// DecodeHeader reads an ENVI header. A missing `ENVI` marker is reported
// in Header.Warnings, every other problem is an error.
func DecodeHeader(r io.Reader) (*Header, error) {
	if r == nil {
		return nil, ErrHeaderFileNotFound
	}

	entries, warnings, err := scanHeader(r)
	if err != nil {
		return nil, err
	}

	h := &Header{Warnings: warnings}
	for _, w := range warnings {
		slog.Warn("envi: decoding header", "warning", w)
	}

	for _, e := range entries {
		parse, ok := parsers[e.key]
		if !ok {
			slog.Debug("envi: unrecognized header key", "key", e.key, "line", e.line)
			h.Other = append(h.Other, Entry{Key: e.key, Value: e.value})
			continue
		}
		if err := parse(h, e); err != nil {
			return nil, errors.Wrapf(err, "line %d", e.line)
		}
	}

	h.UpdateLocations()
	return h, nil
}
