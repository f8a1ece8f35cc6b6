package envi

// Resources:
// https://www.nv5geospatialsoftware.com/docs/ENVIHeaderFiles.html (header keys)
// https://www.nv5geospatialsoftware.com/docs/EnterOptionalHeaderInformation.html (map info)

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// An Image is a decoded header together with its samples.
type Image struct {
	Header *Header
	Raster *Raster
}

// DecodeConfig returns the shape declared by a header without reading any
// sample.
func DecodeConfig(hdr io.Reader) (Shape, error) {
	h, err := DecodeHeader(hdr)
	if err != nil {
		return Shape{}, err
	}
	return h.Shape()
}

// ReadRaster reads the samples described by h from r.
//
// Complex data types are read on a best-effort basis: samples are decoded
// as (real, imaginary) pairs and a warning is recorded in h.Warnings.
func ReadRaster(r io.Reader, h *Header) (*Raster, error) {
	layout, err := h.Layout()
	if err != nil {
		return nil, err
	}
	shape, err := h.Shape()
	if err != nil {
		return nil, err
	}
	if shape.Complex {
		w := h.DataType.String() + " samples are read best-effort, complex data is not supported"
		h.Warnings = append(h.Warnings, w)
		slog.Warn("envi: reading raster", "warning", w)
	}

	if h.HeaderOffset > 0 {
		if _, err = io.CopyN(io.Discard, r, h.HeaderOffset); err != nil {
			return nil, errors.Wrap(err, "could not skip header offset")
		}
	}

	// The buffer grows with the data actually read, a short stream fails
	// before the declared size is ever allocated.
	var data bytes.Buffer
	n, err := io.Copy(&data, io.LimitReader(r, layout.Size()))
	if err != nil {
		return nil, errors.Wrap(err, "could not read pixel data")
	}
	if n < layout.Size() {
		return nil, errors.Wrapf(io.ErrUnexpectedEOF, "could not read pixel data: %d of %d bytes", n, layout.Size())
	}
	buf := data.Bytes()

	m, err := NewRaster(shape)
	if err != nil {
		return nil, err
	}
	c, err := newCodec(m.Data, h.ByteOrder.order())
	if err != nil {
		return nil, err
	}

	w := int64(layout.Width)
	for row := 0; row < shape.Lines; row++ {
		for col := 0; col < shape.Samples; col++ {
			for band := 0; band < shape.Bands; band++ {
				offset := layout.Offset(row, col, band)
				c.decode(m.Index(row, col, band), buf[offset:offset+w])
			}
		}
	}

	return m, nil
}

// Read decodes a header from hdr and the samples it describes from data.
func Read(hdr, data io.Reader) (*Image, error) {
	h, err := DecodeHeader(hdr)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.New("envi: no pixel data stream")
	}
	m, err := ReadRaster(data, h)
	if err != nil {
		return nil, err
	}
	return &Image{Header: h, Raster: m}, nil
}

// ReadHeaderFile decodes the header paired with path, which may name either
// the header or the pixel file.
func ReadHeaderFile(path string) (*Header, error) {
	hdrPath, _, err := resolvePaths(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(hdrPath)
	if err != nil {
		return nil, errors.Wrapf(ErrHeaderFileNotFound, "%q: %v", hdrPath, err)
	}
	defer func() { _ = f.Close() }()

	return DecodeHeader(f)
}

// ReadFile reads an image from disk. path may name either the header or
// the pixel file.
func ReadFile(path string) (*Image, error) {
	hdrPath, dataPath, err := resolvePaths(path)
	if err != nil {
		return nil, err
	}

	hf, err := os.Open(hdrPath)
	if err != nil {
		return nil, errors.Wrapf(ErrHeaderFileNotFound, "%q: %v", hdrPath, err)
	}
	defer func() { _ = hf.Close() }()

	df, err := os.Open(dataPath)
	if err != nil {
		return nil, errors.Wrap(err, "could not open pixel file")
	}
	defer func() { _ = df.Close() }()

	return Read(hf, df)
}

// dataExtensions are tried, in order, to find the pixel file of a header.
var dataExtensions = []string{"", ".img", ".dat", ".raw", ".bsq", ".bil", ".bip", ".IMG", ".DAT"}

// resolvePaths returns the header and pixel file paths of an image.
func resolvePaths(path string) (hdrPath, dataPath string, err error) {
	if strings.EqualFold(filepath.Ext(path), ".hdr") {
		base := strings.TrimSuffix(path, filepath.Ext(path))
		for _, ext := range dataExtensions {
			if exists(base + ext) {
				return path, base + ext, nil
			}
		}
		return path, base, nil
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, p := range []string{path + ".hdr", base + ".hdr", path + ".HDR", base + ".HDR"} {
		if exists(p) {
			return p, path, nil
		}
	}
	return "", "", errors.Wrapf(ErrHeaderFileNotFound, "no header for %q", path)
}

func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
