package envi

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// WriteRaster writes the samples of m to w following the layout, byte order
// and offset of h. The header offset is zero-filled.
func WriteRaster(w io.Writer, h *Header, m *Raster) error {
	if err := m.check(); err != nil {
		return err
	}
	if err := h.Complete(m.Shape); err != nil {
		return err
	}
	layout, err := h.Layout()
	if err != nil {
		return err
	}
	c, err := newCodec(m.Data, h.ByteOrder.order())
	if err != nil {
		return err
	}

	buf := make([]byte, layout.Size())
	width := int64(layout.Width)
	for row := 0; row < m.Lines; row++ {
		for col := 0; col < m.Samples; col++ {
			for band := 0; band < m.Bands; band++ {
				offset := layout.Offset(row, col, band)
				c.encode(m.Index(row, col, band), buf[offset:offset+width])
			}
		}
	}

	bw := bufio.NewWriter(w)
	if h.HeaderOffset > 0 {
		if _, err = bw.Write(make([]byte, h.HeaderOffset)); err != nil {
			return errors.Wrap(err, "could not write header offset")
		}
	}
	if _, err = bw.Write(buf); err != nil {
		return errors.Wrap(err, "could not write pixel data")
	}
	return errors.Wrap(bw.Flush(), "could not write pixel data")
}

// Write encodes img.Header to hdr and img.Raster to data. A nil header is
// replaced by the basic header of the raster.
func Write(hdr, data io.Writer, img *Image) error {
	if img == nil || img.Raster == nil {
		return errors.New("envi: no raster to write")
	}
	if err := img.Raster.check(); err != nil {
		return err
	}
	if img.Header == nil {
		h, err := NewHeader(img.Raster.Shape)
		if err != nil {
			return err
		}
		img.Header = h
	}

	if err := EncodeHeader(hdr, img.Header, img.Raster.Shape); err != nil {
		return err
	}
	return WriteRaster(data, img.Header, img.Raster)
}

// WriteFile writes img to the pixel file path and its header next to it
// (path with a .hdr extension). Files are removed when writing fails.
func WriteFile(path string, img *Image) (err error) {
	hdrPath := headerPath(path)
	if strings.EqualFold(filepath.Ext(path), ".hdr") {
		hdrPath = path
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}

	hf, err := os.Create(hdrPath)
	if err != nil {
		return errors.Wrap(err, "could not create header file")
	}
	df, err := os.Create(path)
	if err != nil {
		_ = hf.Close()
		_ = os.Remove(hdrPath)
		return errors.Wrap(err, "could not create pixel file")
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = errors.Wrap(cerr, "could not close pixel file")
		}
		if cerr := hf.Close(); err == nil {
			err = errors.Wrap(cerr, "could not close header file")
		}
		if err != nil {
			// A partially written image is not valid data.
			_ = os.Remove(path)
			_ = os.Remove(hdrPath)
		}
	}()

	if err = Write(hf, df, img); err != nil {
		return err
	}
	if err = df.Sync(); err != nil {
		return errors.Wrap(err, "could not flush data to disk")
	}
	return nil
}

// headerPath returns the header path paired with a pixel file.
func headerPath(path string) string {
	if ext := filepath.Ext(path); ext != "" {
		return strings.TrimSuffix(path, ext) + ".hdr"
	}
	return path + ".hdr"
}
