package envi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An emitter renders one known key, reporting false when the field is absent.
type emitter struct {
	key  string
	emit func(h *Header) (string, bool)
}

// emitters lists the known keys in the order they are written.
var emitters = []emitter{
	{kBandNames, func(h *Header) (string, bool) {
		return braced(strings.Join(h.BandNames, ", ")), h.BandNames != nil
	}},
	{kBands, func(h *Header) (string, bool) {
		return strconv.Itoa(h.Bands), h.Has(FieldBands)
	}},
	{kBBL, func(h *Header) (string, bool) {
		return braced(formatFloats(h.BBL)), h.BBL != nil
	}},
	{kByteOrder, func(h *Header) (string, bool) {
		return strconv.Itoa(int(h.ByteOrder)), h.Has(FieldByteOrder)
	}},
	{kCoordSysString, func(h *Header) (string, bool) {
		return braced(h.CoordinateSystemString), h.CoordinateSystemString != ""
	}},
	{kDataType, func(h *Header) (string, bool) {
		return strconv.Itoa(int(h.DataType)), h.Has(FieldDataType)
	}},
	{kDEMBand, func(h *Header) (string, bool) {
		return strconv.Itoa(h.DEMBand), h.Has(FieldDEMBand)
	}},
	{kDEMFile, func(h *Header) (string, bool) {
		return text(h.DEMFile), h.DEMFile != ""
	}},
	{kDescription, func(h *Header) (string, bool) {
		return braced(h.Description), h.Description != ""
	}},
	{kFileType, func(h *Header) (string, bool) {
		return text(h.FileType), h.Has(FieldFileType)
	}},
	{kFWHM, func(h *Header) (string, bool) {
		return braced(formatFloats(h.FWHM)), h.FWHM != nil
	}},
	{kGeoPoints, func(h *Header) (string, bool) {
		return braced(formatFloats(h.GeoPoints)), h.GeoPoints != nil
	}},
	{kHeaderOffset, func(h *Header) (string, bool) {
		return strconv.FormatInt(h.HeaderOffset, 10), h.Has(FieldHeaderOffset)
	}},
	{kInterleave, func(h *Header) (string, bool) {
		return h.Interleave.String(), h.Has(FieldInterleave)
	}},
	{kLines, func(h *Header) (string, bool) {
		return strconv.Itoa(h.Lines), h.Has(FieldLines)
	}},
	{kMapInfo, func(h *Header) (string, bool) {
		if h.MapInfo == nil {
			return "", false
		}
		return braced(h.MapInfo.String()), true
	}},
	{kSamples, func(h *Header) (string, bool) {
		return strconv.Itoa(h.Samples), h.Has(FieldSamples)
	}},
	{kSensorType, func(h *Header) (string, bool) {
		return text(h.SensorType), h.SensorType != ""
	}},
	{kWavelength, func(h *Header) (string, bool) {
		return braced(formatFloats(h.Wavelength)), h.Wavelength != nil
	}},
	{kWavelengthUnits, func(h *Header) (string, bool) {
		return text(h.WavelengthUnits), h.WavelengthUnits != ""
	}},
	{kXStart, func(h *Header) (string, bool) {
		return formatFloat(h.XStart), h.Has(FieldXStart)
	}},
	{kYStart, func(h *Header) (string, bool) {
		return formatFloat(h.YStart), h.Has(FieldYStart)
	}},
}

// Complete checks h against the shape of the image it describes and fills
// the absent required fields: dimensions and data type from s, BSQ,
// little-endian, no offset, standard file type. h is left untouched on error.
func (h *Header) Complete(s Shape) error {
	if s.Complex || h.Complex() {
		return ErrUnsupportedComplexWrite
	}
	code, err := TypeToCode(s.Kind, s.Complex)
	if err != nil {
		return err
	}

	checks := []struct {
		field     Field
		got, want int
	}{
		{FieldSamples, h.Samples, s.Samples},
		{FieldLines, h.Lines, s.Lines},
		{FieldBands, h.Bands, s.Bands},
		{FieldDataType, int(h.DataType), int(code)},
	}
	for _, c := range checks {
		if h.Has(c.field) && c.got != c.want {
			return errors.Wrapf(ErrHeaderImageMismatch, "%s: header %d, image %d", c.field, c.got, c.want)
		}
	}

	lists := []struct {
		key string
		n   int
		set bool
	}{
		{kBandNames, len(h.BandNames), h.BandNames != nil},
		{kWavelength, len(h.Wavelength), h.Wavelength != nil},
		{kFWHM, len(h.FWHM), h.FWHM != nil},
		{kBBL, len(h.BBL), h.BBL != nil},
	}
	for _, l := range lists {
		if l.set && l.n != s.Bands {
			return errors.Wrapf(ErrHeaderImageMismatch, "%s: %d values, image has %d bands", l.key, l.n, s.Bands)
		}
	}

	for _, e := range h.textEntries() {
		if err := checkText(e); err != nil {
			return err
		}
	}

	if h.Has(FieldInterleave) {
		if _, ok := ParseInterleave(h.Interleave.String()); !ok {
			return errors.Wrapf(ErrMalformedHeaderValue, "%s %d", kInterleave, int(h.Interleave))
		}
	}

	if !h.Has(FieldSamples) {
		h.SetSamples(s.Samples)
	}
	if !h.Has(FieldLines) {
		h.SetLines(s.Lines)
	}
	if !h.Has(FieldBands) {
		h.SetBands(s.Bands)
	}
	if !h.Has(FieldDataType) {
		h.SetDataType(code)
	}
	if !h.Has(FieldHeaderOffset) {
		h.SetHeaderOffset(0)
	}
	if !h.Has(FieldInterleave) {
		h.SetInterleave(BSQ)
	}
	if !h.Has(FieldByteOrder) {
		h.SetByteOrder(LittleEndian)
	}
	if !h.Has(FieldFileType) {
		h.SetFileType(defaultFileType)
	}
	return nil
}

// textEntries lists the values written as free text, as key/value pairs.
func (h *Header) textEntries() []Entry {
	entries := []Entry{
		{Key: kBandNames, Value: strings.Join(h.BandNames, ", ")},
		{Key: kCoordSysString, Value: h.CoordinateSystemString},
		{Key: kDEMFile, Value: h.DEMFile},
		{Key: kDescription, Value: h.Description},
		{Key: kFileType, Value: h.FileType},
		{Key: kSensorType, Value: h.SensorType},
		{Key: kWavelengthUnits, Value: h.WavelengthUnits},
	}
	if h.MapInfo != nil {
		entries = append(entries, Entry{Key: kMapInfo, Value: h.MapInfo.String()})
	}
	return append(entries, h.Other...)
}

// checkText rejects the values the header grammar cannot read back as
// written: line breaks, unbalanced braces, and keys holding `=`.
func checkText(e Entry) error {
	switch {
	case e.Key == "" || strings.ContainsAny(e.Key, "=\r\n"):
		return errors.Wrapf(ErrMalformedHeaderValue, "key %q cannot be written", e.Key)
	case strings.ContainsAny(e.Value, "\r\n"):
		return errors.Wrapf(ErrMalformedHeaderValue, "key %q: line break in value", e.Key)
	case strings.Count(e.Value, "{") != strings.Count(e.Value, "}"):
		return errors.Wrapf(ErrMalformedHeaderValue, "key %q: unbalanced braces in value", e.Key)
	}
	return nil
}

// text braces a single-line value holding a brace, which would otherwise
// be read as the start of a braced value.
func text(v string) string {
	if strings.Contains(v, "{") {
		return braced(v)
	}
	return v
}

// EncodeHeader completes h for an image of shape s and writes it as header
// text. Known keys are written in a fixed order, then the entries of
// h.Other in their original order.
func EncodeHeader(w io.Writer, h *Header, s Shape) error {
	if err := h.Complete(s); err != nil {
		return err
	}
	h.UpdateLocations()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, marker)
	for _, e := range emitters {
		if v, ok := e.emit(h); ok {
			fmt.Fprintf(bw, "%s = %s\n", e.key, v)
		}
	}
	for _, e := range h.Other {
		fmt.Fprintf(bw, "%s = %s\n", e.Key, braced(e.Value))
	}
	return errors.Wrap(bw.Flush(), "could not write header")
}
