package envi

import (
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// MapInfo is the ground location and pixel size of a reference pixel.
type MapInfo struct {
	Projection string
	// RefX and RefY locate the reference pixel, 1-based.
	RefX     float64
	RefY     float64
	Easting  float64
	Northing float64
	XSize    float64
	YSize    float64

	Zone       int    // UTM only.
	Hemisphere string // UTM only.
	Datum      string // Not for WKT projections.
	Units      string // Not for WKT projections.

	// Extra holds trailing tokens (e.g. `rotation=...`) kept for round trip.
	Extra []string
}

// parseMapInfo reads the comma-separated `map info` value:
//
//	proj, xRef, yRef, easting, northing, xSize, ySize[, zone, hemisphere], datum, units
//
// WKT projections stop after the pixel size.
func parseMapInfo(value string) (*MapInfo, error) {
	tokens := splitList(value)
	if len(tokens) < 7 {
		return nil, errors.Wrapf(ErrMalformedMapInfo, "%d tokens, want at least 7", len(tokens))
	}

	m := &MapInfo{Projection: tokens[0]}
	core := []*float64{&m.RefX, &m.RefY, &m.Easting, &m.Northing, &m.XSize, &m.YSize}
	for i, dst := range core {
		v, err := strconv.ParseFloat(tokens[i+1], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedMapInfo, "token %d %q is not a number", i+1, tokens[i+1])
		}
		*dst = v
	}

	rest := tokens[7:]
	switch {
	case strings.EqualFold(m.Projection, projWKT):
	case strings.EqualFold(m.Projection, projUTM):
		if len(rest) < 4 {
			return nil, errors.Wrapf(ErrMalformedMapInfo, "UTM needs zone, hemisphere, datum and units, got %d tokens", len(rest))
		}
		zone, err := strconv.Atoi(rest[0])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedMapInfo, "UTM zone %q", rest[0])
		}
		m.Zone = zone
		m.Hemisphere = rest[1]
		m.Datum = rest[2]
		m.Units = rest[3]
		rest = rest[4:]
	default:
		if len(rest) < 2 {
			return nil, errors.Wrapf(ErrMalformedMapInfo, "%s needs datum and units, got %d tokens", m.Projection, len(rest))
		}
		m.Datum = rest[0]
		m.Units = rest[1]
		rest = rest[2:]
	}
	if len(rest) > 0 {
		m.Extra = rest
	}

	return m, nil
}

// String renders the `map info` value without braces.
func (m *MapInfo) String() string {
	tokens := []string{
		m.Projection,
		formatFloat(m.RefX),
		formatFloat(m.RefY),
		formatFloat(m.Easting),
		formatFloat(m.Northing),
		formatFloat(m.XSize),
		formatFloat(m.YSize),
	}
	switch {
	case strings.EqualFold(m.Projection, projWKT):
	case strings.EqualFold(m.Projection, projUTM):
		tokens = append(tokens, strconv.Itoa(m.Zone), m.Hemisphere, m.Datum, m.Units)
	default:
		tokens = append(tokens, m.Datum, m.Units)
	}
	tokens = append(tokens, m.Extra...)
	return strings.Join(tokens, ", ")
}

// anchor returns the ground coordinate of the upper-left pixel corner.
// Pixel (1.5, 1.5) in 1-based center indexing is that corner.
func (m *MapInfo) anchor() (easting, northing float64) {
	easting, northing = m.Easting, m.Northing
	if m.RefY > 1.5 {
		// Rows grow downward while northing grows upward.
		northing += (m.RefY - 1) * m.YSize
	}
	if m.RefX > 1.5 {
		easting -= (m.RefX - 1) * m.XSize
	}
	return
}

// Locations returns the ground coordinate of each column and row.
// yLoc is reversed: index 0 is the southernmost row, the last index the
// row nearest the anchor.
func (m *MapInfo) Locations(samples, lines int) (xLoc, yLoc []float64) {
	easting, northing := m.anchor()

	xLoc = make([]float64, samples)
	for i := range xLoc {
		xLoc[i] = easting + float64(i)*m.XSize
	}

	yLoc = make([]float64, lines)
	for j := range yLoc {
		yLoc[lines-1-j] = northing - float64(j)*m.YSize
	}
	return
}

// UpdateLocations recomputes XLoc and YLoc from MapInfo and the dimensions.
// They are cleared when either is missing.
func (h *Header) UpdateLocations() {
	if h.MapInfo == nil || !h.Has(FieldSamples|FieldLines) {
		h.XLoc, h.YLoc = nil, nil
		return
	}
	h.XLoc, h.YLoc = h.MapInfo.Locations(h.Samples, h.Lines)
}

// PixelCenter returns the ground location of the pixel stored at (row, col).
func (h *Header) PixelCenter(row, col int) (orb.Point, bool) {
	if len(h.XLoc) == 0 || len(h.YLoc) == 0 {
		return orb.Point{}, false
	}
	if row < 0 || row >= len(h.YLoc) || col < 0 || col >= len(h.XLoc) {
		return orb.Point{}, false
	}
	return orb.Point{h.XLoc[col], h.YLoc[len(h.YLoc)-1-row]}, true
}

// Footprint returns the bound of the ground locations of all pixels.
func (h *Header) Footprint() (orb.Bound, bool) {
	if len(h.XLoc) == 0 || len(h.YLoc) == 0 {
		return orb.Bound{}, false
	}
	corners := orb.MultiPoint{
		{h.XLoc[0], h.YLoc[0]},
		{h.XLoc[len(h.XLoc)-1], h.YLoc[len(h.YLoc)-1]},
	}
	return corners.Bound(), true
}
