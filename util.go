package envi

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrHeaderFileNotFound reports that no readable header stream was supplied.
	ErrHeaderFileNotFound = errors.New("envi: header file not found")
	// ErrMissingEnviMarker reports a header whose first line is not `ENVI`.
	// It is only ever recorded as a warning.
	ErrMissingEnviMarker = errors.New("envi: missing ENVI marker")
	// ErrMalformedHeaderValue reports a known key whose value cannot be parsed.
	ErrMalformedHeaderValue = errors.New("envi: malformed header value")
	// ErrMalformedNumericList reports a numeric list holding a non-numeric token.
	ErrMalformedNumericList = errors.New("envi: malformed numeric list")
	// ErrMalformedMapInfo reports a map info value with missing or invalid tokens.
	ErrMalformedMapInfo = errors.New("envi: malformed map info")
	// ErrUnknownDataType reports a data type code outside the ENVI table.
	ErrUnknownDataType = errors.New("envi: unknown data type")
	// ErrUnsupportedElementKind reports an element kind without ENVI code.
	ErrUnsupportedElementKind = errors.New("envi: unsupported element kind")
	// ErrIncompleteHeader reports binary I/O on a header lacking dimensions or data type.
	ErrIncompleteHeader = errors.New("envi: incomplete header")
	// ErrHeaderImageMismatch reports a header field conflicting with the raster.
	ErrHeaderImageMismatch = errors.New("envi: header does not match image")
	// ErrUnsupportedComplexWrite reports an attempt to write complex samples.
	ErrUnsupportedComplexWrite = errors.New("envi: writing complex data is not supported")
)

// lower normalizes a header key or enumerated value.
func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// splitList splits a comma-separated value and trims each token.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	tokens := strings.Split(s, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens
}

// formatFloat renders v with the fewest digits that parse back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatFloats(vs []float64) string {
	s := make([]string, len(vs))
	for i, v := range vs {
		s[i] = formatFloat(v)
	}
	return strings.Join(s, ", ")
}

// braced wraps v in the brace delimiters used for lists and free text.
func braced(v string) string {
	return "{" + v + "}"
}

// product multiplies positive factors, reporting false when the result
// does not fit in an int.
func product(factors ...int) (int, bool) {
	n := 1
	for _, f := range factors {
		if f <= 0 || n > math.MaxInt/f {
			return 0, false
		}
		n *= f
	}
	return n, true
}
