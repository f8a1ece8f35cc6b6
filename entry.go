package envi

import (
	"strconv"

	"github.com/pkg/errors"
)

// entry is one logical `key = value` line of a header.
type entry struct {
	key    string
	value  string
	braced bool // value was wrapped in braces
	line   int  // physical line where the entry starts
}

// Entry is a header entry preserved verbatim.
type Entry struct {
	Key   string
	Value string
}

// int parses the value as a base-10 integer.
func (e entry) int() (int, error) {
	v, err := strconv.Atoi(e.value)
	if err != nil {
		return 0, e.malformed(err)
	}
	return v, nil
}

// float parses the value as a real number.
func (e entry) float() (float64, error) {
	v, err := strconv.ParseFloat(e.value, 64)
	if err != nil {
		return 0, e.malformed(err)
	}
	return v, nil
}

// strings returns the trimmed comma-separated tokens of the value.
func (e entry) strings() []string {
	return splitList(e.value)
}

// floats returns the comma-separated tokens of the value as real numbers.
func (e entry) floats() ([]float64, error) {
	tokens := splitList(e.value)
	vs := make([]float64, len(tokens))
	for i, t := range tokens {
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedNumericList, "key %q token %d %q", e.key, i, t)
		}
		vs[i] = v
	}
	return vs, nil
}

func (e entry) malformed(cause error) error {
	return errors.Wrapf(ErrMalformedHeaderValue, "key %q value %q: %v", e.key, e.value, cause)
}
