package envi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutOffsetBijection(t *testing.T) {
	const lines, samples, bands = 2, 3, 4

	for _, interleave := range []Interleave{BSQ, BIL, BIP} {
		for _, width := range []int{1, 2, 4, 8, 16} {
			l, err := NewLayout(lines, samples, bands, interleave, width)
			require.NoError(t, err)
			assert.Equal(t, int64(lines*samples*bands*width), l.Size())

			seen := make(map[int64]bool)
			for r := 0; r < lines; r++ {
				for c := 0; c < samples; c++ {
					for b := 0; b < bands; b++ {
						off := l.Offset(r, c, b)
						assert.Zero(t, off%int64(width), "%s width %d (%d,%d,%d)", interleave, width, r, c, b)
						assert.GreaterOrEqual(t, off, int64(0))
						assert.Less(t, off, l.Size())
						assert.False(t, seen[off], "%s width %d: offset %d reused", interleave, width, off)
						seen[off] = true
					}
				}
			}
			assert.Len(t, seen, l.Len())
		}
	}
}

func TestLayoutOffset(t *testing.T) {
	tests := []struct {
		interleave Interleave
		r, c, b    int
		want       int64
	}{
		{BSQ, 0, 0, 0, 0},
		{BSQ, 0, 1, 0, 2},
		{BSQ, 1, 0, 0, 6},
		{BSQ, 0, 0, 1, 12},
		{BSQ, 1, 2, 3, 46},
		{BIL, 0, 1, 0, 2},
		{BIL, 0, 0, 1, 6},
		{BIL, 1, 0, 0, 24},
		{BIL, 1, 2, 3, 46},
		{BIP, 0, 0, 1, 2},
		{BIP, 0, 1, 0, 8},
		{BIP, 1, 0, 0, 24},
		{BIP, 1, 2, 3, 46},
	}
	for _, tt := range tests {
		l, err := NewLayout(2, 3, 4, tt.interleave, 2)
		require.NoError(t, err)
		assert.Equal(t, tt.want, l.Offset(tt.r, tt.c, tt.b), "%s (%d,%d,%d)", tt.interleave, tt.r, tt.c, tt.b)
	}
}

func TestNewLayoutErrors(t *testing.T) {
	_, err := NewLayout(0, 3, 4, BSQ, 1)
	assert.ErrorIs(t, err, ErrIncompleteHeader)

	_, err = NewLayout(2, 3, -1, BIP, 1)
	assert.ErrorIs(t, err, ErrIncompleteHeader)

	_, err = NewLayout(2, 3, 4, BIL, 0)
	assert.ErrorIs(t, err, ErrUnknownDataType)

	_, err = NewLayout(2, 3, 4, InterleaveUnknown, 1)
	assert.ErrorIs(t, err, ErrMalformedHeaderValue)

	_, err = NewLayout(math.MaxInt/2, 3, 1, BSQ, 1)
	assert.ErrorIs(t, err, ErrMalformedHeaderValue)

	_, err = NewLayout(math.MaxInt/16+1, 1, 1, BIP, 16)
	assert.ErrorIs(t, err, ErrMalformedHeaderValue)
}
