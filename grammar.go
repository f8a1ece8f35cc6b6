package envi

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

//------------------------//
// Header grammar         //
//------------------------//

// maxLineLength bounds one physical header line. Band name lists of
// hyperspectral sensors easily exceed bufio's 64KB default.
const maxLineLength = 4 << 20

type grammar struct {
	s        *bufio.Scanner
	line     int
	warnings []string
}

func newGrammar(r io.Reader) *grammar {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &grammar{s: s}
}

// scanHeader tokenizes a header into (key, value) entries in file order.
// Keys are lowercased and trimmed, brace-delimited values are unwrapped.
func scanHeader(r io.Reader) ([]entry, []string, error) {
	g := newGrammar(r)

	entries := make([]entry, 0, 32)
	first := true
	for g.scan() {
		line := g.s.Text()
		if first {
			first = false
			if strings.TrimSpace(line) == marker {
				continue
			}
			// The first line is still read as an entry, only the marker is missing.
			g.warnings = append(g.warnings, ErrMissingEnviMarker.Error())
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := g.parseLine(line)
		if err != nil {
			return nil, g.warnings, err
		}
		entries = append(entries, e)
	}
	if err := g.s.Err(); err != nil {
		return nil, g.warnings, errors.Wrap(err, "could not read header")
	}
	if first {
		g.warnings = append(g.warnings, ErrMissingEnviMarker.Error())
	}

	return entries, g.warnings, nil
}

func (g *grammar) scan() bool {
	ok := g.s.Scan()
	if ok {
		g.line++
	}
	return ok
}

// parseLine splits a physical line on its first `=` and reads the
// continuation lines of a braced value.
func (g *grammar) parseLine(line string) (entry, error) {
	rawKey, rawValue, found := strings.Cut(line, "=")
	if !found {
		return entry{key: lower(line), line: g.line}, nil
	}

	e := entry{key: lower(rawKey), line: g.line}
	value := strings.TrimSpace(rawValue)
	if !strings.Contains(value, "{") {
		e.value = value
		return e, nil
	}

	v, err := g.collectBraced(value)
	if err != nil {
		return e, errors.Wrapf(err, "key %q at line %d", e.key, e.line)
	}
	e.value = v
	e.braced = true
	return e, nil
}

// collectBraced accumulates lines until the cumulative count of closing
// braces reaches the count of opening ones. Counting (instead of toggling on
// the first `}`) keeps several same-line groups such as `{a},{b}` intact.
func (g *grammar) collectBraced(value string) (string, error) {
	value = value[strings.Index(value, "{"):]

	var parts []string
	opened, closed := 0, 0
	for {
		opened += strings.Count(value, "{")
		closed += strings.Count(value, "}")
		if v := strings.TrimSpace(value); v != "" {
			parts = append(parts, v)
		}
		if closed >= opened {
			break
		}
		if !g.scan() {
			return "", errors.Wrap(ErrMalformedHeaderValue, "unterminated brace")
		}
		value = g.s.Text()
	}

	joined := strings.Join(parts, " ")
	joined = joined[1:] // opening brace
	if i := strings.LastIndex(joined, "}"); i >= 0 {
		joined = joined[:i]
	}
	return strings.TrimSpace(joined), nil
}
