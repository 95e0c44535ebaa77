// Package rle reads and writes the run-length encoded pattern format used by
// the Life community.
//
// A pattern body is a sequence of rows separated by '$'. Inside a row every
// token is one non-digit character, optionally preceded by a decimal run
// count. Lines starting with '#' and the "x = ..." header are ignored, and
// a '!' ends the pattern.
package rle

import (
	"strconv"
	"strings"
	"unicode"

	"automata/internal/core"
)

// Reserved tokens.
const (
	Empty   = 'b'
	Default = 'o'
	EndRow  = '$'
	EndBody = '!'
)

// Pattern is a decoded pattern: a ragged array of tokens plus the inferred
// dimensions.
type Pattern struct {
	Rows   [][]rune
	Width  int
	Height int
}

// At returns the token at (x, y) and false when the position lies outside the
// decoded rows.
func (p Pattern) At(x, y int) (rune, bool) {
	if y < 0 || y >= len(p.Rows) || x < 0 || x >= len(p.Rows[y]) {
		return 0, false
	}
	return p.Rows[y][x], true
}

// Decode parses text into a Pattern. It never fails: malformed input yields
// whatever rows could be read.
func Decode(text string) Pattern {
	var body strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isHeader(line) {
			continue
		}
		body.WriteString(line)
	}

	src := stripSpace(body.String())
	if i := strings.IndexRune(src, EndBody); i >= 0 {
		src = src[:i]
	}

	var p Pattern
	row := []rune{}
	count := 0
	haveCount := false
	for _, r := range src {
		if r >= '0' && r <= '9' {
			count = count*10 + int(r-'0')
			haveCount = true
			continue
		}
		n := 1
		if haveCount {
			n = count
		}
		count, haveCount = 0, false
		for i := 0; i < n; i++ {
			if r == EndRow {
				p.Rows = append(p.Rows, row)
				row = []rune{}
				continue
			}
			row = append(row, r)
		}
	}
	p.Rows = append(p.Rows, row)

	p.Height = len(p.Rows)
	for _, r := range p.Rows {
		if len(r) > p.Width {
			p.Width = len(r)
		}
	}
	return p
}

func isHeader(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "x =") || strings.HasPrefix(line, "x=")
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Encode scans box row-major and run-length encodes the tokens returned by
// token. token must already return canonical tokens ('b' for empty cells).
// With trim set, trailing empty runs in every row and trailing row
// separators are dropped, which is the form used for unbounded boards.
func Encode(box core.Box, token func(x, y int) rune, trim bool) string {
	if box.Empty() {
		return ""
	}
	var out strings.Builder
	for y := box.RowMin; y <= box.RowMax; y++ {
		var runs []run
		for x := box.ColMin; x <= box.ColMax; x++ {
			t := token(x, y)
			if n := len(runs); n > 0 && runs[n-1].token == t {
				runs[n-1].count++
				continue
			}
			runs = append(runs, run{token: t, count: 1})
		}
		if trim && len(runs) > 0 && runs[len(runs)-1].token == Empty {
			runs = runs[:len(runs)-1]
		}
		for _, r := range runs {
			r.writeTo(&out)
		}
		out.WriteRune(EndRow)
	}
	s := out.String()
	if trim {
		s = strings.TrimRight(s, string(EndRow))
	}
	return strings.TrimSpace(s)
}

type run struct {
	token rune
	count int
}

func (r run) writeTo(sb *strings.Builder) {
	if r.count > 1 {
		sb.WriteString(strconv.Itoa(r.count))
	}
	sb.WriteRune(r.token)
}
