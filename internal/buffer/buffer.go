// Package buffer implements a text-editing buffer.
package buffer

import (
	"bufio"
	"io"
	"strings"
)

// Buffer is a text buffer that support efficient access to individual lines of text.
// It implements the io.ReaderFrom and io.WriterTo interfaces.
//
// Every line but the last ends in a newline, and there is always at least one line.
type Buffer struct {
	lines []string
}

func New() *Buffer { return &Buffer{lines: []string{""}} }

// Point is a position in the text: X counts characters from the start of line Y.
type Point struct {
	X, Y int
}

// Less reports whether p comes before q in the text.
func (p Point) Less(q Point) bool { return p.Y < q.Y || (p.Y == q.Y && p.X < q.X) }

// Range is the half-open span of text [Begin, End[.
type Range struct {
	Begin, End Point
}

// Normalize returns r with its endpoints in text order.
func (r Range) Normalize() Range {
	if r.End.Less(r.Begin) {
		r.Begin, r.End = r.End, r.Begin
	}
	return r
}

// Empty reports whether r contains no text.
func (r Range) Empty() bool { return r.Begin == r.End }

// ReadFrom replaces the content of the buffer with data read from r until EOF.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	b.lines = nil
	br := bufio.NewReader(r)
	for {
		var line string
		line, err = br.ReadString('\n')
		b.lines = append(b.lines, line)
		n += int64(len(line))
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			return
		}
	}
}

// WriteTo writes the full content of the buffer to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, line := range b.lines {
		nw, err := io.WriteString(w, line)
		n += int64(nw)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// String returns the full content of the buffer.
func (b *Buffer) String() string { return strings.Join(b.lines, "") }

// SetString replaces the content of the buffer with s.
func (b *Buffer) SetString(s string) {
	b.lines = b.lines[:0]
	for {
		i := strings.IndexByte(s, '\n')
		if i == -1 {
			b.lines = append(b.lines, s)
			return
		}
		b.lines = append(b.lines, s[:i+1])
		s = s[i+1:]
	}
}

// SliceLines returns the lines of the buffer in the interval [i, j[.
func (b *Buffer) SliceLines(i, j int) []string {
	if j > len(b.lines) {
		j = len(b.lines)
	}
	if i > j {
		i = j
	}
	return b.lines[i:j]
}

// Line returns line i in the buffer, without its trailing newline.
func (b *Buffer) Line(i int) string {
	if i >= len(b.lines) {
		i = len(b.lines) - 1
	}
	return strings.TrimSuffix(b.lines[i], "\n")
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int { return len(b.lines) }

// LineLen returns the number of characters in line i, not counting the newline.
func (b *Buffer) LineLen(i int) int { return charCount(b.Line(i)) }

// End returns the point just past the last character of the buffer.
func (b *Buffer) End() Point {
	y := len(b.lines) - 1
	return Point{b.LineLen(y), y}
}

// Clamp returns the closest point to p that lies within the text.
func (b *Buffer) Clamp(p Point) Point {
	switch {
	case p.Y < 0:
		return Point{}
	case p.Y >= len(b.lines):
		return b.End()
	}
	if p.X < 0 {
		p.X = 0
	}
	if n := b.LineLen(p.Y); p.X > n {
		p.X = n
	}
	return p
}

// Advance returns the point n characters after p, counting line breaks as one character.
// Negative n moves backwards. The result is clamped to the text.
func (b *Buffer) Advance(p Point, n int) Point {
	p = b.Clamp(p)
	for ; n > 0; n-- {
		if p.X < b.LineLen(p.Y) {
			p.X++
		} else if p.Y+1 < len(b.lines) {
			p = Point{0, p.Y + 1}
		} else {
			break
		}
	}
	for ; n < 0; n++ {
		if p.X > 0 {
			p.X--
		} else if p.Y > 0 {
			p = Point{b.LineLen(p.Y - 1), p.Y - 1}
		} else {
			break
		}
	}
	return p
}

func ByteIndexForChar(line string, col int) int {
	p := 0
	for i := 0; p < len(line) && i < col; i++ {
		p += NextCharBoundary(line[p:])
	}
	return p
}

// Insert inserts text at p and returns the point just after the inserted text.
func (b *Buffer) Insert(text string, p Point) Point {
	p = b.Clamp(p)
	line := b.lines[p.Y]
	insPoint := ByteIndexForChar(line, p.X)
	numNewLines := strings.Count(text, "\n")
	if numNewLines == 0 {
		b.lines[p.Y] = line[:insPoint] + text + line[insPoint:]
		return Point{p.X + charCount(text), p.Y}
	}
	carry := line[insPoint:]
	b.lines = append(b.lines, make([]string, numNewLines)...)
	copy(b.lines[p.Y+1+numNewLines:], b.lines[p.Y+1:])
	i := strings.IndexByte(text, '\n')
	b.lines[p.Y] = line[:insPoint] + text[:i+1]
	text = text[i+1:]
	for y := p.Y + 1; ; y++ {
		j := strings.IndexByte(text, '\n')
		if j == -1 {
			b.lines[y] = text + carry
			return Point{charCount(text), y}
		}
		b.lines[y] = text[:j+1]
		text = text[j+1:]
	}
}

// DeleteRange deletes all characters in the given range, including line breaks.
func (b *Buffer) DeleteRange(r Range) {
	r = b.clampRange(r)
	p := ByteIndexForChar(b.lines[r.Begin.Y], r.Begin.X)
	q := ByteIndexForChar(b.lines[r.End.Y], r.End.X)
	if r.Begin.Y == r.End.Y {
		line := b.lines[r.Begin.Y]
		b.lines[r.Begin.Y] = line[:p] + line[q:]
		return
	}
	b.lines[r.Begin.Y] = b.lines[r.Begin.Y][:p] + b.lines[r.End.Y][q:]
	// The line holding the end point was merged into the start line, so it goes too.
	copy(b.lines[r.Begin.Y+1:], b.lines[r.End.Y+1:])
	b.lines = b.lines[:len(b.lines)-(r.End.Y-r.Begin.Y)]
}

// CopyRange returns a copy of the characters in the given range.
func (b *Buffer) CopyRange(r Range) string {
	r = b.clampRange(r)
	p := ByteIndexForChar(b.lines[r.Begin.Y], r.Begin.X)
	q := ByteIndexForChar(b.lines[r.End.Y], r.End.X)
	if r.Begin.Y == r.End.Y {
		return b.lines[r.Begin.Y][p:q]
	}
	var sb strings.Builder
	sb.WriteString(b.lines[r.Begin.Y][p:])
	for i := r.Begin.Y + 1; i < r.End.Y; i++ {
		sb.WriteString(b.lines[i])
	}
	sb.WriteString(b.lines[r.End.Y][:q])
	return sb.String()
}

func (b *Buffer) clampRange(r Range) Range {
	r = r.Normalize()
	return Range{b.Clamp(r.Begin), b.Clamp(r.End)}
}
