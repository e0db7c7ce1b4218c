package main

import (
	"io"
	"strings"

	"github.com/dpinela/softkey/internal/buffer"
	"github.com/dpinela/softkey/internal/termesc"

	"github.com/mattn/go-runewidth"
)

const tabWidth = 4

// Pre-compute the SGR escape sequences used in formatLine to avoid the expense of recomputing them repeatedly.
var (
	styleInverted    = termesc.SetGraphicAttributes(termesc.StyleInverted)
	styleNotInverted = termesc.SetGraphicAttributes(termesc.StyleNotInverted)
)

// redraw renders the field, the action bar and the cursor onto a console.
func (app *application) redraw(console io.Writer) error {
	app.scrollToCursor()
	buf := append(app.drawBuffer[:0], termesc.SetCursorPos(1, 1)+termesc.ClearScreenForward...)
	lines := app.field.Buffer().SliceLines(app.topLine, app.topLine+app.fieldHeight())
	sel, selected := app.field.Selection()
	for i, line := range lines {
		tf := textFormatter{y: app.topLine + i, width: app.width, selection: sel, selected: selected}
		buf = tf.formatLine(buf, line)
		buf = append(buf, '\r', '\n')
	}
	if app.height > 0 {
		buf = append(buf, termesc.SetCursorPos(app.height, 1)...)
		buf = app.keys.bar.appendTo(buf, app.status, app.width)
	}
	nowVisible := app.cursorInViewport()
	if nowVisible {
		if !app.cursorVisible {
			buf = append(buf, termesc.ShowCursor...)
		}
		c := app.field.Cursor()
		x := lineWidth(app.field.Buffer().Line(c.Y), c.X)
		buf = append(buf, termesc.SetCursorPos(c.Y-app.topLine+1, x+1)...)
	} else if app.cursorVisible {
		buf = append(buf, termesc.HideCursor...)
	}
	app.cursorVisible = nowVisible
	app.drawBuffer = buf
	_, err := console.Write(buf)
	return err
}

func (app *application) scrollToCursor() {
	y, h := app.field.Cursor().Y, app.fieldHeight()
	switch {
	case y < app.topLine:
		app.topLine = y
	case h > 0 && y >= app.topLine+h:
		app.topLine = y - h + 1
	}
}

func (app *application) cursorInViewport() bool {
	c := app.field.Cursor()
	if !app.field.Focused() || c.Y < app.topLine || c.Y >= app.topLine+app.fieldHeight() {
		return false
	}
	return lineWidth(app.field.Buffer().Line(c.Y), c.X) < app.width
}

type textFormatter struct {
	y         int
	width     int
	selection buffer.Range
	selected  bool
}

func (tf *textFormatter) inSelection(p buffer.Point) bool {
	return tf.selected && !p.Less(tf.selection.Begin) && p.Less(tf.selection.End)
}

// formatLine appends line y of the field to buf, cut off at the screen width.
func (tf *textFormatter) formatLine(buf []byte, line string) []byte {
	line = strings.TrimSuffix(line, "\n")
	tp := buffer.Point{Y: tf.y}
	inverted := tf.inSelection(tp)
	if inverted {
		buf = append(buf, styleInverted...)
	}
	col := 0
	for len(line) > 0 {
		n := buffer.NextCharBoundary(line)
		if now := tf.inSelection(tp); now != inverted {
			if now {
				buf = append(buf, styleInverted...)
			} else {
				buf = append(buf, styleNotInverted...)
			}
			inverted = now
		}
		w := charWidth(line[:n])
		if col+w > tf.width {
			break
		}
		switch {
		case line[:n] == "\t":
			buf = appendSpaces(buf, tabWidth)
		case n == 1 && line[0] < ' ':
			buf = append(buf, string('␀'+rune(line[0]))...)
		case line[:n] == "\x7f":
			buf = append(buf, "␡"...)
		default:
			buf = append(buf, line[:n]...)
		}
		col += w
		line = line[n:]
		tp.X++
	}
	// Show a selected line break as one inverted space.
	if len(line) == 0 && tf.inSelection(tp) && col < tf.width {
		if !inverted {
			buf = append(buf, styleInverted...)
			inverted = true
		}
		buf = append(buf, ' ')
	}
	if inverted {
		buf = append(buf, styleNotInverted...)
	}
	return buf
}

func charWidth(c string) int {
	switch {
	case c == "\t":
		return tabWidth
	case len(c) == 1 && (c[0] < ' ' || c[0] == 0x7f):
		return 1
	}
	return runewidth.StringWidth(c)
}

// lineWidth returns the display width of the first n characters of line.
func lineWidth(line string, n int) int {
	w := 0
	for i := 0; i < n && len(line) > 0; i++ {
		k := buffer.NextCharBoundary(line)
		w += charWidth(line[:k])
		line = line[k:]
	}
	return w
}

func appendSpaces(b []byte, n int) []byte {
	for i := 0; i < n; i++ {
		b = append(b, ' ')
	}
	return b
}
