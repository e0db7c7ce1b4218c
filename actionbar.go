package main

import (
	"github.com/dpinela/softkey/internal/event"
	"github.com/dpinela/softkey/internal/termesc"
	"github.com/mattn/go-runewidth"
)

var barButtons = []struct {
	label  string
	action event.ActionKind
}{
	{" Copy ", event.Copy},
	{" Cut ", event.Cut},
	{" Paste ", event.Paste},
}

// The action bar occupies one row of the screen; y is that row, 0-based.
type actionBar struct {
	y int
}

// hit returns the action whose button covers column x.
func (b actionBar) hit(x int) (event.ActionKind, bool) {
	start := 0
	for _, btn := range barButtons {
		end := start + runewidth.StringWidth(btn.label)
		if x >= start && x < end {
			return btn.action, true
		}
		start = end + 1
	}
	return 0, false
}

var (
	styleButton = termesc.SetGraphicAttributes(termesc.StyleInverted)
	styleReset  = termesc.SetGraphicAttributes(termesc.StyleNone)
)

// appendTo draws the bar, followed by status, in a row of the given width.
func (b actionBar) appendTo(buf []byte, status string, width int) []byte {
	used := 0
	for i, btn := range barButtons {
		if i > 0 {
			buf = append(buf, ' ')
			used++
		}
		buf = append(buf, styleButton...)
		buf = append(buf, btn.label...)
		buf = append(buf, styleReset...)
		used += runewidth.StringWidth(btn.label)
	}
	if status != "" && width > used+2 {
		buf = append(buf, "  "...)
		buf = append(buf, runewidth.Truncate(status, width-used-2, "…")...)
	}
	return buf
}
