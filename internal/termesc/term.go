// Package termesc abstracts terminal ANSI escape codes.
package termesc

import (
	"fmt"
	"strconv"
)

const csi = "\x1B["

const (
	ClearScreen          = csi + "2J"     // Clears the entire visible area of the console
	ClearLine            = csi + "2K"     // Clears the line the cursor is on
	ClearScreenForward   = csi + "J"      // Clears from the cursor to the end of the screen
	EnterAlternateScreen = csi + "?1049h" // Switches to the alternate screen
	ExitAlternateScreen  = csi + "?1049l" // Switches from the alternate screen to the regular one

	ShowCursor = csi + "?25h"
	HideCursor = csi + "?25l"

	// Mouse reporting, in both the xterm and urxvt formats understood by ParseMouseEvent.
	EnableMouseReporting  = csi + "?1000h" + csi + "?1015h"
	DisableMouseReporting = csi + "?1015l" + csi + "?1000l"

	UpKey         = csi + "A"
	DownKey       = csi + "B"
	RightKey      = csi + "C"
	LeftKey       = csi + "D"
	ShiftUpKey    = csi + "1;2A"
	ShiftDownKey  = csi + "1;2B"
	ShiftRightKey = csi + "1;2C"
	ShiftLeftKey  = csi + "1;2D"
)

// SetCursorPos returns a code that sets the cursor's position to (y, x).
// Coordinates are 1-based.
func SetCursorPos(y, x int) string { return fmt.Sprintf(csi+"%d;%dH", y, x) }

// SetTitle returns a code that sets the terminal window's title.
func SetTitle(title string) string { return "\x1B]0;" + title + "\a" }

// GraphicFlag is a Select Graphic Rendition attribute.
type GraphicFlag int

const (
	StyleNone        GraphicFlag = 0
	StyleBold        GraphicFlag = 1
	StyleInverted    GraphicFlag = 7
	StyleNotInverted GraphicFlag = 27
)

// SetGraphicAttributes returns a code that applies the given attributes to the text
// written after it.
func SetGraphicAttributes(attrs ...GraphicFlag) string {
	b := make([]byte, len(csi), 16)
	copy(b, csi)
	for i, attr := range attrs {
		if i > 0 {
			b = append(b, ';')
		}
		b = strconv.AppendInt(b, int64(attr), 10)
	}
	return string(append(b, 'm'))
}
