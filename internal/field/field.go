// Package field implements an editable text field that input methods commit text into.
package field

import "github.com/dpinela/softkey/internal/buffer"

// Field is a focused or unfocused text field with a cursor and an optional selection.
// While the field is not focused, it ignores every request coming from an input method.
//
// The zero value is not usable; call New.
type Field struct {
	buf       *buffer.Buffer
	cursor    buffer.Point
	anchor    buffer.Point // The other end of the selection, if selecting is set.
	selecting bool
	focused   bool
	onChange  func()
}

// New returns an empty, focused field.
func New() *Field { return &Field{buf: buffer.New(), focused: true} }

// OnChange registers f to be called whenever the field's text changes.
func (f *Field) OnChange(fn func()) { f.onChange = fn }

func (f *Field) changed() {
	if f.onChange != nil {
		f.onChange()
	}
}

// SetText replaces the content of the field and puts the cursor at its end.
func (f *Field) SetText(s string) {
	f.buf.SetString(s)
	f.cursor = f.buf.End()
	f.selecting = false
	f.changed()
}

// Text returns the content of the field.
func (f *Field) Text() string { return f.buf.String() }

// Buffer gives read access to the underlying text, for rendering.
func (f *Field) Buffer() *buffer.Buffer { return f.buf }

func (f *Field) Focus()        { f.focused = true }
func (f *Field) Blur()         { f.focused = false }
func (f *Field) Focused() bool { return f.focused }

// Cursor returns the position of the cursor.
func (f *Field) Cursor() buffer.Point { return f.cursor }

// Selection returns the selected range, in text order.
func (f *Field) Selection() (buffer.Range, bool) {
	if !f.selecting || f.anchor == f.cursor {
		return buffer.Range{}, false
	}
	return buffer.Range{Begin: f.anchor, End: f.cursor}.Normalize(), true
}

// Select selects r, leaving the cursor at r.End.
func (f *Field) Select(r buffer.Range) {
	f.anchor = f.buf.Clamp(r.Begin)
	f.cursor = f.buf.Clamp(r.End)
	f.selecting = true
}

// SelectAll selects the whole text.
func (f *Field) SelectAll() { f.Select(buffer.Range{End: f.buf.End()}) }

// ClearSelection drops the selection, leaving the text alone.
func (f *Field) ClearSelection() { f.selecting = false }

// SelectedText returns the selected text, or "" if nothing is selected or the field is
// not focused.
func (f *Field) SelectedText() string {
	if !f.focused {
		return ""
	}
	r, ok := f.Selection()
	if !ok {
		return ""
	}
	return f.buf.CopyRange(r)
}

// CommitText replaces the selection with text, or inserts it at the cursor if there is no
// selection. Afterwards, a positive cursorHint puts the cursor cursorHint-1 characters
// past the end of the inserted text; zero or a negative hint puts it -cursorHint
// characters before its start.
//
// It does nothing if the field is not focused.
func (f *Field) CommitText(text string, cursorHint int) {
	if !f.focused {
		return
	}
	start := f.cursor
	if r, ok := f.Selection(); ok {
		f.buf.DeleteRange(r)
		start = r.Begin
	}
	f.selecting = false
	end := f.buf.Insert(text, start)
	if cursorHint > 0 {
		f.cursor = f.buf.Advance(end, cursorHint-1)
	} else {
		f.cursor = f.buf.Advance(start, cursorHint)
	}
	f.changed()
}

// Backspace deletes the selection, or the character before the cursor.
func (f *Field) Backspace() {
	if !f.focused {
		return
	}
	r, ok := f.Selection()
	if !ok {
		r = buffer.Range{Begin: f.buf.Advance(f.cursor, -1), End: f.cursor}
	}
	f.selecting = false
	if r.Empty() {
		return
	}
	f.buf.DeleteRange(r)
	f.cursor = r.Begin
	f.changed()
}

// MoveLeft moves the cursor one character back. If extend is set, the selection grows or
// shrinks to follow the cursor; otherwise it is dropped.
func (f *Field) MoveLeft(extend bool) { f.moveTo(f.buf.Advance(f.cursor, -1), extend) }

// MoveRight is like MoveLeft, but forwards.
func (f *Field) MoveRight(extend bool) { f.moveTo(f.buf.Advance(f.cursor, 1), extend) }

// MoveUp moves the cursor to the same column on the previous line, or as close as possible.
func (f *Field) MoveUp(extend bool) {
	if f.cursor.Y == 0 {
		f.moveTo(buffer.Point{}, extend)
		return
	}
	f.moveTo(f.buf.Clamp(buffer.Point{X: f.cursor.X, Y: f.cursor.Y - 1}), extend)
}

// MoveDown moves the cursor to the same column on the next line, or as close as possible.
func (f *Field) MoveDown(extend bool) {
	if f.cursor.Y+1 >= f.buf.LineCount() {
		f.moveTo(f.buf.End(), extend)
		return
	}
	f.moveTo(f.buf.Clamp(buffer.Point{X: f.cursor.X, Y: f.cursor.Y + 1}), extend)
}

func (f *Field) moveTo(p buffer.Point, extend bool) {
	switch {
	case extend && !f.selecting:
		f.anchor = f.cursor
		f.selecting = true
	case !extend:
		f.selecting = false
	}
	f.cursor = p
}
