package field

import (
	"testing"

	"github.com/dpinela/softkey/internal/buffer"
	"github.com/dpinela/softkey/internal/clipboard"
	"github.com/dpinela/softkey/internal/dispatch"
	"github.com/dpinela/softkey/internal/event"
)

type point = buffer.Point

func newTestField(t *testing.T, text string, sel buffer.Range) *Field {
	t.Helper()
	f := New()
	f.SetText(text)
	if sel != (buffer.Range{}) {
		f.Select(sel)
	}
	return f
}

func checkText(t *testing.T, f *Field, want string) {
	t.Helper()
	if got := f.Text(); got != want {
		t.Errorf("got text %q, want %q", got, want)
	}
}

func checkCursor(t *testing.T, f *Field, want point) {
	t.Helper()
	if got := f.Cursor(); got != want {
		t.Errorf("got cursor at %v, want %v", got, want)
	}
}

func TestSelectedText(t *testing.T) {
	f := newTestField(t, "some selected text here", buffer.Range{Begin: point{5, 0}, End: point{18, 0}})
	if s := f.SelectedText(); s != "selected text" {
		t.Errorf("got selection %q, want %q", s, "selected text")
	}
	f.ClearSelection()
	if s := f.SelectedText(); s != "" {
		t.Errorf("after clearing selection, got %q", s)
	}
}

func TestCommitReplacesSelection(t *testing.T) {
	f := newTestField(t, "some selected text here", buffer.Range{Begin: point{18, 0}, End: point{5, 0}})
	f.CommitText("", dispatch.CursorAfterInsert)
	checkText(t, f, "some  here")
	checkCursor(t, f, point{5, 0})
	if _, ok := f.Selection(); ok {
		t.Error("selection survived commit")
	}
}

var cursorHintTests = []struct {
	hint int
	want point
}{
	{hint: 1, want: point{6, 0}},
	{hint: 2, want: point{7, 0}},
	{hint: 100, want: point{8, 0}},
	{hint: 0, want: point{2, 0}},
	{hint: -1, want: point{1, 0}},
}

func TestCommitCursorHint(t *testing.T) {
	for _, tt := range cursorHintTests {
		f := newTestField(t, "abXY", buffer.Range{})
		f.Select(buffer.Range{Begin: point{2, 0}, End: point{2, 0}})
		f.CommitText("1234", tt.hint)
		checkText(t, f, "ab1234XY")
		checkCursor(t, f, tt.want)
	}
}

func TestCommitMultiline(t *testing.T) {
	f := newTestField(t, "ab", buffer.Range{})
	f.moveTo(point{1, 0}, false)
	f.CommitText("x\ny", dispatch.CursorAfterInsert)
	checkText(t, f, "ax\nyb")
	checkCursor(t, f, point{1, 1})
}

func TestBlurredFieldIgnoresInputMethod(t *testing.T) {
	f := newTestField(t, "selected text", buffer.Range{End: point{8, 0}})
	changes := 0
	f.OnChange(func() { changes++ })
	f.Blur()
	if s := f.SelectedText(); s != "" {
		t.Errorf("blurred field reported selection %q", s)
	}
	f.CommitText("pasted", dispatch.CursorAfterInsert)
	f.Backspace()
	checkText(t, f, "selected text")
	if changes != 0 {
		t.Errorf("blurred field reported %d changes", changes)
	}
	f.Focus()
	if s := f.SelectedText(); s != "selected" {
		t.Errorf("after refocusing, got selection %q", s)
	}
}

func TestBackspace(t *testing.T) {
	f := newTestField(t, "ab\ncd", buffer.Range{})
	f.Backspace()
	checkText(t, f, "ab\nc")
	f.moveTo(point{0, 1}, false)
	f.Backspace()
	checkText(t, f, "abc")
	checkCursor(t, f, point{2, 0})
	f.SelectAll()
	f.Backspace()
	checkText(t, f, "")
	f.Backspace()
	checkText(t, f, "")
}

func TestShiftSelection(t *testing.T) {
	f := newTestField(t, "hello world", buffer.Range{})
	for i := 0; i < 5; i++ {
		f.MoveLeft(true)
	}
	if s := f.SelectedText(); s != "world" {
		t.Errorf("got selection %q, want %q", s, "world")
	}
	f.MoveRight(false)
	if _, ok := f.Selection(); ok {
		t.Error("unextended move kept the selection")
	}
	f.MoveUp(true)
	checkCursor(t, f, point{0, 0})
	if s := f.SelectedText(); s != "hello w" {
		t.Errorf("got selection %q, want %q", s, "hello w")
	}
	f.MoveDown(false)
	checkCursor(t, f, point{11, 0})
}

// The dispatcher protocol, run against a real field and clipboard.
func TestClipboardRoundTrip(t *testing.T) {
	f := newTestField(t, "keep selected text", buffer.Range{Begin: point{5, 0}, End: point{18, 0}})
	clip := new(clipboard.Memory)
	d := dispatch.New(f, clip)

	d.OnEvent(event.NewAction(event.Copy))
	checkText(t, f, "keep selected text")

	d.OnEvent(event.NewAction(event.Cut))
	checkText(t, f, "keep ")
	checkCursor(t, f, point{5, 0})
	if e, err := clip.PrimaryClip(); err != nil || e.Text != "selected text" || e.Label != dispatch.LabelCut {
		t.Errorf("clipboard holds %+v, %v", e, err)
	}

	d.OnEvent(event.NewAction(event.Paste))
	d.OnEvent(event.NewAction(event.Paste))
	checkText(t, f, "keep selected textselected text")
	checkCursor(t, f, point{31, 0})
}
