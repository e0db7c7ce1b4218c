// Package event defines the input events delivered to the input method core.
//
// An Event is a small immutable value. Physical keys, software keys and action bar
// clicks all produce the same shape, so the code consuming them doesn't need to care
// where they came from.
package event

import "fmt"

// Sentinels used by NewSoftwareKeypress to mark a field as unset.
const (
	NotACodePoint rune = -1
	NotAKeyCode        = 0
)

// Key codes for named actions. These match the platform key code table.
const (
	KeyCodeCut   = 277
	KeyCodeCopy  = 278
	KeyCodePaste = 279
)

// Key codes for raw keys the host understands.
const (
	KeyCodeA         = 29
	KeyCodeDpadUp    = 19
	KeyCodeDpadDown  = 20
	KeyCodeDpadLeft  = 21
	KeyCodeDpadRight = 22
	KeyCodeEnter     = 66
	KeyCodeDel       = 67
)

// Kind discriminates the variants of Event.
type Kind uint8

const (
	None      Kind = iota // The zero Event; carries nothing.
	Character             // A literal character.
	Action                // A named action such as copy or paste.
	RawKey                // A key with no character and no named action.
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Character:
		return "character"
	case Action:
		return "action"
	case RawKey:
		return "raw key"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ActionKind identifies a named action.
type ActionKind uint8

const (
	Copy ActionKind = iota + 1
	Paste
	Cut
)

func (a ActionKind) String() string {
	switch a {
	case Copy:
		return "copy"
	case Paste:
		return "paste"
	case Cut:
		return "cut"
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(a))
}

// KeyCode returns the key code that names a.
func (a ActionKind) KeyCode() int {
	switch a {
	case Copy:
		return KeyCodeCopy
	case Paste:
		return KeyCodePaste
	case Cut:
		return KeyCodeCut
	}
	return NotAKeyCode
}

// ActionForKeyCode returns the action named by a key code, if there is one.
func ActionForKeyCode(code int) (ActionKind, bool) {
	switch code {
	case KeyCodeCopy:
		return Copy, true
	case KeyCodePaste:
		return Paste, true
	case KeyCodeCut:
		return Cut, true
	}
	return 0, false
}

// Meta is the modifier state that accompanied a key.
type Meta uint8

const (
	MetaShift Meta = 1 << iota
	MetaCtrl
)

// Event is one discrete input action.
// Only the payload matching Kind is meaningful; the accessors enforce that.
type Event struct {
	kind      Kind
	codePoint rune
	action    ActionKind
	keyCode   int
	meta      Meta

	X, Y   int  // Where the event originated, if it came from a pointer.
	Repeat bool // True if the event was generated by holding a key down.
}

// NewCharacter returns an event for the literal character r.
func NewCharacter(r rune) Event { return Event{kind: Character, codePoint: r} }

// NewAction returns an event for the named action a.
func NewAction(a ActionKind) Event { return Event{kind: Action, action: a, keyCode: a.KeyCode()} }

// NewRawKey returns an event for a key that produces neither a character nor a named action.
func NewRawKey(code int) Event { return Event{kind: RawKey, keyCode: code} }

// NewSoftwareKeypress builds an event from the sentinel-based field convention used by
// keyboard layouts: exactly one of codePoint and keyCode is expected to be set, with the
// other holding NotACodePoint or NotAKeyCode.
//
// A set key code takes precedence over a code point. If neither is set the result is the
// None event. It never fails.
func NewSoftwareKeypress(codePoint rune, keyCode int, x, y int, isKeyRepeat bool) Event {
	var ev Event
	switch {
	case keyCode != NotAKeyCode:
		if a, ok := ActionForKeyCode(keyCode); ok {
			ev = NewAction(a)
		} else {
			ev = NewRawKey(keyCode)
		}
	case codePoint != NotACodePoint:
		ev = NewCharacter(codePoint)
	}
	ev.X, ev.Y = x, y
	ev.Repeat = isKeyRepeat
	return ev
}

// Kind returns which variant e is.
func (e Event) Kind() Kind { return e.kind }

// CodePoint returns the character carried by a Character event.
func (e Event) CodePoint() (rune, bool) {
	if e.kind != Character {
		return NotACodePoint, false
	}
	return e.codePoint, true
}

// Action returns the named action carried by an Action event.
func (e Event) Action() (ActionKind, bool) {
	if e.kind != Action {
		return 0, false
	}
	return e.action, true
}

// KeyCode returns the key code of an Action or RawKey event.
func (e Event) KeyCode() (int, bool) {
	if e.kind != Action && e.kind != RawKey {
		return NotAKeyCode, false
	}
	return e.keyCode, true
}

// Meta returns the modifier state recorded with the event.
func (e Event) Meta() Meta { return e.meta }

// At returns a copy of e originating at (x, y).
func (e Event) At(x, y int) Event {
	e.X, e.Y = x, y
	return e
}

// Repeated returns a copy of e marked as a key repeat.
func (e Event) Repeated() Event {
	e.Repeat = true
	return e
}

// WithMeta returns a copy of e carrying the modifier state m.
func (e Event) WithMeta(m Meta) Event {
	e.meta = m
	return e
}

func (e Event) String() string {
	switch e.kind {
	case Character:
		return fmt.Sprintf("character %q", e.codePoint)
	case Action:
		return "action " + e.action.String()
	case RawKey:
		return fmt.Sprintf("raw key %d", e.keyCode)
	}
	return "none"
}
