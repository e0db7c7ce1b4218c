package main

import (
	"time"
	"unicode/utf8"

	"github.com/dpinela/softkey/internal/event"
	"github.com/dpinela/softkey/internal/streak"
	"github.com/dpinela/softkey/internal/termesc"
)

// A keyTranslator turns terminal input tokens into input events.
type keyTranslator struct {
	bindings map[string]event.ActionKind
	repeats  streak.Tracker
	bar      actionBar
}

func newKeyTranslator(bindings map[string]event.ActionKind, repeatInterval time.Duration) *keyTranslator {
	return &keyTranslator{bindings: bindings, repeats: streak.Tracker{Interval: repeatInterval}}
}

var rawKeys = map[string]event.Event{
	termesc.UpKey:         event.NewRawKey(event.KeyCodeDpadUp),
	termesc.DownKey:       event.NewRawKey(event.KeyCodeDpadDown),
	termesc.LeftKey:       event.NewRawKey(event.KeyCodeDpadLeft),
	termesc.RightKey:      event.NewRawKey(event.KeyCodeDpadRight),
	termesc.ShiftUpKey:    event.NewRawKey(event.KeyCodeDpadUp).WithMeta(event.MetaShift),
	termesc.ShiftDownKey:  event.NewRawKey(event.KeyCodeDpadDown).WithMeta(event.MetaShift),
	termesc.ShiftLeftKey:  event.NewRawKey(event.KeyCodeDpadLeft).WithMeta(event.MetaShift),
	termesc.ShiftRightKey: event.NewRawKey(event.KeyCodeDpadRight).WithMeta(event.MetaShift),
	"\x7f":                event.NewRawKey(event.KeyCodeDel),
	"\b":                  event.NewRawKey(event.KeyCodeDel),
	"\r":                  event.NewRawKey(event.KeyCodeEnter),
	"\x01":                event.NewRawKey(event.KeyCodeA).WithMeta(event.MetaCtrl),
}

// translate returns the event for a token, or the None event if the token means nothing
// to an input method.
func (kt *keyTranslator) translate(token string) event.Event {
	if ev, err := termesc.ParseMouseEvent(token); err == nil {
		// A mouse event resets the streak so that clicking doesn't count as holding a key.
		kt.repeats.Reset()
		if ev.Button != termesc.LeftButton || ev.Move || ev.Y != kt.bar.y {
			return event.Event{}
		}
		if a, ok := kt.bar.hit(ev.X); ok {
			return event.NewAction(a).At(ev.X, ev.Y)
		}
		return event.Event{}
	}
	ev := kt.keyEvent(token)
	if ev.Kind() != event.None && kt.repeats.Repeat(token) {
		ev = ev.Repeated()
	}
	return ev
}

func (kt *keyTranslator) keyEvent(token string) event.Event {
	if a, ok := kt.bindings[token]; ok {
		return event.NewAction(a)
	}
	if ev, ok := rawKeys[token]; ok {
		return ev
	}
	if r, n := utf8.DecodeRuneInString(token); n == len(token) && r != utf8.RuneError && (r >= ' ' || r == '\t') && r != 0x7f {
		return event.NewCharacter(r)
	}
	return event.Event{}
}
