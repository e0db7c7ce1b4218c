// Package dispatch turns input events into operations on the focused text field and the
// clipboard.
package dispatch

import (
	"log/slog"

	"github.com/dpinela/softkey/internal/clipboard"
	"github.com/dpinela/softkey/internal/event"
	"github.com/pkg/errors"
)

// TextConnection is the focused editable field.
type TextConnection interface {
	// SelectedText returns the currently selected text, or "" if there is no selection.
	SelectedText() string
	// CommitText replaces the selection, or inserts at the cursor if there is none.
	// cursorHint selects where the cursor goes afterwards; see CursorAfterInsert.
	// It must be a no-op when no field is focused.
	CommitText(text string, cursorHint int)
}

// ClipboardStore is the clipboard the dispatcher copies into and pastes from.
type ClipboardStore interface {
	HasPrimaryClip() bool
	// PrimaryClip is only expected to succeed when HasPrimaryClip reports true.
	PrimaryClip() (clipboard.Entry, error)
	SetPrimaryClip(clipboard.Entry) error
}

// CursorAfterInsert is the cursor hint that places the cursor right after committed text.
const CursorAfterInsert = 1

// Labels given to clipboard entries.
const (
	LabelCopied = "copied text"
	LabelCut    = "cut text"
)

// Outcomes that are part of normal use rather than failures. Handle reports them so that
// callers can tell what happened; OnEvent swallows them.
var (
	ErrEmptySelection = errors.New("no text selected")
	ErrEmptyClipboard = errors.New("nothing to paste")
)

// A Dispatcher executes the clipboard protocol for each event it receives.
// It keeps no state between events: the selection and clipboard are read afresh every
// time.
type Dispatcher struct {
	conn     TextConnection
	clip     ClipboardStore
	fallback func(event.Event)
	log      *slog.Logger
}

// An Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithLogger makes the dispatcher report what it does to l.
func WithLogger(l *slog.Logger) Option { return func(d *Dispatcher) { d.log = l } }

// WithFallback sets the handler for events that aren't clipboard actions, such as
// characters and raw keys. Without one, those events are ignored.
func WithFallback(f func(event.Event)) Option { return func(d *Dispatcher) { d.fallback = f } }

// New returns a dispatcher that operates on conn and clip.
func New(conn TextConnection, clip ClipboardStore, opts ...Option) *Dispatcher {
	d := &Dispatcher{conn: conn, clip: clip, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnEvent handles ev. Nothing is reported back: empty selections and an empty clipboard
// are expected, and clipboard failures are logged.
func (d *Dispatcher) OnEvent(ev event.Event) {
	err := d.Handle(ev)
	switch errors.Cause(err) {
	case nil:
	case ErrEmptySelection, ErrEmptyClipboard:
		d.log.Debug("clipboard action skipped", "event", ev.String(), "reason", err)
	default:
		d.log.Warn("clipboard action failed", "event", ev.String(), "error", err)
	}
}

// Handle handles ev and reports why it did nothing, if that is the case.
func (d *Dispatcher) Handle(ev event.Event) error {
	a, ok := ev.Action()
	if !ok {
		d.passThrough(ev)
		return nil
	}
	switch a {
	case event.Copy:
		return d.copy()
	case event.Paste:
		return d.paste()
	case event.Cut:
		return d.cut()
	}
	d.passThrough(ev)
	return nil
}

func (d *Dispatcher) passThrough(ev event.Event) {
	if d.fallback != nil && ev.Kind() != event.None {
		d.fallback(ev)
	}
}

func (d *Dispatcher) copy() error {
	selected := d.conn.SelectedText()
	if selected == "" {
		return ErrEmptySelection
	}
	err := d.clip.SetPrimaryClip(clipboard.Entry{Label: LabelCopied, Text: selected})
	return errors.WithMessage(err, "copy")
}

func (d *Dispatcher) paste() error {
	if !d.clip.HasPrimaryClip() {
		return ErrEmptyClipboard
	}
	entry, err := d.clip.PrimaryClip()
	if err != nil {
		if errors.Cause(err) == clipboard.ErrEmpty {
			return ErrEmptyClipboard
		}
		return errors.WithMessage(err, "paste")
	}
	d.conn.CommitText(entry.Text, CursorAfterInsert)
	return nil
}

// cut deletes the selection only once the clipboard holds it.
func (d *Dispatcher) cut() error {
	selected := d.conn.SelectedText()
	if selected == "" {
		return ErrEmptySelection
	}
	if err := d.clip.SetPrimaryClip(clipboard.Entry{Label: LabelCut, Text: selected}); err != nil {
		return errors.WithMessage(err, "cut")
	}
	d.conn.CommitText("", CursorAfterInsert)
	return nil
}
