package main

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dpinela/softkey/internal/clipboard"
	"github.com/dpinela/softkey/internal/dispatch"
	"github.com/dpinela/softkey/internal/event"
	"github.com/dpinela/softkey/internal/field"
	"github.com/dpinela/softkey/internal/termesc"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

type application struct {
	field      *field.Field
	clip       *ownWrites
	dispatcher *dispatch.Dispatcher
	keys       *keyTranslator
	log        *slog.Logger

	watchErrors <-chan error // Errors from the clipboard file watcher, if there is one

	width, height int
	topLine       int    // The first line of the field shown on screen
	status        string // Shown next to the action bar
	cursorVisible bool
	drawBuffer    []byte
}

func newApplication(width, height int, clip dispatch.ClipboardStore, bindings map[string]event.ActionKind, repeatInterval time.Duration, log *slog.Logger) *application {
	app := &application{
		field: field.New(),
		clip:  &ownWrites{ClipboardStore: clip},
		keys:  newKeyTranslator(bindings, repeatInterval),
		log:   log,
	}
	app.dispatcher = dispatch.New(app.field, app.clip, dispatch.WithLogger(log), dispatch.WithFallback(app.editField))
	app.resize(height, width)
	return app
}

func (app *application) run(in io.Reader, resizeSignal <-chan os.Signal, clipChanged <-chan struct{}, out io.Writer) error {
	inputCh := make(chan string, 32)
	go func() {
		con := termesc.NewConsoleReader(in)
		for {
			if s, err := con.ReadToken(); err != nil {
				close(inputCh)
				return
			} else {
				inputCh <- s
			}
		}
	}()
	for {
		if err := app.redraw(out); err != nil {
			return err
		}
		select {
		case c, ok := <-inputCh:
			if !ok {
				return nil
			}
			if c == "\x11" {
				return nil
			}
			app.handleToken(c)
		case <-resizeSignal:
			// This can only fail if our terminal turns into a non-terminal
			// during execution, which is highly unlikely.
			if w, h, err := term.GetSize(0); err != nil {
				return err
			} else {
				app.resize(h, w)
			}
		case <-clipChanged:
			if app.clip.changedElsewhere() {
				app.status = "clipboard changed"
			}
		case err := <-app.watchErrors:
			app.log.Warn("watching clipboard file", "error", err)
		}
	}
}

func (app *application) handleToken(token string) {
	ev := app.keys.translate(token)
	if ev.Kind() == event.None {
		return
	}
	app.status = ""
	err := app.dispatcher.Handle(ev)
	switch errors.Cause(err) {
	case nil:
	case dispatch.ErrEmptySelection, dispatch.ErrEmptyClipboard:
		app.status = err.Error()
	default:
		app.log.Warn("clipboard action failed", "event", ev.String(), "error", err)
		app.status = err.Error()
	}
}

// editField applies the events the dispatcher passes through to the field.
func (app *application) editField(ev event.Event) {
	if r, ok := ev.CodePoint(); ok {
		app.field.CommitText(string(r), dispatch.CursorAfterInsert)
		return
	}
	code, ok := ev.KeyCode()
	if !ok {
		return
	}
	extend := ev.Meta()&event.MetaShift != 0
	switch code {
	case event.KeyCodeDpadLeft:
		app.field.MoveLeft(extend)
	case event.KeyCodeDpadRight:
		app.field.MoveRight(extend)
	case event.KeyCodeDpadUp:
		app.field.MoveUp(extend)
	case event.KeyCodeDpadDown:
		app.field.MoveDown(extend)
	case event.KeyCodeDel:
		app.field.Backspace()
	case event.KeyCodeEnter:
		app.field.CommitText("\n", dispatch.CursorAfterInsert)
	case event.KeyCodeA:
		if ev.Meta()&event.MetaCtrl != 0 {
			app.field.SelectAll()
		}
	}
}

func (app *application) resize(height, width int) {
	app.width = width
	app.height = height
	app.keys.bar.y = height - 1
}

// fieldHeight is the number of rows available to the field, above the action bar.
func (app *application) fieldHeight() int { return max(app.height-1, 0) }

// ownWrites remembers the last entry softkey stored, so that notifications caused by its
// own writes to a shared clipboard can be told apart from changes made by other processes.
type ownWrites struct {
	dispatch.ClipboardStore
	last  clipboard.Entry
	wrote bool
}

func (o *ownWrites) SetPrimaryClip(e clipboard.Entry) error {
	if err := o.ClipboardStore.SetPrimaryClip(e); err != nil {
		return err
	}
	o.last, o.wrote = e, true
	return nil
}

// changedElsewhere reports whether the clipboard holds something other than what softkey
// last wrote to it.
func (o *ownWrites) changedElsewhere() bool {
	e, err := o.ClipboardStore.PrimaryClip()
	return err != nil || !o.wrote || e != o.last
}
