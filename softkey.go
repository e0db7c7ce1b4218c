package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dpinela/softkey/internal/clipboard"
	"github.com/dpinela/softkey/internal/config"
	"github.com/dpinela/softkey/internal/dispatch"
	"github.com/dpinela/softkey/internal/pathwatch"
	"github.com/dpinela/softkey/internal/termesc"

	"github.com/tajtiattila/basedir"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func main() { os.Exit(run()) }

func run() int {
	switch {
	case len(os.Args) == 2 && os.Args[1] == "history":
		return printHistory(os.Stdout)
	case len(os.Args) > 1:
		fmt.Fprintln(os.Stderr, "usage:", os.Args[0], "[history]")
		return 2
	}
	cfg, cfgErr := config.Load()
	logger, logFile, err := openLog(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: logging disabled:", err)
	} else {
		defer logFile.Close()
	}
	if cfgErr != nil {
		logger.Warn("using default settings", "error", cfgErr)
	}
	clip, err := openClipboard(cfg.Clipboard, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer clip.Close()
	bindings, _ := cfg.Keys.Bindings()

	fd := int(os.Stdin.Fd())
	w, h, err := term.GetSize(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error finding terminal size:", err)
		return 2
	}
	oldMode, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error entering raw mode:", err)
		return 2
	}
	defer term.Restore(fd, oldMode)

	app := newApplication(w, h, clip.store, bindings, cfg.Keys.RepeatInterval(), logger)
	var clipChanged chan struct{}
	if clip.watchPath != "" {
		if watcher, err := pathwatch.NewWatcher(); err != nil {
			logger.Warn("not watching clipboard file", "error", err)
		} else {
			defer watcher.Close()
			clipChanged = make(chan struct{}, 1)
			if err := watcher.Add(clip.watchPath, clipChanged); err != nil {
				logger.Warn("not watching clipboard file", "error", err)
			}
			app.watchErrors = watcher.Errors()
		}
	}
	resizeSignal := make(chan os.Signal, 1)
	signal.Notify(resizeSignal, unix.SIGWINCH)

	os.Stdout.WriteString(termesc.EnterAlternateScreen + termesc.EnableMouseReporting)
	defer os.Stdout.WriteString(termesc.DisableMouseReporting + termesc.ShowCursor + termesc.ExitAlternateScreen)
	logger.Info("softkey started", "backend", cfg.Clipboard.Backend, "history", cfg.Clipboard.History)
	if err := app.run(os.Stdin, resizeSignal, clipChanged, os.Stdout); err != nil {
		logger.Error("terminal failure", "error", err)
		return 1
	}
	return 0
}

// historyShown is how many entries "softkey history" prints.
const historyShown = 20

// printHistory writes the most recent clipboard history entries to w, newest first.
func printHistory(w io.Writer) int {
	dir, err := dataDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	h, err := clipboard.OpenHistory(filepath.Join(dir, "history.db"), new(clipboard.Memory), 0, slog.New(slog.DiscardHandler))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer h.Close()
	recs, err := h.Recent(context.Background(), historyShown)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := writeHistory(w, recs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func writeHistory(w io.Writer, recs []clipboard.Record) error {
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%q\n", r.Time.Format(time.DateTime), r.Label, r.Text); err != nil {
			return err
		}
	}
	return nil
}

func dataDir() (string, error) { return basedir.Data.EnsureDir("softkey", 0700) }

// openLog opens the log file in softkey's data directory. The terminal is in raw mode
// while softkey runs, so logging to it is not an option. If the file can't be opened,
// the returned logger discards everything.
func openLog(c config.LogConfig) (*slog.Logger, io.Closer, error) {
	dir, err := dataDir()
	if err != nil {
		return slog.New(slog.DiscardHandler), nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "softkey.log"), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return slog.New(slog.DiscardHandler), nil, err
	}
	return newLogger(c, f), f, nil
}

func newLogger(c config.LogConfig, w io.Writer) *slog.Logger {
	lvl, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: lvl}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type openedClipboard struct {
	store     dispatch.ClipboardStore
	watchPath string // The file to watch for changes from other processes, if any
	history   *clipboard.History
}

func (c *openedClipboard) Close() error {
	if c.history != nil {
		return c.history.Close()
	}
	return nil
}

// openClipboard builds the clipboard store selected by the configuration.
func openClipboard(c config.ClipboardConfig, log *slog.Logger) (*openedClipboard, error) {
	var oc openedClipboard
	switch c.Backend {
	case config.BackendMemory:
		oc.store = new(clipboard.Memory)
	case config.BackendFile:
		f, err := clipboard.DefaultFile()
		if err != nil {
			return nil, err
		}
		oc.store, oc.watchPath = f, f.Path()
	default:
		var fallback clipboard.Store = new(clipboard.Memory)
		if f, err := clipboard.DefaultFile(); err == nil {
			fallback = f
		}
		sys := clipboard.NewSystem(fallback)
		if !sys.Native() {
			log.Info("no desktop clipboard available, using fallback")
			if f, ok := fallback.(*clipboard.File); ok {
				oc.watchPath = f.Path()
			}
		}
		oc.store = sys
	}
	if c.History {
		dir, err := dataDir()
		if err != nil {
			return nil, err
		}
		h, err := clipboard.OpenHistory(filepath.Join(dir, "history.db"), oc.store, c.HistoryLimit, log)
		if err != nil {
			return nil, err
		}
		oc.store, oc.history = h, h
	}
	return &oc, nil
}
