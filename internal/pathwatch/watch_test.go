package pathwatch

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dpinela/softkey/internal/atomicwrite"
)

const timeout = 2 * time.Second

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	t.Run("OnCreate", func(t *testing.T) {
		name := filepath.Join(dir, "A")
		changes := w.addChan(t, name)
		create(t, name).Close()
		waitChange(t, changes, timeout)
	})
	t.Run("OnWrite", func(t *testing.T) {
		f := create(t, filepath.Join(dir, "B"))
		changes := w.addChan(t, f.Name())
		f.WriteString("Hello.")
		f.Close()
		waitChange(t, changes, timeout)
	})
	t.Run("OnDelete", func(t *testing.T) {
		f := create(t, filepath.Join(dir, "C"))
		f.Close()
		changes := w.addChan(t, f.Name())
		os.Remove(f.Name())
		waitChange(t, changes, timeout)
	})
	t.Run("OnAtomicReplace", func(t *testing.T) {
		name := filepath.Join(dir, "D")
		create(t, name).Close()
		changes := w.addChan(t, name)
		for i := 0; i < 2; i++ {
			if err := atomicwrite.Write(name, func(w io.Writer) error { _, err := io.WriteString(w, "text"); return err }); err != nil {
				t.Fatal(err)
			}
			waitChange(t, changes, timeout)
			drain(changes)
		}
	})
	t.Run("OtherFilesIgnored", func(t *testing.T) {
		changes := w.addChan(t, filepath.Join(dir, "E"))
		create(t, filepath.Join(dir, "F")).Close()
		select {
		case <-changes:
			t.Error("got a notification for a different file")
		case <-time.After(200 * time.Millisecond):
		}
	})
}

func TestAddMissingDirectory(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Add(filepath.Join(t.TempDir(), "missing", "file"), make(chan struct{}, 1)); err == nil {
		t.Error("watching a file in a missing directory succeeded")
	}
}

func (w *Watcher) addChan(t *testing.T, path string) chan struct{} {
	t.Helper()
	changes := make(chan struct{}, 1)
	if err := w.Add(path, changes); err != nil {
		t.Fatal(err)
	}
	return changes
}

func create(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}

func waitChange(t *testing.T, ch <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Error("failed to receive notification after", timeout)
	}
}
