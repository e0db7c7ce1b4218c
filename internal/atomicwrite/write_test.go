package atomicwrite

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

var testContent = []byte("label = \"copied text\"\ntext = \"sel€cted\"\n")

func writeContent(w io.Writer) error { _, err := w.Write(testContent); return err }

func TestWrite(t *testing.T) {
	name := filepath.Join(t.TempDir(), "clipboard.toml")
	if err := Write(name, writeContent); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, testContent) {
		t.Errorf("read back written data: got %q, want %q", data, testContent)
	}
	info, err := os.Stat(name)
	if err != nil {
		t.Fatal(err)
	}
	if perms := info.Mode().Perm(); perms != defaultPerms {
		t.Errorf("after Write, got permissions %v, want %v", perms, defaultPerms)
	}
}

func TestPermissionsPreserved(t *testing.T) {
	name := filepath.Join(t.TempDir(), "clipboard.toml")
	if err := os.WriteFile(name, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Write(name, writeContent); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil {
		t.Fatal(err)
	}
	if perms := info.Mode().Perm(); perms != 0644 {
		t.Errorf("after Write, got permissions %v, want %v", perms, os.FileMode(0644))
	}
}

func TestFailedWriteKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "clipboard.toml")
	if err := os.WriteFile(name, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	err := Write(name, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	if errors.Cause(err) != boom {
		t.Errorf("got error %v, want one caused by %v", err, boom)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old" {
		t.Errorf("after failed write, file contains %q, want %q", data, "old")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %d directory entries, want 1", len(entries))
	}
}
