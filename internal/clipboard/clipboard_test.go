package clipboard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEntry = Entry{Label: "copied text", Text: "Somâ‚¬ copypasta\nwith \"quotes\" and a second line"}

// testStore runs the behaviour every store must share.
func testStore(t *testing.T, s Store) {
	t.Helper()
	assert.False(t, s.HasPrimaryClip(), "fresh store has a primary clip")
	_, err := s.PrimaryClip()
	assert.Equal(t, ErrEmpty, errors.Cause(err))

	require.NoError(t, s.SetPrimaryClip(testEntry))
	assert.True(t, s.HasPrimaryClip())
	got, err := s.PrimaryClip()
	require.NoError(t, err)
	assert.Equal(t, testEntry, got)

	next := Entry{Label: "cut text", Text: "replacement"}
	require.NoError(t, s.SetPrimaryClip(next))
	got, err = s.PrimaryClip()
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestMemory(t *testing.T) {
	m := new(Memory)
	testStore(t, m)
	m.Clear()
	assert.False(t, m.HasPrimaryClip())
}

func TestFile(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "clipboard.toml"))
	testStore(t, f)
	require.NoError(t, f.Clear())
	assert.False(t, f.HasPrimaryClip())
	assert.NoError(t, f.Clear(), "clearing a missing clipboard file")
}

func TestFileSharedBetweenInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipboard.toml")
	require.NoError(t, NewFile(path).SetPrimaryClip(testEntry))
	got, err := NewFile(path).PrimaryClip()
	require.NoError(t, err)
	assert.Equal(t, testEntry, got)
}

func TestFileWriteFailure(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "missing-dir", "clipboard.toml"))
	assert.Error(t, f.SetPrimaryClip(testEntry))
	assert.False(t, f.HasPrimaryClip())
}

type fakeDesktop struct {
	text     string
	readErr  error
	writeErr error
}

func (d *fakeDesktop) read() (string, error) { return d.text, d.readErr }

func (d *fakeDesktop) write(s string) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.text = s
	return nil
}

func newTestSystem(d *fakeDesktop, unsupported bool, fallback Store) *System {
	return &System{fallback: fallback, unsupported: unsupported, readAll: d.read, writeAll: d.write}
}

func TestSystemDropsLabels(t *testing.T) {
	d := new(fakeDesktop)
	s := newTestSystem(d, false, new(Memory))
	assert.True(t, s.Native())
	assert.False(t, s.HasPrimaryClip())
	require.NoError(t, s.SetPrimaryClip(testEntry))
	assert.Equal(t, testEntry.Text, d.text)
	got, err := s.PrimaryClip()
	require.NoError(t, err)
	assert.Equal(t, Entry{Text: testEntry.Text}, got)
}

func TestSystemErrors(t *testing.T) {
	d := &fakeDesktop{readErr: errors.New("no display"), writeErr: errors.New("no display")}
	s := newTestSystem(d, false, new(Memory))
	assert.False(t, s.HasPrimaryClip())
	_, err := s.PrimaryClip()
	assert.Error(t, err)
	assert.Error(t, s.SetPrimaryClip(testEntry))
}

func TestSystemFallback(t *testing.T) {
	d := &fakeDesktop{text: "never read"}
	fallback := new(Memory)
	s := newTestSystem(d, true, fallback)
	assert.False(t, s.Native())
	testStore(t, s)
	assert.Equal(t, "never read", d.text)
	got, err := fallback.PrimaryClip()
	require.NoError(t, err)
	assert.Equal(t, "replacement", got.Text)
}

func TestHistory(t *testing.T) {
	mem := new(Memory)
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"), mem, 2, nil)
	require.NoError(t, err)
	defer h.Close()

	testStore(t, h)
	require.NoError(t, h.SetPrimaryClip(Entry{Label: "copied text", Text: "third"}))

	recs, err := h.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 2, "history not trimmed to its limit")
	assert.Equal(t, Entry{Label: "copied text", Text: "third"}, recs[0].Entry)
	assert.Equal(t, Entry{Label: "cut text", Text: "replacement"}, recs[1].Entry)
	assert.False(t, recs[0].Time.Before(recs[1].Time))

	got, err := mem.PrimaryClip()
	require.NoError(t, err)
	assert.Equal(t, "third", got.Text, "history didn't write through")
}

type failingStore struct{ Memory }

func (*failingStore) SetPrimaryClip(Entry) error { return errors.New("clipboard unavailable") }

func TestHistorySkipsFailedWrites(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"), new(failingStore), 0, nil)
	require.NoError(t, err)
	defer h.Close()

	assert.Error(t, h.SetPrimaryClip(testEntry))
	recs, err := h.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestHistoryPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	h, err := OpenHistory(path, new(Memory), 0, nil)
	require.NoError(t, err)
	require.NoError(t, h.SetPrimaryClip(testEntry))
	require.NoError(t, h.Close())

	h, err = OpenHistory(path, new(Memory), 0, nil)
	require.NoError(t, err)
	defer h.Close()
	recs, err := h.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, testEntry, recs[0].Entry)
}
