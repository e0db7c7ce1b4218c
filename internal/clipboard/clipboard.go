// Package clipboard provides clipboard stores for copying and pasting text.
//
// Memory keeps the clipboard inside the process. File shares it across softkey instances
// running for the same user. System uses the desktop clipboard and thus works across all
// applications, where one is available. History records everything written through it.
package clipboard

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/dpinela/softkey/internal/atomicwrite"
	"github.com/pkg/errors"

	"github.com/tajtiattila/basedir"
)

// Entry is the content of a clipboard: some text and a label describing it.
type Entry struct {
	Label string `toml:"label"`
	Text  string `toml:"text"`
}

// ErrEmpty is returned when reading a clipboard that holds nothing.
var ErrEmpty = errors.New("clipboard is empty")

// Store is the set of operations every clipboard in this package supports.
type Store interface {
	HasPrimaryClip() bool
	PrimaryClip() (Entry, error)
	SetPrimaryClip(Entry) error
}

// File is a clipboard kept in a file, so that it is shared by every process using the
// same path.
type File struct {
	path string
}

// NewFile returns a clipboard stored at path. The file is created on the first write.
func NewFile(path string) *File { return &File{path: path} }

// DefaultFile returns the clipboard file shared by all softkey instances of the current
// user, according to the XDG base directory specification for data files.
func DefaultFile() (*File, error) {
	dir, err := basedir.Data.EnsureDir("softkey", 0700)
	if err != nil {
		return nil, errors.WithMessage(err, "locating clipboard file")
	}
	return NewFile(filepath.Join(dir, "clipboard.toml")), nil
}

// Path returns the location of the clipboard file.
func (f *File) Path() string { return f.path }

func (f *File) HasPrimaryClip() bool {
	_, err := f.PrimaryClip()
	return err == nil
}

func (f *File) PrimaryClip() (Entry, error) {
	var e Entry
	if _, err := toml.DecodeFile(f.path, &e); err != nil {
		if os.IsNotExist(err) {
			return Entry{}, ErrEmpty
		}
		return Entry{}, errors.WithMessage(err, "paste failed")
	}
	return e, nil
}

func (f *File) SetPrimaryClip(e Entry) error {
	err := atomicwrite.Write(f.path, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(e)
	})
	return errors.WithMessage(err, "copy failed")
}

// Clear removes the clipboard file.
func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
