package clipboard

import (
	sysclip "github.com/atotto/clipboard"
	"github.com/pkg/errors"
)

// System is the desktop clipboard. The desktop clipboard only carries text, so entries
// read from it have an empty Label.
//
// When no desktop clipboard is available (for example, on a headless machine without
// xclip, xsel or wl-clipboard) all operations go to the fallback store instead.
type System struct {
	fallback    Store
	unsupported bool
	readAll     func() (string, error)
	writeAll    func(string) error
}

// NewSystem returns the desktop clipboard, falling back to the given store where there
// is none.
func NewSystem(fallback Store) *System {
	return &System{
		fallback:    fallback,
		unsupported: sysclip.Unsupported,
		readAll:     sysclip.ReadAll,
		writeAll:    sysclip.WriteAll,
	}
}

// Native reports whether the desktop clipboard is in use, rather than the fallback.
func (s *System) Native() bool { return !s.unsupported }

func (s *System) HasPrimaryClip() bool {
	if s.unsupported {
		return s.fallback.HasPrimaryClip()
	}
	text, err := s.readAll()
	return err == nil && text != ""
}

func (s *System) PrimaryClip() (Entry, error) {
	if s.unsupported {
		return s.fallback.PrimaryClip()
	}
	text, err := s.readAll()
	if err != nil {
		return Entry{}, errors.WithMessage(err, "paste failed")
	}
	if text == "" {
		return Entry{}, ErrEmpty
	}
	return Entry{Text: text}, nil
}

func (s *System) SetPrimaryClip(e Entry) error {
	if s.unsupported {
		return s.fallback.SetPrimaryClip(e)
	}
	return errors.WithMessage(s.writeAll(e.Text), "copy failed")
}
