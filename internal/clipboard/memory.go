package clipboard

import "sync"

// Memory is a clipboard that lives only as long as the process.
// The zero value is an empty clipboard ready to use.
type Memory struct {
	mu    sync.Mutex
	entry *Entry
}

func (m *Memory) HasPrimaryClip() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entry != nil
}

func (m *Memory) PrimaryClip() (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entry == nil {
		return Entry{}, ErrEmpty
	}
	return *m.entry, nil
}

func (m *Memory) SetPrimaryClip(e Entry) error {
	m.mu.Lock()
	m.entry = &e
	m.mu.Unlock()
	return nil
}

// Clear empties the clipboard.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entry = nil
	m.mu.Unlock()
}
