// Package config defines configuration settings for softkey and functions for loading them from a file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dpinela/softkey/internal/event"
	"github.com/pkg/errors"
)

type Config struct {
	Clipboard ClipboardConfig `toml:"clipboard"`
	Keys      KeyConfig       `toml:"keys"`
	Log       LogConfig       `toml:"log"`
}

// Clipboard backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSystem = "system"
)

type ClipboardConfig struct {
	Backend      string `toml:"backend"`
	History      bool   `toml:"history"`
	HistoryLimit int    `toml:"history_limit"`
}

type KeyConfig struct {
	Copy             string `toml:"copy"`
	Cut              string `toml:"cut"`
	Paste            string `toml:"paste"`
	RepeatIntervalMS int    `toml:"repeat_interval_ms"` // Key presses closer than this count as a repeat
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// Default returns the configuration used where the file doesn't say otherwise.
func Default() *Config {
	return &Config{
		Clipboard: ClipboardConfig{Backend: BackendSystem, HistoryLimit: 100},
		Keys:      KeyConfig{Copy: "ctrl+c", Cut: "ctrl+x", Paste: "ctrl+v", RepeatIntervalMS: 400},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Path returns the location of the user's configuration file, according to the XDG base
// directory specification for configuration files.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "softkey", "config.toml"), nil
}

// Load finds and reads the primary configuration file for the current user.
// It always returns a usable *Config, even if it also returns a non-nil error.
// A missing file is not an error.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), errors.WithMessage(err, "error loading config file")
	}
	return LoadFile(p)
}

// LoadFile reads the configuration file at path. Like Load, it always returns a usable
// *Config; settings that fail validation are replaced by their defaults.
func LoadFile(path string) (c *Config, err error) {
	defer func() {
		if err != nil {
			err = errors.WithMessage(err, "error loading config file")
		}
	}()
	c = Default()
	if _, err = toml.DecodeFile(path, c); err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return Default(), err
	}
	return c, c.validate()
}

func (c *Config) validate() error {
	var problems []string
	d := Default()
	switch c.Clipboard.Backend {
	case BackendMemory, BackendFile, BackendSystem:
	default:
		problems = append(problems, fmt.Sprintf("unknown clipboard backend %q", c.Clipboard.Backend))
		c.Clipboard.Backend = d.Clipboard.Backend
	}
	if c.Clipboard.HistoryLimit < 0 {
		problems = append(problems, "history_limit must not be negative")
		c.Clipboard.HistoryLimit = d.Clipboard.HistoryLimit
	}
	if c.Keys.RepeatIntervalMS < 0 {
		problems = append(problems, "repeat_interval_ms must not be negative")
		c.Keys.RepeatIntervalMS = d.Keys.RepeatIntervalMS
	}
	if _, err := c.Keys.Bindings(); err != nil {
		problems = append(problems, err.Error())
		c.Keys = d.Keys
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
		c.Log.Level = d.Log.Level
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Log.Format))
		c.Log.Format = d.Log.Format
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// RepeatInterval returns the key repeat interval as a duration.
func (k KeyConfig) RepeatInterval() time.Duration {
	return time.Duration(k.RepeatIntervalMS) * time.Millisecond
}

// Keys the host handles itself, which can't be bound to an action.
var reservedKeys = map[string]string{
	"\x11": "quit",
	"\x01": "select all",
	"\r":   "enter",
	"\b":   "backspace",
	"\t":   "tab",
}

// Bindings maps the terminal input produced by each configured key to its action.
func (k KeyConfig) Bindings() (map[string]event.ActionKind, error) {
	m := make(map[string]event.ActionKind, 3)
	for _, b := range []struct {
		name, key string
		action    event.ActionKind
	}{{"copy", k.Copy, event.Copy}, {"cut", k.Cut, event.Cut}, {"paste", k.Paste, event.Paste}} {
		code, err := ParseKey(b.key)
		if err != nil {
			return nil, errors.WithMessage(err, b.name+" binding")
		}
		if use, ok := reservedKeys[code]; ok {
			return nil, errors.Errorf("%s binding: %s is reserved for %s", b.name, b.key, use)
		}
		if other, dup := m[code]; dup {
			return nil, errors.Errorf("%s and %s are both bound to %s", other, b.action, b.key)
		}
		m[code] = b.action
	}
	return m, nil
}

// ParseKey converts a key description such as "ctrl+c" or "f" into the input a terminal
// sends for it.
func ParseKey(s string) (string, error) {
	t := strings.TrimSpace(s)
	k := strings.ToLower(t)
	if rest := strings.TrimPrefix(k, "ctrl+"); rest != k {
		if len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
			return string(rune(rest[0] - 'a' + 1)), nil
		}
		return "", errors.Errorf("unsupported key %q", s)
	}
	if r := []rune(t); len(r) == 1 && r[0] >= ' ' && r[0] != 0x7f {
		return t, nil
	}
	return "", errors.Errorf("unsupported key %q", s)
}

// SlogLevel returns the configured level in the form log/slog uses.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, errors.Errorf("unknown log level %q", l.Level)
	}
	return lvl, nil
}
