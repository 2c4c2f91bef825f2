// Package prefs remembers scanning-station choices between runs: the colour
// theme and the shelf the operator was last scanning onto.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs is the on-disk preferences record.
type Prefs struct {
	Theme     string `toml:"theme"`
	LastShelf string `toml:"last_shelf"`
}

const (
	defaultPrefsPath = "~/.config/stockroom/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath is used when callers pass an empty path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load returns the stored preferences. A missing file is a first run and
// yields defaults with no error. An unreadable or malformed file also yields
// defaults, together with an error the caller may log; the station should
// start either way.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), err
	}

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return defaults(), nil
	case err != nil:
		return defaults(), fmt.Errorf("read prefs: %w", err)
	}

	p := defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return defaults(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	return p.normalized(), nil
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastShelf = strings.TrimSpace(p.LastShelf)
	return p
}

// Save stores p at path, creating parent directories.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// resolvePath expands a leading ~ and makes the path absolute.
func resolvePath(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		p = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(p, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve prefs path: %w", err)
		}
		p = filepath.Join(home, rest)
	}
	return filepath.Abs(p)
}
