// Package prefs stores per-user display preferences: the browser theme and the
// template each record type is rendered with.
//
// Preferences live in ~/.config/lamplight/prefs.toml:
//
//	theme = "Kanagawa"
//
//	[templates]
//	PeopleSummary = "{surname}, {first_name}"
//	WorkSummary = "{start_date}: {title}"
//
// Reading for display is forgiving: a missing or unreadable file yields the
// defaults. Editing is strict: Update refuses to rewrite a file it cannot
// parse, so a hand-edited file with a typo is never replaced by defaults.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
	// Templates maps a record type name such as "WorkSummary" to the
	// template its records are rendered with.
	Templates map[string]string `toml:"templates,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/lamplight/prefs.toml"
	defaultTheme     = "Nightfox"
)

// ErrInvalidType is returned when a template is keyed by a blank or
// whitespace-containing record type name.
var ErrInvalidType = errors.New("record type must be a single word")

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Template returns the template for recordType, or "" to render every field.
func (p Prefs) Template(recordType string) string {
	return strings.TrimSpace(p.Templates[recordType])
}

// SetTemplate stores tmpl for recordType. A blank tmpl removes the entry.
func (p *Prefs) SetTemplate(recordType, tmpl string) error {
	recordType = strings.TrimSpace(recordType)
	if recordType == "" || strings.ContainsAny(recordType, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidType, recordType)
	}
	tmpl = strings.TrimSpace(tmpl)
	if tmpl == "" {
		delete(p.Templates, recordType)
		return nil
	}
	if p.Templates == nil {
		p.Templates = make(map[string]string)
	}
	p.Templates[recordType] = tmpl
	return nil
}

// TemplateTypes lists the record types with a stored template, sorted.
func (p Prefs) TemplateTypes() []string {
	names := make([]string, 0, len(p.Templates))
	for name, tmpl := range p.Templates {
		if strings.TrimSpace(tmpl) != "" {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Load reads preferences from path, falling back to defaults when the file
// is missing or cannot be parsed.
func Load(path string) (Prefs, error) {
	p, err := read(path)
	if err != nil {
		return defaults(), nil
	}
	return p, nil
}

// Update applies fn to the preferences stored at path and writes the result.
// A missing file starts from the defaults; a malformed one is left untouched.
func Update(path string, fn func(*Prefs) error) (Prefs, error) {
	p, err := read(path)
	if err != nil {
		return Prefs{}, err
	}
	if err := fn(&p); err != nil {
		return Prefs{}, err
	}
	if err := Save(path, p); err != nil {
		return Prefs{}, err
	}
	return p, nil
}

// read loads path strictly: only a missing file is not an error.
func read(path string) (Prefs, error) {
	p := defaults()
	resolved, err := resolvePath(path)
	if err != nil {
		return p, fmt.Errorf("resolve path: %w", err)
	}
	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read prefs: %w", err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return defaults(), fmt.Errorf("parse %s: %w", resolved, err)
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p, nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
