// Package persona resolves a persona identifier to its document text (spec §3
// "Persona Document"). Personas are declared in a personas.yaml manifest
// (name -> inline text or file path) rather than scanned ad hoc from a bare
// directory of .md files, the way the pack's small manifests are universally
// YAML-backed (gopkg.in/yaml.v3, see SPEC_FULL.md "Domain Stack").
package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFallback is the single-line persona text used when an identifier
// cannot be resolved (spec §3 "defaults to a single-line fallback if
// missing").
const DefaultFallback = "You are a helpful AI assistant."

// entry is one persona manifest row.
type entry struct {
	Text string `yaml:"text"`
	File string `yaml:"file"`
}

// manifest is the parsed shape of personas.yaml: persona name -> entry.
type manifest map[string]entry

// Directory resolves persona identifiers against a manifest file plus the
// directory it lives in (for File-referenced entries).
type Directory struct {
	dir string
	m   manifest
}

// Load reads personas.yaml from dir. A missing manifest is not an error — it
// just means every lookup falls back to DefaultFallback, matching the
// original's "soul_path.exists() else fallback" behavior.
func Load(dir string) (*Directory, error) {
	d := &Directory{dir: dir, m: manifest{}}
	path := filepath.Join(dir, "personas.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("persona: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d.m); err != nil {
		return nil, fmt.Errorf("persona: parse %s: %w", path, err)
	}
	return d, nil
}

// Resolve returns the persona document text for name, falling back to
// DefaultFallback when the identifier is unknown, its file is missing, or no
// manifest was found at all.
func (d *Directory) Resolve(name string) string {
	name = strings.TrimSpace(name)
	if d == nil || name == "" {
		return DefaultFallback
	}
	e, ok := d.m[name]
	if !ok {
		return DefaultFallback
	}
	if e.Text != "" {
		return e.Text
	}
	if e.File != "" {
		data, err := os.ReadFile(filepath.Join(d.dir, e.File))
		if err == nil {
			return string(data)
		}
	}
	return DefaultFallback
}

func defaultFor(name string) string {
	if name == "" {
		return DefaultFallback
	}
	return fmt.Sprintf("# %s\n%s", titleCase(name), DefaultFallback)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
