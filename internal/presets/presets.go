// Package presets holds the catalogue of bundled automata: named option sets
// and patterns for every registered sim. The built-in catalogue is embedded;
// user catalogues in the same YAML layout can be merged on top of it.
package presets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"automata/internal/core"
)

//go:embed presets.yaml
var builtin []byte

// ErrNotFound is returned when no entry or preset matches a lookup.
var ErrNotFound = errors.New("preset not found")

// Catalogue is the top-level YAML document.
type Catalogue struct {
	Automata []Entry `yaml:"automata"`
}

// Entry groups the presets and patterns of one registered sim.
type Entry struct {
	Title    string    `yaml:"title"`
	Sim      string    `yaml:"sim"`
	Start    string    `yaml:"start,omitempty"`
	Presets  []Preset  `yaml:"presets"`
	Patterns []Pattern `yaml:"patterns,omitempty"`
}

// Preset is a named option map for the sim factory.
type Preset struct {
	Title   string            `yaml:"title"`
	Options map[string]string `yaml:"options"`
}

// Pattern is a named RLE pattern.
type Pattern struct {
	Name string `yaml:"name"`
	RLE  string `yaml:"rle"`
}

// Default parses the embedded catalogue.
func Default() (*Catalogue, error) {
	c, err := Parse(builtin)
	if err != nil {
		return nil, fmt.Errorf("builtin presets: %w", err)
	}
	return c, nil
}

// LoadFile reads a user catalogue from path.
func LoadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading presets file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("presets file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalogue. Unknown fields are rejected so typos in option
// files surface instead of silently falling back to defaults.
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalogue) validate() error {
	for i, e := range c.Automata {
		if strings.TrimSpace(e.Sim) == "" {
			return fmt.Errorf("entry %d (%q): missing sim", i, e.Title)
		}
		if e.Title == "" {
			c.Automata[i].Title = e.Sim
		}
		for j, p := range e.Presets {
			if strings.TrimSpace(p.Title) == "" {
				return fmt.Errorf("entry %q preset %d: missing title", e.Sim, j)
			}
		}
		for j, p := range e.Patterns {
			if strings.TrimSpace(p.RLE) == "" {
				return fmt.Errorf("entry %q pattern %d: empty rle", e.Sim, j)
			}
		}
	}
	return nil
}

// Merge adds the entries of other. Presets and patterns of an entry with the
// same sim are appended, replacing those with the same title or name.
func (c *Catalogue) Merge(other *Catalogue) {
	if other == nil {
		return
	}
	for _, oe := range other.Automata {
		i := c.index(oe.Sim)
		if i < 0 {
			c.Automata = append(c.Automata, oe)
			continue
		}
		e := &c.Automata[i]
		if oe.Start != "" {
			e.Start = oe.Start
		}
		for _, p := range oe.Presets {
			if k := e.presetIndex(p.Title); k >= 0 {
				e.Presets[k] = p
			} else {
				e.Presets = append(e.Presets, p)
			}
		}
		for _, p := range oe.Patterns {
			if k := e.patternIndex(p.Name); k >= 0 {
				e.Patterns[k] = p
			} else {
				e.Patterns = append(e.Patterns, p)
			}
		}
	}
}

func (c *Catalogue) index(name string) int {
	for i, e := range c.Automata {
		if strings.EqualFold(e.Sim, name) || strings.EqualFold(e.Title, name) {
			return i
		}
	}
	return -1
}

// Entry looks an entry up by sim name or title, case-insensitively.
func (c *Catalogue) Entry(name string) (Entry, error) {
	i := c.index(name)
	if i < 0 {
		return Entry{}, fmt.Errorf("automaton %q: %w", name, ErrNotFound)
	}
	return c.Automata[i], nil
}

// Find returns the entry and the preset titled title. An empty title selects
// the entry's first preset.
func (c *Catalogue) Find(name, title string) (Entry, Preset, error) {
	e, err := c.Entry(name)
	if err != nil {
		return e, Preset{}, err
	}
	if title == "" {
		if len(e.Presets) == 0 {
			return e, Preset{Title: e.Title}, nil
		}
		return e, e.Presets[0], nil
	}
	k := e.presetIndex(title)
	if k < 0 {
		return e, Preset{}, fmt.Errorf("%s preset %q: %w", e.Title, title, ErrNotFound)
	}
	return e, e.Presets[k], nil
}

func (e Entry) presetIndex(title string) int {
	for i, p := range e.Presets {
		if strings.EqualFold(p.Title, title) {
			return i
		}
	}
	return -1
}

func (e Entry) patternIndex(name string) int {
	for i, p := range e.Patterns {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

// Pattern returns the named pattern of the entry.
func (e Entry) Pattern(name string) (Pattern, error) {
	k := e.patternIndex(name)
	if k < 0 {
		return Pattern{}, fmt.Errorf("%s pattern %q: %w", e.Title, name, ErrNotFound)
	}
	return e.Patterns[k], nil
}

// Options layers the entry's starting pattern, the preset options and the
// overrides, later layers winning.
func (e Entry) Options(p Preset, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(p.Options)+len(overrides)+1)
	if e.Start != "" {
		out["start"] = e.Start
	}
	for k, v := range p.Options {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Build constructs the sim for the named preset through the registry.
func (c *Catalogue) Build(name, title string, overrides map[string]string) (core.Sim, error) {
	e, p, err := c.Find(name, title)
	if err != nil {
		return nil, err
	}
	sim, err := core.New(e.Sim, e.Options(p, overrides))
	if err != nil {
		return nil, fmt.Errorf("%s / %s: %w", e.Title, p.Title, err)
	}
	return sim, nil
}
