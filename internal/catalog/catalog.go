// Package catalog supplies context definitions: named bundles of schema text
// and seed text the controller materializes into physical databases. Two
// catalogs ship embedded in the binary (curated lessons and canned demos);
// user catalogs load from a directory with the same layout.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed lessons demos
var embedded embed.FS

// Embedded catalog set names.
const (
	Lessons = "lessons"
	Demos   = "demos"
)

// ErrBadCatalog indicates a catalog whose index or content files cannot be
// read.
var ErrBadCatalog = errors.New("bad catalog")

// Definition is one context: a named schema plus seed data. Immutable once
// loaded.
type Definition struct {
	Name   string
	Title  string // one-line description for listings
	Schema string
	Seed   string
}

// Catalog resolves context definitions by logical name. Resolution is
// synchronous; implementations hold all content in memory.
type Catalog interface {
	// Get returns the definition for a logical name.
	Get(name string) (*Definition, bool)
	// Names returns all context names in catalog order.
	Names() []string
}

// Set is an in-memory Catalog loaded from an index file.
type Set struct {
	names  []string
	byName map[string]*Definition
}

var _ Catalog = (*Set)(nil)

// Get returns the definition for a logical name.
func (s *Set) Get(name string) (*Definition, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Names returns all context names in index order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Static builds a catalog from in-memory definitions, in the order given.
// Used by tests and by callers that assemble contexts programmatically.
func Static(defs ...Definition) *Set {
	set := &Set{byName: make(map[string]*Definition, len(defs))}
	for i := range defs {
		d := defs[i]
		set.names = append(set.names, d.Name)
		set.byName[d.Name] = &d
	}
	return set
}

// Embedded loads one of the catalogs compiled into the binary
// (Lessons or Demos).
func Embedded(set string) (*Set, error) {
	sub, err := fs.Sub(embedded, set)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown embedded set %q", ErrBadCatalog, set)
	}
	return load(sub, set)
}

// FromDir loads a catalog from a directory laid out like the embedded sets:
// an index.yaml naming each context's schema and seed files.
func FromDir(dir string) (*Set, error) {
	return load(os.DirFS(dir), dir)
}

// index.yaml structure.
type indexFile struct {
	Contexts []indexEntry `yaml:"contexts"`
}

type indexEntry struct {
	Name   string `yaml:"name"`
	Title  string `yaml:"title"`
	Schema string `yaml:"schema"`
	Seed   string `yaml:"seed"`
}

func load(fsys fs.FS, origin string) (*Set, error) {
	data, err := fs.ReadFile(fsys, "index.yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: read index of %s: %v", ErrBadCatalog, origin, err)
	}

	var idx indexFile
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("%w: malformed index of %s: %v", ErrBadCatalog, origin, err)
	}

	set := &Set{byName: make(map[string]*Definition, len(idx.Contexts))}
	for _, e := range idx.Contexts {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: %s: context entry without a name", ErrBadCatalog, origin)
		}
		if _, dup := set.byName[e.Name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate context %q", ErrBadCatalog, origin, e.Name)
		}
		def := &Definition{Name: e.Name, Title: e.Title}
		if e.Schema != "" {
			b, err := fs.ReadFile(fsys, e.Schema)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: schema of %q: %v", ErrBadCatalog, origin, e.Name, err)
			}
			def.Schema = string(b)
		}
		if e.Seed != "" {
			b, err := fs.ReadFile(fsys, e.Seed)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: seed of %q: %v", ErrBadCatalog, origin, e.Name, err)
			}
			def.Seed = string(b)
		}
		set.names = append(set.names, e.Name)
		set.byName[e.Name] = def
	}
	return set, nil
}
