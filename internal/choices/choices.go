// Package choices serves static (code, label) tables that accompany the
// identifier types: Brazilian states, Chilean regions, Kenyan provinces and
// so on. Tables are YAML files baked into the binary and parsed once; every
// accessor hands out copies so callers cannot mutate shared state.
package choices

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"idcheck/pkg/platform/sentinel"
)

//go:embed data/*.yaml
var embedded embed.FS

// Choice is one selectable entry.
type Choice struct {
	Code  string `yaml:"code" json:"code"`
	Label string `yaml:"label" json:"label"`
}

// Key names one table, e.g. {Country: "BR", Kind: "states"}.
type Key struct {
	Country string `json:"country"`
	Kind    string `json:"kind"`
}

func (k Key) String() string {
	return k.Country + "/" + k.Kind
}

type file struct {
	Country string              `yaml:"country"`
	Tables  map[string][]Choice `yaml:"tables"`
}

// Catalog is an immutable set of choice tables.
type Catalog struct {
	tables map[Key][]Choice
	keys   []Key
}

// Load parses every *.yaml file under dir in fsys.
func Load(fsys fs.FS, dir string) (*Catalog, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob choice tables: %w", err)
	}

	c := &Catalog{tables: make(map[Key][]Choice)}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var f file
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		if err := c.add(p, f); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(c.keys, func(a, b Key) int {
		return strings.Compare(a.String(), b.String())
	})
	return c, nil
}

func (c *Catalog) add(src string, f file) error {
	country := strings.ToUpper(strings.TrimSpace(f.Country))
	if country == "" {
		return fmt.Errorf("%s: country is required", src)
	}
	for kind, entries := range f.Tables {
		key := Key{Country: country, Kind: strings.ToLower(kind)}
		if _, dup := c.tables[key]; dup {
			return fmt.Errorf("%s: table %s: %w", src, key, sentinel.ErrConflict)
		}
		seen := make(map[string]struct{}, len(entries))
		for i, e := range entries {
			if e.Code == "" || e.Label == "" {
				return fmt.Errorf("%s: table %s entry %d: code and label are required", src, key, i)
			}
			if _, dup := seen[e.Code]; dup {
				return fmt.Errorf("%s: table %s code %q: %w", src, key, e.Code, sentinel.ErrConflict)
			}
			seen[e.Code] = struct{}{}
		}
		c.tables[key] = slices.Clone(entries)
		c.keys = append(c.keys, key)
	}
	return nil
}

// Lookup returns a copy of the table for country and kind.
// Both are matched case-insensitively.
func (c *Catalog) Lookup(country, kind string) ([]Choice, error) {
	key := Key{
		Country: strings.ToUpper(strings.TrimSpace(country)),
		Kind:    strings.ToLower(strings.TrimSpace(kind)),
	}
	entries, ok := c.tables[key]
	if !ok {
		return nil, fmt.Errorf("choice table %s: %w", key, sentinel.ErrNotFound)
	}
	return slices.Clone(entries), nil
}

// Label resolves code to its label within one table.
func (c *Catalog) Label(country, kind, code string) (string, error) {
	entries, err := c.Lookup(country, kind)
	if err != nil {
		return "", err
	}
	code = strings.TrimSpace(code)
	for _, e := range entries {
		if strings.EqualFold(e.Code, code) {
			return e.Label, nil
		}
	}
	return "", fmt.Errorf("code %q in %s/%s: %w", code, country, kind, sentinel.ErrNotFound)
}

// Catalogs lists the available tables in sorted order.
func (c *Catalog) Catalogs() []Key {
	return slices.Clone(c.keys)
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(embedded, "data")
})

// Default returns the catalog built from the embedded tables.
// It panics if the embedded data is malformed, which tests guard against.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("choices: load embedded tables: %v", err))
	}
	return c
}

// Lookup queries the default catalog.
func Lookup(country, kind string) ([]Choice, error) {
	return Default().Lookup(country, kind)
}

// Label queries the default catalog.
func Label(country, kind, code string) (string, error) {
	return Default().Label(country, kind, code)
}

// Catalogs lists the default catalog's tables.
func Catalogs() []Key {
	return Default().Catalogs()
}
