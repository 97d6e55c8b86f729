// Package materials holds the named S-N curve presets offered to the damage
// tools. Presets are read from a YAML file and reloaded when it changes.
package materials

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"Durability/internal/calc/woehler"
)

// DefaultName is the preset that always exists.
const DefaultName = "default"

// Default is the built-in preset: the damage tool's initial curve.
func Default() woehler.Curve {
	return woehler.Curve{K1: -8, ND: 1e6, SD: 100, TN: 12, TS: 1.1}
}

type file struct {
	Materials map[string]woehler.Curve `yaml:"materials"`
}

// Parse decodes a catalog document. Every curve is validated and the
// default preset is added unless the document overrides it.
func Parse(data []byte) (map[string]woehler.Curve, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("materials: parse: %w", err)
	}
	out := make(map[string]woehler.Curve, len(f.Materials)+1)
	for name, c := range f.Materials {
		if name == "" {
			return nil, errors.New("materials: empty preset name")
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("materials: %s: %w", name, err)
		}
		out[name] = c
	}
	if _, ok := out[DefaultName]; !ok {
		out[DefaultName] = Default()
	}
	return out, nil
}

// Load reads the catalog at path. A missing file yields the built-in
// preset only; an empty one is an error since editors truncate before
// writing.
func Load(path string) (map[string]woehler.Curve, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]woehler.Curve{DefaultName: Default()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("materials: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("materials: %s is empty", path)
	}
	return Parse(data)
}

// Catalog is safe for concurrent use; Replace swaps the whole set.
type Catalog struct {
	mu     sync.RWMutex
	path   string
	curves map[string]woehler.Curve
}

// Open loads path into a new Catalog.
func Open(path string) (*Catalog, error) {
	curves, err := Load(path)
	if err != nil {
		return nil, err
	}
	slog.Info("materials: loaded", "path", path, "count", len(curves))
	return &Catalog{path: path, curves: curves}, nil
}

// New returns a catalog over curves, not backed by a file.
func New(curves map[string]woehler.Curve) *Catalog {
	c := &Catalog{curves: make(map[string]woehler.Curve, len(curves)+1)}
	for k, v := range curves {
		c.curves[k] = v
	}
	if _, ok := c.curves[DefaultName]; !ok {
		c.curves[DefaultName] = Default()
	}
	return c
}

func (c *Catalog) Path() string { return c.path }

func (c *Catalog) Lookup(name string) (woehler.Curve, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.curves[name]
	return v, ok
}

// Names returns the preset names sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.curves))
	for n := range c.curves {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Reload rereads the backing file. On error the current presets stay.
func (c *Catalog) Reload() error {
	curves, err := Load(c.path)
	if err != nil {
		return err
	}
	c.Replace(curves)
	return nil
}

func (c *Catalog) Replace(curves map[string]woehler.Curve) {
	c.mu.Lock()
	c.curves = curves
	c.mu.Unlock()
}
