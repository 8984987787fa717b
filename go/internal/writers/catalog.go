// Package writers serves the catalog of writers grouped by literary epoch.
package writers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// ErrWriterNotFound is returned when no writer has the requested id
var ErrWriterNotFound = errors.New("writer not found")

// Epochs every catalog has, even when empty
var Epochs = []string{"golden_age", "silver_age", "soviet_period"}

// Writer is one catalog entry. The catalog file is free-form beyond the id,
// so every field is kept as decoded.
type Writer map[string]interface{}

// ID returns the writer's id as a string. Numeric ids are formatted without
// a fractional part.
func (w Writer) ID() string {
	switch id := w["id"].(type) {
	case string:
		return id
	case float64:
		return fmt.Sprintf("%.0f", id)
	case json.Number:
		return id.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// Catalog holds writers keyed by epoch
type Catalog struct {
	epochs map[string][]Writer
}

// NewCatalog creates a catalog, filling in missing standard epochs
func NewCatalog(epochs map[string][]Writer) *Catalog {
	c := &Catalog{epochs: make(map[string][]Writer, len(epochs)+len(Epochs))}
	for _, e := range Epochs {
		c.epochs[e] = []Writer{}
	}
	for e, ws := range epochs {
		if ws == nil {
			ws = []Writer{}
		}
		c.epochs[e] = ws
	}
	return c
}

// LoadCatalog reads a catalog JSON file. A missing file yields an empty
// catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCatalog(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read writer catalog: %w", err)
	}

	var epochs map[string][]Writer
	if err := json.Unmarshal(data, &epochs); err != nil {
		return nil, fmt.Errorf("failed to parse writer catalog %s: %w", path, err)
	}
	return NewCatalog(epochs), nil
}

// All returns every epoch with its writers
func (c *Catalog) All() map[string][]Writer {
	return c.epochs
}

// Get finds a writer by id across all epochs, searching epochs in name order
func (c *Catalog) Get(id string) (Writer, error) {
	names := make([]string, 0, len(c.epochs))
	for e := range c.epochs {
		names = append(names, e)
	}
	sort.Strings(names)

	for _, e := range names {
		for _, w := range c.epochs[e] {
			if w.ID() == id {
				return w, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrWriterNotFound, id)
}
