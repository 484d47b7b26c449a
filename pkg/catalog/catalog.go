// Package catalog holds the named categories of default exclusion patterns.
//
// The catalog is embedded in the binary as YAML and parsed once per process.
// A malformed source never stops a run: it degrades to an empty catalog and a
// warning on the global logger.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"ctxgen/pkg/errors"
)

//go:embed exclusions.yaml
var defaultSource []byte

// Category is a named group of glob patterns.
type Category struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Patterns    []string `yaml:"patterns"`
}

// Catalog is an ordered, read-only list of categories.
type Catalog struct {
	categories []Category
	byID       map[string]int
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, parsed on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = Load(defaultSource, zap.L())
	})
	return defaultCatalog
}

// Load parses data and falls back to an empty catalog when it is malformed.
func Load(data []byte, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := Parse(data)
	if err != nil {
		logger.Warn("Using empty exclusion catalog", zap.Error(err))
		return Empty()
	}
	logger.Debug("Loaded exclusion catalog", zap.Int("categories", c.Len()))
	return c
}

// Empty returns a catalog with no categories.
func Empty() *Catalog {
	return &Catalog{byID: map[string]int{}}
}

// Parse decodes a YAML catalog. Unknown fields, duplicate IDs and categories
// without an id or name are rejected.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.NewError(errors.CatalogLoad, "failed to parse exclusion catalog", "", err)
	}

	c := &Catalog{
		categories: make([]Category, 0, len(f.Categories)),
		byID:       make(map[string]int, len(f.Categories)),
	}
	for i, cat := range f.Categories {
		if cat.ID == "" || cat.Name == "" {
			return nil, errors.NewError(errors.CatalogLoad, "category is missing an id or name", fmt.Sprintf("categories[%d]", i), nil)
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, errors.NewError(errors.CatalogLoad, "duplicate category id", cat.ID, nil)
		}
		c.byID[cat.ID] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Categories returns the categories in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by ID.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// IDs returns every category ID in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.categories))
	for i, cat := range c.categories {
		ids[i] = cat.ID
	}
	return ids
}

// Unknown returns the IDs in ids that name no category, preserving order.
func (c *Catalog) Unknown(ids []string) []string {
	var bad []string
	for _, id := range ids {
		if _, ok := c.byID[id]; !ok {
			bad = append(bad, id)
		}
	}
	return bad
}

// PatternCount returns the total number of patterns across all categories,
// counting duplicates.
func (c *Catalog) PatternCount() int {
	n := 0
	for _, cat := range c.categories {
		n += len(cat.Patterns)
	}
	return n
}
