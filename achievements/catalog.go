package achievements

import (
	"fmt"
	"sync"
)

// Catalog holds every achievement definition, indexed by id and
// grouped by category in display order.
type Catalog struct {
	byID    map[string]Definition
	ordered map[Category][]Definition
	total   int
}

var (
	catalogOnce sync.Once
	catalog     *Catalog
)

// Load returns the process-wide catalog, building it on first use.
func Load() *Catalog {
	catalogOnce.Do(func() {
		catalog = buildCatalog()
	})
	return catalog
}

func buildCatalog() *Catalog {
	c := &Catalog{
		byID:    make(map[string]Definition),
		ordered: make(map[Category][]Definition),
	}
	for _, defs := range [][]Definition{
		matchesDefinitions,
		mmrDefinitions,
		heroesDefinitions,
		winrateDefinitions,
		specialDefinitions,
	} {
		for _, d := range defs {
			c.byID[d.ID] = d
			c.ordered[d.Category] = append(c.ordered[d.Category], d)
			c.total++
		}
	}
	return c
}

// Get returns the definition for id.
func (c *Catalog) Get(id string) (Definition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByCategory returns the definitions of one category in display order.
func (c *Catalog) ByCategory(cat Category) []Definition {
	return c.ordered[cat]
}

// Total returns the number of catalog entries.
func (c *Catalog) Total() int {
	return c.total
}

// Validate checks catalog integrity: ids must be unique across all
// categories and every Requires reference must resolve. Meant to be
// called once at startup so a bad catalog fails fast instead of
// surfacing as missing achievements later.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool)
	for _, cat := range Categories {
		for _, d := range c.ordered[cat] {
			if d.ID == "" {
				return fmt.Errorf("achievement in category %s has empty id", cat)
			}
			if seen[d.ID] {
				return fmt.Errorf("duplicate achievement id %q", d.ID)
			}
			seen[d.ID] = true
		}
	}
	for _, d := range c.byID {
		if d.Requires == "" {
			continue
		}
		if _, ok := c.byID[d.Requires]; !ok {
			return fmt.Errorf("achievement %q requires unknown achievement %q", d.ID, d.Requires)
		}
	}
	return nil
}
