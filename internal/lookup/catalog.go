package lookup

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrNoLoader     = errors.New("index has no loader")
	ErrUnknownIndex = errors.New("unknown index")
)

// Well known index names.
const (
	Customers = "customers"
	Products  = "products"
)

// Catalog groups the indexes the console searches.
type Catalog struct {
	order   []string
	indexes map[string]*Index
}

// NewCatalog registers indexes by name. A later index with the same name
// replaces an earlier one.
func NewCatalog(indexes ...*Index) *Catalog {
	c := &Catalog{indexes: make(map[string]*Index, len(indexes))}

	for _, ix := range indexes {
		if _, ok := c.indexes[ix.Name()]; !ok {
			c.order = append(c.order, ix.Name())
		}

		c.indexes[ix.Name()] = ix
	}

	return c
}

// Names lists the registered indexes in registration order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Index returns the named index.
func (c *Catalog) Index(name string) (*Index, error) {
	ix, ok := c.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIndex, name)
	}

	return ix, nil
}

// Bootstrap loads every index. All indexes are attempted; the returned error
// combines every failure.
func (c *Catalog) Bootstrap(ctx context.Context) error {
	var err error

	for _, name := range c.order {
		err = multierr.Append(err, c.indexes[name].Reload(ctx))
	}

	return err
}

// InvalidateAll drops every loaded list, e.g. after a record was added.
func (c *Catalog) InvalidateAll() {
	for _, name := range c.order {
		c.indexes[name].Invalidate()
	}
}

// Result is the outcome of a catalog search.
type Result struct {
	Matches     []string
	Suggestions []string // only filled when nothing matched
}

// Search filters the named index and falls back to suggestions when the
// filter finds nothing.
func (c *Catalog) Search(ctx context.Context, name, query string, limit int) (Result, error) {
	ix, err := c.Index(name)
	if err != nil {
		return Result{}, err
	}

	matches, err := ix.Filter(ctx, query)
	if err != nil {
		return Result{}, err
	}

	res := Result{Matches: matches, Suggestions: []string{}}
	if len(matches) > 0 {
		return res, nil
	}

	sug, err := ix.Suggest(ctx, query, limit)
	if err != nil {
		return Result{}, err
	}

	res.Suggestions = sug.Names()

	return res, nil
}
