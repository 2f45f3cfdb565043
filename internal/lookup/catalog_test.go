package lookup_test

import (
	"testing"

	"casenara/internal/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(customers, products *source) *lookup.Catalog {
	return lookup.NewCatalog(
		lookup.NewIndex(lookup.Customers, customers.load),
		lookup.NewIndex(lookup.Products, products.load),
	)
}

func TestCatalogBootstrap(t *testing.T) {
	t.Parallel()

	customers := &source{names: []string{"김철수", "이영희"}}
	products := &source{err: errBackend}
	c := newCatalog(customers, products)

	assert.Equal(t, []string{lookup.Customers, lookup.Products}, c.Names())

	err := c.Bootstrap(t.Context())
	require.ErrorIs(t, err, errBackend)

	ix, err := c.Index(lookup.Customers)
	require.NoError(t, err)
	assert.True(t, ix.Loaded(), "a failing index does not stop the others")

	c.InvalidateAll()
	assert.False(t, ix.Loaded())
}

func TestCatalogSearch(t *testing.T) {
	t.Parallel()

	c := newCatalog(
		&source{names: []string{"김철수", "이영희"}},
		&source{names: []string{"강아지", "고양이"}},
	)

	res, err := c.Search(t.Context(), lookup.Customers, "ㅇㅇ", 5)
	require.NoError(t, err)
	assert.Equal(t, lookup.Result{Matches: []string{"이영희"}, Suggestions: []string{}}, res)

	res, err = c.Search(t.Context(), lookup.Products, "캉아지", 5)
	require.NoError(t, err)
	assert.Empty(t, res.Matches)
	assert.Equal(t, []string{"강아지"}, res.Suggestions)

	_, err = c.Search(t.Context(), "orders", "x", 5)
	assert.ErrorIs(t, err, lookup.ErrUnknownIndex)
}
