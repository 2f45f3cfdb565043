// Package lookup keeps searchable name lists (customers, products) loaded
// from an injected source, with their initial-consonant forms computed once
// per load.
package lookup

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"casenara/chosung"
	"casenara/internal/match"
	"casenara/utils"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// MaxCacheSize bounds the per-index query cache.
const MaxCacheSize = 1 << 16

// Loader fetches the current list of names.
type Loader func(ctx context.Context) ([]string, error)

type entries struct {
	names    []string
	chosungs []string
	loadedAt time.Time
}

type cached struct {
	data    *entries
	indices []int
}

// Index is one named, lazily loaded candidate list.
//
// Reads are lock free; loads are serialized and swap the whole list at once.
type Index struct {
	name      string
	load      Loader
	normalize bool
	cacheSize int
	logger    *zap.Logger
	now       func() time.Time

	data  atomic.Pointer[entries]
	mu    sync.Mutex
	cache *lru.Cache[string, cached]
}

// Option configures an Index.
type Option func(*Index)

// WithCacheSize sets how many query results are kept. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(ix *Index) {
		ix.cacheSize = utils.Clamp(0, n, MaxCacheSize)
	}
}

// WithNormalize composes decomposed Hangul (NFC) in names and queries.
func WithNormalize(on bool) Option {
	return func(ix *Index) {
		ix.normalize = on
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(ix *Index) {
		if logger != nil {
			ix.logger = logger
		}
	}
}

// NewIndex creates an index that calls load on first use.
func NewIndex(name string, load Loader, opts ...Option) *Index {
	ix := &Index{
		name:      name,
		load:      load,
		normalize: true,
		cacheSize: 128,
		logger:    zap.NewNop(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(ix)
	}

	if ix.cacheSize > 0 {
		// lru.New only fails for non-positive sizes.
		ix.cache, _ = lru.New[string, cached](ix.cacheSize)
	}

	ix.logger = ix.logger.With(zap.String("index", name))

	return ix
}

// Name returns the index name.
func (ix *Index) Name() string { return ix.name }

// Loaded reports whether a list is currently held.
func (ix *Index) Loaded() bool { return ix.data.Load() != nil }

// LoadedAt returns when the current list was loaded, or the zero time.
func (ix *Index) LoadedAt() time.Time {
	if d := ix.data.Load(); d != nil {
		return d.loadedAt
	}

	return time.Time{}
}

// Reload fetches the list unconditionally and replaces the current one.
// On error the previous list is kept.
func (ix *Index) Reload(ctx context.Context) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	_, err := ix.reload(ctx)

	return err
}

// Invalidate drops the current list; the next read loads it again.
// A load already in flight finishes first and is dropped as well.
func (ix *Index) Invalidate() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.data.Store(nil)

	if ix.cache != nil {
		ix.cache.Purge()
	}

	ix.logger.Debug("index invalidated")
}

// Names returns a copy of the loaded names.
func (ix *Index) Names(ctx context.Context) ([]string, error) {
	d, err := ix.current(ctx)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), d.names...), nil
}

// Chosungs returns a copy of the initial-consonant forms, aligned with Names.
func (ix *Index) Chosungs(ctx context.Context) ([]string, error) {
	d, err := ix.current(ctx)
	if err != nil {
		return nil, err
	}

	return append([]string(nil), d.chosungs...), nil
}

// Filter returns up to chosung.Limit names matching query.
func (ix *Index) Filter(ctx context.Context, query string) ([]string, error) {
	d, err := ix.current(ctx)
	if err != nil {
		return nil, err
	}

	idx := ix.filter(d, query)

	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, d.names[i])
	}

	return out, nil
}

// Suggest ranks near misses for query, best first, at most limit of them.
func (ix *Index) Suggest(ctx context.Context, query string, limit int) (match.Suggestions, error) {
	d, err := ix.current(ctx)
	if err != nil {
		return nil, err
	}

	q := ix.prepare(query)
	if q == "" {
		return match.Suggestions{}, nil
	}

	ranked := match.RankSuggestions(
		match.Query{Folded: match.Fold(q), Initials: chosung.Extract(q)},
		d.names, d.chosungs, match.DefaultMinScore,
	)

	return ranked.Top(limit), nil
}

func (ix *Index) filter(d *entries, query string) []int {
	q := ix.prepare(query)

	if ix.cache != nil {
		if hit, ok := ix.cache.Get(q); ok && hit.data == d {
			return hit.indices
		}
	}

	idx := chosung.FilterIndices(q, d.names, d.chosungs)

	if ix.cache != nil {
		ix.cache.Add(q, cached{data: d, indices: idx})
	}

	return idx
}

func (ix *Index) prepare(query string) string {
	q := strings.TrimSpace(query)
	if ix.normalize {
		q = match.Compose(q)
	}

	return q
}

func (ix *Index) current(ctx context.Context) (*entries, error) {
	if d := ix.data.Load(); d != nil {
		return d, nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	// Another caller may have finished loading while we waited.
	if d := ix.data.Load(); d != nil {
		return d, nil
	}

	return ix.reload(ctx)
}

// reload must be called with mu held.
func (ix *Index) reload(ctx context.Context) (*entries, error) {
	if ix.load == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, ix.name)
	}

	names, err := ix.load(ctx)
	if err != nil {
		ix.logger.Warn("failed to load index", zap.Error(err))
		return nil, fmt.Errorf("failed to load %s: %w", ix.name, err)
	}

	d := &entries{
		names:    make([]string, len(names)),
		chosungs: make([]string, len(names)),
		loadedAt: ix.now(),
	}

	for i, name := range names {
		if ix.normalize {
			name = match.Compose(name)
		}

		d.names[i] = name
		d.chosungs[i] = chosung.Extract(name)
	}

	ix.data.Store(d)

	ix.logger.Debug("index loaded", zap.Int("names", len(names)))

	return d, nil
}
