package clone

import (
	"fmt"
	"reflect"

	"casenara/options"
	"casenara/utils"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds the recursion of the structural and json tiers.
// Going deeper is treated like a reference cycle and hands over to the next tier.
const DefaultMaxDepth = 1000

const maxDepthLimit = 100_000

// Cloneable is implemented by types that know how to deep copy themselves.
// The structural tier calls Clone instead of reflecting into such values.
type Cloneable[T any] interface {
	Clone() T
}

// Cloner runs the tier chain. The zero value is not usable, use New.
// A Cloner holds no per-call state and may be shared.
type Cloner struct {
	tiers    options.TierEnum
	maxDepth int
	logger   *zap.Logger
	chain    []tier
}

// Option configures a Cloner.
type Option func(*Cloner)

// WithTiers restricts the chain to the given tiers.
func WithTiers(tiers options.TierEnum) Option {
	return func(c *Cloner) { c.tiers = tiers }
}

// WithLogger sets the logger used to report tier fallthrough.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cloner) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(c *Cloner) { c.maxDepth = utils.Clamp(1, depth, maxDepthLimit) }
}

// Result is a clone together with the tier that produced it.
type Result struct {
	Value any
	Tier  options.TierEnum // options.TierNone when every tier failed
}

type tier struct {
	kind options.TierEnum
	run  func(src reflect.Value) (reflect.Value, error)
}

var defaultCloner = New()

// New returns a Cloner using every tier unless configured otherwise.
func New(opts ...Option) *Cloner {
	c := &Cloner{
		tiers:    options.TierAll,
		maxDepth: DefaultMaxDepth,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	runners := map[options.TierEnum]func(reflect.Value) (reflect.Value, error){
		options.TierStructural: c.structural,
		options.TierJSON:       c.viaJSON,
		options.TierWalk:       c.walk,
	}

	c.tiers.Each(func(t options.TierEnum) {
		c.chain = append(c.chain, tier{kind: t, run: runners[t]})
	})

	return c
}

// Tiers returns the enabled tiers.
func (c *Cloner) Tiers() options.TierEnum { return c.tiers }

// DeepClone copies v with the default cloner.
func DeepClone[T any](v T) T {
	return Clone(defaultCloner, v)
}

// Clone copies v with c, keeping the static type T.
// When every enabled tier fails the zero value of T is returned.
func Clone[T any](c *Cloner, v T) T {
	out, _ := c.run(reflect.ValueOf(&v).Elem())

	if !out.IsValid() {
		var zero T
		return zero
	}

	res, _ := out.Interface().(T)

	return res
}

// CloneValue copies v and reports which tier succeeded. The dynamic type of
// v is kept, so the json tier decodes into that type rather than into a
// generic map.
func (c *Cloner) CloneValue(v any) Result {
	src := reflect.ValueOf(v)
	if !src.IsValid() {
		src = reflect.ValueOf(&v).Elem()
	}

	out, used := c.run(src)
	if !out.IsValid() {
		return Result{Tier: used}
	}

	return Result{Value: out.Interface(), Tier: used}
}

func (c *Cloner) run(src reflect.Value) (reflect.Value, options.TierEnum) {
	for _, t := range c.chain {
		out, err := t.attempt(src)
		if err == nil {
			return out, t.kind
		}

		c.logger.Debug("clone tier failed, falling through",
			zap.Stringer("tier", t.kind),
			zap.Stringer("type", src.Type()),
			zap.Error(err))
	}

	c.logger.Warn("every clone tier failed",
		zap.Stringer("tiers", c.tiers),
		zap.Stringer("type", src.Type()))

	return reflect.Value{}, options.TierNone
}

func (t tier) attempt(src reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = reflect.Value{}, fmt.Errorf("%w: %s: %v", ErrTierPanic, t.kind, r)
		}
	}()

	return t.run(src)
}

// visit identifies a pointer, map or slice already copied during one clone
// call. Slices are told apart by length too, so a prefix of a slice is not
// mistaken for the whole.
type visit struct {
	ptr uintptr
	n   int
	typ reflect.Type
}

func visitOf(v reflect.Value) visit {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		key.n = v.Len()
	}

	return key
}
