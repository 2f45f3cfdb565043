package options

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTier is returned by ParseTiers for a name that is not a tier.
var ErrUnknownTier = errors.New("unknown tier")

// TierEnum selects which clone tiers a cloner may use. Tiers are always tried
// in declaration order, a disabled tier is simply skipped.
type TierEnum int

const (
	TierStructural TierEnum = 1 << iota // exact reflective copy, rejects funcs, chans and host objects
	TierJSON                            // filtered JSON round trip into a fresh value of the same type
	TierWalk                            // manual recursive copy with the same drop rules as TierJSON

	TierAll  = (1 << iota) - 1 // all tiers combined
	TierNone = 0               // no tiers selected
)

var tierNames = map[TierEnum]string{
	TierStructural: "structural",
	TierJSON:       "json",
	TierWalk:       "walk",
}

// Has reports whether every tier in t is enabled in the set.
func (s TierEnum) Has(t TierEnum) bool {
	return t != TierNone && s&t == t
}

// Each calls fn for every enabled single tier in ascending order.
func (s TierEnum) Each(fn func(TierEnum)) {
	for tier := TierEnum(1); tier&TierAll > 0; tier <<= 1 {
		if s&tier != 0 {
			fn(tier)
		}
	}
}

// String returns the name of a single tier, or a "+" joined list for a set.
func (s TierEnum) String() string {
	if name, ok := tierNames[s]; ok {
		return name
	}

	if s == TierNone {
		return "none"
	}

	out := ""
	s.Each(func(t TierEnum) {
		if out != "" {
			out += "+"
		}
		out += tierNames[t]
	})

	return out
}

// ParseTier resolves a tier by name.
func ParseTier(name string) (TierEnum, bool) {
	for tier, n := range tierNames {
		if n == name {
			return tier, true
		}
	}

	return TierNone, false
}

// ParseTiers resolves a "+" or "," separated list of tier names, as produced
// by String. "all" and "none" are accepted as well.
func ParseTiers(list string) (TierEnum, error) {
	switch strings.TrimSpace(list) {
	case "all":
		return TierAll, nil
	case "none", "":
		return TierNone, nil
	}

	var out TierEnum

	for _, name := range strings.FieldsFunc(list, func(r rune) bool { return r == '+' || r == ',' }) {
		tier, ok := ParseTier(strings.TrimSpace(name))
		if !ok {
			return TierNone, fmt.Errorf("%w: %q", ErrUnknownTier, name)
		}

		out |= tier
	}

	return out, nil
}
