// Package clone produces best-effort deep copies of arbitrary values.
//
// A Cloner tries up to three tiers in order and returns the first success:
//
//   - structural: an exact reflective copy. Dates, maps, sets and errors keep
//     their types, types with a Clone() T method copy themselves. Shared and
//     cyclic pointers, maps and non-empty slices are reproduced. Funcs,
//     channels, unsafe pointers and host objects make it fail.
//   - json: the value is reduced to a JSON-safe tree (funcs, channels and host
//     objects omitted, errors as {name, message, stack}, dates as ISO-8601,
//     maps as string-keyed objects, sets as lists), marshalled, and
//     unmarshalled into a fresh value of the same static type. Scalars held
//     in interfaces get their original types back rather than float64.
//   - walk: a recursive copy with the same drop rules as json that rebuilds
//     dates, maps and sets as live values and turns errors into *ErrorRecord.
//     It memoises the same references as structural, so a slice holding
//     itself is rebuilt as a slice holding itself.
//
// Failures inside a tier, panics included, are never returned to the caller.
// Unexported struct fields cannot be set one by one through reflection, the
// tiers that keep the static type copy them shallowly.
package clone
