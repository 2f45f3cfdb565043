// Package snapshot restores live state from a previously captured value.
//
// Every reset clones the snapshot again, so the live value can be mutated
// freely without ever touching the stored snapshot.
package snapshot

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"casenara/clone"
)

var (
	ErrNotStructPointer = errors.New("destination must be a non-nil pointer to a struct")
	ErrFieldType        = errors.New("snapshot value does not fit the field type")
)

// ResetValue replaces the value held by ref with a fresh clone of snapshot.
func ResetValue[T any](ref *T, snapshot T) {
	if ref == nil {
		return
	}

	*ref = clone.DeepClone(snapshot)
}

// Container is a live object with a fixed set of keys.
type Container interface {
	Keys() []string
	Set(key string, value any)
}

// Map adapts a plain map to Container.
type Map map[string]any

// Keys returns the keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func (m Map) Set(key string, value any) { m[key] = value }

// ResetKeyed overwrites every key the container already has with the cloned
// snapshot's value for that key, nil when the snapshot lacks it. Keys found
// only in the snapshot are not added.
func ResetKeyed(c Container, snapshot map[string]any) {
	cloned := clone.DeepClone(snapshot)

	for _, key := range c.Keys() {
		c.Set(key, cloned[key])
	}
}

// ResetFields applies the ResetKeyed contract to the exported fields of the
// struct dst points to. Fields are keyed by their json tag name, falling back
// to the Go field name; fields missing from the snapshot are zeroed.
func ResetFields(dst any, snapshot map[string]any) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	cloned := clone.DeepClone(snapshot)
	target := ptr.Elem()
	rtype := target.Type()

	for i := range rtype.NumField() {
		field := rtype.Field(i)
		if !field.IsExported() {
			continue
		}

		fv := target.Field(i)

		raw, ok := cloned[fieldKey(field)]
		if !ok || raw == nil {
			fv.SetZero()
			continue
		}

		val, err := fit(reflect.ValueOf(raw), field.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
		fv.Set(val)
	}

	return nil
}

func fieldKey(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

// fit assigns v to typ directly, or converts between numeric kinds, which
// is what a snapshot decoded from JSON needs for its float64 numbers.
func fit(v reflect.Value, typ reflect.Type) (reflect.Value, error) {
	if v.Type().AssignableTo(typ) {
		return v, nil
	}

	if isNumeric(v.Kind()) && isNumeric(typ.Kind()) {
		return v.Convert(typ), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s into %s", ErrFieldType, v.Type(), typ)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
