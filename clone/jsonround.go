package clone

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

// isoLayout matches the ISO-8601 form browsers produce for dates: UTC with milliseconds.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	jsonMarshalerType   = reflect.TypeFor[json.Marshaler]()
	jsonUnmarshalerType = reflect.TypeFor[json.Unmarshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

func (c *Cloner) viaJSON(src reflect.Value) (reflect.Value, error) {
	r := replacer{maxDepth: c.maxDepth}

	tree, keep, err := r.replace(src, 0)
	if err != nil {
		return reflect.Value{}, err
	}

	if !keep {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrDropped, src.Type())
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("json tier: marshal: %w", err)
	}

	dst := reflect.New(src.Type())

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := dec.Decode(dst.Interface()); err != nil {
		return reflect.Value{}, fmt.Errorf("json tier: unmarshal into %s: %w", src.Type(), err)
	}

	r.restore(dst.Elem(), src, 0)

	return dst.Elem(), nil
}

// restore walks the decoded dst next to src and puts back what the round
// trip cannot carry: scalars behind interfaces (decoded as json.Number) and
// unexported struct fields, which are copied shallowly. Values the JSON form
// reshaped, such as records held in an interface, are left as decoded.
func (r replacer) restore(dst, src reflect.Value, depth int) {
	if depth > r.maxDepth || !dst.IsValid() || !src.IsValid() || dst.Type() != src.Type() {
		return
	}

	switch Classify(src) {
	case KindScalar:
		if dst.CanSet() && src.CanInterface() {
			dst.Set(src)
		}
		return
	case KindInterface, KindPointer, KindMap, KindList, KindRecord:
	default:
		return
	}

	if src.Type().Implements(jsonUnmarshalerType) || reflect.PointerTo(src.Type()).Implements(jsonUnmarshalerType) {
		return
	}

	switch src.Kind() {
	case reflect.Interface:
		elem := src.Elem()
		if dst.IsNil() || !dst.CanSet() || !elem.CanInterface() {
			return
		}

		if Classify(elem) == KindScalar {
			dst.Set(elem)
			return
		}

		if dst.Elem().Type() != elem.Type() {
			return
		}

		tmp := reflect.New(elem.Type()).Elem()
		tmp.Set(dst.Elem())
		r.restore(tmp, elem, depth+1)
		dst.Set(tmp)

	case reflect.Pointer:
		if !src.IsNil() && !dst.IsNil() {
			r.restore(dst.Elem(), src.Elem(), depth+1)
		}

	case reflect.Map:
		if src.IsNil() || dst.IsNil() {
			return
		}

		iter := src.MapRange()
		for iter.Next() {
			cur := dst.MapIndex(iter.Key())
			if !cur.IsValid() {
				continue
			}

			tmp := reflect.New(cur.Type()).Elem()
			tmp.Set(cur)
			r.restore(tmp, iter.Value(), depth+1)
			dst.SetMapIndex(iter.Key(), tmp)
		}

	case reflect.Slice, reflect.Array:
		if src.Type().Elem().Kind() == reflect.Uint8 {
			return
		}

		for i := range min(src.Len(), dst.Len()) {
			r.restore(dst.Index(i), src.Index(i), depth+1)
		}

	case reflect.Struct:
		rtype := src.Type()

		if dst.CanSet() && src.CanInterface() && hasUnexported(rtype) {
			tmp := reflect.New(rtype).Elem()
			tmp.Set(src)

			for i := range rtype.NumField() {
				if rtype.Field(i).IsExported() {
					tmp.Field(i).Set(dst.Field(i))
				}
			}

			dst.Set(tmp)
		}

		for i := range rtype.NumField() {
			field := rtype.Field(i)
			if _, skip := jsonName(field); skip || !field.IsExported() {
				continue
			}

			r.restore(dst.Field(i), src.Field(i), depth+1)
		}
	}
}

func hasUnexported(t reflect.Type) bool {
	for i := range t.NumField() {
		if !t.Field(i).IsExported() {
			return true
		}
	}

	return false
}

// replacer reduces a value to a tree of nil, bool, numbers, strings,
// []any and map[string]any, plus values with their own MarshalJSON.
type replacer struct {
	maxDepth int
}

// replace returns the JSON-safe form of v. keep is false when v must be
// omitted: absent from objects, null inside lists.
func (r replacer) replace(v reflect.Value, depth int) (out any, keep bool, err error) {
	if depth > r.maxDepth {
		return nil, false, ErrTooDeep
	}

	kind := Classify(v)

	switch kind {
	case KindInvalid, KindNull:
		return nil, true, nil
	case KindExecutable, KindSymbol, KindHost:
		return nil, false, nil
	case KindError:
		if !v.CanInterface() {
			return nil, false, nil
		}
		e, _ := v.Interface().(error)
		return NewErrorRecord(e).asMap(), true, nil
	case KindDate:
		t, _ := v.Interface().(time.Time)
		return t.UTC().Format(isoLayout), true, nil
	case KindInterface:
		return r.replace(v.Elem(), depth+1)
	}

	if v.Type().Implements(jsonMarshalerType) && v.CanInterface() {
		return v.Interface(), true, nil
	}

	switch kind {
	case KindPointer:
		return r.replace(v.Elem(), depth+1)

	case KindSet:
		return r.set(v, depth)

	case KindMap:
		return r.object(v, depth)

	case KindList:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, true, nil
		}

		if v.Type().Elem().Kind() == reflect.Uint8 {
			// base64 string, decodes back into the same byte slice or array
			return v.Interface(), true, nil
		}

		list := make([]any, v.Len())
		for i := range v.Len() {
			elem, _, err := r.replace(v.Index(i), depth+1)
			if err != nil {
				return nil, false, err
			}
			list[i] = elem
		}

		return list, true, nil

	case KindRecord:
		obj := make(map[string]any, v.NumField())
		if err := r.fields(obj, v, depth); err != nil {
			return nil, false, err
		}

		return obj, true, nil

	default:
		return v.Interface(), true, nil
	}
}

func (r replacer) object(v reflect.Value, depth int) (any, bool, error) {
	if v.IsNil() {
		return nil, true, nil
	}

	obj := make(map[string]any, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		val, keep, err := r.replace(iter.Value(), depth+1)
		if err != nil {
			return nil, false, err
		}

		if keep {
			obj[mapKey(iter.Key())] = val
		}
	}

	return obj, true, nil
}

func (r replacer) set(v reflect.Value, depth int) (any, bool, error) {
	if v.IsNil() {
		return nil, true, nil
	}

	type member struct {
		sortKey string
		value   any
	}

	members := make([]member, 0, v.Len())

	iter := v.MapRange()
	for iter.Next() {
		val, keep, err := r.replace(iter.Key(), depth+1)
		if err != nil {
			return nil, false, err
		}

		if keep {
			members = append(members, member{sortKey: mapKey(iter.Key()), value: val})
		}
	}

	// map iteration order is random, sort for a stable list
	sort.Slice(members, func(i, j int) bool { return members[i].sortKey < members[j].sortKey })

	list := make([]any, len(members))
	for i, m := range members {
		list[i] = m.value
	}

	return list, true, nil
}

// fields flattens the exported fields of a struct into obj under their
// JSON names, inlining untagged embedded structs like encoding/json does.
func (r replacer) fields(obj map[string]any, v reflect.Value, depth int) error {
	rtype := v.Type()

	for i := range v.NumField() {
		field := rtype.Field(i)

		name, skip := jsonName(field)
		if skip || !field.IsExported() {
			continue
		}

		fv := v.Field(i)

		if field.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}

			if inner.Kind() == reflect.Struct && Classify(inner) == KindRecord {
				if err := r.fields(obj, inner, depth+1); err != nil {
					return err
				}
				continue
			}
		}

		if name == "" {
			name = field.Name
		}

		val, keep, err := r.replace(fv, depth+1)
		if err != nil {
			return err
		}

		if _, taken := obj[name]; keep && !taken {
			obj[name] = val
		}
	}

	return nil
}

// jsonName returns the tag name of a field, empty when untagged.
func jsonName(field reflect.StructField) (name string, skip bool) {
	tag, ok := field.Tag.Lookup("json")
	if !ok {
		return "", false
	}

	if tag == "-" {
		return "", true
	}

	name, _, _ = strings.Cut(tag, ",")

	return name, false
}

// mapKey stringifies a map key. Keys that are not strings lose their type,
// encoding/json parses them back for integer and TextUnmarshaler key types.
func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}

	if k.Type().Implements(textMarshalerType) && k.CanInterface() {
		if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
			if text, err := tm.MarshalText(); err == nil {
				return string(text)
			}
		}
	}

	if k.Kind() == reflect.Interface && !k.IsNil() {
		return mapKey(k.Elem())
	}

	return fmt.Sprint(k.Interface())
}
