package clone

import (
	"reflect"
)

type walker struct {
	seen map[visit]reflect.Value
}

// walk never fails. Cycles through pointers, maps and non-empty slices are
// reproduced through the seen table rather than followed forever.
func (c *Cloner) walk(src reflect.Value) (reflect.Value, error) {
	w := &walker{seen: make(map[visit]reflect.Value)}

	out, keep := w.value(src)
	if !keep {
		return reflect.Zero(src.Type()), nil
	}

	return out, nil
}

// value copies src. keep is false when src is dropped; the caller then
// leaves a zero value in place, or omits the entry for maps.
func (w *walker) value(src reflect.Value) (reflect.Value, bool) {
	kind := Classify(src)

	switch {
	case kind == KindInvalid:
		return reflect.Value{}, false
	case kind == KindNull:
		return reflect.Zero(src.Type()), true
	case kind.IsDropped():
		return reflect.Zero(src.Type()), false
	}

	switch src.Kind() {
	case reflect.Interface:
		return w.iface(src)

	case reflect.Pointer:
		key := visitOf(src)
		if out, ok := w.seen[key]; ok {
			return out, true
		}

		out := reflect.New(src.Type().Elem())
		w.seen[key] = out

		elem, keep := w.value(src.Elem())
		if !keep {
			delete(w.seen, key)
			return reflect.Zero(src.Type()), false
		}
		out.Elem().Set(elem)

		return out, true

	case reflect.Map:
		if src.IsNil() {
			return reflect.Zero(src.Type()), true
		}

		key := visitOf(src)
		if out, ok := w.seen[key]; ok {
			return out, true
		}

		out := reflect.MakeMapWithSize(src.Type(), src.Len())
		w.seen[key] = out

		iter := src.MapRange()
		for iter.Next() {
			k, keepKey := w.value(iter.Key())
			v, keepValue := w.value(iter.Value())

			if keepKey && keepValue {
				out.SetMapIndex(k, v)
			}
		}

		return out, true

	case reflect.Slice:
		if src.IsNil() {
			return reflect.Zero(src.Type()), true
		}

		key := visitOf(src)
		if src.Len() > 0 {
			if out, ok := w.seen[key]; ok {
				return out, true
			}
		}

		out := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		if src.Len() > 0 {
			w.seen[key] = out
		}

		w.elements(out, src)

		return out, true

	case reflect.Array:
		out := reflect.New(src.Type()).Elem()
		w.elements(out, src)

		return out, true

	case reflect.Struct:
		out := reflect.New(src.Type()).Elem()
		out.Set(src) // unexported fields stay shallow

		if kind == KindDate {
			return out, true
		}

		for i := range src.NumField() {
			if !src.Type().Field(i).IsExported() {
				continue
			}

			// dropped fields are reset to their zero value
			field, _ := w.value(src.Field(i))
			if !field.IsValid() {
				field = reflect.Zero(src.Type().Field(i).Type)
			}
			out.Field(i).Set(field)
		}

		return out, true

	default:
		out := reflect.New(src.Type()).Elem()
		out.Set(src)

		return out, true
	}
}

// iface copies the dynamic value of an interface. Errors held in an
// interface that *ErrorRecord satisfies are replaced by their record.
func (w *walker) iface(src reflect.Value) (reflect.Value, bool) {
	out := reflect.New(src.Type()).Elem()
	elem := src.Elem()

	if Classify(elem) == KindError && errRecordType.AssignableTo(src.Type()) && elem.CanInterface() {
		if err, ok := elem.Interface().(error); ok {
			out.Set(reflect.ValueOf(NewErrorRecord(err)))
			return out, true
		}
	}

	copied, keep := w.value(elem)
	if !keep {
		return out, false
	}
	out.Set(copied)

	return out, true
}

func (w *walker) elements(dst, src reflect.Value) {
	for i := range src.Len() {
		if elem, keep := w.value(src.Index(i)); keep {
			dst.Index(i).Set(elem)
		}
	}
}
