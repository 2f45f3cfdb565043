package clone

import (
	"fmt"
	"reflect"
)

type structural struct {
	maxDepth int
	seen     map[visit]reflect.Value
}

func (c *Cloner) structural(src reflect.Value) (reflect.Value, error) {
	s := &structural{maxDepth: c.maxDepth, seen: make(map[visit]reflect.Value)}

	return s.value(src, 0)
}

func (s *structural) value(src reflect.Value, depth int) (reflect.Value, error) {
	if depth > s.maxDepth {
		return reflect.Value{}, ErrTooDeep
	}

	kind := Classify(src)

	switch {
	case kind == KindInvalid:
		return reflect.Value{}, fmt.Errorf("%w: invalid value", ErrUncloneable)
	case kind == KindNull:
		return reflect.Zero(src.Type()), nil
	case kind.IsDropped():
		return reflect.Value{}, fmt.Errorf("%w: %s %s", ErrUncloneable, kind, src.Type())
	}

	if out, ok := selfClone(src); ok {
		return out, nil
	}

	switch src.Kind() {
	case reflect.Pointer:
		key := visitOf(src)
		if out, ok := s.seen[key]; ok {
			return out, nil
		}

		out := reflect.New(src.Type().Elem())
		s.seen[key] = out

		elem, err := s.value(src.Elem(), depth+1)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Elem().Set(elem)

		return out, nil

	case reflect.Interface:
		elem, err := s.value(src.Elem(), depth+1)
		if err != nil {
			return reflect.Value{}, err
		}

		out := reflect.New(src.Type()).Elem()
		out.Set(elem)

		return out, nil

	case reflect.Map:
		if src.IsNil() {
			return reflect.Zero(src.Type()), nil
		}

		key := visitOf(src)
		if out, ok := s.seen[key]; ok {
			return out, nil
		}

		out := reflect.MakeMapWithSize(src.Type(), src.Len())
		s.seen[key] = out

		iter := src.MapRange()
		for iter.Next() {
			k, err := s.value(iter.Key(), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}

			v, err := s.value(iter.Value(), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}

			out.SetMapIndex(k, v)
		}

		return out, nil

	case reflect.Slice:
		if src.IsNil() {
			return reflect.Zero(src.Type()), nil
		}

		// empty slices may share a zero-size base pointer, only memoise the rest
		key := visitOf(src)
		if src.Len() > 0 {
			if out, ok := s.seen[key]; ok {
				return out, nil
			}
		}

		out := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		if src.Len() > 0 {
			s.seen[key] = out
		}

		for i := range src.Len() {
			elem, err := s.value(src.Index(i), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}

		return out, nil

	case reflect.Array:
		out := reflect.New(src.Type()).Elem()
		for i := range src.Len() {
			elem, err := s.value(src.Index(i), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}

		return out, nil

	case reflect.Struct:
		out := reflect.New(src.Type()).Elem()
		out.Set(src) // unexported fields stay shallow

		if kind == KindDate {
			return out, nil
		}

		for i := range src.NumField() {
			if !src.Type().Field(i).IsExported() {
				continue
			}

			field, err := s.value(src.Field(i), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(field)
		}

		return out, nil

	default:
		out := reflect.New(src.Type()).Elem()
		out.Set(src)

		return out, nil
	}
}

// selfClone calls a Clone() T method whose result type matches the value's own type.
func selfClone(src reflect.Value) (reflect.Value, bool) {
	if !src.CanInterface() {
		return reflect.Value{}, false
	}

	method := src.MethodByName("Clone")
	if !method.IsValid() {
		return reflect.Value{}, false
	}

	mtype := method.Type()
	if mtype.NumIn() != 0 || mtype.NumOut() != 1 || mtype.Out(0) != src.Type() {
		return reflect.Value{}, false
	}

	return method.Call(nil)[0], true
}
