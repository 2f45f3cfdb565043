package clone

import (
	"reflect"
	"time"
)

//go:generate go tool stringer -type=ValueKind -output=kind_string.go

// ValueKind is the closed classification every tier dispatches on.
type ValueKind int

const (
	KindInvalid    ValueKind = iota // zero reflect.Value
	KindNull                        // nil pointer, interface, func or channel
	KindScalar                      // bool, numbers, strings
	KindExecutable                  // func values
	KindSymbol                      // channels and unsafe pointers, identity-only handles
	KindHost                        // values bound to the host environment, see HostObject
	KindError                       // values implementing error
	KindDate                        // time.Time
	KindMap                         // maps, except sets
	KindSet                         // map[K]struct{}
	KindList                        // slices and arrays
	KindRecord                      // structs
	KindPointer                     // non-nil pointers to anything else
	KindInterface                   // non-nil interface values, classify Elem() for the dynamic kind

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// HostObject marks values that only make sense inside the environment that
// created them: windows, documents, DOM nodes, events, open handles.
// A value is treated as host-bound when HostTag returns a non-empty tag.
type HostObject interface {
	HostTag() string
}

// Common host tags.
const (
	TagWindow   = "window"
	TagDocument = "document"
	TagElement  = "element"
	TagNode     = "node"
	TagEvent    = "event"
)

var (
	timeType      = reflect.TypeFor[time.Time]()
	errorType     = reflect.TypeFor[error]()
	hostType      = reflect.TypeFor[HostObject]()
	emptyStruct   = reflect.TypeFor[struct{}]()
	errRecordType = reflect.TypeFor[*ErrorRecord]()
)

// IsDropped reports whether tiers that filter values omit this kind.
func (k ValueKind) IsDropped() bool {
	switch k {
	default:
		return false
	case KindExecutable, KindSymbol, KindHost:
		return true
	}
}

// IsContainer reports whether the kind holds other values.
func (k ValueKind) IsContainer() bool {
	switch k {
	default:
		return false
	case KindMap, KindSet, KindList, KindRecord, KindPointer, KindInterface:
		return true
	}
}

// Classify maps a reflected value onto its ValueKind. Checks run from the
// most specific to the most generic, so a *MyError is KindError rather than
// KindPointer and a time.Time is KindDate rather than KindRecord.
func Classify(v reflect.Value) ValueKind {
	if !v.IsValid() {
		return KindInvalid
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return KindNull
		}
	}

	switch v.Kind() {
	case reflect.Interface:
		return KindInterface
	case reflect.Func:
		return KindExecutable
	case reflect.Chan, reflect.UnsafePointer:
		return KindSymbol
	}

	rtype := v.Type()

	if rtype.Implements(hostType) && isHost(v) {
		return KindHost
	}

	if rtype.Implements(errorType) {
		return KindError
	}

	if rtype == timeType {
		return KindDate
	}

	switch rtype.Kind() {
	default:
		return KindInvalid
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128,
		reflect.String:
		return KindScalar
	case reflect.Map:
		if rtype.Elem() == emptyStruct {
			return KindSet
		}
		return KindMap
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Struct:
		return KindRecord
	case reflect.Pointer:
		return KindPointer
	}
}

// ClassifyOf is Classify for a plain value.
func ClassifyOf(v any) ValueKind {
	return Classify(reflect.ValueOf(v))
}

// isHost asks the value for its tag. Values reached through unexported
// fields cannot be asked and count as host-bound.
func isHost(v reflect.Value) bool {
	if !v.CanInterface() {
		return true
	}

	host, ok := v.Interface().(HostObject)
	if !ok {
		return false
	}

	return host.HostTag() != ""
}
