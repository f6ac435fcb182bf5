package writer

import (
	"math/big"
	"reflect"
	"time"

	"go.jacobcolvin.com/jsonio/codec"
	"go.jacobcolvin.com/jsonio/jnode"
)

// isLogicalPrimitive reports whether v is a value type for serialization
// purposes (section 4.5/glossary): numbers, booleans, strings, dates, and
// class references. These never get an id and never emit @ref, so the
// trace pass skips them entirely rather than tracking identity it will
// never need.
func isLogicalPrimitive(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, *big.Int, *big.Float, codec.ClassRef:
		return true
	default:
		return false
	}
}

// identityOf returns the identity key for v and whether v is a kind that
// can meaningfully be shared: a pointer, map, or slice has an address a
// second reference could repeat; a plain struct value does not, since Go
// copies it on every assignment.
func identityOf(v any) (identityKey, bool) {
	if n, ok := v.(*jnode.Node); ok {
		return identityKey{ptr: reflect.ValueOf(n).Pointer(), kind: reflect.Pointer}, true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return identityKey{}, false
		}

		return identityKey{ptr: rv.Pointer(), kind: reflect.Pointer}, true
	case reflect.Map:
		if rv.IsNil() {
			return identityKey{}, false
		}

		return identityKey{ptr: rv.Pointer(), kind: reflect.Map}, true
	case reflect.Slice:
		if rv.IsNil() {
			return identityKey{}, false
		}

		return identityKey{ptr: rv.Pointer(), kind: reflect.Slice}, true
	default:
		return identityKey{}, false
	}
}
