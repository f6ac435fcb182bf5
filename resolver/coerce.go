package resolver

import (
	"reflect"
	"strconv"

	"go.jacobcolvin.com/jsonio/ioerr"
)

// coerceScalar implements the primitive-coercion table of section 8: an
// empty string into a boolean field yields false, into a numeric,
// pointer, interface, slice or map field yields the field's zero value
// (modeled here as Go nil/zero, since Go has no separate notion of a boxed
// null), and a numeric string into an integer field parses rather than
// erroring. A struct, array or other field kind is a coercion error, even
// for an empty string.
func coerceScalar(v any, want reflect.Type) (any, error) {
	switch want.Kind() {
	case reflect.String:
		return coerceToGoString(v), nil
	case reflect.Bool:
		return coerceToGoBool(v), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := coerceToGoInt(v)
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(n).Convert(want).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := coerceToGoInt(v)
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(uint64(n)).Convert(want).Interface(), nil
	case reflect.Float32, reflect.Float64:
		f, err := coerceToGoFloat(v)
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(f).Convert(want).Interface(), nil
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		if s, ok := v.(string); ok && s == "" {
			return zeroFor(want), nil
		}

		return nil, ioerr.Coercion(want.String(), v, nil)
	default:
		return nil, ioerr.Coercion(want.String(), v, nil)
	}
}

func coerceToGoString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}

func coerceToGoBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if t == "" {
			return false
		}

		b, err := strconv.ParseBool(t)

		return err == nil && b
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}

func coerceToGoInt(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	case bool:
		if t {
			return 1, nil
		}

		return 0, nil
	case string:
		if t == "" {
			return 0, nil
		}

		n, err := strconv.ParseInt(t, 10, 64)
		if err == nil {
			return n, nil
		}

		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, ioerr.Coercion("int", v, err)
		}

		return int64(f), nil
	default:
		return 0, ioerr.Coercion("int", v, nil)
	}
}

func coerceToGoFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int64:
		return float64(t), nil
	case bool:
		if t {
			return 1, nil
		}

		return 0, nil
	case string:
		if t == "" {
			return 0, nil
		}

		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, ioerr.Coercion("float", v, err)
		}

		return f, nil
	default:
		return 0, ioerr.Coercion("float", v, nil)
	}
}
