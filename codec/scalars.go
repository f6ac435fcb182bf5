package codec

import (
	"reflect"
	"strconv"
)

var (
	stringType  = reflect.TypeOf("")
	boolType    = reflect.TypeOf(false)
	int64Type   = reflect.TypeOf(int64(0))
	float64Type = reflect.TypeOf(float64(0))
)

// registerScalarCodecs installs codecs for the logical-primitive scalar
// types, all with a primitive form: the writer never opens a `{...}` body
// for a bare string, boolean, or number.
func registerScalarCodecs(r *Registry) {
	r.RegisterReader(stringType, func(raw any, _ Stack) (any, error) {
		return coerceToString(raw), nil
	})
	r.RegisterWriter(stringType, func(value any, _ bool, sink Sink) error {
		return sink.WriteRaw(strconv.Quote(value.(string)))
	}, true)

	r.RegisterReader(boolType, func(raw any, _ Stack) (any, error) {
		return coerceToBool(raw), nil
	})
	r.RegisterWriter(boolType, func(value any, _ bool, sink Sink) error {
		return sink.WriteRaw(strconv.FormatBool(value.(bool)))
	}, true)

	r.RegisterReader(int64Type, func(raw any, _ Stack) (any, error) {
		return coerceToInt64(raw), nil
	})
	r.RegisterWriter(int64Type, func(value any, _ bool, sink Sink) error {
		return sink.WriteRaw(strconv.FormatInt(value.(int64), 10))
	}, true)

	r.RegisterReader(float64Type, func(raw any, _ Stack) (any, error) {
		return coerceToFloat64(raw), nil
	})
	r.RegisterWriter(float64Type, func(value any, _ bool, sink Sink) error {
		return sink.WriteRaw(strconv.FormatFloat(value.(float64), 'g', -1, 64))
	}, true)

	// String is excluded from codec resolution: ResolveReader and
	// ResolveWriter report no codec for it, so the resolver's own scalar
	// coercion and the writer's JSON string escaping handle strings.
	r.MarkNotCustom(stringType)
}

// coerceToString implements the "" -> null / primitive-coercion table for
// a string-typed field.
func coerceToString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case nil:
		return ""
	default:
		return ""
	}
}

// coerceToBool implements "" -> false; every other string is true unless
// it parses as a boolean literal.
func coerceToBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		if v == "" {
			return false
		}

		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}

		return true
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

func coerceToInt64(raw any) int64 {
	switch v := raw.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}

		return 0
	case string:
		if v == "" {
			return 0
		}

		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return n
		}

		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return int64(f)
		}

		return 0
	default:
		return 0
	}
}

func coerceToFloat64(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case bool:
		if v {
			return 1
		}

		return 0
	case string:
		if v == "" {
			return 0
		}

		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}

		return 0
	default:
		return 0
	}
}
