package codec

import (
	"fmt"
	"math/big"
	"reflect"
)

var (
	bigIntType   = reflect.TypeOf((*big.Int)(nil))
	bigFloatType = reflect.TypeOf((*big.Float)(nil))
)

// registerBigNumberCodecs implements the coercion table of section 4.4:
// string parses (empty trims to null, i.e. a zero value here since Go has
// no big-number nil), boolean maps to 0/1, float truncates for BigInteger
// and is exact for BigFloat (this module's BigDecimal analogue), and any
// integer kind wraps directly.
func registerBigNumberCodecs(r *Registry) {
	r.RegisterReader(bigIntType, func(raw any, _ Stack) (any, error) {
		return coerceToBigInt(raw)
	})
	r.RegisterWriter(bigIntType, func(value any, _ bool, sink Sink) error {
		return sink.WriteRaw(value.(*big.Int).String())
	}, true)

	r.RegisterReader(bigFloatType, func(raw any, _ Stack) (any, error) {
		return coerceToBigFloat(raw)
	})
	r.RegisterWriter(bigFloatType, func(value any, _ bool, sink Sink) error {
		return sink.WriteRaw(value.(*big.Float).Text('g', -1))
	}, true)
}

func coerceToBigInt(raw any) (*big.Int, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return big.NewInt(0), nil
		}

		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			f, _, err := big.ParseFloat(v, 10, 0, big.ToNearestEven)
			if err != nil {
				return nil, fmt.Errorf("codec: %q is not a valid integer", v)
			}

			i, _ := f.Int(nil)

			return i, nil
		}

		return n, nil
	case bool:
		if v {
			return big.NewInt(1), nil
		}

		return big.NewInt(0), nil
	case int64:
		return big.NewInt(v), nil
	case float64:
		return big.NewInt(int64(v)), nil
	case *big.Int:
		return v, nil
	case *big.Float:
		i, _ := v.Int(nil)

		return i, nil
	default:
		return nil, fmt.Errorf("codec: cannot coerce %T to a big integer", raw)
	}
}

func coerceToBigFloat(raw any) (*big.Float, error) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return new(big.Float), nil
		}

		f, _, err := big.ParseFloat(v, 10, 200, big.ToNearestEven)
		if err != nil {
			return nil, fmt.Errorf("codec: %q is not a valid decimal", v)
		}

		return f, nil
	case bool:
		if v {
			return big.NewFloat(1), nil
		}

		return big.NewFloat(0), nil
	case int64:
		return new(big.Float).SetInt64(v), nil
	case float64:
		return big.NewFloat(v), nil
	case *big.Int:
		return new(big.Float).SetInt(v), nil
	case *big.Float:
		return v, nil
	default:
		return nil, fmt.Errorf("codec: cannot coerce %T to a big decimal", raw)
	}
}
