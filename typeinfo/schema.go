package typeinfo

import (
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// DescribeType builds a JSON Schema fragment describing the Go shape t
// would decode into. The "jsonio describe" subcommand does not call it;
// it uses InferSchema on a decoded document. This has
// nothing to do with validating decoded documents against a schema,
// which the wire format deliberately never does; it only documents the
// target type for a human picking a @type to write.
func (r *Registry) DescribeType(t reflect.Type) *jsonschema.Schema {
	return r.describe(t, map[reflect.Type]bool{})
}

func (r *Registry) describe(t reflect.Type, seen map[reflect.Type]bool) *jsonschema.Schema {
	if t.Kind() == reflect.Pointer {
		return r.describe(t.Elem(), seen)
	}

	switch t.Kind() {
	case reflect.Bool:
		return &jsonschema.Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &jsonschema.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &jsonschema.Schema{Type: "number"}
	case reflect.String:
		return &jsonschema.Schema{Type: "string"}
	case reflect.Slice, reflect.Array:
		if seen[t] {
			return &jsonschema.Schema{Type: "array"}
		}

		seen[t] = true

		return &jsonschema.Schema{Type: "array", Items: r.describe(t.Elem(), seen)}
	case reflect.Map:
		if seen[t] {
			return &jsonschema.Schema{Type: "object"}
		}

		seen[t] = true

		return &jsonschema.Schema{
			Type:                 "object",
			AdditionalProperties: r.describe(t.Elem(), seen),
		}
	case reflect.Struct:
		return r.describeStruct(t, seen)
	case reflect.Interface:
		return &jsonschema.Schema{}
	default:
		return &jsonschema.Schema{}
	}
}

func (r *Registry) describeStruct(t reflect.Type, seen map[reflect.Type]bool) *jsonschema.Schema {
	if seen[t] {
		return &jsonschema.Schema{Type: "object"}
	}

	seen[t] = true

	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema),
	}

	var order []string

	for _, f := range r.Fields(t) {
		schema.Properties[f.Name] = r.describe(f.Type, seen)
		order = append(order, f.Name)
	}

	schema.PropertyOrder = order

	return schema
}
