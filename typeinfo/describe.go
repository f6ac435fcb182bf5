package typeinfo

import (
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSON Schema type constants, mirrored from the YAML-inference generator
// this reflection-based walk is adapted from.
const (
	schemaBoolean = "boolean"
	schemaInteger = "integer"
	schemaNumber  = "number"
	schemaString  = "string"
	schemaArray   = "array"
	schemaObject  = "object"
)

// DescribeType reflect-walks t into a JSON Schema describing the shape a
// value of that type decodes into, for Go callers documenting a type (the
// `jsonio describe` subcommand uses InferSchema on a decoded document
// instead). It is
// documentation for humans, not a validator: nothing in this package
// checks a decoded document against the result.
func DescribeType(r *Registry, t reflect.Type) *jsonschema.Schema {
	return describe(r, t, map[reflect.Type]bool{})
}

func describe(r *Registry, t reflect.Type, seen map[reflect.Type]bool) *jsonschema.Schema {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return &jsonschema.Schema{Type: schemaBoolean}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &jsonschema.Schema{Type: schemaInteger}

	case reflect.Float32, reflect.Float64:
		return &jsonschema.Schema{Type: schemaNumber}

	case reflect.String:
		return &jsonschema.Schema{Type: schemaString}

	case reflect.Slice, reflect.Array:
		return &jsonschema.Schema{
			Type:  schemaArray,
			Items: describe(r, t.Elem(), seen),
		}

	case reflect.Map:
		return &jsonschema.Schema{
			Type: schemaObject,
			AdditionalProperties: describe(r, t.Elem(), seen),
		}

	case reflect.Interface:
		// An undeclared concrete type: any JSON value is admissible.
		return &jsonschema.Schema{}

	case reflect.Struct:
		return describeStruct(r, t, seen)

	default:
		return &jsonschema.Schema{}
	}
}

func describeStruct(r *Registry, t reflect.Type, seen map[reflect.Type]bool) *jsonschema.Schema {
	if seen[t] {
		// Recursive type (e.g. a tree node pointing at its own type):
		// describe it by name instead of recursing forever.
		return &jsonschema.Schema{Type: schemaObject, Description: "recursive: " + t.Name()}
	}

	seen[t] = true
	defer delete(seen, t)

	schema := &jsonschema.Schema{
		Type:       schemaObject,
		Properties: make(map[string]*jsonschema.Schema),
	}

	for _, f := range r.Fields(t) {
		schema.Properties[f.Name] = describe(r, f.Type, seen)
		schema.PropertyOrder = append(schema.PropertyOrder, f.Name)
	}

	if len(schema.Properties) == 0 {
		schema.Properties = nil
		schema.PropertyOrder = nil
	}

	return schema
}
