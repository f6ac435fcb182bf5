package typeinfo

import (
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/jsonio/jnode"
)

// InferSchema walks a decoded value — the USE_MAPS shape map[string]any /
// []any / *jnode.Node produces, or any Go value reachable from it — and
// builds a best-effort JSON Schema describing its structure. Unlike
// DescribeType this has no declared Go type to consult, so it can only
// ever describe the one document it was given: a sibling document with an
// optional field this one omits will describe differently.
func InferSchema(v any) *jsonschema.Schema {
	switch val := v.(type) {
	case nil:
		return &jsonschema.Schema{}

	case *jnode.Node:
		return inferNode(val)

	case map[string]any:
		return inferObject(val)

	case []any:
		return inferArray(val)

	case string:
		return &jsonschema.Schema{Type: schemaString}

	case bool:
		return &jsonschema.Schema{Type: schemaBoolean}

	case int64, int, float64:
		return &jsonschema.Schema{Type: schemaNumber}

	default:
		return &jsonschema.Schema{}
	}
}

func inferNode(n *jnode.Node) *jsonschema.Schema {
	switch n.Kind {
	case jnode.KindArrayLike:
		return inferArray(n.Items)

	case jnode.KindMapLike:
		schema := &jsonschema.Schema{Type: schemaObject}
		if len(n.Items) > 0 {
			schema.AdditionalProperties = InferSchema(n.Items[0])
		}

		return schema

	default:
		schema := &jsonschema.Schema{
			Type:       schemaObject,
			Properties: make(map[string]*jsonschema.Schema),
		}

		for _, key := range n.Keys() {
			val, _ := n.Get(key)
			schema.Properties[key] = InferSchema(val)
			schema.PropertyOrder = append(schema.PropertyOrder, key)
		}

		if n.Type != "" {
			schema.Description = "decoded @type: " + n.Type
		}

		return schema
	}
}

func inferObject(m map[string]any) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       schemaObject,
		Properties: make(map[string]*jsonschema.Schema),
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		schema.Properties[k] = InferSchema(m[k])
		schema.PropertyOrder = append(schema.PropertyOrder, k)
	}

	return schema
}

func inferArray(items []any) *jsonschema.Schema {
	schema := &jsonschema.Schema{Type: schemaArray}

	if len(items) > 0 {
		schema.Items = InferSchema(items[0])
	}

	return schema
}
