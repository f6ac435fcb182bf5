package main

import (
	"errors"
	"fmt"

	"go.jacobcolvin.com/jsonio/jnode"
)

// ErrCyclicDocument is returned by toPlain when a document's identity
// graph contains a cycle: ordinary JSON cannot express "the rest of this
// value points back at itself", only the dialect's @ref can.
var ErrCyclicDocument = errors.New("document contains a cycle and cannot be flattened to plain JSON")

// toPlain converts the *jnode.Node tree a UseMaps decode produces into
// bare map[string]any / []any / primitives, the shape encoding/json
// expects. visiting tracks nodes currently on the recursion stack so a
// genuine cycle is reported instead of overflowing the stack.
func toPlain(v any, visiting map[*jnode.Node]bool) (any, error) {
	n, ok := v.(*jnode.Node)
	if !ok {
		return v, nil
	}

	if visiting[n] {
		return nil, ErrCyclicDocument
	}

	visiting[n] = true
	defer delete(visiting, n)

	switch n.Kind {
	case jnode.KindArrayLike:
		out := make([]any, len(n.Items))

		for i, it := range n.Items {
			val, err := toPlain(it, visiting)
			if err != nil {
				return nil, err
			}

			out[i] = val
		}

		return out, nil

	case jnode.KindMapLike:
		out := make([]any, len(n.Items))

		for i := range n.Items {
			key, err := toPlain(n.ItemKeys[i], visiting)
			if err != nil {
				return nil, err
			}

			val, err := toPlain(n.Items[i], visiting)
			if err != nil {
				return nil, err
			}

			out[i] = map[string]any{"key": key, "value": val}
		}

		return out, nil

	default:
		out := make(map[string]any, n.Len())

		for _, key := range n.Keys() {
			raw, _ := n.Get(key)

			val, err := toPlain(raw, visiting)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}

			out[key] = val
		}

		return out, nil
	}
}
