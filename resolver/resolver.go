// Package resolver implements section 4.3: converting the parser's
// intermediate jnode.Node tree into either a typed object graph or, when
// no concrete target type is given, the same ordered-map representation
// the USE_MAPS option asks for explicitly. Both paths share one identity
// rule: a Node's Target field is the bridge between the parsed tree and
// the materialized graph, and it is ever assigned once.
//
// Go's generics carry element types statically through reflect.Type, so
// the "parameterized-container type stamping" pass in the original
// design (walking a value tree alongside a type-erased type tree to
// recover List<Map<String,T>>-shaped generics) has no analogue here:
// want is already the right element type at every recursive call.
package resolver

import (
	"fmt"
	"reflect"

	"go.jacobcolvin.com/jsonio/codec"
	"go.jacobcolvin.com/jsonio/container"
	"go.jacobcolvin.com/jsonio/ioerr"
	"go.jacobcolvin.com/jsonio/jnode"
	"go.jacobcolvin.com/jsonio/parser"
	"go.jacobcolvin.com/jsonio/typeinfo"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// patch is a deferred write into a field, slice index, or map-key slot
// whose value was a forward reference at the time it was encountered.
type patch struct {
	id    int64
	apply func(value any) error
}

// rehashEntry is a pending map insertion, deferred until every key and
// value it depends on has been fully materialized (section 4.3's rehash
// pass): map keys may themselves carry forward references, so inserting
// early could key the map by an incomplete value.
type rehashEntry struct {
	insert func() error
}

// Resolver converts one parsed document's root value into a typed (or
// map-shaped) Go value. Not safe for concurrent use, and not reused
// across documents: pending patches and the rehash queue are scoped to
// one call to Resolve.
type Resolver struct {
	ids        parser.IDTable
	types      *typeinfo.Registry
	codecs     *codec.Registry
	typeByName map[string]reflect.Type
	useMaps    bool
	pending    []patch
	rehash     []rehashEntry
}

// New creates a Resolver over ids (populated by the parser) using types
// for field discovery/instantiation and codecs for per-type overrides.
// useMaps mirrors the USE_MAPS option: when true, every object decodes to
// the ordered-map representation regardless of want, and an unresolvable
// @type degrades gracefully (section 4.6) instead of raising an error.
func New(ids parser.IDTable, types *typeinfo.Registry, codecs *codec.Registry, useMaps bool) *Resolver {
	return &Resolver{ids: ids, types: types, codecs: codecs, useMaps: useMaps, typeByName: map[string]reflect.Type{}}
}

// RegisterType makes name resolvable as a decode target for nodes whose
// @type equals name, taking priority over a struct field's declared type
// (section 4.3's instantiation priority list): this is how a polymorphic
// field typed as an interface ends up materialized as the right concrete
// struct.
func (r *Resolver) RegisterType(name string, t reflect.Type) {
	r.typeByName[name] = t
}

// ResolveValue implements codec.Stack so a custom read codec can recurse
// back into the resolver for a nested value.
func (r *Resolver) ResolveValue(raw any, want reflect.Type) (any, error) {
	return r.resolveValue(raw, want)
}

// Resolve converts root into a value assignable to want. In USE_MAPS mode,
// or when want is the empty interface with no @type to resolve, the result
// is the ordered-map representation: an object decodes to *jnode.Node, a
// top-level array to a *jnode.Node of KindArrayLike (an array nested in a
// field stays []any), and @ref cycles are restored as
// shared Node pointers rather than typed back-references.
func (r *Resolver) Resolve(root any, want reflect.Type) (any, error) {
	var (
		val any
		err error
	)

	if r.useMaps {
		val = r.resolveFreeForm(root)
	} else if want == nil || (want.Kind() == reflect.Interface && want.NumMethod() == 0) {
		val, err = r.resolveAny(root)
	} else {
		val, err = r.resolveValue(root, want)
	}

	if err != nil {
		return nil, err
	}

	if err := r.runPatchPass(); err != nil {
		return nil, err
	}

	if err := r.runRehashPass(); err != nil {
		return nil, err
	}

	return val, nil
}

// resolveFreeForm is the USE_MAPS walk: it never instantiates a Go type by
// name, even when @type is present, and never fails on an unrecognized
// @type — it simply clears it and returns the node as a plain map, per
// section 4.6's graceful-degradation rule. Node.Target doubles as the
// per-node memo that breaks cycles: it is set to the node itself before
// children are walked, so a back-reference found mid-walk returns
// immediately instead of recursing forever.
func (r *Resolver) resolveFreeForm(v any) any {
	switch n := v.(type) {
	case *jnode.Node:
		if id, ok := n.IsRef(); ok {
			target := r.ids[id]
			if target == nil {
				return n
			}

			if target.Target != nil {
				return target.Target
			}

			return r.resolveFreeForm(target)
		}

		if n.Target != nil {
			return n.Target
		}

		n.Target = n
		n.Type = ""

		for _, key := range n.Keys() {
			val, _ := n.Get(key)
			n.Set(key, r.resolveFreeForm(val))
		}

		for i, it := range n.Items {
			n.Items[i] = r.resolveFreeForm(it)
		}

		for i, k := range n.ItemKeys {
			n.ItemKeys[i] = r.resolveFreeForm(k)
		}

		return n
	case []any:
		for i, it := range n {
			n[i] = r.resolveFreeForm(it)
		}

		return n
	default:
		return v
	}
}

// resolveAny is the default (non-USE_MAPS) untyped path: want is the empty
// interface, so there is no declared field type to fall back on, but an
// explicit @type is still resolved by name and, if unresolvable, is a hard
// error rather than a silent degradation — USE_MAPS is the only mode that
// tolerates an unknown type name.
func (r *Resolver) resolveAny(raw any) (any, error) {
	switch v := raw.(type) {
	case *jnode.Node:
		if id, ok := v.IsRef(); ok {
			target := r.ids[id]
			if target == nil {
				return nil, ioerr.Reference(fmt.Sprintf("@ref %d names no defined @id", id))
			}

			if target.Target != nil {
				return target.Target, nil
			}

			return nil, forwardRef{id: id}
		}

		if v.Type != "" {
			t, ok := r.typeByName[v.Type]
			if !ok {
				return nil, ioerr.Typef("unknown class %q named by @type", v.Type)
			}

			return r.resolveValue(v, t)
		}

		if v.Target != nil {
			return v.Target, nil
		}

		v.Target = v

		var firstErr error

		for _, key := range v.Keys() {
			val, _ := v.Get(key)

			resolved, err := r.resolveAny(val)
			if fr, ok := asForwardRef(err); ok {
				k := key

				r.pending = append(r.pending, patch{id: fr.id, apply: func(val any) error {
					v.Set(k, val)

					return nil
				}})

				continue
			}

			if err != nil {
				return nil, err
			}

			v.Set(key, resolved)
		}

		for i, it := range v.Items {
			resolved, err := r.resolveAny(it)
			if fr, ok := asForwardRef(err); ok {
				idx := i

				r.pending = append(r.pending, patch{id: fr.id, apply: func(val any) error {
					v.Items[idx] = val

					return nil
				}})

				continue
			}

			if err != nil {
				return nil, err
			}

			v.Items[i] = resolved
		}

		for i, k := range v.ItemKeys {
			resolved, err := r.resolveAny(k)
			if fr, ok := asForwardRef(err); ok {
				idx := i

				r.pending = append(r.pending, patch{id: fr.id, apply: func(val any) error {
					v.ItemKeys[idx] = val

					return nil
				}})

				continue
			}

			if err != nil {
				return nil, err
			}

			v.ItemKeys[i] = resolved
		}

		return v, firstErr
	case []any:
		for i, it := range v {
			resolved, err := r.resolveAny(it)
			if fr, ok := asForwardRef(err); ok {
				idx := i

				r.pending = append(r.pending, patch{id: fr.id, apply: func(val any) error {
					v[idx] = val

					return nil
				}})

				continue
			}

			if err != nil {
				return nil, err
			}

			v[i] = resolved
		}

		return v, nil
	default:
		return raw, nil
	}
}

// resolveValue materializes raw as a value assignable to want. It
// returns (nil, forwardRef) when raw is a @ref whose target is not yet
// materialized; callers that can defer (struct fields, slice/map slots)
// catch that and register a patch instead of failing outright.
func (r *Resolver) resolveValue(raw any, want reflect.Type) (any, error) {
	if want == nil || (want.Kind() == reflect.Interface && want.NumMethod() == 0) {
		if r.useMaps {
			return r.resolveFreeForm(raw), nil
		}

		return r.resolveAny(raw)
	}

	if raw == nil {
		return zeroFor(want), nil
	}

	if fn, ok := r.codecs.ResolveReader(derefType(want)); ok {
		if n, isNode := raw.(*jnode.Node); isNode && n.Type != "" && n.Kind == jnode.KindArrayLike && len(n.Items) == 0 {
			return nil, ioerr.Typef("ambiguous node: @type %q with empty @items on scalar-wrapper field %s; cannot tell whether this is an empty collection or a wrapped scalar", n.Type, want)
		}

		return fn(primitiveOf(raw), r)
	}

	switch v := raw.(type) {
	case *jnode.Node:
		return r.resolveNode(v, want)
	case []any:
		return r.resolveArray(v, want)
	case string, bool, int64, float64:
		return coerceScalar(v, want)
	default:
		return nil, ioerr.Typef("cannot resolve value of type %T into %s", raw, want)
	}
}

// resolveNode dispatches an object-shaped node by its discriminator:
// @ref, map-like (@keys+@items), array-like (@items only), or a plain
// field-keyed object materialized by reflection. A @type present on the
// node takes priority over want whenever it names a registered type,
// matching section 4.3's instantiation order; an unregistered @type is
// left to want only when want is itself a concrete, non-interface type
// (the document is trusted to agree with the field it's filling).
func (r *Resolver) resolveNode(n *jnode.Node, want reflect.Type) (any, error) {
	if id, ok := n.IsRef(); ok {
		target := r.ids[id]
		if target == nil {
			return nil, ioerr.Reference(fmt.Sprintf("@ref %d names no defined @id", id))
		}

		if target.Target != nil {
			return target.Target, nil
		}

		return nil, forwardRef{id: id}
	}

	if n.Type != "" {
		if t, ok := r.typeByName[n.Type]; ok {
			want = t
		} else if want.Kind() == reflect.Interface {
			return nil, ioerr.Typef("unknown class %q named by @type", n.Type)
		}
	}

	if n.IsEmptyObject() {
		switch r.types.ContainerHintFor(derefType(want)) {
		case typeinfo.ContainerSet:
			val := container.NewSet()
			n.Target = val

			return val, nil
		case typeinfo.ContainerSortedSet:
			val := container.NewSortedSet()
			n.Target = val

			return val, nil
		case typeinfo.ContainerMap:
			val := container.NewMap()
			n.Target = val

			return val, nil
		case typeinfo.ContainerSortedMap:
			val := container.NewSortedMap()
			n.Target = val

			return val, nil
		}

		v, err := r.types.New(derefType(want))
		if err != nil {
			return nil, ioerr.Type(err.Error())
		}

		val := v.Interface()
		n.Target = val

		return val, nil
	}

	switch n.Kind {
	case jnode.KindMapLike:
		return r.resolveMap(n, want)
	case jnode.KindArrayLike:
		return r.resolveArray(n.Items, want)
	default:
		return r.resolveObject(n, want)
	}
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t
}

func zeroFor(t reflect.Type) any {
	return reflect.Zero(t).Interface()
}

func primitiveOf(raw any) any {
	if n, ok := raw.(*jnode.Node); ok {
		return n
	}

	return raw
}
