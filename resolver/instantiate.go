package resolver

import (
	"errors"
	"fmt"
	"reflect"

	"go.jacobcolvin.com/jsonio/container"
	"go.jacobcolvin.com/jsonio/ioerr"
	"go.jacobcolvin.com/jsonio/jnode"
	"go.jacobcolvin.com/jsonio/typeinfo"
)

// forwardRef signals that a value could not be materialized yet because
// it names a @id not yet seen during the main pass. Callers that own an
// addressable slot (a struct field, a slice index, a map key/value)
// catch it and register a patch instead of propagating the error.
type forwardRef struct {
	id int64
}

func (f forwardRef) Error() string {
	return fmt.Sprintf("resolver: forward reference to @id %d", f.id)
}

func asForwardRef(err error) (forwardRef, bool) {
	var fr forwardRef
	if errors.As(err, &fr) {
		return fr, true
	}

	return forwardRef{}, false
}

// resolveObject materializes a plain field-keyed node against a struct
// (or pointer-to-struct) target type. A pointer target's Node.Target is
// registered before fields are assigned, so a field elsewhere in the
// document that refers back to this object's @id resolves to the same
// pointer — the mechanism that makes self-referential cycles representable
// at all: a Go value-typed struct cannot contain itself, so only
// pointer-typed cycles are supported, matching how idiomatic Go (and
// encoding/json) already requires pointers for shared/cyclic structure.
func (r *Resolver) resolveObject(n *jnode.Node, want reflect.Type) (any, error) {
	switch r.types.ContainerHintFor(derefType(want)) {
	case typeinfo.ContainerMap:
		return r.resolveObjectAsMapContainer(n, container.NewMap())
	case typeinfo.ContainerSortedMap:
		return r.resolveObjectAsMapContainer(n, container.NewSortedMap())
	}

	if want.Kind() == reflect.Map {
		return r.resolveObjectAsMap(n, want)
	}

	structType := derefType(want)
	if structType.Kind() != reflect.Struct {
		return r.resolveFreeForm(n), nil
	}

	if want.Kind() == reflect.Pointer {
		ptr := reflect.New(structType)
		r.types.InitZeroFields(ptr.Elem())
		n.Target = ptr.Interface()

		if err := r.assignFields(n, ptr.Elem()); err != nil {
			return nil, err
		}

		return ptr.Interface(), nil
	}

	structVal := reflect.New(structType).Elem()
	r.types.InitZeroFields(structVal)

	if err := r.assignFields(n, structVal); err != nil {
		return nil, err
	}

	val := structVal.Interface()
	n.Target = val

	return val, nil
}

func (r *Resolver) assignFields(n *jnode.Node, structVal reflect.Value) error {
	byName := make(map[string]int, n.Len())
	for i, f := range r.types.Fields(structVal.Type()) {
		byName[f.Name] = i
	}

	fields := r.types.Fields(structVal.Type())

	var firstErr error

	n.Each(func(key string, value any) bool {
		idx, ok := byName[key]
		if !ok {
			return true
		}

		f := fields[idx]
		fv := structVal.FieldByIndex(f.Index)

		resolved, err := r.resolveValue(value, f.Type)
		if fr, ok := asForwardRef(err); ok {
			target := fv

			r.pending = append(r.pending, patch{id: fr.id, apply: func(v any) error {
				return setReflect(target, v)
			}})

			return true
		}

		if err != nil {
			firstErr = err

			return false
		}

		if err := setReflect(fv, resolved); err != nil {
			firstErr = err

			return false
		}

		return true
	})

	return firstErr
}

// resolveObjectAsMap handles an object literal (no @keys/@items) decoding
// into a declared Go map target, a convenience the dialect doesn't
// require but which mirrors how a compact-form `{"k":v,...}` map already
// round-trips through the writer.
func (r *Resolver) resolveObjectAsMap(n *jnode.Node, want reflect.Type) (any, error) {
	t := derefType(want)
	valType := t.Elem()

	mapVal := reflect.MakeMapWithSize(t, n.Len())
	n.Target = mapVal.Interface()

	var firstErr error

	n.Each(func(key string, value any) bool {
		resolved, err := r.resolveValue(value, valType)
		if fr, ok := asForwardRef(err); ok {
			k := reflect.ValueOf(key)

			r.pending = append(r.pending, patch{id: fr.id, apply: func(v any) error {
				mapVal.SetMapIndex(k, reflect.ValueOf(v))

				return nil
			}})

			return true
		}

		if err != nil {
			firstErr = err

			return false
		}

		mapVal.SetMapIndex(reflect.ValueOf(key), reflect.ValueOf(resolved))

		return true
	})

	return mapVal.Interface(), firstErr
}

// resolveObjectAsMapContainer is resolveObjectAsMap's container-hinted
// counterpart: a compact `{"k":v,...}` object decoding into a declared
// Map/SortedMap field, for the case where a document writes a map as a
// plain object rather than with explicit @keys/@items.
func (r *Resolver) resolveObjectAsMapContainer(n *jnode.Node, m setter) (any, error) {
	n.Target = m

	var firstErr error

	n.Each(func(key string, value any) bool {
		resolved, err := r.resolveValue(value, anyType)
		if fr, ok := asForwardRef(err); ok {
			k := key

			r.pending = append(r.pending, patch{id: fr.id, apply: func(v any) error {
				m.Set(k, v)

				return nil
			}})

			return true
		}

		if err != nil {
			firstErr = err

			return false
		}

		m.Set(key, resolved)

		return true
	})

	return m, firstErr
}

// resolveArray materializes an @items list against a slice target type,
// or, absent one, returns []any.
func (r *Resolver) resolveArray(items []any, want reflect.Type) (any, error) {
	t := derefType(want)

	switch r.types.ContainerHintFor(t) {
	case typeinfo.ContainerSet:
		return r.resolveSetContainer(items, container.NewSet())
	case typeinfo.ContainerSortedSet:
		return r.resolveSetContainer(items, container.NewSortedSet())
	}

	elemType := anyType
	wantSlice := t.Kind() == reflect.Slice || t.Kind() == reflect.Array

	if wantSlice {
		elemType = t.Elem()
	}

	sliceVal := reflect.MakeSlice(reflect.SliceOf(elemType), len(items), len(items))

	for i, it := range items {
		resolved, err := r.resolveValue(it, elemType)
		if fr, ok := asForwardRef(err); ok {
			idx := i

			r.pending = append(r.pending, patch{id: fr.id, apply: func(v any) error {
				return setReflect(sliceVal.Index(idx), v)
			}})

			continue
		}

		if err != nil {
			return nil, err
		}

		if err := setReflect(sliceVal.Index(i), resolved); err != nil {
			return nil, err
		}
	}

	if wantSlice {
		return sliceVal.Interface(), nil
	}

	out := make([]any, len(items))
	for i := 0; i < len(items); i++ {
		out[i] = sliceVal.Index(i).Interface()
	}

	return out, nil
}

// adder is the common shape of container.Set and container.SortedSet,
// enough for resolveSetContainer to populate either without caring which.
type adder interface {
	Add(v any)
}

// resolveSetContainer populates set (a freshly constructed container.Set or
// container.SortedSet) from a @items list. Go's reflect cannot instantiate
// container.InsertionOrderedSet[T]/container.RedBlackSet[T] for a T known
// only at decode time, so an abstract Set/SortedSet field always resolves
// to the any-typed instantiation regardless of the items' runtime type.
func (r *Resolver) resolveSetContainer(items []any, set adder) (any, error) {
	for _, it := range items {
		resolved, err := r.resolveValue(it, anyType)
		if fr, ok := asForwardRef(err); ok {
			r.pending = append(r.pending, patch{id: fr.id, apply: func(v any) error {
				set.Add(v)

				return nil
			}})

			continue
		}

		if err != nil {
			return nil, err
		}

		set.Add(resolved)
	}

	return set, nil
}

// setter is the common shape of container.Map and container.SortedMap.
type setter interface {
	Set(key, value any)
}

// resolveMapContainer populates m (a freshly constructed container.Map or
// container.SortedMap) from a @keys/@items node, deferring actual
// insertion to the rehash pass the same way resolveMap does for a plain Go
// map: a key may itself carry a forward reference not yet materialized.
func (r *Resolver) resolveMapContainer(n *jnode.Node, m setter) (any, error) {
	keys := make([]any, len(n.ItemKeys))
	vals := make([]any, len(n.Items))

	for i, k := range n.ItemKeys {
		rk, err := r.resolveValue(k, anyType)
		if fr, ok := asForwardRef(err); ok {
			idx := i

			r.pending = append(r.pending, patch{id: fr.id, apply: func(v any) error {
				keys[idx] = v

				return nil
			}})

			continue
		}

		if err != nil {
			return nil, err
		}

		keys[i] = rk
	}

	for i, v := range n.Items {
		rv, err := r.resolveValue(v, anyType)
		if fr, ok := asForwardRef(err); ok {
			idx := i

			r.pending = append(r.pending, patch{id: fr.id, apply: func(val any) error {
				vals[idx] = val

				return nil
			}})

			continue
		}

		if err != nil {
			return nil, err
		}

		vals[i] = rv
	}

	n.Target = m

	r.rehash = append(r.rehash, rehashEntry{insert: func() error {
		for i := range keys {
			m.Set(keys[i], vals[i])
		}

		return nil
	}})

	return m, nil
}

// resolveMap materializes a @keys/@items node against a map target type,
// queuing the actual insertion for the rehash pass since a key may itself
// contain a forward reference not yet materialized.
func (r *Resolver) resolveMap(n *jnode.Node, want reflect.Type) (any, error) {
	t := derefType(want)

	switch r.types.ContainerHintFor(t) {
	case typeinfo.ContainerMap:
		return r.resolveMapContainer(n, container.NewMap())
	case typeinfo.ContainerSortedMap:
		return r.resolveMapContainer(n, container.NewSortedMap())
	}

	keyType, valType := anyType, anyType
	mapType := reflect.MapOf(anyType, anyType)

	if t.Kind() == reflect.Map {
		keyType, valType = t.Key(), t.Elem()
		mapType = t
	}

	keys := make([]any, len(n.ItemKeys))
	vals := make([]any, len(n.Items))

	for i, k := range n.ItemKeys {
		rk, err := r.resolveValue(k, keyType)
		if fr, ok := asForwardRef(err); ok {
			idx := i

			r.pending = append(r.pending, patch{id: fr.id, apply: func(v any) error {
				keys[idx] = v

				return nil
			}})

			continue
		}

		if err != nil {
			return nil, err
		}

		keys[i] = rk
	}

	for i, v := range n.Items {
		rv, err := r.resolveValue(v, valType)
		if fr, ok := asForwardRef(err); ok {
			idx := i

			r.pending = append(r.pending, patch{id: fr.id, apply: func(val any) error {
				vals[idx] = val

				return nil
			}})

			continue
		}

		if err != nil {
			return nil, err
		}

		vals[i] = rv
	}

	mapVal := reflect.MakeMapWithSize(mapType, len(keys))
	n.Target = mapVal.Interface()

	r.rehash = append(r.rehash, rehashEntry{insert: func() error {
		for i := range keys {
			if err := setMapEntry(mapVal, keys[i], vals[i]); err != nil {
				return err
			}
		}

		return nil
	}})

	return mapVal.Interface(), nil
}

func setMapEntry(mapVal reflect.Value, key, val any) error {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() {
		kv = reflect.Zero(mapVal.Type().Key())
	}

	vv := reflect.ValueOf(val)
	if !vv.IsValid() {
		vv = reflect.Zero(mapVal.Type().Elem())
	}

	if !kv.Type().AssignableTo(mapVal.Type().Key()) {
		if !kv.Type().ConvertibleTo(mapVal.Type().Key()) {
			return ioerr.Typef("map key of type %s is not assignable to %s", kv.Type(), mapVal.Type().Key())
		}

		kv = kv.Convert(mapVal.Type().Key())
	}

	if !vv.Type().AssignableTo(mapVal.Type().Elem()) {
		if !vv.Type().ConvertibleTo(mapVal.Type().Elem()) {
			return ioerr.Typef("map value of type %s is not assignable to %s", vv.Type(), mapVal.Type().Elem())
		}

		vv = vv.Convert(mapVal.Type().Elem())
	}

	mapVal.SetMapIndex(kv, vv)

	return nil
}

// setReflect assigns v into the addressable slot fv, converting when the
// dynamic type isn't directly assignable (e.g. int64 decoded into an
// int32 field).
func setReflect(fv reflect.Value, v any) error {
	if v == nil {
		fv.Set(reflect.Zero(fv.Type()))

		return nil
	}

	rv := reflect.ValueOf(v)

	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)

		return nil
	}

	if rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))

		return nil
	}

	return ioerr.Coercion(fv.Type().String(), v, fmt.Errorf("value of type %s is not assignable", rv.Type()))
}

// runPatchPass drains pending forward-reference writes in fixed-point
// fashion: every slot the main pass reached should already have a
// materialized target, so one sweep normally empties the queue, but the
// loop tolerates patches whose own apply order happened to race ahead of
// a dependency.
func (r *Resolver) runPatchPass() error {
	remaining := r.pending

	for len(remaining) > 0 {
		var stillPending []patch

		progressed := false

		for _, p := range remaining {
			owner := r.ids[p.id]
			if owner == nil || owner.Target == nil {
				stillPending = append(stillPending, p)

				continue
			}

			if err := p.apply(owner.Target); err != nil {
				return err
			}

			progressed = true
		}

		if !progressed && len(stillPending) > 0 {
			ids := make([]int64, 0, len(stillPending))
			for _, p := range stillPending {
				ids = append(ids, p.id)
			}

			return ioerr.Reference(fmt.Sprintf("unresolved @ref ids after patch pass: %v", ids))
		}

		remaining = stillPending
	}

	return nil
}

func (r *Resolver) runRehashPass() error {
	for _, e := range r.rehash {
		if err := e.insert(); err != nil {
			return err
		}
	}

	return nil
}
