package writer

import (
	"reflect"

	"go.jacobcolvin.com/jsonio/jnode"
)

// trace performs the depth-first reachability walk of section 4.5: a
// logical primitive is skipped outright; anything else is marked seen on
// first encounter (id sentinel 0) and, on a second encounter, promoted to
// a real id and recorded as referenced. Children are only enqueued the
// first time an object is reached, since a later occurrence just becomes
// a back-reference.
func (w *Writer) trace(v any) {
	if v == nil || isLogicalPrimitive(v) {
		return
	}

	key, hasIdentity := identityOf(v)
	if hasIdentity {
		if id, seen := w.visited[key]; seen {
			if id == 0 {
				w.visited[key] = w.nextID
				w.nextID++
			}

			return
		}

		w.visited[key] = 0
	}

	switch n := v.(type) {
	case *jnode.Node:
		w.traceNode(n)

		return
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		w.traceStruct(rv)
	case reflect.Slice, reflect.Array:
		w.traceSequence(rv)
	case reflect.Map:
		w.traceMap(rv)
	}
}

func (w *Writer) traceNode(n *jnode.Node) {
	for _, key := range n.Keys() {
		val, _ := n.Get(key)
		w.trace(val)
	}

	for _, it := range n.Items {
		w.trace(it)
	}

	for _, k := range n.ItemKeys {
		w.trace(k)
	}
}

func (w *Writer) traceStruct(rv reflect.Value) {
	for _, f := range w.types.Fields(rv.Type()) {
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanInterface() {
			continue
		}

		w.trace(fv.Interface())
	}
}

func (w *Writer) traceSequence(rv reflect.Value) {
	for i := 0; i < rv.Len(); i++ {
		ev := rv.Index(i)
		if !ev.CanInterface() {
			continue
		}

		w.trace(ev.Interface())
	}
}

func (w *Writer) traceMap(rv reflect.Value) {
	iter := rv.MapRange()
	for iter.Next() {
		w.trace(iter.Key().Interface())
		w.trace(iter.Value().Interface())
	}
}
