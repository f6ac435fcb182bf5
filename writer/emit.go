package writer

import (
	"reflect"
	"strconv"

	"go.jacobcolvin.com/jsonio/ioerr"
	"go.jacobcolvin.com/jsonio/jnode"
)

// emitValue dispatches by runtime kind, mirroring section 4.5's emit
// pass: Array/Collection, JNode (a parsed-maps graph), Map, or reflected
// Object. declaredType is the static context the value is being written
// into (a struct field's type, a slice's element type, a map's value
// type), used only to decide whether @type must be shown; pass nil when
// there is none (an untyped root, or a value coming out of an []any /
// map[string]any slot).
func (w *Writer) emitValue(v any, declaredType reflect.Type) error {
	if v == nil {
		return w.writeString("null")
	}

	if isLogicalPrimitive(v) {
		return w.emitPrimitive(v)
	}

	if n, ok := v.(*jnode.Node); ok {
		return w.emitNode(n, declaredType)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return w.writeString("null")
		}

		return w.emitPointer(v, rv, declaredType)
	case reflect.Struct:
		return w.emitBareStruct(rv, declaredType)
	case reflect.Slice:
		return w.emitSequence(v, rv, declaredType)
	case reflect.Array:
		return w.emitArrayBare(rv, rv.Type().Elem())
	case reflect.Map:
		return w.emitMap(v, rv)
	default:
		return w.emitPrimitive(v)
	}
}

// emitPrimitive writes a logical primitive's bare scalar form. A
// registered codec (scalars, dates, big numbers, class references) is
// tried first since it owns the exact textual representation; any other
// numeric kind (plain int, int32, float32, ...) falls back to direct
// reflect-based formatting.
func (w *Writer) emitPrimitive(v any) error {
	rv := reflect.ValueOf(v)

	// WRITE_LONGS_AS_STRINGS overrides even a registered codec's own
	// int64/uint64 form, since the option exists precisely to change what
	// the built-in scalar codec would otherwise emit.
	if w.opts.WriteLongsAsStrings {
		switch rv.Kind() {
		case reflect.Int64:
			return w.writeString(quoteString(strconv.FormatInt(rv.Int(), 10)))
		case reflect.Uint64:
			return w.writeString(quoteString(strconv.FormatUint(rv.Uint(), 10)))
		}
	}

	if fn, ok := w.codecs.ResolveWriter(reflect.TypeOf(v)); ok {
		return fn(v, false, w)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.writeString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return w.writeString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return w.writeString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.String:
		return w.writeString(quoteString(rv.String()))
	case reflect.Bool:
		return w.writeString(strconv.FormatBool(rv.Bool()))
	default:
		return ioerr.Typef("writer: cannot emit value of type %T as a primitive", v)
	}
}

// emitPointer dereferences a pointer-typed value. Only a pointer-to-struct
// carries identity worth tracking (the mechanism behind shared/cyclic
// structure); a pointer to a scalar or slice is transparently dereferenced.
func (w *Writer) emitPointer(v any, rv reflect.Value, declaredType reflect.Type) error {
	elem := rv.Elem()

	if elem.Kind() != reflect.Struct {
		if !elem.CanInterface() {
			return w.writeString("null")
		}

		return w.emitValue(elem.Interface(), declaredType)
	}

	key, _ := identityOf(v)
	id := w.visited[key]

	effectiveDeclared := declaredType
	if effectiveDeclared != nil && effectiveDeclared.Kind() == reflect.Pointer {
		effectiveDeclared = effectiveDeclared.Elem()
	}

	showType := w.shouldShowType(elem.Type(), effectiveDeclared)

	if id > 0 {
		if w.emitted[key] {
			return w.writeRefObject(id)
		}

		w.emitted[key] = true
	}

	return w.emitStructObject(elem, id, showType)
}

// emitBareStruct handles a struct passed by value: it has no Go-level
// identity, so it is never wrapped with @id and never collapses to @ref.
func (w *Writer) emitBareStruct(rv reflect.Value, declaredType reflect.Type) error {
	showType := w.shouldShowType(rv.Type(), declaredType)

	return w.emitStructObject(rv, 0, showType)
}

func (w *Writer) emitStructObject(rv reflect.Value, id int64, showType bool) error {
	ow, err := w.beginObject()
	if err != nil {
		return err
	}

	if id > 0 {
		if err := ow.field(w.metaKeys.id, func() error {
			return w.writeString(strconv.FormatInt(id, 10))
		}); err != nil {
			return err
		}
	}

	if showType {
		if err := ow.field(w.metaKeys.typ, func() error {
			return w.writeString(quoteString(w.typeNameFor(rv.Type())))
		}); err != nil {
			return err
		}
	}

	for _, f := range w.fieldsFor(rv.Type()) {
		fv := rv.FieldByIndex(f.Index)
		if !fv.CanInterface() {
			continue
		}

		val := fv.Interface()
		ft := f.Type
		name := f.Name

		if err := ow.field(name, func() error { return w.emitValue(val, ft) }); err != nil {
			return err
		}
	}

	return ow.end()
}

// emitSequence handles a Go slice: unreferenced, it writes the bare `[...]`
// form (scenario 1's top-level array); referenced more than once, it
// wraps as `{"@id":n,"@items":[...]}`, the only way a JSON array literal
// can itself carry an id.
func (w *Writer) emitSequence(v any, rv reflect.Value, declaredType reflect.Type) error {
	elemType := rv.Type().Elem()

	key, hasIdentity := identityOf(v)

	var id int64
	if hasIdentity {
		id = w.visited[key]
	}

	if id == 0 {
		return w.emitArrayBare(rv, elemType)
	}

	if w.emitted[key] {
		return w.writeRefObject(id)
	}

	w.emitted[key] = true

	items := make([]any, rv.Len())
	for i := range items {
		if ev := rv.Index(i); ev.CanInterface() {
			items[i] = ev.Interface()
		}
	}

	return w.emitArrayObject(items, id, elemType)
}

func (w *Writer) emitArrayBare(rv reflect.Value, elemType reflect.Type) error {
	if err := w.writeByte('['); err != nil {
		return err
	}

	w.depth++

	n := rv.Len()

	for i := 0; i < n; i++ {
		if err := w.arraySep(i == 0); err != nil {
			return err
		}

		var iv any
		if ev := rv.Index(i); ev.CanInterface() {
			iv = ev.Interface()
		}

		if err := w.emitValue(iv, elemType); err != nil {
			return err
		}
	}

	return w.endArray(n > 0)
}

func (w *Writer) emitArrayBareAny(items []any, elemType reflect.Type) error {
	if err := w.writeByte('['); err != nil {
		return err
	}

	w.depth++

	for i, it := range items {
		if err := w.arraySep(i == 0); err != nil {
			return err
		}

		if err := w.emitValue(it, elemType); err != nil {
			return err
		}
	}

	return w.endArray(len(items) > 0)
}

func (w *Writer) emitArrayObject(items []any, id int64, elemType reflect.Type) error {
	ow, err := w.beginObject()
	if err != nil {
		return err
	}

	if err := ow.field(w.metaKeys.id, func() error {
		return w.writeString(strconv.FormatInt(id, 10))
	}); err != nil {
		return err
	}

	if err := ow.field(w.metaKeys.items, func() error {
		return w.emitArrayBareAny(items, elemType)
	}); err != nil {
		return err
	}

	return ow.end()
}

func (w *Writer) arraySep(first bool) error {
	if !first {
		if err := w.writeByte(','); err != nil {
			return err
		}
	}

	return w.newLineIndent()
}

func (w *Writer) endArray(wroteAny bool) error {
	w.depth--

	if wroteAny {
		if err := w.newLineIndent(); err != nil {
			return err
		}
	}

	return w.writeByte(']')
}

// emitMap handles a Go map: a string-keyed map uses the compact `{"k":v}`
// form, matching how it would already be written as a plain object;
// anything else uses the `{"@keys":[...],"@items":[...]}` form, since a
// JSON object key must be a string.
func (w *Writer) emitMap(v any, rv reflect.Value) error {
	if rv.IsNil() {
		return w.writeString("null")
	}

	key, _ := identityOf(v)
	id := w.visited[key]

	if id > 0 {
		if w.emitted[key] {
			return w.writeRefObject(id)
		}

		w.emitted[key] = true
	}

	ow, err := w.beginObject()
	if err != nil {
		return err
	}

	if id > 0 {
		if err := ow.field(w.metaKeys.id, func() error {
			return w.writeString(strconv.FormatInt(id, 10))
		}); err != nil {
			return err
		}
	}

	valType := rv.Type().Elem()

	if rv.Type().Key().Kind() == reflect.String {
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			val := iter.Value().Interface()

			if err := ow.field(k, func() error { return w.emitValue(val, valType) }); err != nil {
				return err
			}
		}

		return ow.end()
	}

	keyType := rv.Type().Key()

	keys := make([]any, 0, rv.Len())
	vals := make([]any, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().Interface())
		vals = append(vals, iter.Value().Interface())
	}

	if err := ow.field(w.metaKeys.keys, func() error { return w.emitArrayBareAny(keys, keyType) }); err != nil {
		return err
	}

	if err := ow.field(w.metaKeys.items, func() error { return w.emitArrayBareAny(vals, valType) }); err != nil {
		return err
	}

	return ow.end()
}

// emitNode handles a *jnode.Node, the shape produced by a USE_MAPS decode.
// An untyped array-like node re-emits as a bare JSON array (the same
// shorthand the parser recognizes on the way in); every other kind writes
// the object form it was parsed from, with @type only when the node's Type
// is set. A USE_MAPS decode clears Type on every node, so a document whose
// objects carried @type re-encodes without it.
func (w *Writer) emitNode(n *jnode.Node, declaredType reflect.Type) error {
	key, _ := identityOf(n)
	id := w.visited[key]

	if n.Kind == jnode.KindArrayLike && n.Type == "" {
		if id == 0 {
			return w.emitArrayBareAny(n.Items, nil)
		}

		if w.emitted[key] {
			return w.writeRefObject(id)
		}

		w.emitted[key] = true

		return w.emitArrayObject(n.Items, id, nil)
	}

	if id > 0 {
		if w.emitted[key] {
			return w.writeRefObject(id)
		}

		w.emitted[key] = true
	}

	ow, err := w.beginObject()
	if err != nil {
		return err
	}

	if id > 0 {
		if err := ow.field(w.metaKeys.id, func() error {
			return w.writeString(strconv.FormatInt(id, 10))
		}); err != nil {
			return err
		}
	}

	if n.Type != "" {
		if err := ow.field(w.metaKeys.typ, func() error {
			return w.writeString(quoteString(w.substituteTypeName(n.Type)))
		}); err != nil {
			return err
		}
	}

	switch n.Kind {
	case jnode.KindMapLike:
		if err := ow.field(w.metaKeys.keys, func() error { return w.emitArrayBareAny(n.ItemKeys, nil) }); err != nil {
			return err
		}

		if err := ow.field(w.metaKeys.items, func() error { return w.emitArrayBareAny(n.Items, nil) }); err != nil {
			return err
		}
	case jnode.KindArrayLike:
		if err := ow.field(w.metaKeys.items, func() error { return w.emitArrayBareAny(n.Items, nil) }); err != nil {
			return err
		}
	default:
		for _, k := range n.Keys() {
			val, _ := n.Get(k)
			key := k

			if err := ow.field(key, func() error { return w.emitValue(val, nil) }); err != nil {
				return err
			}
		}
	}

	return ow.end()
}
