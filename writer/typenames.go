package writer

import "reflect"

// shortBuiltinNames maps the primitive-wrapper kinds to the short type
// names section 4.5 specifies, the closest Go analogue to json-io's
// boolean/byte/char/int/long/short/double/float/string/date/class set.
// typeNameFor is only called for struct values, whose kind never matches
// an entry here, so no emitted @type uses these names; scalars never
// carry @type at all, since their JSON literal form already says what
// they are.
var shortBuiltinNames = map[reflect.Kind]string{
	reflect.Bool:    "boolean",
	reflect.Int8:    "byte",
	reflect.Int16:   "short",
	reflect.Int32:   "int",
	reflect.Int:     "int",
	reflect.Int64:   "long",
	reflect.Uint8:   "byte",
	reflect.Uint16:  "short",
	reflect.Uint32:  "int",
	reflect.Uint:    "int",
	reflect.Uint64:  "long",
	reflect.Float32: "float",
	reflect.Float64: "double",
	reflect.String:  "string",
}

// typeNameFor returns the @type value for t: a short builtin name, the
// package-qualified Go type name, or the caller's TYPE_NAME_MAP
// substitution of either.
func (w *Writer) typeNameFor(t reflect.Type) string {
	name, ok := shortBuiltinNames[t.Kind()]
	if !ok {
		name = t.String()
	}

	return w.substituteTypeName(name)
}

func (w *Writer) substituteTypeName(name string) string {
	if short, ok := w.opts.TypeNameMap[name]; ok {
		return short
	}

	return name
}

// shouldShowType implements section 4.5's type-emission rule: only
// structs are ever ambiguous enough to need it (an array or map's JSON
// literal form already says what it decodes to; a scalar's literal form
// does too). A struct needs it whenever the declaring context can't
// already pin down its concrete type: no declared type at all, a
// polymorphic (interface) field, or a declared type that doesn't match
// the runtime type exactly.
func (w *Writer) shouldShowType(runtimeType, declaredType reflect.Type) bool {
	if w.opts.AlwaysShowType {
		return true
	}

	if runtimeType.Kind() != reflect.Struct {
		return false
	}

	if declaredType == nil {
		return true
	}

	if declaredType.Kind() == reflect.Interface {
		return true
	}

	return declaredType != runtimeType
}
