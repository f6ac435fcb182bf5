package writer

import (
	"reflect"

	"go.jacobcolvin.com/jsonio/typeinfo"
)

// fieldsFor returns the fields to emit for t, in emission order: the
// caller's FIELD_SPECIFIERS list when one is registered for t, otherwise
// the type adapter's reflected (and shadow-qualified) field list.
func (w *Writer) fieldsFor(t reflect.Type) []typeinfo.Field {
	names, ok := w.opts.FieldSpecifiers[t]
	if !ok {
		return w.types.Fields(t)
	}

	all := w.types.Fields(t)
	byGoName := make(map[string]typeinfo.Field, len(all))

	for _, f := range all {
		byGoName[f.GoName] = f
	}

	out := make([]typeinfo.Field, 0, len(names))

	for _, name := range names {
		if f, ok := byGoName[name]; ok {
			out = append(out, f)
		}
	}

	return out
}
