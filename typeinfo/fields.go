package typeinfo

import "reflect"

// Fields returns t's fields, descending into anonymous (embedded) structs
// and qualifying an inherited field's name as "Embedded.field" (the
// embedded struct type's name, e.g. "base.ID") whenever a
// directly-declared field shadows it, so both remain independently
// addressable by name the way the resolver needs.
func (r *Registry) Fields(t reflect.Type) []Field {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if cached, ok := r.fields.Load(t); ok {
		return cached.([]Field)
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	direct := directFieldNames(t)
	fields := collectFields(t, nil, direct, true)

	r.fields.Store(t, fields)

	return fields
}

// directFieldNames returns the JSON-facing names of t's non-embedded
// fields, computed before any recursion so an embedded field processed
// first still sees the names it will be shadowed by.
func directFieldNames(t reflect.Type) map[string]bool {
	direct := map[string]bool{}

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || (sf.Anonymous && sf.Type.Kind() == reflect.Struct) {
			continue
		}

		direct[jsonFieldName(sf)] = true
	}

	return direct
}

func collectFields(t reflect.Type, prefix []int, direct map[string]bool, topLevel bool) []Field {
	var out []Field

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int{}, prefix...), i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			out = append(out, collectFields(sf.Type, index, direct, false)...)

			continue
		}

		if !sf.IsExported() {
			continue
		}

		name := jsonFieldName(sf)

		if !topLevel && direct[name] {
			name = t.Name() + "." + name
		}

		out = append(out, Field{
			Name:      name,
			GoName:    sf.Name,
			Index:     index,
			Type:      sf.Type,
			Anonymous: !topLevel,
		})
	}

	return out
}

func jsonFieldName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" || tag == "-" {
		return sf.Name
	}

	for i, c := range tag {
		if c == ',' {
			if i == 0 {
				return sf.Name
			}

			return tag[:i]
		}
	}

	return tag
}
