// Package codec implements the per-type reader/writer registry of section
// 4.4: user-supplied hooks resolved by "closest by inheritance distance",
// adapted to Go by walking a struct's embedding chain (the nearest
// analogue to a superclass hop) and, failing that, the set of registered
// interfaces the type satisfies, with ties broken by registration order.
package codec

import (
	"reflect"
)

// Stack lets a read codec recurse back into the resolver for nested
// values, without codec importing resolver (which imports codec).
type Stack interface {
	ResolveValue(raw any, want reflect.Type) (any, error)
}

// Sink is the minimal writer surface a write codec needs: emit raw bytes
// that are already valid JSON at the current position.
type Sink interface {
	WriteRaw(s string) error
}

// ReadFunc materializes raw (a *jnode.Node, []any, or primitive) into a
// Go value of the codec's registered type.
type ReadFunc func(raw any, stack Stack) (any, error)

// WriteFunc writes value's JSON body (not including surrounding @id/@type
// bookkeeping, which the writer itself handles). showType reports whether
// the caller already decided @type must be emitted; a codec with a
// primitive form ignores that when choosing not to open a `{`.
type WriteFunc func(value any, showType bool, sink Sink) error

type registration[F any] struct {
	t  reflect.Type
	fn F
}

// Registry holds the reader and writer tables plus the "not custom" set
// that forces generic handling even when an ancestor type has a codec.
type Registry struct {
	readers   []registration[ReadFunc]
	writers   []registration[WriteFunc]
	notCustom map[reflect.Type]bool

	// primitiveForm marks writer types that may be emitted as a bare
	// JSON scalar instead of an object body, when not identity-referenced
	// and no @type must be shown.
	primitiveForm map[reflect.Type]bool
}

// NewRegistry returns a Registry with the built-in scalar, date, big
// number, and class-reference codecs pre-registered.
func NewRegistry() *Registry {
	r := &Registry{
		notCustom:     make(map[reflect.Type]bool),
		primitiveForm: make(map[reflect.Type]bool),
	}

	registerScalarCodecs(r)
	registerDateCodecs(r)
	registerBigNumberCodecs(r)
	registerClassRefCodec(r)

	return r
}

// RegisterReader installs a read codec for exact type t.
func (r *Registry) RegisterReader(t reflect.Type, fn ReadFunc) {
	r.readers = append(r.readers, registration[ReadFunc]{t: t, fn: fn})
}

// RegisterWriter installs a write codec for exact type t. hasPrimitiveForm
// marks that fn may emit a bare scalar rather than an object body.
func (r *Registry) RegisterWriter(t reflect.Type, fn WriteFunc, hasPrimitiveForm bool) {
	r.writers = append(r.writers, registration[WriteFunc]{t: t, fn: fn})

	if hasPrimitiveForm {
		r.primitiveForm[t] = true
	}
}

// MarkNotCustom excludes t (and only t, not its descendants) from codec
// resolution: it is always handled generically even if an ancestor type
// has a registered codec.
func (r *Registry) MarkNotCustom(t reflect.Type) {
	r.notCustom[t] = true
}

// HasPrimitiveForm reports whether t's writer, if any, may emit a bare
// scalar.
func (r *Registry) HasPrimitiveForm(t reflect.Type) bool {
	return r.primitiveForm[t]
}

// ResolveReader returns the closest registered read codec for t, if any.
func (r *Registry) ResolveReader(t reflect.Type) (ReadFunc, bool) {
	if r.notCustom[t] {
		return nil, false
	}

	best, bestDist, found := -1, -1, false

	for i, reg := range r.readers {
		d, ok := distance(t, reg.t)
		if !ok {
			continue
		}

		if !found || d < bestDist {
			best, bestDist, found = i, d, true
		}
	}

	if !found {
		return nil, false
	}

	return r.readers[best].fn, true
}

// ResolveWriter returns the closest registered write codec for t, if any.
func (r *Registry) ResolveWriter(t reflect.Type) (WriteFunc, bool) {
	if r.notCustom[t] {
		return nil, false
	}

	best, bestDist, found := -1, -1, false

	for i, reg := range r.writers {
		d, ok := distance(t, reg.t)
		if !ok {
			continue
		}

		if !found || d < bestDist {
			best, bestDist, found = i, d, true
		}
	}

	if !found {
		return nil, false
	}

	return r.writers[best].fn, true
}

// distance computes how many embedding hops separate t from candidate,
// the struct analogue of a superclass distance, or reports a fixed
// distance of 1 when candidate is an interface t implements (Go has no
// interface hierarchy to walk, so every satisfied interface ties at
// distance 1 and insertion order breaks the tie).
func distance(t, candidate reflect.Type) (int, bool) {
	if t == candidate {
		return 0, true
	}

	if candidate.Kind() == reflect.Interface {
		if t.Implements(candidate) {
			return 1, true
		}

		if reflect.PointerTo(t).Implements(candidate) {
			return 1, true
		}

		return 0, false
	}

	return embeddingDistance(t, candidate, 0)
}

func embeddingDistance(t, candidate reflect.Type, depth int) (int, bool) {
	bt := t
	if bt.Kind() == reflect.Pointer {
		bt = bt.Elem()
	}

	if bt.Kind() != reflect.Struct {
		return 0, false
	}

	for i := 0; i < bt.NumField(); i++ {
		sf := bt.Field(i)
		if !sf.Anonymous {
			continue
		}

		if sf.Type == candidate {
			return depth + 1, true
		}

		if d, ok := embeddingDistance(sf.Type, candidate, depth+1); ok {
			return d, true
		}
	}

	return 0, false
}
