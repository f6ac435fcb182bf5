// Package typeinfo adapts the reflection side of instantiation and field
// discovery described in section 4.3 of the specification. Java's
// "constructor roulette" (try every visible constructor until one
// succeeds) has no Go analogue: reflect.New(t) always succeeds for any
// struct type. What survives the translation is picking a non-nil,
// sensible zero value for a field (allocate maps and slices, default
// times and big numbers) and choosing a concrete collection type for an
// interface-shaped Set/SortedSet/Map/SortedMap field.
package typeinfo

import (
	"reflect"
	"sync"
)

// FieldInspector exposes the declared fields of a struct type, in
// declaration order including promoted fields from embedded structs. A
// name collision between a field and one inherited from an embedded type
// is resolved by qualifying the inherited one as "Embedded.field", named
// after the embedded struct type that declares it, mirroring
// how the resolver must disambiguate shadowed Java fields by declaring
// class.
type FieldInspector interface {
	Fields(t reflect.Type) []Field
}

// Instantiator produces a usable zero value for t, initializing any
// interior maps, slices, or well-known types that a bare reflect.New
// would otherwise leave nil or unset.
type Instantiator interface {
	New(t reflect.Type) (reflect.Value, error)
}

// Field describes one struct field as seen by the resolver.
type Field struct {
	// Name is the field's JSON-facing name: its Go name unless overridden
	// by a `json` tag, qualified with the embedded struct type's name and a
	// dot when it is a promoted field shadowed by a directly declared one.
	Name string

	// GoName is the unqualified Go identifier, used for reflect.Value.FieldByIndex.
	GoName string

	// Index is the path reflect.Value.FieldByIndex expects, accounting
	// for embedding depth.
	Index []int

	Type reflect.Type

	// Anonymous reports whether this Field descends from an embedded
	// struct rather than being declared directly.
	Anonymous bool
}

// Registry is the default FieldInspector and Instantiator, backed by
// sync.Map caches since both are read far more often than a new type is
// seen (every decode of the same document shape hits the same types).
type Registry struct {
	fields        sync.Map // reflect.Type -> []Field
	sensible      map[reflect.Type]func() reflect.Value
	sensibleMu    sync.RWMutex
	containerHint map[reflect.Type]ContainerKind
}

// ContainerKind names which concrete container a declared interface field
// should be instantiated as, when the document itself carries no hint.
type ContainerKind int

const (
	// ContainerNone means t is not a recognized abstract container type.
	ContainerNone ContainerKind = iota
	ContainerSet
	ContainerSortedSet
	ContainerMap
	ContainerSortedMap
)

// NewRegistry returns a Registry with the built-in sensible defaults
// registered (time.Time, *big.Int, *big.Float; see instantiate.go).
func NewRegistry() *Registry {
	r := &Registry{
		containerHint: make(map[reflect.Type]ContainerKind),
	}
	registerBuiltinDefaults(r)

	return r
}

// RegisterSensibleDefault registers a zero-value factory for exact type t,
// used when a field of that type would otherwise decode to Go's bare zero
// value (e.g. a time.Time with no @items to populate it from).
func (r *Registry) RegisterSensibleDefault(t reflect.Type, fn func() reflect.Value) {
	r.sensibleMu.Lock()
	defer r.sensibleMu.Unlock()

	if r.sensible == nil {
		r.sensible = make(map[reflect.Type]func() reflect.Value)
	}

	r.sensible[t] = fn
}
