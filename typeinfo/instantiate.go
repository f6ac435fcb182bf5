package typeinfo

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"go.jacobcolvin.com/jsonio/container"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	bigIntType   = reflect.TypeOf((*big.Int)(nil))
	bigFloatType = reflect.TypeOf((*big.Float)(nil))

	setType       = reflect.TypeOf((*container.Set)(nil)).Elem()
	sortedSetType = reflect.TypeOf((*container.SortedSet)(nil)).Elem()
	mapType       = reflect.TypeOf((*container.Map)(nil)).Elem()
	sortedMapType = reflect.TypeOf((*container.SortedMap)(nil)).Elem()
)

func registerBuiltinDefaults(r *Registry) {
	r.RegisterSensibleDefault(timeType, func() reflect.Value {
		return reflect.ValueOf(time.Time{})
	})
	r.RegisterSensibleDefault(bigIntType, func() reflect.Value {
		return reflect.ValueOf(big.NewInt(0))
	})
	r.RegisterSensibleDefault(bigFloatType, func() reflect.Value {
		return reflect.ValueOf(new(big.Float))
	})

	r.RegisterContainerHint(setType, ContainerSet)
	r.RegisterContainerHint(sortedSetType, ContainerSortedSet)
	r.RegisterContainerHint(mapType, ContainerMap)
	r.RegisterContainerHint(sortedMapType, ContainerSortedMap)
}

// New allocates a zero value of t, initializing interior maps and slices
// non-nil and applying any registered sensible default for t itself.
// Unlike Java's constructor search, this never fails for a concrete
// struct, map, slice, or pointer type; it returns an error only for
// interface and channel/func kinds, which the resolver must instead
// resolve to a concrete type before calling New.
func (r *Registry) New(t reflect.Type) (reflect.Value, error) {
	if fn, ok := r.lookupSensible(t); ok {
		return fn(), nil
	}

	switch t.Kind() {
	case reflect.Interface, reflect.Chan, reflect.Func:
		return reflect.Value{}, fmt.Errorf("typeinfo: cannot instantiate %s directly", t)
	case reflect.Map:
		return reflect.MakeMap(t), nil
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0), nil
	case reflect.Pointer:
		elem := t.Elem()

		inner, err := r.New(elem)
		if err != nil {
			return reflect.Value{}, err
		}

		ptr := reflect.New(elem)
		ptr.Elem().Set(inner)

		return ptr, nil
	case reflect.Struct:
		v := reflect.New(t).Elem()
		r.InitZeroFields(v)

		return v, nil
	default:
		return reflect.New(t).Elem(), nil
	}
}

// InitZeroFields allocates non-nil map/slice zero values for a freshly
// created struct's fields, so a decoded-but-never-populated collection
// field reads as empty rather than nil. v must be an addressable struct
// value, typically reflect.New(t).Elem().
func (r *Registry) InitZeroFields(v reflect.Value) {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		fv := v.Field(i)

		switch sf.Type.Kind() {
		case reflect.Map:
			fv.Set(reflect.MakeMap(sf.Type))
		case reflect.Slice:
			fv.Set(reflect.MakeSlice(sf.Type, 0, 0))
		}
	}
}

func (r *Registry) lookupSensible(t reflect.Type) (func() reflect.Value, bool) {
	r.sensibleMu.RLock()
	defer r.sensibleMu.RUnlock()

	fn, ok := r.sensible[t]

	return fn, ok
}

// RegisterContainerHint tells the resolver which concrete container kind
// to instantiate when it encounters a field of interface type t and the
// document gives no other hint (the resolver's USE_MAPS walk bypasses
// this entirely).
func (r *Registry) RegisterContainerHint(t reflect.Type, kind ContainerKind) {
	r.containerHint[t] = kind
}

// ContainerHintFor returns the registered ContainerKind for t, or
// ContainerNone if t is not a recognized abstract container interface.
func (r *Registry) ContainerHintFor(t reflect.Type) ContainerKind {
	return r.containerHint[t]
}
