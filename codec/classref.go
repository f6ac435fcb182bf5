package codec

import (
	"fmt"
	"reflect"
)

// ClassRef is the decoded form of a "class" logical primitive: a
// reference to a Go type by name rather than an instance of it, the
// closest analogue to Java's java.lang.Class literal in the dialect.
type ClassRef struct {
	Name string
}

var classRefType = reflect.TypeOf(ClassRef{})

func registerClassRefCodec(r *Registry) {
	r.RegisterReader(classRefType, func(raw any, _ Stack) (any, error) {
		name, _ := raw.(string)

		return ClassRef{Name: name}, nil
	})

	r.RegisterWriter(classRefType, func(value any, _ bool, sink Sink) error {
		ref := value.(ClassRef)

		return sink.WriteRaw(fmt.Sprintf("%q", ref.Name))
	}, true)
}
