package jsonio

import (
	"io"
	"reflect"
	"strings"

	"go.jacobcolvin.com/jsonio/codec"
	"go.jacobcolvin.com/jsonio/ioerr"
	"go.jacobcolvin.com/jsonio/parser"
	"go.jacobcolvin.com/jsonio/resolver"
	"go.jacobcolvin.com/jsonio/typeinfo"
)

// Decode parses src and resolves it into the value pointed to by target
// (target must be a non-nil pointer).
func Decode(src string, target any, opts ...Option) error {
	return DecodeFrom(strings.NewReader(src), target, opts...)
}

// DecodeFrom is Decode reading from an io.Reader instead of a string.
func DecodeFrom(r io.Reader, target any, opts ...Option) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ioerr.Configuration("jsonio: Decode target must be a non-nil pointer")
	}

	val, err := decodeValue(r, rv.Elem().Type(), opts...)
	if err != nil {
		return err
	}

	elem := rv.Elem()

	if val == nil {
		elem.Set(reflect.Zero(elem.Type()))

		return nil
	}

	vv := reflect.ValueOf(val)
	if !vv.Type().AssignableTo(elem.Type()) {
		if vv.Type().ConvertibleTo(elem.Type()) {
			vv = vv.Convert(elem.Type())
		} else {
			return ioerr.Typef("jsonio: decoded value of type %s is not assignable to target type %s", vv.Type(), elem.Type())
		}
	}

	elem.Set(vv)

	return nil
}

// DecodeAny parses src and returns the decoded value without assigning it
// to a target: the map-shaped identity graph by default, or, when UseMaps()
// is not given and an object carries @type, a value of the Go type that
// name was registered under with RegisterType. Without UseMaps() an
// unregistered @type is an error.
func DecodeAny(src string, opts ...Option) (any, error) {
	return decodeValue(strings.NewReader(src), nil, opts...)
}

// decodeValue runs the parse + resolve pipeline shared by every entry
// point: want is the caller's static target type, or nil for an untyped
// decode (DecodeAny). With USE_MAPS the resolver ignores want.
func decodeValue(r io.Reader, want reflect.Type, opts ...Option) (any, error) {
	c := buildConfig(opts)

	p := parser.New(r, parser.Options{TypeNameMap: c.typeNameMap})

	root, ids, err := p.Parse()
	if err != nil {
		return nil, err
	}

	types := typeinfo.NewRegistry()
	codecs := codec.NewRegistry()

	res := resolver.New(ids, types, codecs, c.useMaps)
	for name, t := range c.registeredTypes {
		res.RegisterType(name, t)
	}

	return res.Resolve(root, want)
}
