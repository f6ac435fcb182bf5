// Package writer implements section 4.5: a reachability trace over an
// object graph followed by a depth-first emission pass that preserves
// identity, breaks cycles inline with back-references, and dispatches
// per-value emission by runtime kind the same way the resolver dispatches
// decoding by node discriminator.
package writer

import (
	"bufio"
	"io"
	"reflect"

	"go.jacobcolvin.com/jsonio/codec"
	"go.jacobcolvin.com/jsonio/typeinfo"
)

// Options configures one Write call. None of these are safe to change
// mid-write; like the resolver, a Writer is scoped to a single document.
type Options struct {
	// TypeNameMap is the forward (long name -> short alias) substitution
	// applied to every emitted @type value.
	TypeNameMap map[string]string
	// ShortMetaKeys emits @t/@i/@r/@e/@k instead of the long forms.
	ShortMetaKeys bool
	// AlwaysShowType forces @type on every struct value regardless of
	// whether the declared context already pins down the runtime type.
	// Maps, slices and arrays are still written without @type.
	AlwaysShowType bool
	// PrettyPrint enables indentation and newlines between tokens.
	PrettyPrint bool
	// FieldSpecifiers, when set for a struct type, replaces reflection
	// with an explicit ordered list of Go field names.
	FieldSpecifiers map[reflect.Type][]string
	// EnumPublicOnly is not read by the writer: Go has no enum kind,
	// typeinfo has no enum registration, and non-exported fields are never
	// emitted for any type, so output is the same with or without it.
	EnumPublicOnly bool
	// WriteLongsAsStrings quotes int64/uint64 values, the JS-safe-integer
	// accommodation from the option table.
	WriteLongsAsStrings bool
}

// identityKey is the writer's notion of "same object": a pointer, map, or
// slice header address. Plain structs passed by value have no such
// identity in Go and are never referenced more than once in the trace.
type identityKey struct {
	ptr  uintptr
	kind reflect.Kind
}

// Writer walks one object graph and emits it as JSON. Not reusable across
// documents and not safe for concurrent use, matching the resolver.
type Writer struct {
	out    *bufio.Writer
	types  *typeinfo.Registry
	codecs *codec.Registry
	opts   Options

	visited  map[identityKey]int64
	emitted  map[identityKey]bool
	nextID   int64
	depth    int
	metaKeys metaKeyNames
}

type metaKeyNames struct {
	typ, id, ref, items, keys string
}

func longMetaKeys() metaKeyNames {
	return metaKeyNames{typ: "@type", id: "@id", ref: "@ref", items: "@items", keys: "@keys"}
}

func shortMetaKeys() metaKeyNames {
	return metaKeyNames{typ: "@t", id: "@i", ref: "@r", items: "@e", keys: "@k"}
}

// New creates a Writer over out using types for field discovery and
// codecs for per-type write overrides.
func New(out io.Writer, types *typeinfo.Registry, codecs *codec.Registry, opts Options) *Writer {
	meta := longMetaKeys()
	if opts.ShortMetaKeys {
		meta = shortMetaKeys()
	}

	return &Writer{
		out:      bufio.NewWriter(out),
		types:    types,
		codecs:   codecs,
		opts:     opts,
		visited:  map[identityKey]int64{},
		emitted:  map[identityKey]bool{},
		nextID:   1,
		metaKeys: meta,
	}
}

// Write traces root for shared structure, then emits it. root's static
// type, if known by the caller, should be passed as declaredType so the
// writer can suppress a redundant @type; pass nil for an untyped root
// (the common case: encode(value) with no surrounding field context).
func (w *Writer) Write(root any, declaredType reflect.Type) error {
	w.trace(root)

	if err := w.emitValue(root, declaredType); err != nil {
		return err
	}

	return w.out.Flush()
}

// WriteRaw implements codec.Sink, letting a custom write codec emit its
// body through the same buffered output the rest of the writer uses.
func (w *Writer) WriteRaw(s string) error {
	_, err := w.out.WriteString(s)

	return err
}

func (w *Writer) writeByte(b byte) error {
	return w.out.WriteByte(b)
}

func (w *Writer) writeString(s string) error {
	_, err := w.out.WriteString(s)

	return err
}
