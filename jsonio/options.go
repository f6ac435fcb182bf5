package jsonio

import "reflect"

// config is the resolved set of every Option, shared by Encode and
// Decode. Not every field applies to both directions; a direction simply
// ignores the ones it doesn't need.
type config struct {
	useMaps             bool
	typeNameMap         map[string]string
	shortMetaKeys       bool
	alwaysShowType      bool
	prettyPrint         bool
	fieldSpecifiers     map[reflect.Type][]string
	enumPublicOnly      bool
	writeLongsAsStrings bool
	registeredTypes     map[string]reflect.Type
}

// Option configures one Encode or Decode call.
type Option func(*config)

// UseMaps decodes every object into the map-shaped representation
// (*jnode.Node) rather than attempting named-type instantiation, and
// degrades an unresolvable @type to a plain map instead of raising an
// error. Ignored by Encode.
func UseMaps() Option {
	return func(c *config) { c.useMaps = true }
}

// TypeNameMap installs a forward (long Go type name -> short alias)
// substitution, applied to every emitted @type and inverted for every
// parsed one.
func TypeNameMap(m map[string]string) Option {
	return func(c *config) {
		c.typeNameMap = m
	}
}

// ShortMetaKeys emits (and accepts) @t/@i/@r/@e/@k instead of the long
// meta key spellings.
func ShortMetaKeys() Option {
	return func(c *config) { c.shortMetaKeys = true }
}

// AlwaysShowType forces @type onto every struct value on encode,
// regardless of whether the surrounding context already pins down the
// concrete type. Maps, slices and arrays are still written without @type.
func AlwaysShowType() Option {
	return func(c *config) { c.alwaysShowType = true }
}

// PrettyPrint enables indentation and newlines in the encoded output.
func PrettyPrint() Option {
	return func(c *config) { c.prettyPrint = true }
}

// FieldSpecifiers restricts and orders the fields written for t to names,
// overriding reflection-based discovery for that type.
func FieldSpecifiers(t reflect.Type, names []string) Option {
	return func(c *config) {
		if c.fieldSpecifiers == nil {
			c.fieldSpecifiers = map[reflect.Type][]string{}
		}

		c.fieldSpecifiers[t] = names
	}
}

// EnumPublicOnly has no effect on the output: Encode never emits
// non-exported fields of any type, with or without it.
func EnumPublicOnly() Option {
	return func(c *config) { c.enumPublicOnly = true }
}

// WriteLongsAsStrings quotes int64/uint64 values on encode, the
// JS-safe-integer accommodation from the option table.
func WriteLongsAsStrings() Option {
	return func(c *config) { c.writeLongsAsStrings = true }
}

// RegisterType gives name priority over a struct field's declared
// interface type when a decoded node's @type matches it, implementing
// the first item of section 4.3's instantiation-priority list.
func RegisterType(name string, t reflect.Type) Option {
	return func(c *config) {
		if c.registeredTypes == nil {
			c.registeredTypes = map[string]reflect.Type{}
		}

		c.registeredTypes[name] = t
	}
}

func buildConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
