package jsonio

import (
	"bytes"
	"io"

	"go.jacobcolvin.com/jsonio/codec"
	"go.jacobcolvin.com/jsonio/typeinfo"
	"go.jacobcolvin.com/jsonio/writer"
)

// Encode writes v's JSON representation and returns it as a string.
func Encode(v any, opts ...Option) (string, error) {
	var buf bytes.Buffer

	if err := EncodeTo(&buf, v, opts...); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// EncodeTo writes v's JSON representation to out.
func EncodeTo(out io.Writer, v any, opts ...Option) error {
	c := buildConfig(opts)

	w := writer.New(out, typeinfo.NewRegistry(), codec.NewRegistry(), writer.Options{
		TypeNameMap:         c.typeNameMap,
		ShortMetaKeys:       c.shortMetaKeys,
		AlwaysShowType:      c.alwaysShowType,
		PrettyPrint:         c.prettyPrint,
		FieldSpecifiers:     c.fieldSpecifiers,
		EnumPublicOnly:      c.enumPublicOnly,
		WriteLongsAsStrings: c.writeLongsAsStrings,
	})

	// No declared context exists for a root value: Encode does not know
	// what target type a later Decode will ask for, so @type is shown
	// whenever the root turns out to be a struct.
	return w.Write(v, nil)
}
