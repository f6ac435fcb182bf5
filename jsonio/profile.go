package jsonio

import (
	"fmt"
	"os"
	"reflect"

	"github.com/goccy/go-yaml"
)

// Profile is a named, YAML-loadable bundle of Encode/Decode options, the
// config-file analogue of passing Option values in code. A CLI or a larger
// YAML-configured tool embedding jsonio loads one of these instead of
// wiring FIELD_SPECIFIERS and type-name maps by hand for every call site.
type Profile struct {
	// TypeNames maps a short alias to the fully-qualified Go type name it
	// stands for on the wire, the inverse of the direction TypeNameMap
	// applies on encode.
	TypeNames map[string]string `yaml:"typeNames"`

	// FieldOrder restricts and orders the fields written for a type,
	// keyed by the same alias used in TypeNames.
	FieldOrder map[string][]string `yaml:"fieldOrder"`

	ShortMetaKeys       bool `yaml:"shortMetaKeys"`
	AlwaysShowType      bool `yaml:"alwaysShowType"`
	PrettyPrint         bool `yaml:"prettyPrint"`
	UseMaps             bool `yaml:"useMaps"`
	WriteLongsAsStrings bool `yaml:"writeLongsAsStrings"`
}

// LoadProfile reads and parses a YAML profile document from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}

	var p Profile

	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}

	return &p, nil
}

// Options resolves the profile into an Option slice. types resolves the
// aliases used in FieldOrder to the concrete reflect.Type the caller's
// code registered them under; an alias absent from types is skipped
// since there is no field-specifier target to attach it to.
func (p *Profile) Options(types map[string]reflect.Type) []Option {
	var opts []Option

	if p.TypeNames != nil {
		forward := make(map[string]string, len(p.TypeNames))
		for alias, long := range p.TypeNames {
			forward[long] = alias
		}

		opts = append(opts, TypeNameMap(forward))
	}

	if p.ShortMetaKeys {
		opts = append(opts, ShortMetaKeys())
	}

	if p.AlwaysShowType {
		opts = append(opts, AlwaysShowType())
	}

	if p.PrettyPrint {
		opts = append(opts, PrettyPrint())
	}

	if p.UseMaps {
		opts = append(opts, UseMaps())
	}

	if p.WriteLongsAsStrings {
		opts = append(opts, WriteLongsAsStrings())
	}

	for alias, names := range p.FieldOrder {
		t, ok := types[alias]
		if !ok {
			continue
		}

		opts = append(opts, FieldSpecifiers(t, names))
	}

	return opts
}
