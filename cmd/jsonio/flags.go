package main

import (
	"io"
	"os"

	"github.com/spf13/pflag"

	"go.jacobcolvin.com/jsonio"
)

// styleFlags holds the Encode-side options every subcommand that produces
// dialect JSON shares.
type styleFlags struct {
	pretty       bool
	shortMeta    bool
	alwaysType   bool
	longsAsStr   bool
	profilePath  string
}

func (f *styleFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&f.pretty, "pretty", false, "indent output")
	flags.BoolVar(&f.shortMeta, "short-meta-keys", false, "use @t/@i/@r/@k/@e instead of long meta key names")
	flags.BoolVar(&f.alwaysType, "always-show-type", false, "emit @type on every struct, not just where ambiguous")
	flags.BoolVar(&f.longsAsStr, "longs-as-strings", false, "quote int64/uint64 values")
	flags.StringVar(&f.profilePath, "profile", "", "path to a YAML jsonio.Profile applied together with the flags above")
}

// options merges the flags into jsonio.Option values, after any loaded
// profile's options. Each flag can only switch an option on, so an option
// the profile enables cannot be turned off from the command line.
func (f *styleFlags) options() ([]jsonio.Option, error) {
	var opts []jsonio.Option

	if f.profilePath != "" {
		profile, err := jsonio.LoadProfile(f.profilePath)
		if err != nil {
			return nil, err
		}

		opts = append(opts, profile.Options(nil)...)
	}

	if f.pretty {
		opts = append(opts, jsonio.PrettyPrint())
	}

	if f.shortMeta {
		opts = append(opts, jsonio.ShortMetaKeys())
	}

	if f.alwaysType {
		opts = append(opts, jsonio.AlwaysShowType())
	}

	if f.longsAsStr {
		opts = append(opts, jsonio.WriteLongsAsStrings())
	}

	return opts, nil
}

// openInput returns a reader for the positional file argument, or stdin
// when none is given ("-" also means stdin).
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	return os.Open(args[0])
}
