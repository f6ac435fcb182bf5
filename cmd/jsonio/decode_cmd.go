package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/jsonio"
	"go.jacobcolvin.com/jsonio/jnode"
)

// newDecodeCmd returns the "decode" subcommand: parse an identity-
// preserving document and re-emit it in canonical form, resolving refs and
// normalizing meta key style along the way.
func newDecodeCmd() *cobra.Command {
	var (
		style   styleFlags
		asPlain bool
	)

	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Parse and normalize an identity-preserving JSON document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer in.Close()

			src, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			val, err := jsonio.DecodeAny(string(src), jsonio.UseMaps())
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			if asPlain {
				plain, err := toPlain(val, map[*jnode.Node]bool{})
				if err != nil {
					return err
				}

				enc := json.NewEncoder(os.Stdout)
				if style.pretty {
					enc.SetIndent("", "  ")
				}

				return enc.Encode(plain)
			}

			opts, err := style.options()
			if err != nil {
				return err
			}

			out, err := jsonio.Encode(val, opts...)
			if err != nil {
				return fmt.Errorf("re-encode: %w", err)
			}

			fmt.Println(out)

			return nil
		},
	}

	style.register(cmd.Flags())
	cmd.Flags().BoolVar(&asPlain, "plain", false,
		"drop @type/@id/@ref meta keys and print ordinary encoding/json output (fails on cyclic documents)")

	return cmd
}
