package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/jsonio"
)

// newEncodeCmd returns the "encode" subcommand: read plain JSON and emit
// it through the dialect writer, applying whatever meta-key/pretty-print
// style the flags request.
func newEncodeCmd() *cobra.Command {
	var style styleFlags

	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Re-emit plain JSON through the identity-preserving writer",
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

			var val any
			if err := json.Unmarshal(src, &val); err != nil {
				return fmt.Errorf("parse input as JSON: %w", err)
			}

			opts, err := style.options()
			if err != nil {
				return err
			}

			out, err := jsonio.Encode(val, opts...)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			fmt.Println(out)

			return nil
		},
	}

	style.register(cmd.Flags())

	return cmd
}
