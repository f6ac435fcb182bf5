package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/jsonio"
	"go.jacobcolvin.com/jsonio/typeinfo"
)

// newDescribeCmd returns the "describe" subcommand: infer and print a JSON
// Schema for a document's shape, the same reflect-and-walk technique
// typeinfo.DescribeType applies to a statically known Go type, applied
// here to a dynamically decoded one instead.
func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [file]",
		Short: "Infer a JSON Schema describing a document's shape",
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

			schema := typeinfo.InferSchema(val)

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(schema)
		},
	}

	return cmd
}
