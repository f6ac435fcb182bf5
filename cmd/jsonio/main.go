// Command jsonio encodes, decodes, inspects, and browses the
// identity-preserving JSON dialect implemented by this module.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	xlog "go.jacobcolvin.com/jsonio/log"
	"go.jacobcolvin.com/jsonio/profiler"
	"go.jacobcolvin.com/jsonio/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	logCfg := xlog.NewConfig()
	prof := profiler.New()

	rootCmd := &cobra.Command{
		Use:           "jsonio",
		Short:         "Encode, decode, describe, and browse identity-preserving JSON",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			return prof.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return prof.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	prof.RegisterFlags(rootCmd.PersistentFlags())

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newDescribeCmd(),
		newViewCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return 1
	}

	return 0
}
