package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/jsonio"
	xlog "go.jacobcolvin.com/jsonio/log"
)

// newViewCmd returns the "view" subcommand: decode a document in UseMaps
// mode and browse its identity graph in an interactive tree.
//
// The TUI owns stdout while it runs, so diagnostic logging during a view
// session goes to --debug-log instead of slog's usual stderr handler.
func newViewCmd() *cobra.Command {
	var debugLog string

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse a decoded document's identity graph interactively",
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

			if debugLog != "" {
				f, err := os.Create(debugLog)
				if err != nil {
					return fmt.Errorf("create debug log: %w", err)
				}
				defer f.Close()

				slog.SetDefault(slog.New(xlog.NewHandler(f, xlog.LevelDebug, xlog.FormatPretty)))
			}

			val, err := jsonio.DecodeAny(string(src), jsonio.UseMaps())
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}

			m := newModel(val)
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				m.width, m.height = w, h
			}

			_, err = tea.NewProgram(m).Run()

			return err
		},
	}

	cmd.Flags().StringVar(&debugLog, "debug-log", "", "write TUI diagnostic logs to this file instead of stderr")

	return cmd
}
