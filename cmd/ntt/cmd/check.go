package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ntt-parser/parser"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file|-]",
		Short: "Report syntax errors with code frames",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := root.load(cmd)
			if err != nil {
				return err
			}
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			result := e.parser.Parse(src)
			e.record(cmd, result)

			out := cmd.OutOrStdout()
			if err := result.Err(); err != nil {
				if de, ok := err.(*parser.DiagnosticsError); ok {
					fmt.Fprintln(out, de.Report())
				}
				fmt.Fprintln(out, err)
				return errDiagnostics
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}
