package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ntt-parser/reference"
	"ntt-parser/treenode"
)

func newParseCmd(root *rootOptions) *cobra.Command {
	var (
		format      string
		withRef     bool
		allowErrors bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Print the syntax tree of a source file",
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

			var report *reference.Report
			if withRef || e.cfg.Reference.Enabled {
				if report, err = reference.New(e.log).Check(cmd.Context(), []byte(src)); err != nil {
					return err
				}
			}

			out := result.Map()
			if report != nil {
				out["reference"] = report
			}
			if err := writeTree(cmd.OutOrStdout(), format, result.Program, out, report); err != nil {
				return err
			}

			if !result.Valid() && !allowErrors {
				return errDiagnostics
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or tree")
	cmd.Flags().BoolVar(&withRef, "reference", false, "cross-check with the tree-sitter C grammar")
	cmd.Flags().BoolVar(&allowErrors, "allow-errors", false, "exit 0 even when the source has syntax errors")
	return cmd
}

func writeTree(w io.Writer, format string, program treenode.Node, out map[string]any, report *reference.Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		// round trip through JSON so yaml sees the projection, not Go structs
		raw, err := json.Marshal(out)
		if err != nil {
			return err
		}
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	case "tree":
		if err := treenode.Fprint(w, program); err != nil {
			return err
		}
		if report != nil {
			for _, issue := range report.Issues {
				if _, err := fmt.Fprintf(w, "reference %s: %s %s %q\n", issue.Pos, issue.Kind, issue.Type, issue.Text); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
