package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	lerror "github.com/msto63/lumen/foundation/core/error"
	"github.com/msto63/lumen/foundation/lang/ast"
)

func newParseCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse FILE|-",
		Short: "Print the syntax tree of a script",
		Long: `Parses a script and prints its syntax tree.

Formats:
  tree   - indented tree with positions
  sexpr  - compact one-line notation
  json   - nested objects
  yaml   - nested mappings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}

			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			program, err := a.engine.Parse(source)
			if err != nil {
				a.report(cmd.ErrOrStderr(), args[0], err)
				return &reportedError{err}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "tree":
				fmt.Fprint(out, ast.FormatTree(program))
				return nil
			case "sexpr":
				fmt.Fprintln(out, ast.Format(program))
				return nil
			default:
				return encode(out, format, ast.ToMap(program))
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (tree, sexpr, json, yaml; default from config)")
	return cmd
}

// encode writes v as indented JSON or as YAML
func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return lerror.New("unknown output format "+format).
			WithCode(lerror.CodeInvalidFormat).
			WithOperation("cmd.encode").
			WithDetail("format", format)
	}
}
