package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/lumen/foundation/lang"
)

func newTokensCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tokens FILE|-",
		Short: "List the tokens of a script",
		Long: `Tokenizes a script and lists every token with its position, kind
and lexeme. Use "-" to read from standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			tokens, err := a.engine.Tokenize(source)
			if err != nil {
				a.report(cmd.ErrOrStderr(), args[0], err)
				return &reportedError{err}
			}

			if format == "text" {
				fmt.Fprint(cmd.OutOrStdout(), lang.FormatTokens(tokens))
				return nil
			}
			return encode(cmd.OutOrStdout(), format, tokens)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return cmd
}
