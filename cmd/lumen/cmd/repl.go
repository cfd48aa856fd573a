package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/lumen/internal/tui/repl"
)

func newReplCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive front-end session",
		Long: `Starts a terminal UI that parses each entered buffer and shows the
syntax tree or the token stream.

Keys:
  enter    parse the buffer
  ctrl+j   new line
  tab      switch between AST and tokens
  ctrl+l   clear the history
  esc      quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Debug("Starting REPL")
			return repl.Run(repl.Options{
				Engine:  a.engine,
				NoColor: a.cfg.Output.NoColor,
				Format:  a.cfg.Output.Format,
			})
		},
	}
}
