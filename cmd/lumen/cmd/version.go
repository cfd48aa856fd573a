package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/lumen/pkg/core/version"
)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		// no configuration needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if format == "text" {
				fmt.Fprint(cmd.OutOrStdout(), info.String())
				return nil
			}
			return encode(cmd.OutOrStdout(), format, info)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")
	return cmd
}
