// ccclean prepares raw CommonCrawl text on stdin for ccdedupe.
package main

import (
	"os"

	"github.com/homier/probing/dedupe"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ccclean",
		Short: "Clean CommonCrawl lines from stdin to stdout",
		Long: `Takes input on stdin. Strips leading and trailing spaces and removes
lines which start with the magic document delimiter and which have invalid UTF-8.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := dedupe.Clean(cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
