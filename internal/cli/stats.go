package cli

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show search index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := a.openIndex()
			if err != nil {
				return exitErr("open index", err)
			}
			defer ix.Close()

			stats, err := ix.Stats(cmd.Context())
			if err != nil {
				return exitErr("stats", err)
			}
			return printJSON(cmd, stats)
		},
	}
}
