package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rcliao/wingman-memory/internal/index"
)

func (a *app) openIndex() (*index.Index, error) {
	return index.Open(filepath.Join(a.cfg.StateDir, index.FileName), a.logger.Named("index"))
}

func newIndexCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the search index from every document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := a.openStore().Documents()
			if err != nil {
				return exitErr("list documents", err)
			}
			cases, err := a.openCases().Documents()
			if err != nil {
				return exitErr("list case files", err)
			}
			docs = append(docs, cases...)

			ix, err := a.openIndex()
			if err != nil {
				return exitErr("open index", err)
			}
			defer ix.Close()

			res, err := ix.Rebuild(cmd.Context(), docs)
			if err != nil {
				return exitErr("rebuild index", err)
			}
			return printJSON(cmd, res)
		},
	}
}
