package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/wingman-memory/internal/casefile"
	"github.com/rcliao/wingman-memory/internal/index"
	"github.com/rcliao/wingman-memory/internal/model"
	"github.com/rcliao/wingman-memory/internal/slug"
)

func newSearchCmd(a *app) *cobra.Command {
	var kind, handle string
	var limit int
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search indexed documents by keyword",
		Long:  "Search the index built by `index` for sections containing the query.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != "" && !model.ValidKinds[model.Kind(kind)] {
				return exitErr("search", fmt.Errorf("unknown kind %q", kind))
			}
			var handles []string
			if strings.TrimSpace(handle) != "" {
				handles = searchHandles(handle)
			}

			ix, err := a.openIndex()
			if err != nil {
				return exitErr("open index", err)
			}
			defer ix.Close()

			hits, err := ix.Search(cmd.Context(), index.SearchParams{
				Query:   strings.Join(args, " "),
				Kind:    kind,
				Handles: handles,
				Limit:   limit,
			})
			if err != nil {
				return exitErr("search", err)
			}
			if len(hits) == 0 {
				printLines(cmd, "[]")
				return nil
			}
			return printJSON(cmd, hits)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (user-profile, user-memory, crush-profile, crush-memory, crush-log, case-file)")
	cmd.Flags().StringVar(&handle, "handle", "", "Filter by crush or case handle")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Max results")
	return cmd
}

// searchHandles maps a --handle value to the stored handles it can refer to.
// Input with no letters or digits was stored under a store-specific
// fallback, so both are searched.
func searchHandles(handle string) []string {
	if h := slug.NormalizeOr(handle, ""); h != "" {
		return []string{h}
	}
	return []string{slug.Fallback, casefile.FallbackHandle}
}
