package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wingman-memory/internal/store"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the state directories and user templates",
		Long:  "Create the state root with user/ and crushes/ and write the user profile and memory templates. Existing files are kept unless --force is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(a, cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing user documents")
	return cmd
}

func runInit(a *app, cmd *cobra.Command, force bool) error {
	s := a.openStore()
	if err := s.Init(force); err != nil {
		return exitErr("init", err)
	}
	printLines(cmd, s.Root())
	return nil
}

func newPathsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the well-known file locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.openStore().Paths()
			caseDir := a.cfg.CaseDir()
			if asJSON {
				return printJSON(cmd, struct {
					Paths   store.Paths `json:"paths"`
					CaseDir string      `json:"case_dir"`
				}{p, caseDir})
			}
			printLines(cmd,
				fmt.Sprintf("STATE_DIR=%s", p.StateDir),
				fmt.Sprintf("ACTIVE_HANDLE=%s", p.ActiveHandle),
				fmt.Sprintf("USER_PROFILE=%s", p.UserProfile),
				fmt.Sprintf("USER_MEMORY=%s", p.UserMemory),
				fmt.Sprintf("CRUSHES_DIR=%s", p.CrushesDir),
				fmt.Sprintf("CASE_DIR=%s", caseDir),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}
