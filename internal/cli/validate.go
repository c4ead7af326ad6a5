package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/wingman-memory/internal/snapshot"
)

func newValidateCmd(a *app) *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check memory snapshots against their size limits",
		Long:  "Validate the user memory snapshot and, with --handle, the crush memory snapshot. Prints OK, or one [ERROR] line per violation and exits 2.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(a, cmd, handle)
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Also validate this crush's memory")
	return cmd
}

func runValidate(a *app, cmd *cobra.Command, handle string) error {
	s := a.openStore()
	paths := []string{s.UserMemoryPath()}
	if strings.TrimSpace(handle) != "" {
		paths = append(paths, s.CrushMemoryPath(handle))
	}

	var violations []string
	for _, p := range paths {
		v := snapshot.Validate(p, a.cfg.Limits)
		a.logger.Debug("validated snapshot", zap.String("path", p), zap.Int("violations", len(v)))
		violations = append(violations, v...)
	}

	if len(violations) == 0 {
		printLines(cmd, "OK")
		return nil
	}
	for _, v := range violations {
		fmt.Fprintf(cmd.ErrOrStderr(), "[ERROR] %s\n", v)
	}
	return &exitError{code: ExitFailure}
}
