// Package cli implements the wingman-memory CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/wingman-memory/internal/casefile"
	"github.com/rcliao/wingman-memory/internal/config"
	"github.com/rcliao/wingman-memory/internal/logging"
	"github.com/rcliao/wingman-memory/internal/store"
	"github.com/rcliao/wingman-memory/internal/templates"
)

// ExitFailure is the status for every reported error, including
// constraint violations.
const ExitFailure = 2

// exitError carries a status for output that has already been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// app holds the per-invocation flags and resolved configuration.
type app struct {
	rootDir      string
	caseRootDir  string
	templatesDir string
	configPath   string
	verbose      bool

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "wingman-memory",
		Short:         "Markdown relationship memory for a wingman assistant",
		Long:          "Persist a user profile, per-crush profiles, bounded memory snapshots and logs as local Markdown files.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.rootDir, "root", "", "State directory (default: $CRUSHABLE_WINGMAN_STATE_DIR or ~/.codex/state/crushable-wingman)")
	pf.StringVar(&a.caseRootDir, "case-root", "", "Case file directory (default: $CRUSHABLE_WINGMAN_MEMORY_DIR or <state>/case-files)")
	pf.StringVar(&a.templatesDir, "templates", "", "Directory overriding the built-in templates")
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default: $CRUSHABLE_WINGMAN_CONFIG)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging to stderr")

	root.AddCommand(
		newInitCmd(a),
		newPathsCmd(a),
		newValidateCmd(a),
		newUserCmd(a),
		newCrushCmd(a),
		newCaseCmd(a),
		newIndexCmd(a),
		newSearchCmd(a),
		newStatsCmd(a),
	)
	return root
}

// setup resolves configuration once per invocation. Flags win over env and file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Override(a.rootDir, a.caseRootDir, a.templatesDir); err != nil {
		return err
	}
	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	logger.Debug("resolved config",
		zap.String("state_dir", cfg.StateDir),
		zap.String("case_dir", cfg.CaseDir()),
		zap.String("templates_dir", cfg.TemplatesDir))
	return nil
}

func (a *app) templates() *templates.Set {
	return templates.New(a.cfg.TemplatesDir)
}

func (a *app) openStore() *store.Store {
	return store.New(a.cfg.StateDir, a.templates(), a.logger.Named("store"))
}

func (a *app) openCases() *casefile.Store {
	return casefile.New(a.cfg.CaseDir(), a.templates(), a.logger.Named("casefile"))
}

// Execute runs the CLI with the given arguments and streams and returns the
// process exit status.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(stderr, "[ERROR] %v\n", err)
	return ExitFailure
}

// exitErr prefixes err with the failing step. Execute prints it as
// "[ERROR] <msg>: <err>" and exits with ExitFailure.
func exitErr(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func readStdin(cmd *cobra.Command) (string, error) {
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", exitErr("read stdin", err)
	}
	return string(b), nil
}

// readPipedStdin reads stdin unless it is an interactive terminal.
func readPipedStdin(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return "", nil
		}
	}
	return readStdin(cmd)
}

// emptyInput rewords store.ErrEmptyInput for stdin-driven commands.
func emptyInput(err error) error {
	if errors.Is(err, store.ErrEmptyInput) {
		return fmt.Errorf("%w on stdin", err)
	}
	return err
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}

func printLines(cmd *cobra.Command, lines ...string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
}
