package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/wingman-memory/internal/store"
)

func newUserCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the user profile and memory",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the user profile template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.openStore().InitUser(force)
			if err != nil {
				return exitErr("user init", err)
			}
			printLines(cmd, path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing profile")

	cmd.AddCommand(
		initCmd,
		showCmd("show-profile", "Print the user profile", a, func(s *store.Store, _ string) string { return s.UserProfilePath() }, false),
		showCmd("show-memory", "Print the user memory snapshot", a, func(s *store.Store, _ string) string { return s.UserMemoryPath() }, false),
		upsertCmd("upsert-profile", "Replace the user profile from stdin", a, func(s *store.Store, _ string) string { return s.UserProfilePath() }, false),
		upsertCmd("upsert-memory", "Replace the user memory snapshot from stdin", a, func(s *store.Store, _ string) string { return s.UserMemoryPath() }, false),
		missingCmd("missing", "List empty fields in the user profile", a, func(s *store.Store, _ string) string { return s.UserProfilePath() }, false),
		fieldsCmd("fields", "Print the user profile fields as JSON", a, func(s *store.Store, _ string) string { return s.UserProfilePath() }, false),
	)
	return cmd
}

// pathFunc picks the document a show, upsert or missing command acts on.
type pathFunc func(s *store.Store, handle string) string

// handleFlag registers --handle on cmd when the document belongs to a crush.
// The returned resolver falls back to the active handle.
func handleFlag(cmd *cobra.Command, a *app, withHandle bool) func() (*store.Store, string, error) {
	var handle string
	if withHandle {
		cmd.Flags().StringVar(&handle, "handle", "", "Crush handle (default: active handle)")
	}
	return func() (*store.Store, string, error) {
		s := a.openStore()
		if !withHandle {
			return s, "", nil
		}
		h, err := s.ResolveHandle(handle)
		if err != nil {
			return nil, "", err
		}
		return s, h, nil
	}
}

func showCmd(use, short string, a *app, path pathFunc, withHandle bool) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short, Args: cobra.NoArgs}
	resolve := handleFlag(cmd, a, withHandle)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, h, err := resolve()
		if err != nil {
			return exitErr(use, err)
		}
		content, err := s.Read(path(s, h))
		if err != nil {
			return exitErr(use, err)
		}
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	return cmd
}

func upsertCmd(use, short string, a *app, path pathFunc, withHandle bool) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short, Args: cobra.NoArgs}
	resolve := handleFlag(cmd, a, withHandle)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, h, err := resolve()
		if err != nil {
			return exitErr(use, err)
		}
		content, err := readStdin(cmd)
		if err != nil {
			return err
		}
		p := path(s, h)
		if err := s.Upsert(p, content); err != nil {
			return exitErr(use, emptyInput(err))
		}
		printLines(cmd, p)
		return nil
	}
	return cmd
}

func missingCmd(use, short string, a *app, path pathFunc, withHandle bool) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short, Args: cobra.NoArgs}
	resolve := handleFlag(cmd, a, withHandle)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, h, err := resolve()
		if err != nil {
			return exitErr(use, err)
		}
		keys, err := s.Missing(path(s, h))
		if err != nil {
			return exitErr(use, err)
		}
		printLines(cmd, keys...)
		return nil
	}
	return cmd
}

func fieldsCmd(use, short string, a *app, path pathFunc, withHandle bool) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short, Args: cobra.NoArgs}
	resolve := handleFlag(cmd, a, withHandle)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, h, err := resolve()
		if err != nil {
			return exitErr(use, err)
		}
		fields, err := s.Fields(path(s, h))
		if err != nil {
			return exitErr(use, err)
		}
		return printJSON(cmd, fields)
	}
	return cmd
}
