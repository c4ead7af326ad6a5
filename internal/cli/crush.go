package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/wingman-memory/internal/store"
)

func newCrushCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crush",
		Short: "Manage per-crush profiles, memory and logs",
	}

	profile := func(s *store.Store, h string) string { return s.CrushProfilePath(h) }
	memory := func(s *store.Store, h string) string { return s.CrushMemoryPath(h) }

	cmd.AddCommand(
		newCrushListCmd(a),
		newCrushInitCmd(a),
		newCrushSetActiveCmd(a),
		newCrushGetActiveCmd(a),
		showCmd("show-profile", "Print a crush profile", a, profile, true),
		showCmd("show-memory", "Print a crush memory snapshot", a, memory, true),
		upsertCmd("upsert-profile", "Replace a crush profile from stdin", a, profile, true),
		upsertCmd("upsert-memory", "Replace a crush memory snapshot from stdin", a, memory, true),
		missingCmd("missing", "List empty fields in a crush profile", a, profile, true),
		fieldsCmd("fields", "Print a crush profile's fields as JSON", a, profile, true),
		newCrushAppendLogCmd(a),
	)
	return cmd
}

func newCrushListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List crush handles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.openStore()
			handles, err := s.ListCrushes()
			if err != nil {
				return exitErr("crush list", err)
			}
			printLines(cmd, append([]string{s.Paths().CrushesDir}, handles...)...)
			return nil
		},
	}
}

func newCrushInitCmd(a *app) *cobra.Command {
	var handle, name string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a crush directory with profile and memory templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.openStore().InitCrush(handle, name, force)
			if err != nil {
				return exitErr("crush init", err)
			}
			printLines(cmd, dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Crush handle (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (default: handle)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing crush")
	cmd.MarkFlagRequired("handle")
	return cmd
}

func newCrushSetActiveCmd(a *app) *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "set-active",
		Short: "Record the active crush handle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.openStore().SetActive(handle)
			if err != nil {
				return exitErr("crush set-active", err)
			}
			printLines(cmd, h)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Crush handle (required)")
	cmd.MarkFlagRequired("handle")
	return cmd
}

func newCrushGetActiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get-active",
		Short: "Print the active crush handle, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.openStore().Active()
			if err != nil {
				return exitErr("crush get-active", err)
			}
			if h != "" {
				printLines(cmd, h)
			}
			return nil
		},
	}
}

func newCrushAppendLogCmd(a *app) *cobra.Command {
	var title, crushName string
	cmd := &cobra.Command{
		Use:   "append-log",
		Short: "Add a timestamped log entry for a crush",
		Long:  "Write stdin to a new file under crushes/<handle>/log. With empty stdin the log template is written instead.",
		Args:  cobra.NoArgs,
	}
	resolve := handleFlag(cmd, a, true)
	cmd.Flags().StringVar(&title, "title", "", "Template title when stdin is empty (default: Session)")
	cmd.Flags().StringVar(&crushName, "crush-name", "", "Template crush name when stdin is empty (default: handle)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, h, err := resolve()
		if err != nil {
			return exitErr("crush append-log", err)
		}
		content, err := readPipedStdin(cmd)
		if err != nil {
			return err
		}
		path, err := s.AppendLog(store.AppendLogParams{
			Handle:    h,
			Content:   content,
			Title:     title,
			CrushName: crushName,
		})
		if err != nil {
			return exitErr("crush append-log", err)
		}
		printLines(cmd, path)
		return nil
	}
	return cmd
}
