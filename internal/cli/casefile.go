package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCaseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Manage single-file case notes",
	}
	cmd.AddCommand(
		newCaseListCmd(a),
		newCasePathCmd(a),
		newCaseShowCmd(a),
		newCaseInitCmd(a),
		newCaseUpsertCmd(a),
	)
	return cmd
}

func newCaseListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List case files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cs := a.openCases()
			names, err := cs.List()
			if err != nil {
				return exitErr("case list", err)
			}
			printLines(cmd, append([]string{cs.Root()}, names...)...)
			return nil
		},
	}
}

func newCasePathCmd(a *app) *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the case file path for a handle or name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path := a.openCases().Resolve(handle)
			printLines(cmd, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Handle or name (required)")
	cmd.MarkFlagRequired("handle")
	return cmd
}

func newCaseShowCmd(a *app) *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a case file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := a.openCases().Show(handle)
			if err != nil {
				return exitErr("case show", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Handle or name (required)")
	cmd.MarkFlagRequired("handle")
	return cmd
}

func newCaseInitCmd(a *app) *cobra.Command {
	var handle, name string
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a case file from the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.openCases().Init(handle, name, force)
			if err != nil {
				return exitErr("case init", err)
			}
			printLines(cmd, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Case handle (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name for the header")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing case file")
	cmd.MarkFlagRequired("handle")
	return cmd
}

func newCaseUpsertCmd(a *app) *cobra.Command {
	var handle string
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Replace a case file from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readStdin(cmd)
			if err != nil {
				return err
			}
			path, err := a.openCases().Upsert(handle, content)
			if err != nil {
				return exitErr("case upsert", emptyInput(err))
			}
			printLines(cmd, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&handle, "handle", "", "Handle or name (required)")
	cmd.MarkFlagRequired("handle")
	return cmd
}
