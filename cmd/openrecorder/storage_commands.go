package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"openrecorder/internal/services"
)

func newStorageCommand(ctx *commandContext) *cobra.Command {
	storageCmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect and materialize managed storage",
	}

	storageCmd.AddCommand(newStorageRootCommand(ctx))
	storageCmd.AddCommand(newStorageEnsureCommand(ctx))
	storageCmd.AddCommand(newStorageListCommand(ctx))
	storageCmd.AddCommand(newStorageTranscriptPathCommand(ctx))

	return storageCmd
}

func newStorageRootCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the managed storage root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), eng.root)
			return nil
		},
	}
}

func newStorageEnsureCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure <file>",
		Short: "Materialize the managed directory for a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			managedDir, err := eng.manager.EnsureAudioDir(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), managedDir)
			return nil
		},
	}
}

func newStorageListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List managed recording directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			names, err := eng.manager.ListManagedRecordings()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No managed recordings")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newStorageTranscriptPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transcript-path <file>",
		Short: "Print the path of an existing transcript for a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			path, ok := eng.resolver.Path(args[0])
			if !ok {
				return services.Wrap(services.ErrFileNotFound, "cli", "transcript path", "no transcript for "+args[0], nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
