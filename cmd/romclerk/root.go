package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "romclerk",
		Short: "Checksum-driven ROM renamer",
		Long: "romclerk matches ROM files against DAT catalogs by CRC-32 checksum and\n" +
			"renames them to their canonical titles. Applied runs are journaled and\n" +
			"can be undone.",
		Example: "  romclerk rename ~/roms/nes\n" +
			"  romclerk rename --apply --strip-prefix\n" +
			"  romclerk undo\n" +
			"  romclerk history --limit 5",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	for _, sub := range []*cobra.Command{
		newRenameCommand(ctx),
		newUndoCommand(ctx),
		newHistoryCommand(ctx),
		newCheckCommand(ctx),
		newCatalogCommand(ctx),
		newConfigCommand(ctx),
		newVersionCommand(),
	} {
		rootCmd.AddCommand(sub)
	}

	return rootCmd
}
