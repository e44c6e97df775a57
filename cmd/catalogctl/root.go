package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Catalog maintenance CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.driverFlag, "db-driver", "", "Database driver (postgres or sqlite); overrides DB_DRIVER")
	rootCmd.PersistentFlags().BoolVarP(&ctx.quiet, "quiet", "q", false, "Suppress log output")
	rootCmd.PersistentFlags().StringVar(&ctx.sqlitePathFlag, "sqlite-path", "", "SQLite database file; overrides SQLITE_PATH")

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeedCommand(ctx))
	rootCmd.AddCommand(newSpecsCommand(ctx))

	return rootCmd
}
