package cli

import (
	"atelier/internal/database"

	"github.com/spf13/cobra"
)

// NewMigrateCommand applies pending migrations.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return database.RunMigrations(db.DB(), rootOpts.MigrationsDir, rootOpts.logger)
		},
	}
}

// NewStatusCommand prints the migration status.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show schema migration status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return database.GetMigrationStatus(db.DB(), rootOpts.MigrationsDir)
		},
	}
}

// NewRollbackCommand rolls back the latest migration.
func NewRollbackCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := rootOpts.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return database.RollbackMigration(db.DB(), rootOpts.MigrationsDir, rootOpts.logger)
		},
	}
}
