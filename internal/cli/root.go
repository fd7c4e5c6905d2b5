// Package cli implements atelierctl, the operator tool for the table store schema and seed data.
package cli

import (
	"context"
	"fmt"
	"os"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile       string
	MigrationsDir string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root command for atelierctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "atelierctl",
		Short: "Operate the atelier storefront backend",
		Long:  "Schema migrations, catalog seeding and console passphrase hashing for the atelier storefront.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.EnvFile != "" {
				if err := godotenv.Overload(opts.EnvFile); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("failed to load %s: %w", opts.EnvFile, err)
				}
			}
			opts.cfg = config.Load()

			log, err := logger.New(opts.cfg.Server.Env, opts.cfg.Server.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = log
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	cmd.PersistentFlags().StringVar(&opts.MigrationsDir, "migrations", "", "goose migrations directory; empty uses the migrations built into the binary")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))
	cmd.AddCommand(NewRollbackCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewHashPassphraseCommand(opts))

	return cmd
}

// connect opens the table store named by the loaded configuration
func (o *RootOptions) connect(ctx context.Context) (*database.Service, error) {
	return database.New(ctx, o.cfg.Database)
}
