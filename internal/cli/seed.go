package cli

import (
	"fmt"

	"atelier/internal/repository"
	"atelier/internal/service"
	"atelier/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCommand upserts the sample catalog and homepage layout.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the sample products and homepage sections",
		Long: `Upsert the embedded sample products and homepage sections into the table store.

Rows are keyed by id, so running seed again restores the samples without duplicating them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := rootOpts.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			st := store.New(
				repository.NewProductRepository(db.DB()),
				repository.NewHomepageConfigRepository(db.DB()),
				rootOpts.logger,
			)
			admin := service.NewAdminService(st, nil, rootOpts.logger)
			if err := admin.Initialize(ctx); err != nil {
				return err
			}

			rootOpts.logger.Info("Seed data written",
				zap.Int("products", len(admin.Products())),
				zap.Int("sections", len(admin.Layout())),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products, %d sections\n", len(admin.Products()), len(admin.Layout()))
			return nil
		},
	}
}
