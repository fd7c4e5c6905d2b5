package cli

import (
	"fmt"

	"atelier/internal/auth"

	"github.com/spf13/cobra"
)

// NewHashPassphraseCommand prints a bcrypt hash for ADMIN_PASSPHRASE_HASH.
func NewHashPassphraseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passphrase <passphrase>",
		Short: "Print the bcrypt hash of a console passphrase",
		Args:  cobra.ExactArgs(1),
		// No configuration or database is needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassphrase(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
