package cli

import (
	"github.com/spf13/cobra"

	"github.com/invoisio/paymentledger/internal/record"
)

// NewInitCommand creates the init command.
func NewInitCommand(opts *RootOptions) *cobra.Command {
	var admin string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the ledger with an admin identity",
		Long: `Registers the admin identity and seeds the payment counter at zero.

Runs exactly once per ledger: a second init fails with ALREADY_INITIALIZED
and leaves the stored admin untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.ledger.Initialize(sess.ctx, record.Identity(admin)); err != nil {
				return ledgerError(err)
			}

			result := map[string]string{"status": "initialized", "admin": admin}
			return printResult(cmd.OutOrStdout(), opts.Format, result, "initialized with admin "+admin)
		},
	}

	cmd.Flags().StringVar(&admin, "admin", "", "admin identity to register (required)")
	cmd.MarkFlagRequired("admin")

	return cmd
}
