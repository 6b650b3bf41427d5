package cli

import (
	"github.com/spf13/cobra"

	"github.com/invoisio/paymentledger/internal/record"
)

// NewAdminCommand creates the admin command.
func NewAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Show the current admin identity",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			admin, err := sess.ledger.Admin(sess.ctx)
			if err != nil {
				return ledgerError(err)
			}

			result := map[string]string{"admin": admin.String()}
			return printResult(cmd.OutOrStdout(), opts.Format, result, admin.String())
		},
	}

	return cmd
}

// NewSetAdminCommand creates the set-admin command.
func NewSetAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-admin <new-admin>",
		Short: "Transfer admin rights to a new identity",
		Long: `Transfers the admin role. The transfer is co-signed: both the current
admin and the new admin must appear as --caller identities, so the role can
never move to an identity that did not consent.

Previously recorded payments are unaffected.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			newAdmin := record.Identity(args[0])
			if err := sess.ledger.SetAdmin(sess.ctx, newAdmin); err != nil {
				return ledgerError(err)
			}

			result := map[string]string{"status": "admin transferred", "admin": newAdmin.String()}
			return printResult(cmd.OutOrStdout(), opts.Format, result, "admin transferred to "+newAdmin.String())
		},
	}

	return cmd
}
