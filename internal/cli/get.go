package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <invoice-id>",
		Short: "Show the recorded payment for an invoice",
		Long: `Prints the stored payment record for the given invoice id.

Fails with PAYMENT_NOT_FOUND when nothing has been recorded; use "has" for
a non-failing existence check.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			rec, err := sess.ledger.GetPayment(sess.ctx, args[0])
			if err != nil {
				return ledgerError(err)
			}

			text := fmt.Sprintf("invoice %s: %s %s from %s at %d",
				rec.InvoiceID, rec.Amount.String(), rec.Asset.String(), rec.Payer, rec.Timestamp)
			return printResult(cmd.OutOrStdout(), opts.Format, rec, text)
		},
	}

	return cmd
}
